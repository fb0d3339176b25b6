package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// EditorTextSize is the body text size used by the editor and lists
const EditorTextSize float32 = 14

// palette holds the light and dark variant of a color
type palette struct {
	light, dark color.Color
}

var editorColors = map[fyne.ThemeColorName]palette{
	theme.ColorNamePrimary: {
		light: color.NRGBA{R: 0, G: 121, B: 107, A: 255},
		dark:  color.NRGBA{R: 77, G: 182, B: 172, A: 255},
	},
	theme.ColorNameSelection: {
		light: color.NRGBA{R: 0, G: 150, B: 136, A: 64},
		dark:  color.NRGBA{R: 0, G: 150, B: 136, A: 96},
	},
	theme.ColorNameError: {
		light: color.NRGBA{R: 183, G: 28, B: 28, A: 255},
		dark:  color.NRGBA{R: 239, G: 83, B: 80, A: 255},
	},
	theme.ColorNameBackground: {
		light: color.NRGBA{R: 250, G: 250, B: 248, A: 255},
		dark:  color.NRGBA{R: 24, G: 24, B: 24, A: 255},
	},
	theme.ColorNameForeground: {
		light: color.NRGBA{R: 33, G: 33, B: 33, A: 255},
		dark:  color.NRGBA{R: 230, G: 230, B: 230, A: 255},
	},
}

// chrome sizes are tighter than the default; text sizes scale from textSize
var editorSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:      3,
	theme.SizeNameInnerPadding: 6,
	theme.SizeNameLineSpacing:  3,
	theme.SizeNameScrollBar:    12,
	theme.SizeNameInputRadius:  3,
}

// EditorTheme is a calm variant of the default theme with compact chrome
type EditorTheme struct {
	base     fyne.Theme
	textSize float32
}

// NewEditorTheme creates the application theme
func NewEditorTheme() fyne.Theme {
	return &EditorTheme{base: theme.DefaultTheme(), textSize: EditorTextSize}
}

// Color returns the palette entry for name, falling back to the base theme
func (t *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if p, ok := editorColors[name]; ok {
		if variant == theme.VariantDark {
			return p.dark
		}
		return p.light
	}
	return t.base.Color(name, variant)
}

func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact chrome sizes and text sizes relative to the body size
func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return t.textSize
	case theme.SizeNameHeadingText:
		return t.textSize * 1.3
	case theme.SizeNameSubHeadingText:
		return t.textSize
	case theme.SizeNameCaptionText:
		return t.textSize * 0.8
	}
	if size, ok := editorSizes[name]; ok {
		return size
	}
	return t.base.Size(name)
}
