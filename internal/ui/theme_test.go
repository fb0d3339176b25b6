package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestEditorTheme_Variants(t *testing.T) {
	th := NewEditorTheme()

	light := th.Color(theme.ColorNamePrimary, theme.VariantLight)
	dark := th.Color(theme.ColorNamePrimary, theme.VariantDark)
	if light == dark {
		t.Error("Expected distinct primary colors per variant")
	}

	// Unlisted colors come from the default theme
	want := theme.DefaultTheme().Color(theme.ColorNameHover, theme.VariantLight)
	if got := th.Color(theme.ColorNameHover, theme.VariantLight); got != want {
		t.Errorf("Expected default hover color %v, got %v", want, got)
	}

	if got := th.Size(theme.SizeNameText); got != EditorTextSize {
		t.Errorf("Expected text size %v, got %v", EditorTextSize, got)
	}
	if th.Size(theme.SizeNameHeadingText) <= th.Size(theme.SizeNameText) {
		t.Error("Heading text should be larger than body text")
	}
	if got := th.Size(theme.SizeNamePadding); got != 3 {
		t.Errorf("Expected compact padding 3, got %v", got)
	}
}
