package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tiptapri/tiptapri/internal/model"
)

// RecentRow renders one recently opened file with open, reveal and remove actions
type RecentRow struct {
	widget.BaseWidget

	record       model.FileRecord
	localization *Localization

	nameBtn     *widget.Button
	dirLabel    *widget.Label
	externalBtn *widget.Button
	revealBtn   *widget.Button
	removeBtn   *widget.Button

	actions RecentRowActions
}

// RecentRowActions are the callbacks a row invokes with its record
type RecentRowActions struct {
	Open         func(model.FileRecord)
	OpenExternal func(model.FileRecord)
	Reveal       func(model.FileRecord)
	Remove       func(model.FileRecord)
}

// NewRecentRow creates an empty row; call SetRecord to fill it
func NewRecentRow(localization *Localization) *RecentRow {
	row := &RecentRow{localization: localization}
	row.ExtendBaseWidget(row)

	row.nameBtn = widget.NewButtonWithIcon("", theme.DocumentIcon(), func() {
		row.invoke(row.actions.Open)
	})
	row.nameBtn.Alignment = widget.ButtonAlignLeading
	row.nameBtn.Importance = widget.LowImportance

	row.dirLabel = widget.NewLabel("")
	row.dirLabel.Truncation = fyne.TextTruncateEllipsis
	row.dirLabel.Importance = widget.LowImportance

	row.externalBtn = widget.NewButtonWithIcon("", theme.ComputerIcon(), func() {
		row.invoke(row.actions.OpenExternal)
	})
	row.revealBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		row.invoke(row.actions.Reveal)
	})
	row.removeBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		row.invoke(row.actions.Remove)
	})

	return row
}

// SetActions sets the row callbacks
func (row *RecentRow) SetActions(actions RecentRowActions) {
	row.actions = actions
}

func (row *RecentRow) invoke(fn func(model.FileRecord)) {
	if fn != nil {
		fn(row.record)
	}
}

// SetRecord binds the row to rec
func (row *RecentRow) SetRecord(rec model.FileRecord) {
	row.record = rec
	row.nameBtn.SetText(rec.DisplayName())
	row.dirLabel.SetText(rec.DirName)
}

// Record returns the bound record
func (row *RecentRow) Record() model.FileRecord {
	return row.record
}

// CreateRenderer implements fyne.Widget
func (row *RecentRow) CreateRenderer() fyne.WidgetRenderer {
	actions := container.NewHBox(row.externalBtn, row.revealBtn, row.removeBtn)
	text := container.NewVBox(row.nameBtn, row.dirLabel)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, actions, text))
}

// MinSize keeps rows readable in narrow windows
func (row *RecentRow) MinSize() fyne.Size {
	size := row.BaseWidget.MinSize()
	if size.Width < RecentRowMinWidth {
		size.Width = RecentRowMinWidth
	}
	return size
}
