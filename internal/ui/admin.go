package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/patchwork/internal/model"
	"github.com/piwi3910/patchwork/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect(model.Themes, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	layoutEntry := widget.NewEntry()
	layoutEntry.SetPlaceHolder("Built-in layout")
	layoutEntry.SetText(cfg.LayoutPath)
	layoutEntry.OnChanged = func(text string) { cfg.LayoutPath = text }

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Startup Layout", layoutEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Cell Size (px, 0=layout)", intEntry(&cfg.CellSize)),
		widget.NewFormItem("Undo Steps", intEntry(&cfg.HistoryDepth)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := cfg.Validate(); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.config = cfg
			a.theme.SetName(cfg.Theme)
			a.app.Settings().SetTheme(a.theme)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved",
					"Settings have been saved.\nCell size and undo steps apply to the next layout you open.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(460, 320))
	d.Show()
}

// showImportExportDialog displays the backup import/export dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			layout := a.board.Layout()
			if err := project.ExportAllData(path, a.config, &layout); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings and layout exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("patchwork-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings and the current layout.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					if backup.Layout != nil {
						a.setLayout(*backup.Layout, "")
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings and the current layout to a backup file,\nor restore them from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// showSectionsDialog lists the section catalog of the current layout.
func (a *App) showSectionsDialog() {
	sections := a.board.Sections()
	headers := []string{"ID", "Name", "Position", "Size", "Block Size"}

	table := widget.NewTable(
		func() (int, int) { return len(sections) + 1, len(headers) },
		func() fyne.CanvasObject { return widget.NewLabel("Block Size 00") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(headers[id.Col])
				return
			}
			label.TextStyle = fyne.TextStyle{}
			label.SetText(sectionCell(sections[id.Row-1], id.Col))
		},
	)

	d := dialog.NewCustom(fmt.Sprintf("Sections (%d)", len(sections)), "Close", table, a.window)
	d.Resize(fyne.NewSize(560, 520))
	d.Show()
}

func sectionCell(s model.Section, col int) string {
	switch col {
	case 0:
		return strconv.Itoa(s.ID)
	case 1:
		return s.Name
	case 2:
		return fmt.Sprintf("%d, %d", s.X, s.Y)
	case 3:
		return fmt.Sprintf("%d x %d", s.Width, s.Height)
	default:
		return fmt.Sprintf("%d x %d", s.BlockSize.Width, s.BlockSize.Height)
	}
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}
