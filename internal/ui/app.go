package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/patchwork/internal/board"
	"github.com/piwi3910/patchwork/internal/export"
	sectionimporter "github.com/piwi3910/patchwork/internal/importer"
	"github.com/piwi3910/patchwork/internal/model"
	"github.com/piwi3910/patchwork/internal/project"
	"github.com/piwi3910/patchwork/internal/ui/widgets"
)

// DXFUnit is the number of drawing units per grid cell for DXF import and
// export.
const DXFUnit = 10.0

const maxRecentLayouts = 8

// App holds all application state and UI references.
type App struct {
	app        fyne.App
	window     fyne.Window
	config     model.AppConfig
	configPath string
	layoutPath string
	board      *board.Board
	logger     *log.Logger
	theme      *PatchworkTheme

	// UI references for dynamic updates
	canvasHolder    *fyne.Container
	overviewHolder  *fyne.Container
	blocksContainer *fyne.Container
	gridCanvas      *widgets.GridCanvas
	overview        *widgets.LayoutMap
	status          *widget.Label
	undoBtn         *ttwidget.Button
	redoBtn         *ttwidget.Button
	unsubscribe     func()
}

// NewApp creates the editor for layout. configPath is where settings are
// saved; layoutPath is the file the layout came from, empty for the built-in
// one.
func NewApp(application fyne.App, window fyne.Window, cfg model.AppConfig, configPath string, l model.Layout, layoutPath string, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &App{
		app:        application,
		window:     window,
		config:     cfg,
		configPath: configPath,
		logger:     logger,
		theme:      NewPatchworkTheme(cfg.Theme),
	}
	application.Settings().SetTheme(a.theme)
	a.canvasHolder = container.NewStack()
	a.overviewHolder = container.NewCenter()
	a.blocksContainer = container.NewVBox()
	a.status = widget.NewLabel("")
	a.setLayout(l, layoutPath)
	return a
}

// SetupMenus creates the native menu bar and keyboard shortcuts.
func (a *App) SetupMenus() {
	undoShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redoShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}

	undoItem := fyne.NewMenuItem("Undo", a.undo)
	undoItem.Shortcut = undoShortcut
	redoItem := fyne.NewMenuItem("Redo", a.redo)
	redoItem.Shortcut = redoShortcut

	a.window.Canvas().AddShortcut(undoShortcut, func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(redoShortcut, func(fyne.Shortcut) { a.redo() })

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Reset Layout", a.confirmReset),
		fyne.NewMenuItem("Open Layout...", a.openLayout),
		fyne.NewMenuItem("Save Layout As...", a.saveLayout),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Sections from CSV...", func() { a.importSections(sectionimporter.ImportCSV) }),
		fyne.NewMenuItem("Import Sections from Excel...", func() { a.importSections(sectionimporter.ImportExcel) }),
		fyne.NewMenuItem("Import Sections from DXF...", func() {
			a.importSections(func(path string) sectionimporter.ImportResult {
				return sectionimporter.ImportDXF(path, DXFUnit)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { a.exportFile("layout.pdf", export.ExportPDF) }),
		fyne.NewMenuItem("Export Labels...", func() { a.exportFile("labels.pdf", export.ExportLabels) }),
		fyne.NewMenuItem("Export Excel...", func() { a.exportFile("layout.xlsx", export.ExportXLSX) }),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportFile("layout.dxf", func(path string, l model.Layout) error {
				return export.ExportDXF(path, l, DXFUnit)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Backup / Restore...", a.showImportExportDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		undoItem,
		redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Cancel Drag", func() { a.gridCanvas.Cancel() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Sections...", a.showSectionsDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About Patchwork",
		"Patchwork - Grid Block Layout Editor\n\n"+
			"Drag blocks between sections; they take each section's\n"+
			"block size and settle on the nearest free spot.\n"+
			"Drag a block's border to resize it and push its neighbours.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.undoBtn = newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo (Ctrl+Z)", a.undo)
	a.redoBtn = newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo (Ctrl+Y)", a.redo)
	resetBtn := newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Reset to starter blocks", a.confirmReset)
	sectionsBtn := newIconButtonWithTooltip(theme.GridIcon(), "Section catalog", a.showSectionsDialog)

	toolbar := container.NewHBox(
		a.undoBtn, a.redoBtn, widget.NewSeparator(), resetBtn, sectionsBtn,
		layout.NewSpacer(),
	)

	side := container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Overview", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			a.overviewHolder,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Blocks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		nil, nil, nil,
		container.NewVScroll(a.blocksContainer),
	)

	split := container.NewHSplit(container.NewScroll(container.NewCenter(a.canvasHolder)), side)
	split.Offset = 0.6

	a.refresh()
	return container.NewBorder(toolbar, a.status, nil, nil, split)
}

// setLayout replaces the board with one built from l and rebuilds the
// canvas around it.
func (a *App) setLayout(l model.Layout, path string) {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.config.ApplyToLayout(&l)
	a.layoutPath = path
	a.board = board.New(l,
		board.WithLogger(a.logger),
		board.WithHistoryDepth(a.config.HistoryDepth),
	)
	a.unsubscribe = a.board.Subscribe(func([]model.Block) {
		fyne.Do(a.refresh)
	})

	a.gridCanvas = widgets.NewGridCanvas(a.board, l.CellSize)
	a.gridCanvas.OnPreview = a.refreshPreview
	a.overview = widgets.NewLayoutMap(a.board, 120, 480)

	a.canvasHolder.Objects = []fyne.CanvasObject{a.gridCanvas}
	a.canvasHolder.Refresh()
	a.overviewHolder.Objects = []fyne.CanvasObject{a.overview}
	a.overviewHolder.Refresh()

	a.window.SetTitle(fmt.Sprintf("Patchwork - %s", layoutTitle(l, path)))
	a.logger.Info("layout loaded", "name", l.Name, "sections", len(l.Sections), "blocks", len(l.Blocks))
	a.refresh()
}

// refresh redraws everything that depends on the committed blocks.
func (a *App) refresh() {
	a.gridCanvas.Refresh()
	a.refreshBlocksList()
	a.refreshPreview()
	if a.undoBtn != nil {
		setEnabled(a.undoBtn, a.board.CanUndo())
		setEnabled(a.redoBtn, a.board.CanRedo())
	}
}

func (a *App) refreshPreview() {
	a.overview.Refresh()
	a.status.SetText(a.statusText())
}

func (a *App) statusText() string {
	parts := []string{fmt.Sprintf("%d blocks", len(a.board.Blocks()))}

	if pairs := a.board.Overlaps(); len(pairs) > 0 {
		var names []string
		for _, p := range pairs {
			names = append(names, fmt.Sprintf("%d/%d", p.A, p.B))
		}
		parts = append(parts, "overlapping: "+strings.Join(names, ", "))
	} else {
		parts = append(parts, "no overlaps")
	}

	if p := a.board.Preview(); p.Active() {
		r := p.Rect()
		parts = append(parts, fmt.Sprintf("drop at %d,%d as %dx%d in section %d",
			r.X, r.Y, r.Width, r.Height, p.Section.ID))
	}
	return strings.Join(parts, "  |  ")
}

func (a *App) refreshBlocksList() {
	a.blocksContainer.RemoveAll()

	blocks := a.board.Blocks()
	if len(blocks) == 0 {
		a.blocksContainer.Add(widget.NewLabel("This layout has no blocks."))
		return
	}

	for _, b := range blocks {
		sec := a.board.SectionAt(b.X, b.Y)
		row := container.NewHBox(
			canvasSwatch(b.Color),
			widget.NewLabelWithStyle(b.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			widget.NewLabel(fmt.Sprintf("%d,%d  %dx%d  S%d", b.X, b.Y, b.Width, b.Height, sec.ID)),
		)
		a.blocksContainer.Add(row)
	}
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) undo() {
	if !a.board.Undo() {
		a.logger.Debug("nothing to undo")
	}
}

func (a *App) redo() {
	if !a.board.Redo() {
		a.logger.Debug("nothing to redo")
	}
}

func (a *App) confirmReset() {
	dialog.ShowConfirm("Reset Layout",
		"Put every block back where the layout starts it?\nUndo history will be cleared.",
		func(ok bool) {
			if ok {
				a.board.Reset()
			}
		}, a.window)
}

func (a *App) openLayout() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		l, err := project.LoadLayout(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setLayout(l, path)
		a.rememberLayout(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".toml", ".json"}))
	d.Show()
}

func (a *App) saveLayout() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveLayout(path, a.board.Layout()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.layoutPath = path
		a.rememberLayout(path)
	}, a.window)
	name := "layout.toml"
	if a.layoutPath != "" {
		name = filepath.Base(a.layoutPath)
	}
	d.SetFileName(name)
	d.Show()
}

func (a *App) rememberLayout(path string) {
	a.config.AddRecentLayout(path, maxRecentLayouts)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("could not save settings", "err", err)
	}
}

// exportFile asks for a destination and writes the current layout with fn.
func (a *App) exportFile(defaultName string, fn func(path string, l model.Layout) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := fn(path, a.board.Layout()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("exported", "path", path)
		a.config.ExportDir = filepath.Dir(path)
		if err := a.saveConfig(); err != nil {
			a.logger.Warn("could not save settings", "err", err)
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	if a.config.ExportDir != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(a.config.ExportDir)); err == nil {
			d.SetLocation(dir)
		}
	}
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importSections(load func(path string) sectionimporter.ImportResult) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(load(reader.URI().Path()))
	}, a.window)
}

func (a *App) handleImportResult(result sectionimporter.ImportResult) {
	for _, w := range result.Warnings {
		a.logger.Warn("section import", "warning", w)
	}

	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
		return
	}
	if len(result.Sections) == 0 {
		return
	}

	l, err := sectionimporter.ApplySections(a.board.Layout(), result.Sections)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.setLayout(l, "")

	msg := fmt.Sprintf("Imported %d sections.", len(result.Sections))
	if len(result.Warnings) > 0 {
		msg += fmt.Sprintf("\n\n%d warnings:\n%s", len(result.Warnings), strings.Join(result.Warnings, "\n"))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

func layoutTitle(l model.Layout, path string) string {
	if path != "" {
		return filepath.Base(path)
	}
	if l.Name != "" {
		return l.Name
	}
	return "Untitled"
}

func canvasSwatch(idx int) fyne.CanvasObject {
	r := canvas.NewRectangle(widgets.BlockColor(idx, 255))
	r.SetMinSize(fyne.NewSize(14, 14))
	r.CornerRadius = 3
	return container.NewCenter(r)
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}
