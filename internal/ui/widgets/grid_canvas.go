package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/patchwork/internal/engine"
	"github.com/piwi3910/patchwork/internal/model"
)

// Grid canvas colors.
var (
	colorGridBackground = color.NRGBA{R: 248, G: 248, B: 250, A: 255}
	colorGridLine       = color.NRGBA{R: 225, G: 225, B: 230, A: 255}
	colorSectionFill    = color.NRGBA{R: 236, G: 240, B: 248, A: 255}
	colorSectionAltFill = color.NRGBA{R: 244, G: 240, B: 232, A: 255}
	colorSectionBorder  = color.NRGBA{R: 150, G: 160, B: 180, A: 255}
	colorSectionText    = color.NRGBA{R: 120, G: 130, B: 150, A: 255}
	colorBlockBorder    = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	colorOverlapBorder  = color.NRGBA{R: 220, G: 30, B: 30, A: 255}
	colorPreviewFill    = color.NRGBA{R: 59, G: 130, B: 246, A: 60}
	colorPreviewBorder  = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
)

// Controller is the board surface the grid canvas drives. *board.Board
// satisfies it.
type Controller interface {
	Grid() model.Grid
	Sections() []model.Section
	Blocks() []model.Block
	Preview() model.DragPreview
	Overlaps() []engine.OverlapPair
	DragHover(id, x, y int) model.DragPreview
	Drop(id, x, y int) bool
	CancelDrag()
	Resize(id int, edge model.Edge, dx, dy int) bool
}

// GridCanvas renders the grid, its sections and blocks, and translates
// pointer drags into hover/drop and resize calls in grid units.
//
// A drag that starts within the handle margin of a block's border resizes
// the block from that edge or corner; any other drag on a block moves it.
// Drag state is only touched from the fyne event goroutine.
type GridCanvas struct {
	widget.BaseWidget
	ctrl     Controller
	cellSize int
	handle   float32

	// OnChanged is called after a drop or resize was committed.
	OnChanged func()
	// OnPreview is called whenever the drag preview may have changed.
	OnPreview func()

	dragging  bool
	cancelled bool
	dragID    int
	resizing  bool
	edge      model.Edge
	moved     fyne.Delta
	lastCell  model.Point
	pending   model.Rect
	hasTarget bool
}

// NewGridCanvas creates a canvas for ctrl drawn at cellSize pixels per cell.
func NewGridCanvas(ctrl Controller, cellSize int) *GridCanvas {
	if cellSize <= 0 {
		cellSize = model.DefaultCellSize
	}
	gc := &GridCanvas{
		ctrl:     ctrl,
		cellSize: cellSize,
		handle:   float32(cellSize) / 5,
	}
	gc.ExtendBaseWidget(gc)
	return gc
}

// CellSize returns the pixel size of one cell.
func (gc *GridCanvas) CellSize() int { return gc.cellSize }

// CreateRenderer implements fyne.Widget.
func (gc *GridCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newGridCanvasRenderer(gc)
}

// Dragged implements fyne.Draggable.
func (gc *GridCanvas) Dragged(ev *fyne.DragEvent) {
	if !gc.dragging {
		gc.begin(ev.Position.Subtract(ev.Dragged))
	}
	if gc.cancelled || gc.dragID == model.NoBlock {
		return
	}
	gc.moved.DX += ev.Dragged.DX
	gc.moved.DY += ev.Dragged.DY

	if gc.resizing {
		blk, ok := gc.block(gc.dragID)
		if !ok {
			return
		}
		dx := model.CellDelta(float64(gc.moved.DX), gc.cellSize)
		dy := model.CellDelta(float64(gc.moved.DY), gc.cellSize)
		gc.pending = engine.ResizeFootprint(gc.ctrl.Grid(), blk, gc.edge, dx, dy)
		gc.Refresh()
		return
	}

	cell := gc.ctrl.Grid().CellAt(float64(ev.Position.X), float64(ev.Position.Y), gc.cellSize)
	if gc.hasTarget && cell == gc.lastCell {
		return
	}
	gc.lastCell = cell
	gc.hasTarget = true
	gc.ctrl.DragHover(gc.dragID, cell.X, cell.Y)
	gc.Refresh()
	gc.previewChanged()
}

// DragEnd implements fyne.Draggable.
func (gc *GridCanvas) DragEnd() {
	defer gc.reset()
	if gc.cancelled || gc.dragID == model.NoBlock {
		return
	}

	committed := false
	switch {
	case gc.resizing:
		dx := model.CellDelta(float64(gc.moved.DX), gc.cellSize)
		dy := model.CellDelta(float64(gc.moved.DY), gc.cellSize)
		if dx != 0 || dy != 0 {
			committed = gc.ctrl.Resize(gc.dragID, gc.edge, dx, dy)
		}
	case gc.hasTarget:
		committed = gc.ctrl.Drop(gc.dragID, gc.lastCell.X, gc.lastCell.Y)
	default:
		gc.ctrl.CancelDrag()
	}

	gc.Refresh()
	gc.previewChanged()
	if committed && gc.OnChanged != nil {
		gc.OnChanged()
	}
}

// Cancel abandons the drag in progress. The committed blocks stay as they
// were and the drop at the end of the gesture is ignored.
func (gc *GridCanvas) Cancel() {
	if !gc.dragging {
		return
	}
	gc.cancelled = true
	gc.ctrl.CancelDrag()
	gc.Refresh()
	gc.previewChanged()
}

func (gc *GridCanvas) previewChanged() {
	if gc.OnPreview != nil {
		gc.OnPreview()
	}
}

// Tapped focuses the canvas so Escape reaches it.
func (gc *GridCanvas) Tapped(*fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(gc); c != nil {
		c.Focus(gc)
	}
}

// FocusGained implements fyne.Focusable.
func (gc *GridCanvas) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (gc *GridCanvas) FocusLost() {}

// TypedRune implements fyne.Focusable.
func (gc *GridCanvas) TypedRune(rune) {}

// TypedKey cancels a drag on Escape.
func (gc *GridCanvas) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		gc.Cancel()
	}
}

func (gc *GridCanvas) begin(start fyne.Position) {
	gc.dragging = true
	blk, ok := hitBlock(gc.ctrl.Blocks(), start, float32(gc.cellSize))
	if !ok {
		return
	}
	gc.dragID = blk.ID
	gc.edge, gc.resizing = hitEdge(blk.Rect(), start, float32(gc.cellSize), gc.handle)
	if gc.resizing {
		gc.pending = blk.Rect()
	}
}

func (gc *GridCanvas) reset() {
	gc.dragging = false
	gc.cancelled = false
	gc.dragID = model.NoBlock
	gc.resizing = false
	gc.moved = fyne.Delta{}
	gc.hasTarget = false
}

func (gc *GridCanvas) block(id int) (model.Block, bool) {
	for _, b := range gc.ctrl.Blocks() {
		if b.ID == id {
			return b, true
		}
	}
	return model.Block{}, false
}

// hitBlock returns the topmost block under pos. Blocks later in the
// collection are drawn on top.
func hitBlock(blocks []model.Block, pos fyne.Position, cell float32) (model.Block, bool) {
	for i := len(blocks) - 1; i >= 0; i-- {
		r := blocks[i].Rect()
		x0, y0 := float32(r.X)*cell, float32(r.Y)*cell
		x1, y1 := float32(r.Right())*cell, float32(r.Bottom())*cell
		if pos.X >= x0 && pos.X < x1 && pos.Y >= y0 && pos.Y < y1 {
			return blocks[i], true
		}
	}
	return model.Block{}, false
}

// hitEdge reports which resize handle of r lies under pos, if any. A handle
// is the band of width margin just inside the border; corners win over
// sides.
func hitEdge(r model.Rect, pos fyne.Position, cell, margin float32) (model.Edge, bool) {
	x0, y0 := float32(r.X)*cell, float32(r.Y)*cell
	x1, y1 := float32(r.Right())*cell, float32(r.Bottom())*cell

	left := pos.X-x0 < margin
	right := x1-pos.X <= margin
	top := pos.Y-y0 < margin
	bottom := y1-pos.Y <= margin

	switch {
	case top && left:
		return model.EdgeTopLeft, true
	case top && right:
		return model.EdgeTopRight, true
	case bottom && left:
		return model.EdgeBottomLeft, true
	case bottom && right:
		return model.EdgeBottomRight, true
	case top:
		return model.EdgeTop, true
	case bottom:
		return model.EdgeBottom, true
	case left:
		return model.EdgeLeft, true
	case right:
		return model.EdgeRight, true
	}
	return 0, false
}

// BlockColor converts a palette index to a fill color.
func BlockColor(idx int, alpha uint8) color.NRGBA {
	c := model.PaletteColor(idx)
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: alpha}
}

type gridCanvasRenderer struct {
	gc      *GridCanvas
	objects []fyne.CanvasObject
}

func newGridCanvasRenderer(gc *GridCanvas) *gridCanvasRenderer {
	r := &gridCanvasRenderer{gc: gc}
	r.rebuild()
	return r
}

func (r *gridCanvasRenderer) rebuild() {
	r.objects = nil

	gc := r.gc
	grid := gc.ctrl.Grid()
	cell := float32(gc.cellSize)
	canvasW := float32(grid.Cols) * cell
	canvasH := float32(grid.Rows) * cell

	bg := canvas.NewRectangle(colorGridBackground)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	for i, s := range gc.ctrl.Sections() {
		fill := colorSectionFill
		if i%2 == 1 {
			fill = colorSectionAltFill
		}
		r.addRect(s.Rect(), fill, colorSectionBorder, 1.5)

		if s.Width*gc.cellSize >= 30 {
			text := canvas.NewText(fmt.Sprintf("S%d", s.ID), colorSectionText)
			text.TextSize = 9
			text.Move(fyne.NewPos(float32(s.X)*cell+3, float32(s.Y)*cell+2))
			r.objects = append(r.objects, text)
		}
	}

	for x := 1; x < grid.Cols; x++ {
		line := canvas.NewLine(colorGridLine)
		line.StrokeWidth = 0.5
		line.Position1 = fyne.NewPos(float32(x)*cell, 0)
		line.Position2 = fyne.NewPos(float32(x)*cell, canvasH)
		r.objects = append(r.objects, line)
	}
	for y := 1; y < grid.Rows; y++ {
		line := canvas.NewLine(colorGridLine)
		line.StrokeWidth = 0.5
		line.Position1 = fyne.NewPos(0, float32(y)*cell)
		line.Position2 = fyne.NewPos(canvasW, float32(y)*cell)
		r.objects = append(r.objects, line)
	}

	overlapping := make(map[int]bool)
	for _, p := range gc.ctrl.Overlaps() {
		overlapping[p.A] = true
		overlapping[p.B] = true
	}

	for _, b := range gc.ctrl.Blocks() {
		alpha := uint8(220)
		if b.ID == gc.dragID && !gc.cancelled {
			alpha = 90
		}
		border := colorBlockBorder
		if overlapping[b.ID] {
			border = colorOverlapBorder
		}
		rect := b.Rect()
		if b.ID == gc.dragID && gc.resizing && !gc.cancelled {
			rect = gc.pending
			alpha = 160
		}
		r.addRect(rect, BlockColor(b.Color, alpha), border, 1)

		pw := float32(rect.Width) * cell
		ph := float32(rect.Height) * cell
		if pw > 30 && ph > 16 {
			label := canvas.NewText(b.Label, color.White)
			label.TextSize = 11
			label.TextStyle = fyne.TextStyle{Bold: true}
			label.Move(fyne.NewPos(float32(rect.X)*cell+4, float32(rect.Y)*cell+3))
			r.objects = append(r.objects, label)

			size := canvas.NewText(fmt.Sprintf("%dx%d", rect.Width, rect.Height), color.White)
			size.TextSize = 9
			size.Move(fyne.NewPos(float32(rect.X)*cell+4, float32(rect.Y)*cell+17))
			r.objects = append(r.objects, size)
		}
	}

	if p := gc.ctrl.Preview(); p.Active() && !gc.cancelled {
		r.addRect(p.Rect(), colorPreviewFill, colorPreviewBorder, 2)
	}
}

func (r *gridCanvasRenderer) addRect(rect model.Rect, fill, stroke color.Color, width float32) {
	cell := float32(r.gc.cellSize)
	pos := fyne.NewPos(float32(rect.X)*cell, float32(rect.Y)*cell)
	size := fyne.NewSize(float32(rect.Width)*cell, float32(rect.Height)*cell)

	body := canvas.NewRectangle(fill)
	body.Resize(size)
	body.Move(pos)
	r.objects = append(r.objects, body)

	outline := canvas.NewRectangle(color.Transparent)
	outline.StrokeColor = stroke
	outline.StrokeWidth = width
	outline.Resize(size)
	outline.Move(pos)
	r.objects = append(r.objects, outline)
}

func (r *gridCanvasRenderer) Layout(size fyne.Size)        {}
func (r *gridCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *gridCanvasRenderer) Destroy()                     {}
func (r *gridCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *gridCanvasRenderer) MinSize() fyne.Size {
	grid := r.gc.ctrl.Grid()
	cell := float32(r.gc.cellSize)
	return fyne.NewSize(float32(grid.Cols)*cell, float32(grid.Rows)*cell)
}
