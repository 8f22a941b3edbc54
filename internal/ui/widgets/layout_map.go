package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/patchwork/internal/model"
)

var (
	colorMapBackground = color.NRGBA{R: 240, G: 240, B: 244, A: 255}
	colorMapSection    = color.NRGBA{R: 150, G: 160, B: 180, A: 200}
)

// LayoutMap is a read-only overview of the whole grid scaled to fit within
// a fixed box. It shows section outlines, blocks and the drag preview.
type LayoutMap struct {
	widget.BaseWidget
	ctrl      Controller
	maxWidth  float32
	maxHeight float32
}

// NewLayoutMap creates an overview of ctrl that fits within maxW x maxH.
func NewLayoutMap(ctrl Controller, maxW, maxH float32) *LayoutMap {
	lm := &LayoutMap{
		ctrl:      ctrl,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	lm.ExtendBaseWidget(lm)
	return lm
}

// CreateRenderer implements fyne.Widget.
func (lm *LayoutMap) CreateRenderer() fyne.WidgetRenderer {
	return newLayoutMapRenderer(lm)
}

// scale returns the pixels per cell that fit the grid in the box.
func (lm *LayoutMap) scale() float32 {
	grid := lm.ctrl.Grid()
	if grid.Cols <= 0 || grid.Rows <= 0 {
		return 1
	}
	scaleX := lm.maxWidth / float32(grid.Cols)
	scaleY := lm.maxHeight / float32(grid.Rows)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 {
		scale = 1
	}
	return scale
}

type layoutMapRenderer struct {
	lm      *LayoutMap
	objects []fyne.CanvasObject
}

func newLayoutMapRenderer(lm *LayoutMap) *layoutMapRenderer {
	r := &layoutMapRenderer{lm: lm}
	r.rebuild()
	return r
}

func (r *layoutMapRenderer) rebuild() {
	r.objects = nil

	lm := r.lm
	grid := lm.ctrl.Grid()
	scale := lm.scale()

	bg := canvas.NewRectangle(colorMapBackground)
	bg.Resize(fyne.NewSize(float32(grid.Cols)*scale, float32(grid.Rows)*scale))
	r.objects = append(r.objects, bg)

	for _, s := range lm.ctrl.Sections() {
		r.addRect(s.Rect(), scale, color.Transparent, colorMapSection, 1)
	}
	for _, b := range lm.ctrl.Blocks() {
		r.addRect(b.Rect(), scale, BlockColor(b.Color, 230), colorBlockBorder, 0.5)
	}
	if p := lm.ctrl.Preview(); p.Active() {
		r.addRect(p.Rect(), scale, colorPreviewFill, colorPreviewBorder, 1.5)
	}
}

func (r *layoutMapRenderer) addRect(rect model.Rect, scale float32, fill, stroke color.Color, width float32) {
	pos := fyne.NewPos(float32(rect.X)*scale, float32(rect.Y)*scale)
	size := fyne.NewSize(float32(rect.Width)*scale, float32(rect.Height)*scale)

	body := canvas.NewRectangle(fill)
	body.StrokeColor = stroke
	body.StrokeWidth = width
	body.Resize(size)
	body.Move(pos)
	r.objects = append(r.objects, body)
}

func (r *layoutMapRenderer) Layout(size fyne.Size)        {}
func (r *layoutMapRenderer) Refresh()                     { r.rebuild() }
func (r *layoutMapRenderer) Destroy()                     {}
func (r *layoutMapRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *layoutMapRenderer) MinSize() fyne.Size {
	grid := r.lm.ctrl.Grid()
	scale := r.lm.scale()
	return fyne.NewSize(float32(grid.Cols)*scale, float32(grid.Rows)*scale)
}
