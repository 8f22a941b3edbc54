package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/patchwork/internal/model"
)

// DXF layer names.
const (
	LayerSections = "SECTIONS"
	LayerBlocks   = "BLOCKS"
	LayerLabels   = "LABELS"
)

// ExportDXF writes the layout as a DXF drawing: every section and block as
// a closed LWPOLYLINE on its own layer, plus a text label per block. One cell is unit drawing units wide. The drawing's y axis
// points up, so grid row r is drawn at y = -r*unit.
func ExportDXF(path string, layout model.Layout, unit float64) error {
	if unit <= 0 {
		return fmt.Errorf("invalid unit %g", unit)
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerSections, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, s := range layout.Sections {
		if _, err := d.LwPolyline(true, rectVertices(s.Rect(), unit)...); err != nil {
			return fmt.Errorf("failed to draw section %d: %w", s.ID, err)
		}
	}

	if _, err := d.AddLayer(LayerBlocks, color.Magenta, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, b := range layout.Blocks {
		if _, err := d.LwPolyline(true, rectVertices(b.Rect(), unit)...); err != nil {
			return fmt.Errorf("failed to draw block %d: %w", b.ID, err)
		}
	}

	if _, err := d.AddLayer(LayerLabels, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	height := unit * 0.3
	for _, b := range layout.Blocks {
		x := (float64(b.X) + 0.2) * unit
		y := -(float64(b.Y)+0.2)*unit - height
		if _, err := d.Text(blockLabel(b), x, y, 0, height); err != nil {
			return fmt.Errorf("failed to label block %d: %w", b.ID, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

// rectVertices returns the corners of r in drawing units, clockwise from
// the top-left.
func rectVertices(r model.Rect, unit float64) [][]float64 {
	x0, y0 := float64(r.X)*unit, -float64(r.Y)*unit
	x1, y1 := float64(r.Right())*unit, -float64(r.Bottom())*unit
	return [][]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}
