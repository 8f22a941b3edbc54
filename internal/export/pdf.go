// Package export writes snapshots of a layout to PDF, QR label sheets, Excel
// workbooks and DXF drawings.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/patchwork/internal/engine"
	"github.com/piwi3910/patchwork/internal/model"
)

// Page layout constants (A4 portrait in mm). The grid is tall and narrow,
// so the layout page is portrait with the legend in a side column.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendWidth  = 70.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the layout on one page (sections outlined, blocks
// filled with their palette colour) followed by a summary page listing each
// block, the section it sits in and any overlapping pairs.
func ExportPDF(path string, layout model.Layout) error {
	if layout.Grid.Cols < 1 || layout.Grid.Rows < 1 {
		return fmt.Errorf("layout has an empty grid")
	}
	if len(layout.Blocks) == 0 && len(layout.Sections) == 0 {
		return fmt.Errorf("nothing to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, layout)

	pdf.AddPage()
	renderSummaryPage(pdf, layout)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the grid, sections and blocks on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, layout model.Layout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%d x %d cells)", layoutName(layout), layout.Grid.Cols, layout.Grid.Rows)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - legendWidth
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scale := math.Min(drawWidth/float64(layout.Grid.Cols), drawHeight/float64(layout.Grid.Rows))
	canvasW := float64(layout.Grid.Cols) * scale
	canvasH := float64(layout.Grid.Rows) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Background and cell lines
	pdf.SetFillColor(248, 248, 248)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")
	drawGridLines(pdf, layout.Grid, scale, offsetX, offsetY)

	// Sections as dashed outlines with their id in the corner
	pdf.SetDashPattern([]float64{1, 0.8}, 0)
	pdf.SetDrawColor(120, 120, 160)
	pdf.SetLineWidth(0.3)
	for _, s := range layout.Sections {
		pdf.Rect(offsetX+float64(s.X)*scale, offsetY+float64(s.Y)*scale,
			float64(s.Width)*scale, float64(s.Height)*scale, "D")
	}
	pdf.SetDashPattern([]float64{}, 0)

	pdf.SetFont("Helvetica", "", 5)
	pdf.SetTextColor(120, 120, 160)
	for _, s := range layout.Sections {
		pdf.SetXY(offsetX+float64(s.X)*scale+0.5, offsetY+float64(s.Y)*scale+0.5)
		pdf.CellFormat(6, 2, fmt.Sprintf("%d", s.ID), "", 0, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	for _, b := range layout.Blocks {
		col := model.PaletteColor(b.Color)
		bw := float64(b.Width) * scale
		bh := float64(b.Height) * scale
		bx := offsetX + float64(b.X)*scale
		by := offsetY + float64(b.Y)*scale

		pdf.SetFillColor(int(col[0]), int(col[1]), int(col[2]))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bh, "FD")

		if bw > 6 && bh > 4 {
			pdf.SetFont("Helvetica", "B", labelFontSize(bw, bh))
			pdf.SetTextColor(255, 255, 255)
			label := blockLabel(b)
			labelW := pdf.GetStringWidth(label)
			if labelW < bw-1 {
				pdf.SetXY(bx+(bw-labelW)/2, by+bh/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)

	drawBlocksLegend(pdf, layout, offsetX+canvasW+8, drawAreaTop)
}

// drawGridLines draws thin cell separators.
func drawGridLines(pdf *fpdf.Fpdf, grid model.Grid, scale, offsetX, offsetY float64) {
	pdf.SetDrawColor(225, 225, 225)
	pdf.SetLineWidth(0.1)
	for c := 1; c < grid.Cols; c++ {
		x := offsetX + float64(c)*scale
		pdf.Line(x, offsetY, x, offsetY+float64(grid.Rows)*scale)
	}
	for r := 1; r < grid.Rows; r++ {
		y := offsetY + float64(r)*scale
		pdf.Line(offsetX, y, offsetX+float64(grid.Cols)*scale, y)
	}
}

// drawBlocksLegend renders one colour swatch per block in a column.
func drawBlocksLegend(pdf *fpdf.Fpdf, layout model.Layout, x, y float64) {
	if len(layout.Blocks) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(x, y)
	pdf.CellFormat(legendWidth-8, 5, "Blocks", "", 0, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "", 8)
	for _, b := range layout.Blocks {
		if y > pageHeight-marginBottom-5 {
			break
		}
		col := model.PaletteColor(b.Color)
		pdf.SetFillColor(int(col[0]), int(col[1]), int(col[2]))
		pdf.Rect(x, y+0.5, 3, 3, "F")

		pdf.SetXY(x+5, y)
		text := fmt.Sprintf("%s  %d,%d  %dx%d", blockLabel(b), b.X, b.Y, b.Width, b.Height)
		pdf.CellFormat(legendWidth-13, 4, text, "", 0, "L", false, 0, "")
		y += 5
	}
}

// renderSummaryPage lists every block with its section and flags overlaps.
func renderSummaryPage(pdf *fpdf.Fpdf, layout model.Layout) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Grid", fmt.Sprintf("%d x %d cells", layout.Grid.Cols, layout.Grid.Rows)},
		{"Sections", fmt.Sprintf("%d", len(layout.Sections))},
		{"Blocks", fmt.Sprintf("%d", len(layout.Blocks))},
		{"Covered Cells", fmt.Sprintf("%d of %d", coveredCells(layout), layout.Grid.Cols*layout.Grid.Rows)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Blocks", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 45, 30, 30, 30, 30}
	headers := []string{"ID", "Label", "Position", "Size", "Section", "Canonical"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	reg := engine.NewRegistry(layout.Sections)
	pdf.SetFont("Helvetica", "", 9)
	for i, b := range layout.Blocks {
		if y > pageHeight-marginBottom-20 {
			break
		}
		sec := reg.SectionAt(b.X, b.Y)
		canonical := "yes"
		if sec.BlockSize != b.Rect().Size() {
			canonical = "no"
		}
		rowData := []string{
			fmt.Sprintf("%d", b.ID),
			blockLabel(b),
			fmt.Sprintf("%d, %d", b.X, b.Y),
			fmt.Sprintf("%d x %d", b.Width, b.Height),
			sectionName(sec),
			canonical,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if overlaps := engine.Overlaps(layout.Blocks); len(overlaps) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(180, 7, "WARNING: Overlapping Blocks", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, o := range overlaps {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(180, 5, fmt.Sprintf("- block %d and block %d", o.A, o.B), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Patchwork", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 9
	case minDim > 10:
		return 7
	default:
		return 5
	}
}

// coveredCells counts grid cells covered by at least one block.
func coveredCells(layout model.Layout) int {
	covered := make(map[model.Point]bool)
	for _, b := range layout.Blocks {
		r := b.Rect()
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				if x >= 0 && y >= 0 && x < layout.Grid.Cols && y < layout.Grid.Rows {
					covered[model.Point{X: x, Y: y}] = true
				}
			}
		}
	}
	return len(covered)
}

func blockLabel(b model.Block) string {
	if b.Label != "" {
		return b.Label
	}
	return fmt.Sprintf("Block %d", b.ID)
}

func sectionName(s model.Section) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%d", s.ID)
}

func layoutName(l model.Layout) string {
	if l.Name != "" {
		return l.Name
	}
	return "Layout"
}
