package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/patchwork/internal/model"
)

// ImportDXF imports sections from a DXF file. Every LWPOLYLINE with at least
// three vertices becomes a section covering its bounding box. Drawing units
// are converted to cells with unit drawing units per cell; y grows upward in
// the drawing and downward on the grid, so y is negated. Imported sections
// use their full size as the canonical block size.
func ImportDXF(path string, unit float64) ImportResult {
	result := ImportResult{}
	if unit <= 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid unit %g", unit))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	skipped := 0
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			skipped++
			continue
		}
		if len(lw.Vertices) < 3 {
			result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			continue
		}

		r := polylineCells(lw, unit)
		if r.Width < 1 || r.Height < 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped outline smaller than one cell at %d,%d", r.X, r.Y))
			continue
		}

		id := len(result.Sections) + 1
		result.Sections = append(result.Sections, model.Section{
			ID:        id,
			Name:      fmt.Sprintf("Section %d", id),
			X:         r.X,
			Y:         r.Y,
			Width:     r.Width,
			Height:    r.Height,
			BlockSize: r.Size(),
		})
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d non-polyline entities", skipped))
	}
	if len(result.Sections) == 0 {
		result.Errors = append(result.Errors, "No section outlines found in DXF file")
	}
	return result
}

// polylineCells returns the bounding box of the polyline in grid cells.
func polylineCells(lw *entity.LwPolyline, unit float64) model.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range lw.Vertices {
		minX = math.Min(minX, v[0])
		maxX = math.Max(maxX, v[0])
		minY = math.Min(minY, v[1])
		maxY = math.Max(maxY, v[1])
	}

	x := int(math.Round(minX / unit))
	y := int(math.Round(-maxY / unit))
	return model.Rect{
		X:      x,
		Y:      y,
		Width:  int(math.Round(maxX/unit)) - x,
		Height: int(math.Round(-minY/unit)) - y,
	}
}
