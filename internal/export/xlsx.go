package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/patchwork/internal/engine"
	"github.com/piwi3910/patchwork/internal/model"
)

const (
	sectionsSheet = "Sections"
	blocksSheet   = "Blocks"
)

var (
	sectionHeaders = []interface{}{"ID", "Name", "X", "Y", "Width", "Height", "Block Width", "Block Height"}
	blockHeaders   = []interface{}{"ID", "Label", "X", "Y", "Width", "Height", "Section", "Color"}
)

// ExportXLSX writes the layout to an Excel workbook with a Sections sheet
// and a Blocks sheet. Sections comes first and uses the column names the
// section importer recognises, so the workbook can be re-imported as a
// catalog.
func ExportXLSX(path string, layout model.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sectionsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(blocksSheet); err != nil {
		return fmt.Errorf("failed to create blocks sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, sectionsSheet, 1, sectionHeaders); err != nil {
		return err
	}
	for i, s := range layout.Sections {
		row := []interface{}{s.ID, s.Name, s.X, s.Y, s.Width, s.Height, s.BlockSize.Width, s.BlockSize.Height}
		if err := writeRow(f, sectionsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, blocksSheet, 1, blockHeaders); err != nil {
		return err
	}
	reg := engine.NewRegistry(layout.Sections)
	for i, b := range layout.Blocks {
		row := []interface{}{b.ID, b.Label, b.X, b.Y, b.Width, b.Height, reg.SectionAt(b.X, b.Y).ID, colorHex(b.Color)}
		if err := writeRow(f, blocksSheet, i+2, row); err != nil {
			return err
		}

		swatch, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{colorHex(b.Color)}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create colour style: %w", err)
		}
		cell, _ := excelize.CoordinatesToCellName(len(blockHeaders), i+2)
		if err := f.SetCellStyle(blocksSheet, cell, cell, swatch); err != nil {
			return fmt.Errorf("failed to style %s: %w", cell, err)
		}
	}

	for _, sheet := range []string{sectionsSheet, blocksSheet} {
		if err := f.SetCellStyle(sheet, "A1", "H1", headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", "H", 13); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func colorHex(idx int) string {
	c := model.PaletteColor(idx)
	return fmt.Sprintf("#%02X%02X%02X", c[0], c[1], c[2])
}
