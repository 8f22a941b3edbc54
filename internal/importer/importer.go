// Package importer reads section catalogs from CSV, Excel and DXF files.
// CSV and Excel imports support automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/patchwork/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Sections []model.Section
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID          int
	Name        int
	X           int
	Y           int
	Width       int
	Height      int
	BlockWidth  int
	BlockHeight int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":           {"id", "section", "section id", "section_id", "#"},
	"name":         {"name", "label", "title", "description", "desc"},
	"x":            {"x", "col", "column", "left"},
	"y":            {"y", "row", "top"},
	"width":        {"width", "w", "cols"},
	"height":       {"height", "h", "rows"},
	"block_width":  {"block_width", "block width", "bw", "canonical width", "block w"},
	"block_height": {"block_height", "block height", "bh", "canonical height", "block h"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Numeric cells are never header names, and a row only counts as a header
// when at least two roles match, so a data row whose name happens to be an
// alias ("Top", "Left") stays data.
// Returns the mapping and true if a header was detected, or the positional
// mapping (id, name, x, y, width, height, block width, block height) and
// false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1}
	roles := map[string]*int{
		"id":           &mapping.ID,
		"name":         &mapping.Name,
		"x":            &mapping.X,
		"y":            &mapping.Y,
		"width":        &mapping.Width,
		"height":       &mapping.Height,
		"block_width":  &mapping.BlockWidth,
		"block_height": &mapping.BlockHeight,
	}

	matched := 0
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		if isNumeric(normalized) {
			continue
		}
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					if idx := roles[role]; *idx == -1 {
						*idx = i
						matched++
					}
				}
			}
		}
	}

	if matched < minHeaderRoles {
		return ColumnMapping{
			ID:          0,
			Name:        1,
			X:           2,
			Y:           3,
			Width:       4,
			Height:      5,
			BlockWidth:  6,
			BlockHeight: 7,
		}, false
	}

	return mapping, true
}

// minHeaderRoles is how many distinct column roles a row must name to be
// taken as a header.
const minHeaderRoles = 2

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseInt reads a required integer cell. Whole-number floats such as "3.0"
// (common in spreadsheet exports) are accepted.
func parseInt(row []string, idx int, rowLabel, field string) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	return int(f), ""
}

// parseRow extracts a Section from a row using the given column mapping.
// Returns the section, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.Section, string, string) {
	sec := model.Section{ID: count + 1}

	if getCell(row, mapping.ID) != "" {
		id, errMsg := parseInt(row, mapping.ID, rowLabel, "id")
		if errMsg != "" {
			return model.Section{}, errMsg, ""
		}
		sec.ID = id
	}
	if sec.ID <= model.NoBlock {
		return model.Section{}, fmt.Sprintf("%s: Section id must be positive", rowLabel), ""
	}

	sec.Name = getCell(row, mapping.Name)
	if sec.Name == "" {
		sec.Name = fmt.Sprintf("Section %d", sec.ID)
	}

	fields := []struct {
		idx  int
		name string
		dst  *int
	}{
		{mapping.X, "x", &sec.X},
		{mapping.Y, "y", &sec.Y},
		{mapping.Width, "width", &sec.Width},
		{mapping.Height, "height", &sec.Height},
	}
	for _, f := range fields {
		v, errMsg := parseInt(row, f.idx, rowLabel, f.name)
		if errMsg != "" {
			return model.Section{}, errMsg, ""
		}
		*f.dst = v
	}

	if sec.X < 0 || sec.Y < 0 {
		return model.Section{}, fmt.Sprintf("%s: Position must not be negative", rowLabel), ""
	}
	if sec.Width <= 0 || sec.Height <= 0 {
		return model.Section{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
	}

	// Canonical size is optional and defaults to the whole section.
	if getCell(row, mapping.BlockWidth) == "" && getCell(row, mapping.BlockHeight) == "" {
		sec.BlockSize = model.Size{Width: sec.Width, Height: sec.Height}
		return sec, "", fmt.Sprintf("%s: No block size, defaulting to %dx%d", rowLabel, sec.Width, sec.Height)
	}

	bw, errMsg := parseInt(row, mapping.BlockWidth, rowLabel, "block width")
	if errMsg != "" {
		return model.Section{}, errMsg, ""
	}
	bh, errMsg := parseInt(row, mapping.BlockHeight, rowLabel, "block height")
	if errMsg != "" {
		return model.Section{}, errMsg, ""
	}
	if bw <= 0 || bh <= 0 {
		return model.Section{}, fmt.Sprintf("%s: Block size must be positive", rowLabel), ""
	}
	if bw > sec.Width || bh > sec.Height {
		return model.Section{}, fmt.Sprintf("%s: Block size %dx%d exceeds section %dx%d", rowLabel, bw, bh, sec.Width, sec.Height), ""
	}
	sec.BlockSize = model.Size{Width: bw, Height: bh}

	return sec, "", ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports sections from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports sections from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports sections from the first sheet of an Excel (.xlsx) file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into sections.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) > mapping.X {
		// Unrecognised header: x is not numeric. Skip it but keep positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][mapping.X]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[int]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		sec, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Sections))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if seen[sec.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate section id %d", rowLabel, sec.ID))
			continue
		}
		seen[sec.ID] = true
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Sections = append(result.Sections, sec)
	}

	return result
}

// ApplySections returns a copy of base with its section catalog replaced by
// sections. The result is validated; blocks are kept as they are.
func ApplySections(base model.Layout, sections []model.Section) (model.Layout, error) {
	l := base.Clone()
	l.Sections = append([]model.Section(nil), sections...)
	if err := l.Validate(); err != nil {
		return model.Layout{}, fmt.Errorf("imported sections: %w", err)
	}
	return l, nil
}
