package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/patchwork/internal/engine"
	"github.com/piwi3910/patchwork/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleDim.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func formatRect(r model.Rect) string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// printBlocks lists blocks with their footprint and containing section.
func printBlocks(w io.Writer, blocks []model.Block, reg *engine.Registry) {
	for _, b := range blocks {
		label := b.Label
		if label == "" {
			label = fmt.Sprintf("Block %d", b.ID)
		}
		key := fmt.Sprintf("%d %s", b.ID, label)
		printKeyValue(w, key, fmt.Sprintf("%s  section %d", formatRect(b.Rect()), reg.SectionAt(b.X, b.Y).ID))
	}
}

// printOverlaps reports overlapping pairs, or that there are none.
func printOverlaps(w io.Writer, pairs []engine.OverlapPair) {
	if len(pairs) == 0 {
		printSuccess(w, "no overlaps")
		return
	}
	var names []string
	for _, p := range pairs {
		names = append(names, fmt.Sprintf("%d/%d", p.A, p.B))
	}
	fmt.Fprintln(w, styleError.Render(iconWarning)+" overlapping: "+strings.Join(names, ", "))
}

// renderGrid draws the grid as text, two characters per cell. Block cells
// show the block ID on the block's palette color, preview cells are shaded,
// overlapping cells are marked with ##, and empty cells alternate by section
// so section boundaries stay visible.
func renderGrid(w io.Writer, layout model.Layout, blocks []model.Block, preview model.DragPreview) {
	r := lipgloss.NewRenderer(w)
	empty := [2]lipgloss.Style{
		r.NewStyle().Foreground(colorDim),
		r.NewStyle().Foreground(colorGray),
	}
	previewStyle := r.NewStyle().Foreground(colorBlue)
	overlapStyle := r.NewStyle().Bold(true).Foreground(colorRed)

	sectionIndex := make(map[int]int, len(layout.Sections))
	for i, s := range layout.Sections {
		sectionIndex[s.ID] = i
	}
	reg := engine.NewRegistry(layout.Sections)

	var sb strings.Builder
	for y := 0; y < layout.Grid.Rows; y++ {
		sb.WriteString(styleDim.Render(fmt.Sprintf("%3d ", y)))
		for x := 0; x < layout.Grid.Cols; x++ {
			var covering []model.Block
			for _, b := range blocks {
				if b.Rect().Contains(x, y) {
					covering = append(covering, b)
				}
			}

			switch {
			case len(covering) > 1:
				sb.WriteString(overlapStyle.Render("##"))
			case len(covering) == 1:
				b := covering[0]
				c := model.PaletteColor(b.Color)
				bg := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c[0], c[1], c[2]))
				sb.WriteString(r.NewStyle().Background(bg).Foreground(colorWhite).Render(fmt.Sprintf("%2d", b.ID%100)))
			case preview.Active() && preview.Rect().Contains(x, y):
				sb.WriteString(previewStyle.Render("░░"))
			default:
				idx := sectionIndex[reg.SectionAt(x, y).ID]
				sb.WriteString(empty[idx%2].Render(" ·"))
			}
		}
		sb.WriteString("\n")
	}
	fmt.Fprint(w, sb.String())
}
