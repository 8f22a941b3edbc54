package model

// Default grid configuration.
const (
	DefaultCols     = 6
	DefaultRows     = 60
	DefaultCellSize = 40 // pixels per cell
)

// Palette holds the block fill colors as RGB triples. Block.Color indexes it.
var Palette = [][3]uint8{
	{147, 51, 234}, // purple
	{37, 99, 235},  // blue
	{22, 163, 74},  // green
	{234, 88, 12},  // orange
	{219, 39, 119}, // pink
	{8, 145, 178},  // cyan
}

// PaletteColor returns the RGB color for a palette index, wrapping around.
func PaletteColor(idx int) [3]uint8 {
	if idx < 0 {
		idx = -idx
	}
	return Palette[idx%len(Palette)]
}

func section(id, x, y, w, h, bw, bh int) Section {
	return Section{ID: id, X: x, Y: y, Width: w, Height: h, BlockSize: Size{Width: bw, Height: bh}}
}

// DefaultSections returns the built-in section catalog. Sections 1-26 are
// scattered over the 6x60 grid with deliberately uneven canonical sizes.
func DefaultSections() []Section {
	return []Section{
		// top
		section(1, 0, 0, 3, 8, 3, 4),
		section(2, 3, 0, 3, 6, 3, 3),
		section(3, 3, 6, 2, 4, 2, 2),
		section(4, 5, 6, 1, 6, 1, 3),

		section(5, 0, 8, 2, 9, 2, 3),
		section(6, 2, 8, 4, 4, 4, 2),
		section(7, 2, 12, 3, 5, 3, 5),
		section(8, 5, 12, 1, 8, 1, 4),

		// middle
		section(9, 0, 17, 6, 3, 6, 3),
		section(10, 0, 20, 2, 6, 2, 6),
		section(11, 2, 20, 1, 4, 1, 1),
		section(12, 3, 20, 3, 8, 3, 2),

		section(13, 2, 24, 1, 4, 1, 2),
		section(14, 0, 26, 2, 6, 2, 3),

		section(15, 0, 32, 4, 6, 4, 3),
		section(16, 4, 28, 2, 10, 2, 5),

		section(17, 0, 38, 1, 8, 1, 4),
		section(18, 1, 38, 2, 12, 2, 4),
		section(19, 3, 38, 3, 6, 3, 3),

		section(20, 3, 44, 3, 4, 3, 2),
		section(21, 0, 46, 3, 6, 3, 6),

		// bottom
		section(22, 3, 48, 2, 8, 2, 4),
		section(23, 5, 48, 1, 4, 1, 2),
		section(24, 0, 52, 6, 2, 2, 2),
		section(25, 5, 52, 1, 8, 1, 1),
		section(26, 0, 54, 5, 6, 5, 3),
	}
}

// DefaultBlocks returns the starter block set.
func DefaultBlocks() []Block {
	return []Block{
		{ID: 1, Label: "Purple", Color: 0, X: 0, Y: 0, Width: 3, Height: 4},
		{ID: 2, Label: "Blue", Color: 1, X: 3, Y: 0, Width: 3, Height: 3},
		{ID: 3, Label: "Green", Color: 2, X: 0, Y: 4, Width: 3, Height: 4},
		{ID: 4, Label: "Orange", Color: 3, X: 3, Y: 3, Width: 3, Height: 3},
		{ID: 5, Label: "Pink", Color: 4, X: 0, Y: 8, Width: 2, Height: 3},
		{ID: 6, Label: "Cyan", Color: 5, X: 2, Y: 8, Width: 4, Height: 2},
	}
}

// DefaultLayout returns the built-in 6x60 layout with its section catalog
// and starter blocks.
func DefaultLayout() Layout {
	return Layout{
		ID:       NewLayoutID(),
		Name:     "Patchwork",
		Grid:     Grid{Cols: DefaultCols, Rows: DefaultRows},
		CellSize: DefaultCellSize,
		Sections: DefaultSections(),
		Blocks:   DefaultBlocks(),
	}
}
