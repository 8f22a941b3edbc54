package model

import (
	"math"

	"github.com/google/uuid"
)

// NoBlock is the block ID used when no block should be excluded from a check.
// Block IDs start at 1.
const NoBlock = 0

// Point is a grid cell coordinate.
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Size is a width/height pair in grid cells.
type Size struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// Rect is a rectangle in grid cells. X and Y are the top-left corner;
// Right and Bottom are exclusive.
type Rect struct {
	X      int `json:"x" toml:"x"`
	Y      int `json:"y" toml:"y"`
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// NewRect returns the rectangle at (x, y) with width w and height h.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Contains reports whether the cell (x, y) lies inside the rectangle.
// Left and top edges are inside; right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Overlaps reports whether two rectangles share at least one cell.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Block is a movable, resizable rectangle on the grid.
type Block struct {
	ID     int    `json:"id" toml:"id"`
	Label  string `json:"label,omitempty" toml:"label"`
	Color  int    `json:"color" toml:"color"` // palette index, display only
	X      int    `json:"x" toml:"x"`
	Y      int    `json:"y" toml:"y"`
	Width  int    `json:"width" toml:"width"`
	Height int    `json:"height" toml:"height"`
}

// Rect returns the block's footprint.
func (b Block) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// WithRect returns a copy of the block with its footprint replaced.
func (b Block) WithRect(r Rect) Block {
	b.X, b.Y, b.Width, b.Height = r.X, r.Y, r.Width, r.Height
	return b
}

// Section is a static rectangular zone. Blocks dropped inside it morph to
// BlockSize.
type Section struct {
	ID        int    `json:"id" toml:"id"`
	Name      string `json:"name,omitempty" toml:"name"`
	X         int    `json:"x" toml:"x"`
	Y         int    `json:"y" toml:"y"`
	Width     int    `json:"width" toml:"width"`
	Height    int    `json:"height" toml:"height"`
	BlockSize Size   `json:"block_size" toml:"block_size"`
}

// Rect returns the section's bounds.
func (s Section) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Grid holds the fixed grid dimensions in cells.
type Grid struct {
	Cols int `json:"cols" toml:"cols"`
	Rows int `json:"rows" toml:"rows"`
}

// InBounds reports whether the rectangle lies fully inside the grid.
func (g Grid) InBounds(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= g.Cols && r.Bottom() <= g.Rows
}

// CellAt converts a pixel offset relative to the grid origin into a cell,
// clamped to the grid.
func (g Grid) CellAt(px, py float64, cellSize int) Point {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	x := int(math.Floor(px / float64(cellSize)))
	y := int(math.Floor(py / float64(cellSize)))
	return Point{X: clamp(x, 0, g.Cols-1), Y: clamp(y, 0, g.Rows-1)}
}

// CellDelta converts a pixel distance into a whole number of cells, rounding
// half away from zero.
func CellDelta(pixels float64, cellSize int) int {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return int(math.Round(pixels / float64(cellSize)))
}

// DragPreview shows where, and at what size, a dragged block would land if
// dropped now. The zero value means no preview.
type DragPreview struct {
	Section     *Section `json:"section,omitempty"`
	MorphedSize *Size    `json:"morphed_size,omitempty"`
	Position    *Point   `json:"position,omitempty"`
}

// Active reports whether the preview holds a position.
func (p DragPreview) Active() bool {
	return p.Section != nil && p.MorphedSize != nil && p.Position != nil
}

// Rect returns the previewed footprint. Only meaningful when Active.
func (p DragPreview) Rect() Rect {
	if !p.Active() {
		return Rect{}
	}
	return Rect{X: p.Position.X, Y: p.Position.Y, Width: p.MorphedSize.Width, Height: p.MorphedSize.Height}
}

// Layout is the static configuration a board is built from.
type Layout struct {
	ID       string    `json:"id" toml:"id"`
	Name     string    `json:"name" toml:"name"`
	Grid     Grid      `json:"grid" toml:"grid"`
	CellSize int       `json:"cell_size" toml:"cell_size"` // pixels, collaborators only
	Sections []Section `json:"sections" toml:"sections"`
	Blocks   []Block   `json:"blocks" toml:"blocks"`
}

// NewLayoutID returns a short random identifier for a layout.
func NewLayoutID() string {
	return uuid.New().String()[:8]
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	cp := l
	cp.Sections = append([]Section(nil), l.Sections...)
	cp.Blocks = CopyBlocks(l.Blocks)
	return cp
}

// CopyBlocks returns a copy of a block slice.
func CopyBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	cp := make([]Block, len(blocks))
	copy(cp, blocks)
	return cp
}

// FindBlock returns the index of the block with the given ID, or -1.
func FindBlock(blocks []Block, id int) int {
	for i, b := range blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
