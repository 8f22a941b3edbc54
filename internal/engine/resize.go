package engine

import "github.com/piwi3910/patchwork/internal/model"

// ResizeFootprint computes the footprint a block takes when its edge handle
// is dragged by (dx, dy) cells. Left and top handles anchor the opposite
// edge; corners combine the two adjacent edges per axis. Sizes never drop
// below 1 and the result is clamped to the grid. An invalid edge returns the
// block's current footprint.
func ResizeFootprint(grid model.Grid, b model.Block, edge model.Edge, dx, dy int) model.Rect {
	r := b.Rect()
	if !edge.Valid() {
		return r
	}

	switch edge.Horizontal() {
	case 1:
		r.Width = max(1, b.Width+dx)
	case -1:
		r.Width = max(1, b.Width-dx)
		r.X = b.X + (b.Width - r.Width)
	}

	switch edge.Vertical() {
	case 1:
		r.Height = max(1, b.Height+dy)
	case -1:
		r.Height = max(1, b.Height-dy)
		r.Y = b.Y + (b.Height - r.Height)
	}

	return clampToGrid(grid, r)
}

// clampToGrid shifts the rectangle back inside the grid, then trims whatever
// still sticks out past the far edges.
func clampToGrid(grid model.Grid, r model.Rect) model.Rect {
	r.X = max(0, min(r.X, grid.Cols-r.Width))
	r.Y = max(0, min(r.Y, grid.Rows-r.Height))
	r.Width = min(r.Width, grid.Cols-r.X)
	r.Height = min(r.Height, grid.Rows-r.Y)
	return r
}
