package engine

import "github.com/piwi3910/patchwork/internal/model"

// Direction is the way a neighbor is moved or shrunk to clear a resized block.
type Direction int

const (
	PushRight Direction = iota
	PushLeft
	PushDown
	PushUp
)

func (d Direction) String() string {
	switch d {
	case PushRight:
		return "right"
	case PushLeft:
		return "left"
	case PushDown:
		return "down"
	case PushUp:
		return "up"
	default:
		return "unknown"
	}
}

// Adjustment describes what happened to one neighbor during resolution.
type Adjustment struct {
	BlockID   int
	Direction Direction
	Before    model.Rect
	After     model.Rect
}

// Resolution is the outcome of resolving a resize.
type Resolution struct {
	Blocks      []model.Block
	Adjustments []Adjustment
}

// ResolveConflicts applies rect to the block with the given ID and pushes or
// shrinks every block the new footprint overlaps. It returns a new slice;
// the input is not modified. An unknown ID returns a copy of the input.
func ResolveConflicts(grid model.Grid, blocks []model.Block, id int, rect model.Rect) []model.Block {
	return Resolve(grid, blocks, id, rect).Blocks
}

// Resolve is ResolveConflicts with a record of each neighbor adjustment.
//
// Each overlapped neighbor is handled once, against the resized block only:
// the direction needing the smallest push wins (ties go right, left, down,
// up) and the neighbor is never re-checked against other blocks, so a
// pushed neighbor may end up overlapping a third block.
func Resolve(grid model.Grid, blocks []model.Block, id int, rect model.Rect) Resolution {
	updated := model.CopyBlocks(blocks)
	idx := model.FindBlock(updated, id)
	if idx < 0 {
		return Resolution{Blocks: updated}
	}

	affected := overlapping(blocks, id, rect)
	updated[idx] = updated[idx].WithRect(rect)

	var adjustments []Adjustment
	for _, nb := range affected {
		dir := pushDirection(rect, nb.Rect())
		after := push(grid, rect, nb.Rect(), dir)

		i := model.FindBlock(updated, nb.ID)
		updated[i] = updated[i].WithRect(after)
		adjustments = append(adjustments, Adjustment{
			BlockID:   nb.ID,
			Direction: dir,
			Before:    nb.Rect(),
			After:     after,
		})
	}

	return Resolution{Blocks: updated, Adjustments: adjustments}
}

// pushDirection picks the direction with the smallest push distance.
func pushDirection(resized, nb model.Rect) Direction {
	distances := [4]int{
		PushRight: resized.Right() - nb.X,
		PushLeft:  nb.Right() - resized.X,
		PushDown:  resized.Bottom() - nb.Y,
		PushUp:    nb.Bottom() - resized.Y,
	}
	best := PushRight
	for d := PushLeft; d <= PushUp; d++ {
		if distances[d] < distances[best] {
			best = d
		}
	}
	return best
}

// push returns the neighbor's footprint after clearing resized in dir.
func push(grid model.Grid, resized, nb model.Rect, dir Direction) model.Rect {
	switch dir {
	case PushRight:
		newLeft := resized.Right()
		avail := nb.Right() - newLeft
		if avail >= 1 && newLeft+avail <= grid.Cols {
			nb.X, nb.Width = newLeft, avail
		} else {
			nb.Width = max(1, resized.X-nb.X)
		}
	case PushLeft:
		if w := resized.X - nb.X; w >= 1 {
			nb.Width = w
		}
	case PushDown:
		newTop := resized.Bottom()
		avail := nb.Bottom() - newTop
		if avail >= 1 && newTop+avail <= grid.Rows {
			nb.Y, nb.Height = newTop, avail
		} else {
			nb.Height = max(1, resized.Y-nb.Y)
		}
	case PushUp:
		if h := resized.Y - nb.Y; h >= 1 {
			nb.Height = h
		}
	}
	return nb
}
