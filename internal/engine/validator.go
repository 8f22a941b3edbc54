package engine

import "github.com/piwi3910/patchwork/internal/model"

// IsValidPlacement reports whether rect lies inside the grid and overlaps no
// block other than the one identified by excludeID. Pass model.NoBlock to
// check against every block.
func IsValidPlacement(grid model.Grid, blocks []model.Block, rect model.Rect, excludeID int) bool {
	if !grid.InBounds(rect) {
		return false
	}
	for _, b := range blocks {
		if b.ID == excludeID {
			continue
		}
		if rect.Overlaps(b.Rect()) {
			return false
		}
	}
	return true
}

// OverlapPair names two blocks whose footprints share cells.
type OverlapPair struct {
	A, B int
}

// Overlaps lists every overlapping pair of blocks, ordered by collection
// index. A settled layout returns nil; greedy resolution or the search
// fallback can leave pairs behind.
func Overlaps(blocks []model.Block) []OverlapPair {
	var pairs []OverlapPair
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Rect().Overlaps(blocks[j].Rect()) {
				pairs = append(pairs, OverlapPair{A: blocks[i].ID, B: blocks[j].ID})
			}
		}
	}
	return pairs
}

// overlapping returns the blocks, other than id, that overlap rect.
func overlapping(blocks []model.Block, id int, rect model.Rect) []model.Block {
	var hits []model.Block
	for _, b := range blocks {
		if b.ID == id {
			continue
		}
		if rect.Overlaps(b.Rect()) {
			hits = append(hits, b)
		}
	}
	return hits
}
