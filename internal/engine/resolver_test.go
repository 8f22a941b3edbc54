package engine

import (
	"testing"

	"github.com/piwi3910/patchwork/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixWide = model.Grid{Cols: 6, Rows: 60}

func TestResizeFootprint_Edges(t *testing.T) {
	b := blk(1, 2, 2, 2, 2)

	tests := []struct {
		name   string
		edge   model.Edge
		dx, dy int
		want   model.Rect
	}{
		{"right grows", model.EdgeRight, 1, 0, model.NewRect(2, 2, 3, 2)},
		{"right ignores dy", model.EdgeRight, 1, 5, model.NewRect(2, 2, 3, 2)},
		{"left anchors right edge", model.EdgeLeft, -1, 0, model.NewRect(1, 2, 3, 2)},
		{"left shrinks", model.EdgeLeft, 1, 0, model.NewRect(3, 2, 1, 2)},
		{"bottom grows", model.EdgeBottom, 0, 2, model.NewRect(2, 2, 2, 4)},
		{"top anchors bottom edge", model.EdgeTop, 0, -2, model.NewRect(2, 0, 2, 4)},
		{"top-left", model.EdgeTopLeft, -1, -1, model.NewRect(1, 1, 3, 3)},
		{"top-right", model.EdgeTopRight, 1, -1, model.NewRect(2, 1, 3, 3)},
		{"bottom-left", model.EdgeBottomLeft, -1, 1, model.NewRect(1, 2, 3, 3)},
		{"bottom-right", model.EdgeBottomRight, 2, 1, model.NewRect(2, 2, 4, 3)},
		{"width floors at one", model.EdgeRight, -10, 0, model.NewRect(2, 2, 1, 2)},
		{"left past right edge keeps one cell", model.EdgeLeft, 5, 0, model.NewRect(3, 2, 1, 2)},
		{"height floors at one", model.EdgeTop, 0, 9, model.NewRect(2, 3, 2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeFootprint(sixWide, b, tt.edge, tt.dx, tt.dy)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResizeFootprint_HeightFloorAnchorsBottom(t *testing.T) {
	got := ResizeFootprint(sixWide, blk(1, 2, 2, 2, 2), model.EdgeTop, 0, 9)
	assert.Equal(t, 1, got.Height)
	assert.Equal(t, 4, got.Bottom())
}

func TestResizeFootprint_ClampsToGrid(t *testing.T) {
	// Growing past the right edge shifts the block left before trimming.
	got := ResizeFootprint(sixWide, blk(1, 4, 0, 2, 2), model.EdgeRight, 3, 0)
	assert.Equal(t, model.NewRect(1, 0, 5, 2), got)

	// Growing wider than the grid pins to x=0 and trims to the grid width.
	got = ResizeFootprint(sixWide, blk(1, 1, 0, 2, 2), model.EdgeLeft, -5, 0)
	assert.Equal(t, model.NewRect(0, 0, 6, 2), got)

	got = ResizeFootprint(sixWide, blk(1, 0, 58, 2, 2), model.EdgeBottom, 0, 4)
	assert.True(t, sixWide.InBounds(got))
	assert.Equal(t, 60, got.Bottom())
}

func TestResizeFootprint_InvalidEdge(t *testing.T) {
	b := blk(1, 2, 2, 2, 2)
	assert.Equal(t, b.Rect(), ResizeFootprint(sixWide, b, model.Edge(99), 3, 3))
}

func TestResolveConflicts_PushRightMovesNeighbor(t *testing.T) {
	blocks := []model.Block{blk(1, 0, 0, 2, 2), blk(2, 2, 0, 4, 2)}
	rect := ResizeFootprint(sixWide, blocks[0], model.EdgeRight, 2, 0)
	require.Equal(t, model.NewRect(0, 0, 4, 2), rect)

	got := ResolveConflicts(sixWide, blocks, 1, rect)

	require.Len(t, got, 2)
	assert.Equal(t, model.NewRect(0, 0, 4, 2), got[0].Rect())
	assert.Equal(t, model.NewRect(4, 0, 2, 2), got[1].Rect())
	assert.Empty(t, Overlaps(got))
}

func TestResolveConflicts_PushRightShrinkFallback(t *testing.T) {
	blocks := []model.Block{blk(1, 0, 0, 2, 2), blk(2, 2, 0, 2, 2)}
	rect := model.NewRect(0, 0, 4, 2)

	res := Resolve(sixWide, blocks, 1, rect)

	assert.Equal(t, model.NewRect(2, 0, 1, 2), res.Blocks[1].Rect())
	require.Len(t, res.Adjustments, 1)
	assert.Equal(t, PushRight, res.Adjustments[0].Direction)
	assert.Equal(t, model.NewRect(2, 0, 2, 2), res.Adjustments[0].Before)

	// Greedy resolution accepts the leftover overlap.
	assert.Equal(t, []OverlapPair{{A: 1, B: 2}}, Overlaps(res.Blocks))
}

func TestResolveConflicts_PushLeft(t *testing.T) {
	blocks := []model.Block{blk(1, 0, 0, 3, 2), blk(2, 3, 0, 2, 2)}
	rect := ResizeFootprint(sixWide, blocks[1], model.EdgeLeft, -1, 0)
	require.Equal(t, model.NewRect(2, 0, 3, 2), rect)

	res := Resolve(sixWide, blocks, 2, rect)

	require.Len(t, res.Adjustments, 1)
	assert.Equal(t, PushLeft, res.Adjustments[0].Direction)
	assert.Equal(t, model.NewRect(0, 0, 2, 2), res.Blocks[0].Rect())
	assert.Empty(t, Overlaps(res.Blocks))
}

func TestResolveConflicts_PushDown(t *testing.T) {
	blocks := []model.Block{blk(1, 0, 0, 2, 2), blk(2, 0, 2, 2, 3)}
	rect := ResizeFootprint(sixWide, blocks[0], model.EdgeBottom, 0, 1)

	res := Resolve(sixWide, blocks, 1, rect)

	require.Len(t, res.Adjustments, 1)
	assert.Equal(t, PushDown, res.Adjustments[0].Direction)
	assert.Equal(t, model.NewRect(0, 3, 2, 2), res.Blocks[1].Rect())
}

func TestResolveConflicts_PushUp(t *testing.T) {
	blocks := []model.Block{blk(1, 0, 0, 2, 3), blk(2, 0, 3, 2, 2)}
	rect := ResizeFootprint(sixWide, blocks[1], model.EdgeTop, 0, -1)
	require.Equal(t, model.NewRect(0, 2, 2, 3), rect)

	res := Resolve(sixWide, blocks, 2, rect)

	require.Len(t, res.Adjustments, 1)
	assert.Equal(t, PushUp, res.Adjustments[0].Direction)
	assert.Equal(t, model.NewRect(0, 0, 2, 2), res.Blocks[0].Rect())
}

func TestResolveConflicts_PushLeftKeepsWidthWhenNoRoom(t *testing.T) {
	// The neighbor starts at the resized block's left edge, so shrinking
	// would leave no width; it is left in place.
	resized := model.NewRect(2, 0, 2, 2)
	nb := model.NewRect(2, 0, 1, 2)
	assert.Equal(t, nb, push(sixWide, resized, nb, PushLeft))
}

func TestPushDirection_TieOrder(t *testing.T) {
	// Right, down and up all need 2; right wins.
	assert.Equal(t, PushRight, pushDirection(model.NewRect(0, 0, 4, 2), model.NewRect(2, 0, 4, 2)))

	// Left and down both need 1; left wins over down.
	assert.Equal(t, PushLeft, pushDirection(model.NewRect(2, 2, 3, 3), model.NewRect(0, 4, 3, 3)))

	// Down and up both need 1 and are strictly smaller than right and left.
	assert.Equal(t, PushDown, pushDirection(model.NewRect(0, 1, 6, 1), model.NewRect(0, 1, 6, 1)))
}

func TestResolveConflicts_NonCascading(t *testing.T) {
	// Blocks 2 and 3 already overlap; pushing 2 must not touch 3.
	blocks := []model.Block{
		blk(1, 0, 0, 2, 2),
		blk(2, 2, 0, 3, 2),
		blk(3, 4, 0, 2, 2),
	}
	rect := model.NewRect(0, 0, 3, 2)

	res := Resolve(sixWide, blocks, 1, rect)

	require.Len(t, res.Adjustments, 1)
	assert.Equal(t, 2, res.Adjustments[0].BlockID)
	assert.Equal(t, model.NewRect(3, 0, 2, 2), res.Blocks[1].Rect())
	assert.Equal(t, blocks[2], res.Blocks[2])
	assert.Equal(t, []OverlapPair{{A: 2, B: 3}}, Overlaps(res.Blocks))
}

func TestResolveConflicts_AffectedFromPreResizeState(t *testing.T) {
	// The resized block's old footprint is not considered a conflict.
	blocks := []model.Block{blk(1, 0, 0, 2, 2), blk(2, 4, 4, 1, 1)}
	got := ResolveConflicts(sixWide, blocks, 1, model.NewRect(0, 0, 3, 3))

	assert.Equal(t, model.NewRect(0, 0, 3, 3), got[0].Rect())
	assert.Equal(t, blocks[1], got[1])
}

func TestResolveConflicts_UnknownID(t *testing.T) {
	blocks := []model.Block{blk(1, 0, 0, 2, 2), blk(2, 2, 0, 2, 2)}
	got := ResolveConflicts(sixWide, blocks, 42, model.NewRect(0, 0, 6, 6))

	assert.Equal(t, blocks, got)
	got[0].X = 5
	assert.Equal(t, 0, blocks[0].X, "result must be a copy")
}

func TestResolveConflicts_DoesNotMutateInput(t *testing.T) {
	blocks := []model.Block{blk(1, 0, 0, 2, 2), blk(2, 2, 0, 4, 2)}
	before := model.CopyBlocks(blocks)

	_ = ResolveConflicts(sixWide, blocks, 1, model.NewRect(0, 0, 4, 2))

	assert.Equal(t, before, blocks)
}

func TestResolveConflicts_StaysInBounds(t *testing.T) {
	blocks := model.DefaultBlocks()
	for _, b := range blocks {
		for _, edge := range model.Edges {
			for _, d := range []int{-4, -1, 1, 4} {
				rect := ResizeFootprint(sixWide, b, edge, d, d)
				got := ResolveConflicts(sixWide, blocks, b.ID, rect)
				for _, nb := range got {
					assert.True(t, sixWide.InBounds(nb.Rect()), "block %d after resizing %d %s by %d", nb.ID, b.ID, edge, d)
					assert.GreaterOrEqual(t, nb.Width, 1)
					assert.GreaterOrEqual(t, nb.Height, 1)
				}
			}
		}
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "right", PushRight.String())
	assert.Equal(t, "up", PushUp.String())
	assert.Equal(t, "unknown", Direction(9).String())
	assert.Equal(t, "other-section", TierOtherSection.String())
}
