package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/patchwork/internal/board"
	"github.com/piwi3910/patchwork/internal/model"
)

func newTestCanvas(t *testing.T) (*GridCanvas, *board.Board) {
	t.Helper()
	test.NewTempApp(t)
	b := board.New(model.DefaultLayout())
	return NewGridCanvas(b, 40), b
}

// drag replays a pointer gesture from start to end as a single move event.
func drag(gc *GridCanvas, start, end fyne.Position) {
	gc.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: end},
		Dragged:    fyne.NewDelta(end.X-start.X, end.Y-start.Y),
	})
}

func TestHitBlock(t *testing.T) {
	blocks := model.DefaultBlocks()

	b, ok := hitBlock(blocks, fyne.NewPos(180, 60), 40)
	require.True(t, ok)
	assert.Equal(t, 2, b.ID)

	_, ok = hitBlock(blocks, fyne.NewPos(200, 260), 40)
	assert.False(t, ok, "cell (5,6) is empty")

	overlapping := []model.Block{
		{ID: 1, X: 0, Y: 0, Width: 2, Height: 2},
		{ID: 2, X: 1, Y: 1, Width: 2, Height: 2},
	}
	b, ok = hitBlock(overlapping, fyne.NewPos(60, 60), 40)
	require.True(t, ok)
	assert.Equal(t, 2, b.ID, "later blocks are on top")
}

func TestHitEdge(t *testing.T) {
	r := model.NewRect(1, 1, 2, 2) // pixels 40..120 at 40px cells

	tests := []struct {
		name string
		pos  fyne.Position
		want model.Edge
		ok   bool
	}{
		{"center", fyne.NewPos(80, 80), 0, false},
		{"top", fyne.NewPos(80, 42), model.EdgeTop, true},
		{"bottom", fyne.NewPos(80, 118), model.EdgeBottom, true},
		{"left", fyne.NewPos(42, 80), model.EdgeLeft, true},
		{"right", fyne.NewPos(118, 80), model.EdgeRight, true},
		{"top-left", fyne.NewPos(42, 42), model.EdgeTopLeft, true},
		{"top-right", fyne.NewPos(118, 42), model.EdgeTopRight, true},
		{"bottom-left", fyne.NewPos(42, 118), model.EdgeBottomLeft, true},
		{"bottom-right", fyne.NewPos(118, 118), model.EdgeBottomRight, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := hitEdge(r, tt.pos, 40, 8)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGridCanvas_DragMovesBlock(t *testing.T) {
	gc, b := newTestCanvas(t)
	changed := 0
	gc.OnChanged = func() { changed++ }

	drag(gc, fyne.NewPos(180, 60), fyne.NewPos(140, 1620))

	preview := b.Preview()
	require.True(t, preview.Active())
	assert.Equal(t, model.Point{X: 3, Y: 40}, *preview.Position)

	gc.DragEnd()

	blk, _ := b.Block(2)
	assert.Equal(t, model.NewRect(3, 40, 3, 3), blk.Rect())
	assert.False(t, b.Preview().Active())
	assert.Equal(t, 1, changed)
}

func TestGridCanvas_DragResizesBlock(t *testing.T) {
	gc, b := newTestCanvas(t)

	drag(gc, fyne.NewPos(180, 118), fyne.NewPos(180, 198))
	assert.Equal(t, model.NewRect(3, 0, 3, 5), gc.pending)

	gc.DragEnd()

	blk, _ := b.Block(2)
	assert.Equal(t, model.NewRect(3, 0, 3, 5), blk.Rect())
	pushed, _ := b.Block(4)
	assert.Equal(t, model.NewRect(3, 5, 3, 1), pushed.Rect())
}

func TestGridCanvas_SmallResizeIsIgnored(t *testing.T) {
	gc, b := newTestCanvas(t)

	drag(gc, fyne.NewPos(180, 118), fyne.NewPos(180, 130))
	gc.DragEnd()

	assert.False(t, b.CanUndo(), "a drag under half a cell commits nothing")
}

func TestGridCanvas_DragOnEmptyCell(t *testing.T) {
	gc, b := newTestCanvas(t)
	before := b.Blocks()

	drag(gc, fyne.NewPos(200, 260), fyne.NewPos(20, 20))
	gc.DragEnd()

	assert.Equal(t, before, b.Blocks())
	assert.False(t, b.Preview().Active())
}

func TestGridCanvas_EscapeCancelsDrag(t *testing.T) {
	gc, b := newTestCanvas(t)
	before := b.Blocks()

	drag(gc, fyne.NewPos(180, 60), fyne.NewPos(140, 1620))
	gc.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.False(t, b.Preview().Active())

	gc.DragEnd()
	assert.Equal(t, before, b.Blocks())
}

func TestGridCanvas_MinSize(t *testing.T) {
	gc, _ := newTestCanvas(t)
	assert.Equal(t, fyne.NewSize(240, 2400), gc.MinSize())
}

func TestLayoutMap_FitsBox(t *testing.T) {
	test.NewTempApp(t)
	lm := NewLayoutMap(board.New(model.DefaultLayout()), 120, 600)
	assert.Equal(t, fyne.NewSize(60, 600), lm.MinSize())
}
