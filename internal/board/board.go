// Package board owns the committed block collection and exposes the movement
// and resize controllers that collaborators drive with grid coordinates.
//
// A Board serialises every mutation behind one mutex and replaces its
// collection wholesale on each commit, so Blocks always returns a complete,
// consistent snapshot. Subscribers are notified after the lock is released.
package board

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/patchwork/internal/engine"
	"github.com/piwi3910/patchwork/internal/model"
)

// Listener is called with a copy of the collection after every commit.
type Listener func(blocks []model.Block)

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithHistoryDepth caps the number of undo steps kept.
func WithHistoryDepth(n int) Option {
	return func(b *Board) {
		b.history = NewHistory(n)
	}
}

// Board is the single owner of the committed blocks and the drag preview.
type Board struct {
	mu sync.Mutex

	layout  model.Layout // static: grid, sections, starter blocks
	placer  *engine.Placer
	blocks  []model.Block
	preview model.DragPreview
	history *History

	listeners map[int]Listener
	nextSub   int

	logger *log.Logger
}

// New builds a board from a layout. The layout is copied and never changes
// afterwards; its Blocks become the initial collection.
func New(layout model.Layout, opts ...Option) *Board {
	layout = layout.Clone()
	b := &Board{
		layout:    layout,
		placer:    engine.New(layout.Grid, engine.NewRegistry(layout.Sections)),
		blocks:    model.CopyBlocks(layout.Blocks),
		history:   NewHistory(0),
		listeners: make(map[int]Listener),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Grid returns the grid dimensions.
func (b *Board) Grid() model.Grid {
	return b.layout.Grid
}

// Sections returns a copy of the section catalog.
func (b *Board) Sections() []model.Section {
	return b.placer.Registry.Sections()
}

// SectionAt returns the section containing (x, y), falling back to the
// first registered section.
func (b *Board) SectionAt(x, y int) model.Section {
	return b.placer.Registry.SectionAt(x, y)
}

// Blocks returns a copy of the committed collection.
func (b *Board) Blocks() []model.Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.CopyBlocks(b.blocks)
}

// Block returns the committed block with the given ID.
func (b *Board) Block(id int) (model.Block, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := model.FindBlock(b.blocks, id)
	if i < 0 {
		return model.Block{}, false
	}
	return b.blocks[i], true
}

// Preview returns the current drag preview. The zero value means none.
func (b *Board) Preview() model.DragPreview {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.preview
}

// Layout returns the static layout with the committed blocks in place of the
// starter set.
func (b *Board) Layout() model.Layout {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layout.Clone()
	l.Blocks = model.CopyBlocks(b.blocks)
	return l
}

// Overlaps lists overlapping block pairs in the committed collection.
func (b *Board) Overlaps() []engine.OverlapPair {
	b.mu.Lock()
	defer b.mu.Unlock()
	return engine.Overlaps(b.blocks)
}

// Subscribe registers fn to be called after each commit, undo or redo. The
// returned function removes it.
func (b *Board) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.listeners[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// DragHover computes where block id would land if dropped on cell (x, y) and
// stores that as the preview. It never changes the committed blocks and is
// idempotent. For an unknown id the existing preview is returned unchanged.
func (b *Board) DragHover(id, x, y int) model.DragPreview {
	b.mu.Lock()
	defer b.mu.Unlock()

	if model.FindBlock(b.blocks, id) < 0 {
		return b.preview
	}

	res := b.search(id, x, y)
	sec := res.Section
	size := sec.BlockSize
	pos := res.Position
	b.preview = model.DragPreview{Section: &sec, MorphedSize: &size, Position: &pos}

	b.logger.Debug("hover", "block", id, "cell", fmt.Sprintf("%d,%d", x, y),
		"section", sec.ID, "pos", fmt.Sprintf("%d,%d", pos.X, pos.Y), "tier", res.Tier)
	return b.preview
}

// Drop commits block id at the position the search yields for cell (x, y),
// morphed to the target section's canonical size, and clears the preview.
// Neighbors are not pushed. It returns false for an unknown id.
func (b *Board) Drop(id, x, y int) bool {
	b.mu.Lock()

	idx := model.FindBlock(b.blocks, id)
	if idx < 0 {
		b.mu.Unlock()
		b.logger.Debug("drop ignored", "block", id, "reason", "unknown block")
		return false
	}

	res := b.search(id, x, y)
	size := res.Section.BlockSize
	rect := model.NewRect(res.Position.X, res.Position.Y, size.Width, size.Height)

	next := model.CopyBlocks(b.blocks)
	next[idx] = next[idx].WithRect(rect)
	b.preview = model.DragPreview{}
	changed := b.commit(next, fmt.Sprintf("drop %d", id))
	listeners := b.snapshotListeners()
	blocks := model.CopyBlocks(b.blocks)
	b.mu.Unlock()

	if res.Tier == engine.TierFallback {
		b.logger.Warn("no free position, block overlaps", "block", id, "section", res.Section.ID,
			"pos", fmt.Sprintf("%d,%d", rect.X, rect.Y))
	}
	b.logger.Info("drop", "block", id, "section", res.Section.ID,
		"rect", formatRect(rect), "tier", res.Tier)
	if changed {
		notify(listeners, blocks)
	}
	return true
}

// CancelDrag clears the preview without touching the committed blocks.
func (b *Board) CancelDrag() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.preview = model.DragPreview{}
}

// Resize drags block id's edge handle by (dx, dy) cells and pushes or
// shrinks any neighbors the new footprint overlaps. It returns false for an
// unknown id or edge.
func (b *Board) Resize(id int, edge model.Edge, dx, dy int) bool {
	if !edge.Valid() {
		b.logger.Debug("resize ignored", "block", id, "reason", "unknown edge", "edge", edge)
		return false
	}

	b.mu.Lock()
	idx := model.FindBlock(b.blocks, id)
	if idx < 0 {
		b.mu.Unlock()
		b.logger.Debug("resize ignored", "block", id, "reason", "unknown block")
		return false
	}

	grid := b.layout.Grid
	rect := engine.ResizeFootprint(grid, b.blocks[idx], edge, dx, dy)
	res := engine.Resolve(grid, b.blocks, id, rect)
	changed := b.commit(res.Blocks, fmt.Sprintf("resize %d %s", id, edge))
	overlaps := engine.Overlaps(b.blocks)
	listeners := b.snapshotListeners()
	blocks := model.CopyBlocks(b.blocks)
	b.mu.Unlock()

	b.logger.Info("resize", "block", id, "edge", edge, "rect", formatRect(rect), "pushed", len(res.Adjustments))
	for _, adj := range res.Adjustments {
		b.logger.Debug("neighbor adjusted", "block", adj.BlockID, "dir", adj.Direction,
			"from", formatRect(adj.Before), "to", formatRect(adj.After))
	}
	if len(overlaps) > 0 {
		b.logger.Warn("resize left overlapping blocks", "pairs", len(overlaps))
	}
	if changed {
		notify(listeners, blocks)
	}
	return true
}

// Undo restores the collection from before the last commit.
func (b *Board) Undo() bool {
	return b.step(func(cur Snapshot) (Snapshot, bool) { return b.history.Undo(cur) }, "undo")
}

// Redo re-applies the last undone commit.
func (b *Board) Redo() bool {
	return b.step(func(cur Snapshot) (Snapshot, bool) { return b.history.Redo(cur) }, "redo")
}

func (b *Board) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.CanUndo()
}

func (b *Board) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.CanRedo()
}

// Reset restores the layout's starter blocks and clears history.
func (b *Board) Reset() {
	b.mu.Lock()
	b.blocks = model.CopyBlocks(b.layout.Blocks)
	b.preview = model.DragPreview{}
	b.history.Clear()
	listeners := b.snapshotListeners()
	blocks := model.CopyBlocks(b.blocks)
	b.mu.Unlock()

	b.logger.Info("reset", "blocks", len(blocks))
	notify(listeners, blocks)
}

func (b *Board) step(pop func(Snapshot) (Snapshot, bool), what string) bool {
	b.mu.Lock()
	snap, ok := pop(MakeSnapshot(b.blocks, what))
	if !ok {
		b.mu.Unlock()
		return false
	}
	b.blocks = snap.Blocks
	b.preview = model.DragPreview{}
	listeners := b.snapshotListeners()
	blocks := model.CopyBlocks(b.blocks)
	b.mu.Unlock()

	b.logger.Info(what, "label", snap.Label)
	notify(listeners, blocks)
	return true
}

// search runs the position search for block id over cell (x, y) using the
// canonical size of the section under the cell. Callers hold mu.
func (b *Board) search(id, x, y int) engine.SearchResult {
	target := model.Point{X: x, Y: y}
	size := b.placer.Registry.SectionAt(x, y).BlockSize
	return b.placer.Search(b.blocks, target, size, id)
}

// commit swaps in next and records the previous collection for undo. It
// reports whether anything changed. Callers hold mu.
func (b *Board) commit(next []model.Block, label string) bool {
	if slices.Equal(next, b.blocks) {
		return false
	}
	b.history.Push(MakeSnapshot(b.blocks, label))
	b.blocks = next
	return true
}

func (b *Board) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(b.listeners))
	for id := 0; id < b.nextSub; id++ {
		if fn, ok := b.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []Listener, blocks []model.Block) {
	for _, fn := range listeners {
		fn(model.CopyBlocks(blocks))
	}
}

func formatRect(r model.Rect) string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}
