package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGrid        = errors.New("invalid grid dimensions")
	ErrNoSections         = errors.New("layout has no sections")
	ErrSectionOutOfBounds = errors.New("section out of grid bounds")
	ErrInvalidBlockSize   = errors.New("invalid block size")
	ErrDuplicateID        = errors.New("duplicate id")
	ErrBlockOutOfBounds   = errors.New("block out of grid bounds")
)

// Validate checks the layout's static invariants: a non-empty grid, at least
// one in-bounds section whose canonical size is positive and fits inside it,
// and in-bounds blocks
// with unique positive IDs. Overlapping starter blocks are allowed.
func (l Layout) Validate() error {
	if l.Grid.Cols < 1 || l.Grid.Rows < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, l.Grid.Cols, l.Grid.Rows)
	}
	if len(l.Sections) == 0 {
		return ErrNoSections
	}

	seenSections := make(map[int]bool, len(l.Sections))
	for i, s := range l.Sections {
		if seenSections[s.ID] {
			return fmt.Errorf("sections[%d]: %w: section %d", i, ErrDuplicateID, s.ID)
		}
		seenSections[s.ID] = true
		if s.Width < 1 || s.Height < 1 || !l.Grid.InBounds(s.Rect()) {
			return fmt.Errorf("sections[%d]: %w: %+v", i, ErrSectionOutOfBounds, s.Rect())
		}
		if s.BlockSize.Width < 1 || s.BlockSize.Height < 1 ||
			s.BlockSize.Width > s.Width || s.BlockSize.Height > s.Height {
			return fmt.Errorf("sections[%d]: %w: %dx%d", i, ErrInvalidBlockSize, s.BlockSize.Width, s.BlockSize.Height)
		}
	}

	seenBlocks := make(map[int]bool, len(l.Blocks))
	for i, b := range l.Blocks {
		if b.ID <= NoBlock {
			return fmt.Errorf("blocks[%d]: invalid id %d", i, b.ID)
		}
		if seenBlocks[b.ID] {
			return fmt.Errorf("blocks[%d]: %w: block %d", i, ErrDuplicateID, b.ID)
		}
		seenBlocks[b.ID] = true
		if b.Width < 1 || b.Height < 1 {
			return fmt.Errorf("blocks[%d]: %w: %dx%d", i, ErrInvalidBlockSize, b.Width, b.Height)
		}
		if !l.Grid.InBounds(b.Rect()) {
			return fmt.Errorf("blocks[%d]: %w: %+v", i, ErrBlockOutOfBounds, b.Rect())
		}
	}
	return nil
}
