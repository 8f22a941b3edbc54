package engine

import (
	"sort"

	"github.com/piwi3910/patchwork/internal/model"
)

// MaxSearchRadius is the largest ring searched around the target inside its
// own section before other sections are tried.
const MaxSearchRadius = 5

// SearchTier records which step of the search produced a position.
type SearchTier int

const (
	TierDirect       SearchTier = iota // clamped target was free
	TierRing                           // found on a ring around the target
	TierOtherSection                   // found in another section
	TierFallback                       // nothing free; clamped target returned anyway
)

func (t SearchTier) String() string {
	switch t {
	case TierDirect:
		return "direct"
	case TierRing:
		return "ring"
	case TierOtherSection:
		return "other-section"
	case TierFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// SearchResult is a position together with how it was found.
type SearchResult struct {
	Position model.Point
	Section  model.Section // section the search started in
	Tier     SearchTier
	Radius   int // ring radius for TierRing, otherwise 0
}

// Placer finds the nearest free position for a block of a given size.
type Placer struct {
	Grid     model.Grid
	Registry *Registry
}

// New creates a Placer searching grid with sections looked up in registry.
func New(grid model.Grid, registry *Registry) *Placer {
	return &Placer{Grid: grid, Registry: registry}
}

// FindOptimalPosition returns the nearest legal top-left position for a
// rectangle of the given size near target. It always returns a position; if
// every tier fails the clamped target is returned even though it overlaps.
func (p *Placer) FindOptimalPosition(blocks []model.Block, target model.Point, size model.Size, excludeID int) model.Point {
	return p.Search(blocks, target, size, excludeID).Position
}

// Search runs the tiered search: direct fit, rings of radius 1..5 inside the
// target's section, the other sections in registration order, then the
// clamped target (kept inside the grid) as a last resort.
func (p *Placer) Search(blocks []model.Block, target model.Point, size model.Size, excludeID int) SearchResult {
	sec := p.Registry.SectionAt(target.X, target.Y)
	origin := clampInto(sec, target, size)

	valid := func(pt model.Point) bool {
		return IsValidPlacement(p.Grid, blocks, model.NewRect(pt.X, pt.Y, size.Width, size.Height), excludeID)
	}

	if valid(origin) {
		return SearchResult{Position: origin, Section: sec, Tier: TierDirect}
	}

	for radius := 1; radius <= MaxSearchRadius; radius++ {
		for _, c := range ringCandidates(sec, origin, size, radius) {
			if valid(c) {
				return SearchResult{Position: c, Section: sec, Tier: TierRing, Radius: radius}
			}
		}
	}

	for _, alt := range p.Registry.sections {
		if alt.ID == sec.ID {
			continue
		}
		c := clampInto(alt, target, size)
		if valid(c) {
			return SearchResult{Position: c, Section: sec, Tier: TierOtherSection}
		}
	}

	// The canonical size may not fit at the section origin when the catalog
	// was never validated; keep the fallback on the grid regardless.
	fallback := clampToGrid(p.Grid, model.NewRect(origin.X, origin.Y, size.Width, size.Height))
	return SearchResult{Position: model.Point{X: fallback.X, Y: fallback.Y}, Section: sec, Tier: TierFallback}
}

// ringCandidates enumerates the offsets on the Chebyshev ring of the given
// radius around origin (rows top to bottom, cells left to right), clamps each
// into the section and orders them by Manhattan distance to origin. Equal
// distances keep enumeration order.
func ringCandidates(sec model.Section, origin model.Point, size model.Size, radius int) []model.Point {
	var candidates []model.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if abs(dx) != radius && abs(dy) != radius {
				continue
			}
			candidates = append(candidates, clampInto(sec, model.Point{X: origin.X + dx, Y: origin.Y + dy}, size))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return manhattan(candidates[i], origin) < manhattan(candidates[j], origin)
	})
	return candidates
}

// clampInto moves pt so a rectangle of the given size starting there fits
// inside the section. When the size exceeds the section the result is pinned
// to the section's top-left corner.
func clampInto(sec model.Section, pt model.Point, size model.Size) model.Point {
	return model.Point{
		X: max(sec.X, min(pt.X, sec.X+sec.Width-size.Width)),
		Y: max(sec.Y, min(pt.Y, sec.Y+sec.Height-size.Height)),
	}
}

func manhattan(a, b model.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
