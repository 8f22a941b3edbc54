// Package engine holds the grid geometry: section lookup, placement
// validation, nearest-position search and resize conflict resolution.
// Every function here is pure; callers own the block collection.
package engine

import "github.com/piwi3910/patchwork/internal/model"

// Registry is a read-only catalog of sections, kept in registration order.
type Registry struct {
	sections []model.Section
}

// NewRegistry copies the given sections into a registry. The first section
// is the fallback for points no section contains.
func NewRegistry(sections []model.Section) *Registry {
	return &Registry{sections: append([]model.Section(nil), sections...)}
}

// SectionAt returns the first section containing (x, y), or the first
// registered section if none does. An empty registry yields the zero Section.
func (r *Registry) SectionAt(x, y int) model.Section {
	for _, s := range r.sections {
		if s.Rect().Contains(x, y) {
			return s
		}
	}
	if len(r.sections) == 0 {
		return model.Section{}
	}
	return r.sections[0]
}

// Sections returns a copy of the catalog.
func (r *Registry) Sections() []model.Section {
	return append([]model.Section(nil), r.sections...)
}

// Len returns the number of registered sections.
func (r *Registry) Len() int {
	return len(r.sections)
}
