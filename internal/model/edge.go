package model

import "fmt"

// Edge identifies the resize handle a block is being dragged from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
	EdgeTopLeft
	EdgeTopRight
	EdgeBottomLeft
	EdgeBottomRight
)

// Edges lists every resize handle.
var Edges = []Edge{
	EdgeTop, EdgeBottom, EdgeLeft, EdgeRight,
	EdgeTopLeft, EdgeTopRight, EdgeBottomLeft, EdgeBottomRight,
}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTopLeft:
		return "top-left"
	case EdgeTopRight:
		return "top-right"
	case EdgeBottomLeft:
		return "bottom-left"
	case EdgeBottomRight:
		return "bottom-right"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// Valid reports whether e is one of the eight handles.
func (e Edge) Valid() bool {
	return e >= EdgeTop && e <= EdgeBottomRight
}

// Horizontal returns which side of the block the handle moves on the x axis:
// -1 for the left side, +1 for the right side, 0 if x is untouched.
func (e Edge) Horizontal() int {
	switch e {
	case EdgeLeft, EdgeTopLeft, EdgeBottomLeft:
		return -1
	case EdgeRight, EdgeTopRight, EdgeBottomRight:
		return 1
	default:
		return 0
	}
}

// Vertical returns -1 for the top side, +1 for the bottom side, 0 otherwise.
func (e Edge) Vertical() int {
	switch e {
	case EdgeTop, EdgeTopLeft, EdgeTopRight:
		return -1
	case EdgeBottom, EdgeBottomLeft, EdgeBottomRight:
		return 1
	default:
		return 0
	}
}

// ParseEdge converts a handle name such as "top-left" to an Edge.
func ParseEdge(s string) (Edge, error) {
	for _, e := range Edges {
		if e.String() == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown edge %q", s)
}
