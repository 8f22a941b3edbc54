package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/patchwork/internal/board"
	"github.com/piwi3910/patchwork/internal/model"
)

// OpKind names a board operation.
type OpKind string

const (
	OpHover  OpKind = "hover"
	OpDrop   OpKind = "drop"
	OpResize OpKind = "resize"
	OpCancel OpKind = "cancel"
	OpUndo   OpKind = "undo"
	OpRedo   OpKind = "redo"
	OpReset  OpKind = "reset"
)

// Op is one step of a scripted session.
//
// Text forms:
//
//	hover:ID@X,Y
//	drop:ID@X,Y
//	resize:ID:EDGE:DX,DY
//	cancel | undo | redo | reset
type Op struct {
	Kind   OpKind
	ID     int
	X, Y   int
	Edge   model.Edge
	DX, DY int
}

func (o Op) String() string {
	switch o.Kind {
	case OpHover, OpDrop:
		return fmt.Sprintf("%s:%d@%d,%d", o.Kind, o.ID, o.X, o.Y)
	case OpResize:
		return fmt.Sprintf("%s:%d:%s:%d,%d", o.Kind, o.ID, o.Edge, o.DX, o.DY)
	default:
		return string(o.Kind)
	}
}

// ParseOp parses the text form of an operation.
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	kind, rest, _ := strings.Cut(s, ":")

	switch OpKind(kind) {
	case OpCancel, OpUndo, OpRedo, OpReset:
		if rest != "" {
			return Op{}, fmt.Errorf("op %q takes no arguments", kind)
		}
		return Op{Kind: OpKind(kind)}, nil

	case OpHover, OpDrop:
		idStr, pos, ok := strings.Cut(rest, "@")
		if !ok {
			return Op{}, fmt.Errorf("op %q: expected %s:ID@X,Y", s, kind)
		}
		id, err := parseID(idStr)
		if err != nil {
			return Op{}, fmt.Errorf("op %q: %w", s, err)
		}
		x, y, err := parsePair(pos)
		if err != nil {
			return Op{}, fmt.Errorf("op %q: %w", s, err)
		}
		return Op{Kind: OpKind(kind), ID: id, X: x, Y: y}, nil

	case OpResize:
		fields := strings.Split(rest, ":")
		if len(fields) != 3 {
			return Op{}, fmt.Errorf("op %q: expected resize:ID:EDGE:DX,DY", s)
		}
		id, err := parseID(fields[0])
		if err != nil {
			return Op{}, fmt.Errorf("op %q: %w", s, err)
		}
		edge, err := model.ParseEdge(fields[1])
		if err != nil {
			return Op{}, fmt.Errorf("op %q: %w", s, err)
		}
		dx, dy, err := parsePair(fields[2])
		if err != nil {
			return Op{}, fmt.Errorf("op %q: %w", s, err)
		}
		return Op{Kind: OpResize, ID: id, Edge: edge, DX: dx, DY: dy}, nil
	}

	return Op{}, fmt.Errorf("unknown op %q", s)
}

// ParseOps parses every operation in args.
func ParseOps(args []string) ([]Op, error) {
	ops := make([]Op, 0, len(args))
	for _, a := range args {
		op, err := ParseOp(a)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Apply runs op against b. ok is false when the board ignored the
// operation, for example because the block ID is unknown or there was
// nothing to undo.
func (o Op) Apply(b *board.Board) (ok bool) {
	switch o.Kind {
	case OpHover:
		_, known := b.Block(o.ID)
		b.DragHover(o.ID, o.X, o.Y)
		return known
	case OpDrop:
		return b.Drop(o.ID, o.X, o.Y)
	case OpResize:
		return b.Resize(o.ID, o.Edge, o.DX, o.DY)
	case OpCancel:
		b.CancelDrag()
		return true
	case OpUndo:
		return b.Undo()
	case OpRedo:
		return b.Redo()
	case OpReset:
		b.Reset()
		return true
	}
	return false
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= model.NoBlock {
		return 0, fmt.Errorf("invalid block id %q", s)
	}
	return id, nil
}

func parsePair(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected a pair like 3,40, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}
