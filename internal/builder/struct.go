package builder

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
)

// structBuilder backs Struct(children). It tracks which fields a given row
// has already supplied with `seen`, resolves StructField names to a child
// index with a one-ahead fast path (the common case is the host emitting
// fields in schema order) falling back to a name lookup, and at EndStruct
// fills any field the row never supplied with its default/null value
// (spec.md §4.E.1).
type structBuilder struct {
	base
	presence  *buffers.CountBuffer
	children  []Builder
	byName    map[string]int
	seen      []bool
	lastIdx   int
	router    *valueRouter
	activeIdx int
}

func newStructBuilder(b base) (Builder, error) {
	children := make([]Builder, len(b.field.DataType.Children))
	byName := make(map[string]int, len(children))
	for i, f := range b.field.DataType.Children {
		c, err := New(f, fieldpath.Child(b.path, f.Name))
		if err != nil {
			return nil, err
		}
		children[i] = c
		byName[f.Name] = i
	}
	return &structBuilder{
		base: b, presence: buffers.NewCountBuffer(b.field.Nullable),
		children: children, byName: byName, lastIdx: -1, seen: make([]bool, len(children)),
	}, nil
}

func (sb *structBuilder) Len() int { return sb.presence.Len() }

func (sb *structBuilder) fieldIndex(name string) (int, bool) {
	if sb.lastIdx+1 < len(sb.children) && sb.field.DataType.Children[sb.lastIdx+1].Name == name {
		return sb.lastIdx + 1, true
	}
	idx, ok := sb.byName[name]
	return idx, ok
}

func (sb *structBuilder) fillMissing() error {
	for i, seen := range sb.seen {
		if seen {
			continue
		}
		ev := event.EvDefault()
		if sb.field.DataType.Children[i].Nullable {
			ev = event.EvNull()
		}
		if err := sb.children[i].Accept(ev); err != nil {
			return err
		}
	}
	return nil
}

func (sb *structBuilder) resetRow() {
	for i := range sb.seen {
		sb.seen[i] = false
	}
	sb.lastIdx = -1
}

func (sb *structBuilder) Accept(e event.Event) error {
	if sb.router != nil {
		done, err := sb.router.Feed(e)
		if err != nil {
			return sb.ctx(err)
		}
		if done {
			sb.router = nil
		}
		return nil
	}
	switch e.Tag {
	case event.StartStruct:
		sb.resetRow()
		return nil
	case event.EndStruct:
		if err := sb.fillMissing(); err != nil {
			return sb.ctx(err)
		}
		sb.presence.StartSeq()
		return nil
	case event.StructField:
		idx, ok := sb.fieldIndex(e.VariantName)
		if !ok {
			// spec.md §4.E.1: an unresolved name drains the following value
			// subtree, depth-aware, and is otherwise ignored.
			sb.router = &valueRouter{child: drainSink{}}
			return nil
		}
		if sb.seen[idx] {
			return sb.ctx(fieldpath.New(fieldpath.DuplicateField, "duplicate struct field %q", e.VariantName))
		}
		sb.seen[idx] = true
		sb.lastIdx = idx
		sb.router = &valueRouter{child: sb.children[idx]}
		return nil
	case event.Null:
		for _, c := range sb.children {
			if err := c.Accept(event.EvDefault()); err != nil {
				return sb.ctx(err)
			}
		}
		return sb.ctx(sb.presence.PushNullSeq())
	case event.Default:
		for _, c := range sb.children {
			if err := c.Accept(event.EvDefault()); err != nil {
				return sb.ctx(err)
			}
		}
		sb.presence.StartSeq()
		return nil
	default:
		return sb.unexpected(e.Tag)
	}
}

func (sb *structBuilder) Take() (*buffers.CountBuffer, []Builder) {
	return sb.presence.Take(), sb.children
}

func (sb *structBuilder) Snapshot() any {
	presence, children := sb.Take()
	return StructSnapshot{Presence: presence, Children: children}
}
