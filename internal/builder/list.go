package builder

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// typedList backs List(child)/LargeList(child); O selects the offset width.
type typedList[O buffers.OffsetKind] struct {
	base
	offsets *buffers.OffsetsBuffer[O]
	child   Builder
	router  *valueRouter
}

func (lb *typedList[O]) Len() int { return lb.offsets.Len() }

func (lb *typedList[O]) Accept(e event.Event) error {
	if lb.router != nil {
		done, err := lb.router.Feed(e)
		if err != nil {
			return lb.ctx(err)
		}
		if done {
			lb.offsets.PushItem()
			lb.router = nil
		}
		return nil
	}
	switch e.Tag {
	case event.StartSequence:
		lb.offsets.StartSeq()
		return nil
	case event.EndSequence:
		lb.offsets.EndSeq()
		return nil
	case event.Item:
		lb.router = &valueRouter{child: lb.child}
		return nil
	case event.Null:
		return lb.ctx(lb.offsets.PushNullSeq())
	case event.Default:
		lb.offsets.PushDefaultSeq()
		return nil
	default:
		return lb.unexpected(e.Tag)
	}
}

func (lb *typedList[O]) Take() (*buffers.OffsetsBuffer[O], Builder) {
	return lb.offsets.Take(), lb.child
}

func (lb *typedList[O]) Snapshot() any {
	off, child := lb.Take()
	switch o := any(off).(type) {
	case *buffers.OffsetsBuffer[int32]:
		return ListSnapshot32{Offsets: o, Child: child}
	case *buffers.OffsetsBuffer[int64]:
		return ListSnapshot64{Offsets: o, Child: child}
	default:
		panic("unreachable offset kind")
	}
}

func newListBuilder(b base) (Builder, error) {
	if b.field.DataType.Child == nil {
		return nil, fieldpath.New(fieldpath.IncompatibleType, "list field has no child")
	}
	childPath := fieldpath.Element(b.path)
	child, err := New(*b.field.DataType.Child, childPath)
	if err != nil {
		return nil, err
	}
	switch b.field.DataType.Kind {
	case schema.List:
		return &typedList[int32]{base: b, offsets: buffers.NewOffsetsBuffer[int32](b.field.Nullable), child: child}, nil
	case schema.LargeList:
		return &typedList[int64]{base: b, offsets: buffers.NewOffsetsBuffer[int64](b.field.Nullable), child: child}, nil
	default:
		return nil, fieldpath.New(fieldpath.IncompatibleType, "not a list kind: %s", b.field.DataType.Kind)
	}
}

// fixedSizeListBuilder backs FixedSizeList(child, n): every row contributes
// exactly n child values, tracked with a CountBuffer since no offsets are
// needed (spec.md §4.E.2).
type fixedSizeListBuilder struct {
	base
	size     int32
	presence *buffers.CountBuffer
	seen     int32
	child    Builder
	router   *valueRouter
}

func newFixedSizeListBuilder(b base) (Builder, error) {
	if b.field.DataType.Child == nil {
		return nil, fieldpath.New(fieldpath.IncompatibleType, "fixed size list field has no child")
	}
	child, err := New(*b.field.DataType.Child, fieldpath.Element(b.path))
	if err != nil {
		return nil, err
	}
	return &fixedSizeListBuilder{
		base: b, size: b.field.DataType.FixedSize,
		presence: buffers.NewCountBuffer(b.field.Nullable), child: child,
	}, nil
}

func (fb *fixedSizeListBuilder) Len() int { return fb.presence.Len() }

func (fb *fixedSizeListBuilder) Accept(e event.Event) error {
	if fb.router != nil {
		done, err := fb.router.Feed(e)
		if err != nil {
			return fb.ctx(err)
		}
		if done {
			fb.seen++
			fb.router = nil
		}
		return nil
	}
	switch e.Tag {
	case event.StartSequence:
		fb.seen = 0
		return nil
	case event.EndSequence:
		if fb.seen != fb.size {
			return fb.ctx(fieldpath.New(fieldpath.InvalidNumberOfItems,
				"expected %d items, got %d", fb.size, fb.seen))
		}
		fb.presence.StartSeq()
		return nil
	case event.Item:
		fb.router = &valueRouter{child: fb.child}
		return nil
	case event.Null:
		for i := int32(0); i < fb.size; i++ {
			if err := fb.child.Accept(event.EvDefault()); err != nil {
				return fb.ctx(err)
			}
		}
		return fb.ctx(fb.presence.PushNullSeq())
	case event.Default:
		for i := int32(0); i < fb.size; i++ {
			if err := fb.child.Accept(event.EvDefault()); err != nil {
				return fb.ctx(err)
			}
		}
		fb.presence.StartSeq()
		return nil
	default:
		return fb.unexpected(e.Tag)
	}
}

func (fb *fixedSizeListBuilder) Take() (*buffers.CountBuffer, Builder) {
	return fb.presence.Take(), fb.child
}

func (fb *fixedSizeListBuilder) Snapshot() any {
	presence, child := fb.Take()
	return FixedSizeListSnapshot{Presence: presence, Child: child, Size: fb.size}
}
