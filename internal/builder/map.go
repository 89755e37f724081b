package builder

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// mapBuilder backs Map(entry, sorted), physically a List of Entry structs:
// offsets delimit one row's entries, and each entry is routed through the
// same structBuilder machinery used for Struct (spec.md §4.E.3 treats Map's
// wire shape as List<Struct<key,value>>). The MapAsStruct strategy
// (tracer-assigned when keys are a closed, known set) bypasses this type
// entirely and is represented as a plain Struct field instead.
type mapBuilder struct {
	base
	offsets *buffers.OffsetsBuffer[int32]
	entry   Builder
	router  *valueRouter
}

func newMapBuilder(b base) (Builder, error) {
	if b.field.DataType.Entry == nil {
		return nil, fieldpath.New(fieldpath.IncompatibleType, "map field has no entry type")
	}
	entry, err := New(*b.field.DataType.Entry, fieldpath.Child(b.path, "entries"))
	if err != nil {
		return nil, err
	}
	if b.field.DataType.Entry.DataType.Kind != schema.Struct || len(b.field.DataType.Entry.DataType.Children) != 2 {
		return nil, fieldpath.New(fieldpath.IncompatibleType, "map entry must be a two-field struct")
	}
	return &mapBuilder{base: b, offsets: buffers.NewOffsetsBuffer[int32](b.field.Nullable), entry: entry}, nil
}

func (mb *mapBuilder) Len() int { return mb.offsets.Len() }

func (mb *mapBuilder) Accept(e event.Event) error {
	if mb.router != nil {
		done, err := mb.router.Feed(e)
		if err != nil {
			return mb.ctx(err)
		}
		if done {
			mb.offsets.PushItem()
			mb.router = nil
		}
		return nil
	}
	switch e.Tag {
	case event.StartMap:
		mb.offsets.StartSeq()
		return nil
	case event.EndMap:
		mb.offsets.EndSeq()
		return nil
	case event.Item:
		mb.router = &valueRouter{child: mb.entry}
		return nil
	case event.Null:
		return mb.ctx(mb.offsets.PushNullSeq())
	case event.Default:
		mb.offsets.PushDefaultSeq()
		return nil
	default:
		return mb.unexpected(e.Tag)
	}
}

func (mb *mapBuilder) Take() (*buffers.OffsetsBuffer[int32], Builder) {
	return mb.offsets.Take(), mb.entry
}

func (mb *mapBuilder) Snapshot() any {
	off, entry := mb.Take()
	return MapSnapshot{Offsets: off, Entry: entry}
}
