package builder

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
)

// unionBuilder backs Union(variants) in dense layout (spec.md §9 settles the
// sparse/dense open question in favor of dense only): a types: [i8] array
// says which variant each row belongs to, offsets: [i32] says where in that
// variant's own child array the row's value lives, and every variant's
// child builder is appended to independently so rows of different variants
// don't waste space in each other's arrays. The tracer's
// EnumsWithNamedFieldsAsStructs option only tags struct-shaped variants with
// that strategy; the Field stays a Union, this builder does not read the
// strategy, and such a variant is built as an ordinary struct child.
type unionBuilder struct {
	base
	types    *buffers.PrimitiveBuffer[int8]
	offsets  *buffers.PrimitiveBuffer[int32]
	children []Builder
	byName   map[string]int
	router   *valueRouter
	active   int
}

func newUnionBuilder(b base) (Builder, error) {
	children := make([]Builder, len(b.field.DataType.Variants))
	byName := make(map[string]int, len(children))
	for i, v := range b.field.DataType.Variants {
		c, err := New(v.Field, fieldpath.Variant(b.path, v.TypeID))
		if err != nil {
			return nil, err
		}
		children[i] = c
		byName[v.Field.Name] = i
	}
	return &unionBuilder{
		base: b, types: buffers.NewPrimitiveBuffer[int8](false),
		offsets: buffers.NewPrimitiveBuffer[int32](false), children: children, byName: byName,
	}, nil
}

func (ub *unionBuilder) Len() int { return ub.types.Len() }

func (ub *unionBuilder) Accept(e event.Event) error {
	if ub.router != nil {
		done, err := ub.router.Feed(e)
		if err != nil {
			return ub.ctx(err)
		}
		if done {
			ub.router = nil
		}
		return nil
	}
	if e.Tag != event.Variant {
		return ub.unexpected(e.Tag)
	}
	idx, ok := ub.resolveVariant(e)
	if !ok {
		return ub.ctx(fieldpath.New(fieldpath.UnknownVariant, "unknown union variant %q (index %d)", e.VariantName, e.VariantIndex))
	}
	ub.types.PushValue(ub.field.DataType.Variants[idx].TypeID)
	ub.offsets.PushValue(int32(ub.children[idx].Len()))
	ub.active = idx
	ub.router = &valueRouter{child: ub.children[idx]}
	return nil
}

func (ub *unionBuilder) resolveVariant(e event.Event) (int, bool) {
	if e.VariantName != "" {
		if idx, ok := ub.byName[e.VariantName]; ok {
			return idx, true
		}
	}
	if e.VariantIndex >= 0 && e.VariantIndex < len(ub.children) {
		return e.VariantIndex, true
	}
	return 0, false
}

func (ub *unionBuilder) Take() (*buffers.PrimitiveBuffer[int8], *buffers.PrimitiveBuffer[int32], []Builder) {
	return ub.types.Take(), ub.offsets.Take(), ub.children
}

func (ub *unionBuilder) Snapshot() any {
	types, offsets, children := ub.Take()
	return UnionSnapshot{Types: types, Offsets: offsets, Children: children}
}

// unknownVariantBuilder is the catch-all child a Union variant uses under
// the UnknownVariant strategy: it records that a row occurred without
// retaining its payload, skipping whatever nested events the payload
// carries via its own depth counter (spec.md §3.3: UnknownVariant).
type unknownVariantBuilder struct {
	base
	count *buffers.CountBuffer
	depth int
	open  bool
}

func newUnknownVariantBuilder(b base) *unknownVariantBuilder {
	return &unknownVariantBuilder{base: b, count: buffers.NewCountBuffer(true)}
}

func (ub *unknownVariantBuilder) Len() int { return ub.count.Len() }

func (ub *unknownVariantBuilder) Accept(e event.Event) error {
	if ub.open {
		switch e.Tag {
		case event.StartSequence, event.StartTuple, event.StartStruct, event.StartMap:
			ub.depth++
		case event.EndSequence, event.EndTuple, event.EndStruct, event.EndMap:
			ub.depth--
			if ub.depth == 0 {
				ub.open = false
				ub.count.StartSeq()
			}
		case event.Some, event.Variant, event.StructField, event.Item:
		default:
			if ub.depth == 0 {
				ub.open = false
				ub.count.StartSeq()
			}
		}
		return nil
	}
	switch e.Tag {
	case event.StartSequence, event.StartTuple, event.StartStruct, event.StartMap:
		ub.open = true
		ub.depth = 1
		return nil
	case event.Null, event.Default:
		return ub.ctx(ub.count.PushNullSeq())
	default:
		ub.count.StartSeq()
		return nil
	}
}

func (ub *unknownVariantBuilder) Take() *buffers.CountBuffer { return ub.count.Take() }

func (ub *unknownVariantBuilder) Snapshot() any { return ub.Take() }
