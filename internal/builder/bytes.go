package builder

import (
	"strconv"

	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// typedBytes is the generic Utf8/Binary Sink, parameterized by offset width.
// textual, when true, makes it a Utf8/LargeUtf8 builder that additionally
// accepts coerced primitive scalars (spec.md §4.E.3: numbers in their
// canonical textual form, booleans as "true"/"false"); Binary/LargeBinary
// keep textual false and only accept bytes.
type typedBytes[O buffers.OffsetKind] struct {
	base
	buf     *buffers.BytesBuffer[O]
	textual bool
}

func (bb *typedBytes[O]) Len() int { return bb.buf.Len() }

func (bb *typedBytes[O]) Accept(e event.Event) error {
	switch e.Tag {
	case event.Str, event.OwnedStr:
		bb.buf.PushBytes([]byte(e.Str))
		return nil
	case event.Bool:
		if !bb.textual {
			return bb.unexpected(e.Tag)
		}
		bb.buf.PushBytes([]byte(strconv.FormatBool(e.Bool)))
		return nil
	case event.I8, event.I16, event.I32, event.I64,
		event.U8, event.U16, event.U32, event.U64,
		event.F32, event.F64:
		if !bb.textual {
			return bb.unexpected(e.Tag)
		}
		bb.buf.PushBytes([]byte(describeNumericEvent(e)))
		return nil
	case event.Null:
		return bb.ctx(bb.buf.PushNull())
	case event.Default:
		bb.buf.PushDefault()
		return nil
	default:
		return bb.unexpected(e.Tag)
	}
}

func (bb *typedBytes[O]) Take() *buffers.BytesBuffer[O] { return bb.buf.Take() }

func (bb *typedBytes[O]) Snapshot() any { return bb.Take() }

func newBytesBuilder(b base) (Builder, error) {
	nullable := b.field.Nullable
	switch b.field.DataType.Kind {
	case schema.Utf8:
		return &typedBytes[int32]{base: b, buf: buffers.NewBytesBuffer[int32](nullable), textual: true}, nil
	case schema.Binary:
		return &typedBytes[int32]{base: b, buf: buffers.NewBytesBuffer[int32](nullable)}, nil
	case schema.LargeUtf8:
		return &typedBytes[int64]{base: b, buf: buffers.NewBytesBuffer[int64](nullable), textual: true}, nil
	case schema.LargeBinary:
		return &typedBytes[int64]{base: b, buf: buffers.NewBytesBuffer[int64](nullable)}, nil
	default:
		return nil, fieldpath.New(fieldpath.IncompatibleType, "not a bytes kind: %s", b.field.DataType.Kind)
	}
}

// viewBuilder backs Utf8View/BinaryView columns (spec.md §3.4).
type viewBuilder struct {
	base
	buf *buffers.BytesViewBuffer
}

func newViewBuilder(b base) *viewBuilder {
	return &viewBuilder{base: b, buf: buffers.NewBytesViewBuffer(b.field.Nullable)}
}

func (vb *viewBuilder) Len() int { return vb.buf.Len() }

func (vb *viewBuilder) Accept(e event.Event) error {
	switch e.Tag {
	case event.Str, event.OwnedStr:
		vb.buf.PushBytes([]byte(e.Str))
		return nil
	case event.Null:
		return vb.ctx(vb.buf.PushNull())
	case event.Default:
		vb.buf.PushDefault()
		return nil
	default:
		return vb.unexpected(e.Tag)
	}
}

func (vb *viewBuilder) Take() *buffers.BytesViewBuffer { return vb.buf.Take() }

func (vb *viewBuilder) Snapshot() any { return vb.Take() }

// fixedSizeBinaryBuilder backs FixedSizeBinary(n): every value must be
// exactly n bytes, carried on a Str/OwnedStr event like plain Binary.
type fixedSizeBinaryBuilder struct {
	base
	buf  *buffers.BytesBuffer[int32]
	size int32
}

func newFixedSizeBinaryBuilder(b base) *fixedSizeBinaryBuilder {
	return &fixedSizeBinaryBuilder{
		base: b,
		buf:  buffers.NewBytesBuffer[int32](b.field.Nullable),
		size: b.field.DataType.FixedSize,
	}
}

func (fb *fixedSizeBinaryBuilder) Len() int { return fb.buf.Len() }

func (fb *fixedSizeBinaryBuilder) Accept(e event.Event) error {
	switch e.Tag {
	case event.Str, event.OwnedStr:
		if int32(len(e.Str)) != fb.size {
			return fb.ctx(fieldpath.New(fieldpath.InvalidNumberOfItems,
				"expected %d bytes, got %d", fb.size, len(e.Str)))
		}
		fb.buf.PushBytes([]byte(e.Str))
		return nil
	case event.Null:
		return fb.ctx(fb.buf.PushNull())
	case event.Default:
		fb.buf.PushBytes(make([]byte, fb.size))
		return nil
	default:
		return fb.unexpected(e.Tag)
	}
}

func (fb *fixedSizeBinaryBuilder) Take() *buffers.BytesBuffer[int32] { return fb.buf.Take() }

func (fb *fixedSizeBinaryBuilder) Snapshot() any { return fb.Take() }
