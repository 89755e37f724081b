package view

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
)

// typedBytesView reads a Utf8/LargeUtf8/Binary/LargeBinary column (spec.md
// §4.F: "bytes views: get(i) -> Option<&[u8]>"). Binary values are handed
// to the visitor through VisitStr the same way builder.typedBytes accepts
// them through Str/OwnedStr events -- the event protocol has no separate
// bytes primitive, a Go string already is a byte sequence.
type typedBytesView[O buffers.OffsetKind] struct {
	base
	buf *buffers.BytesBuffer[O]
}

func newTypedBytesView[O buffers.OffsetKind](b base, buf *buffers.BytesBuffer[O]) *typedBytesView[O] {
	b.n = buf.Len()
	return &typedBytesView[O]{base: b, buf: buf}
}

func (v *typedBytesView[O]) IsSome(i int) bool {
	return !v.field.Nullable || v.buf.Validity().Get(i)
}

func (v *typedBytesView[O]) DeserializeStr(i int, vis event.Visitor) (any, error) {
	return vis.VisitStr(string(v.buf.Get(i)))
}

func (v *typedBytesView[O]) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeStr)(i, vis)
}

// viewView reads a Utf8View/BinaryView column.
type viewView struct {
	base
	buf *buffers.BytesViewBuffer
}

func newViewView(b base, buf *buffers.BytesViewBuffer) *viewView {
	b.n = buf.Len()
	return &viewView{base: b, buf: buf}
}

func (v *viewView) IsSome(i int) bool {
	return !v.field.Nullable || v.buf.Validity().Get(i)
}

func (v *viewView) DeserializeStr(i int, vis event.Visitor) (any, error) {
	return vis.VisitStr(string(v.buf.Get(i)))
}

func (v *viewView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeStr)(i, vis)
}

// fixedSizeBinaryView reads a FixedSizeBinary(n) column, physically a plain
// BytesBuffer[int32] whose every value happens to be exactly n bytes long.
type fixedSizeBinaryView struct {
	base
	buf *buffers.BytesBuffer[int32]
}

func newFixedSizeBinaryView(b base, buf *buffers.BytesBuffer[int32]) *fixedSizeBinaryView {
	b.n = buf.Len()
	return &fixedSizeBinaryView{base: b, buf: buf}
}

func (v *fixedSizeBinaryView) IsSome(i int) bool {
	return !v.field.Nullable || v.buf.Validity().Get(i)
}

func (v *fixedSizeBinaryView) DeserializeStr(i int, vis event.Visitor) (any, error) {
	return vis.VisitStr(string(v.buf.Get(i)))
}

func (v *fixedSizeBinaryView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeStr)(i, vis)
}
