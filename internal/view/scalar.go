package view

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/schema"
)

// boolView reads a Boolean column.
type boolView struct {
	base
	buf *buffers.PrimitiveBuffer[bool]
}

func newBoolView(b base, buf *buffers.PrimitiveBuffer[bool]) *boolView {
	b.n = buf.Len()
	return &boolView{base: b, buf: buf}
}

func (v *boolView) IsSome(i int) bool {
	return !v.field.Nullable || v.buf.Validity().Get(i)
}
func (v *boolView) DeserializeBool(i int, vis event.Visitor) (any, error) { return vis.VisitBool(v.buf.Values()[i]) }
func (v *boolView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeBool)(i, vis)
}

// numericView reads any scalar numeric column.
type numericView[T any] struct {
	base
	buf     *buffers.PrimitiveBuffer[T]
	visit   func(event.Visitor, T) (any, error)
	asValue func(i int) (any, error)
}

func (v *numericView[T]) IsSome(i int) bool {
	return !v.field.Nullable || v.buf.Validity().Get(i)
}

func (v *numericView[T]) decode(i int, vis event.Visitor) (any, error) {
	return v.visit(vis, v.buf.Values()[i])
}

func (v *numericView[T]) any_(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.decode)(i, vis)
}

func newNumericView(b base, k schema.Kind, buf any) View {
	switch k {
	case schema.Int8:
		nv := &numericView[int8]{base: b, buf: buf.(*buffers.PrimitiveBuffer[int8]),
			visit: func(vis event.Visitor, x int8) (any, error) { return vis.VisitI8(x) }}
		b.n = nv.buf.Len()
		nv.base = b
		return withI8(nv)
	case schema.Int16:
		nv := &numericView[int16]{base: b, buf: buf.(*buffers.PrimitiveBuffer[int16]),
			visit: func(vis event.Visitor, x int16) (any, error) { return vis.VisitI16(x) }}
		nv.base.n = nv.buf.Len()
		return withI16(nv)
	case schema.Int32:
		nv := &numericView[int32]{base: b, buf: buf.(*buffers.PrimitiveBuffer[int32]),
			visit: func(vis event.Visitor, x int32) (any, error) { return vis.VisitI32(x) }}
		nv.base.n = nv.buf.Len()
		return withI32(nv)
	case schema.Int64:
		nv := &numericView[int64]{base: b, buf: buf.(*buffers.PrimitiveBuffer[int64]),
			visit: func(vis event.Visitor, x int64) (any, error) { return vis.VisitI64(x) }}
		nv.base.n = nv.buf.Len()
		return withI64(nv)
	case schema.Uint8:
		nv := &numericView[uint8]{base: b, buf: buf.(*buffers.PrimitiveBuffer[uint8]),
			visit: func(vis event.Visitor, x uint8) (any, error) { return vis.VisitU8(x) }}
		nv.base.n = nv.buf.Len()
		return withU8(nv)
	case schema.Uint16, schema.Float16:
		nv := &numericView[uint16]{base: b, buf: buf.(*buffers.PrimitiveBuffer[uint16]),
			visit: func(vis event.Visitor, x uint16) (any, error) { return vis.VisitU16(x) }}
		nv.base.n = nv.buf.Len()
		return withU16(nv)
	case schema.Uint32:
		nv := &numericView[uint32]{base: b, buf: buf.(*buffers.PrimitiveBuffer[uint32]),
			visit: func(vis event.Visitor, x uint32) (any, error) { return vis.VisitU32(x) }}
		nv.base.n = nv.buf.Len()
		return withU32(nv)
	case schema.Uint64:
		nv := &numericView[uint64]{base: b, buf: buf.(*buffers.PrimitiveBuffer[uint64]),
			visit: func(vis event.Visitor, x uint64) (any, error) { return vis.VisitU64(x) }}
		nv.base.n = nv.buf.Len()
		return withU64(nv)
	case schema.Float32:
		nv := &numericView[float32]{base: b, buf: buf.(*buffers.PrimitiveBuffer[float32]),
			visit: func(vis event.Visitor, x float32) (any, error) { return vis.VisitF32(x) }}
		nv.base.n = nv.buf.Len()
		return withF32(nv)
	case schema.Float64:
		nv := &numericView[float64]{base: b, buf: buf.(*buffers.PrimitiveBuffer[float64]),
			visit: func(vis event.Visitor, x float64) (any, error) { return vis.VisitF64(x) }}
		nv.base.n = nv.buf.Len()
		return withF64(nv)
	default:
		panic("newNumericView: not a numeric kind")
	}
}

// The with<Type> helpers bind numericView's generic decode method to the one
// RandomAccessDeserializer method its Kind actually owns, and to DeserializeAny.
type numericFacade struct {
	View
	decodeAny func(int, event.Visitor) (any, error)
	decode    func(int, event.Visitor) (any, error)
	tag       string
}

func (f numericFacade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.decodeAny(i, v) }

func withI8(nv *numericView[int8]) View {
	return i8Facade{numericView: nv}
}
func withI16(nv *numericView[int16]) View { return i16Facade{numericView: nv} }
func withI32(nv *numericView[int32]) View { return i32Facade{numericView: nv} }
func withI64(nv *numericView[int64]) View { return i64Facade{numericView: nv} }
func withU8(nv *numericView[uint8]) View  { return u8Facade{numericView: nv} }
func withU16(nv *numericView[uint16]) View { return u16Facade{numericView: nv} }
func withU32(nv *numericView[uint32]) View { return u32Facade{numericView: nv} }
func withU64(nv *numericView[uint64]) View { return u64Facade{numericView: nv} }
func withF32(nv *numericView[float32]) View { return f32Facade{numericView: nv} }
func withF64(nv *numericView[float64]) View { return f64Facade{numericView: nv} }

type i8Facade struct{ *numericView[int8] }
func (f i8Facade) DeserializeI8(i int, v event.Visitor) (any, error)  { return f.decode(i, v) }
func (f i8Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type i16Facade struct{ *numericView[int16] }
func (f i16Facade) DeserializeI16(i int, v event.Visitor) (any, error) { return f.decode(i, v) }
func (f i16Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type i32Facade struct{ *numericView[int32] }
func (f i32Facade) DeserializeI32(i int, v event.Visitor) (any, error) { return f.decode(i, v) }
func (f i32Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type i64Facade struct{ *numericView[int64] }
func (f i64Facade) DeserializeI64(i int, v event.Visitor) (any, error) { return f.decode(i, v) }
func (f i64Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type u8Facade struct{ *numericView[uint8] }
func (f u8Facade) DeserializeU8(i int, v event.Visitor) (any, error)  { return f.decode(i, v) }
func (f u8Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type u16Facade struct{ *numericView[uint16] }
func (f u16Facade) DeserializeU16(i int, v event.Visitor) (any, error) { return f.decode(i, v) }
func (f u16Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type u32Facade struct{ *numericView[uint32] }
func (f u32Facade) DeserializeU32(i int, v event.Visitor) (any, error) { return f.decode(i, v) }
func (f u32Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type u64Facade struct{ *numericView[uint64] }
func (f u64Facade) DeserializeU64(i int, v event.Visitor) (any, error) { return f.decode(i, v) }
func (f u64Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type f32Facade struct{ *numericView[float32] }
func (f f32Facade) DeserializeF32(i int, v event.Visitor) (any, error) { return f.decode(i, v) }
func (f f32Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }

type f64Facade struct{ *numericView[float64] }
func (f f64Facade) DeserializeF64(i int, v event.Visitor) (any, error) { return f.decode(i, v) }
func (f f64Facade) DeserializeAny(i int, v event.Visitor) (any, error) { return f.any_(i, v) }
