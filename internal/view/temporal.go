package view

import (
	"math/big"

	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/schema"
)

// decodeDecimal128 reverses builder.encodeInt128: it reconstructs the signed
// big.Int from its little-endian two's-complement bytes and prints it
// scaled by 10^-scale.
func decodeDecimal128(raw [16]byte, scale int8) string {
	neg := raw[15]&0x80 != 0
	work := raw
	if neg {
		for i := range work {
			work[i] = ^work[i]
		}
		carry := byte(1)
		for i := 0; i < 16 && carry != 0; i++ {
			sum := uint16(work[i]) + uint16(carry)
			work[i] = byte(sum)
			carry = byte(sum >> 8)
		}
	}
	be := make([]byte, 16)
	for i := 0; i < 16; i++ {
		be[i] = work[15-i]
	}
	mag := new(big.Int).SetBytes(be)
	if neg {
		mag.Neg(mag)
	}
	if scale <= 0 {
		return mag.String()
	}
	r := new(big.Rat).SetInt(mag)
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	r.Quo(r, new(big.Rat).SetInt(factor))
	return r.FloatString(int(scale))
}

// temporalView reads Date32/Date64/Time32/Time64/Timestamp/Duration, all of
// which are a single int64 physical value (spec.md §4.E.5). The value is
// always handed back through the matching integer Visit method; formatting
// it back into a textual form, if the host wants one, is the host's concern
// -- the strategy only governs how *writing* accepted a string, not reading.
type temporalView struct {
	base
	buf  *buffers.PrimitiveBuffer[int64]
	kind schema.Kind
}

func newTemporalView(b base, buf *buffers.PrimitiveBuffer[int64], kind schema.Kind) *temporalView {
	b.n = buf.Len()
	return &temporalView{base: b, buf: buf, kind: kind}
}

func (v *temporalView) IsSome(i int) bool {
	return !v.field.Nullable || v.buf.Validity().Get(i)
}

func (v *temporalView) decode(i int, vis event.Visitor) (any, error) {
	val := v.buf.Values()[i]
	switch v.kind {
	case schema.Date32, schema.Time32:
		return vis.VisitI32(int32(val))
	default:
		return vis.VisitI64(val)
	}
}

func (v *temporalView) DeserializeI32(i int, vis event.Visitor) (any, error) { return v.decode(i, vis) }
func (v *temporalView) DeserializeI64(i int, vis event.Visitor) (any, error) { return v.decode(i, vis) }

func (v *temporalView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.decode)(i, vis)
}

// decimal128View reads a Decimal128(precision, scale) column, stored as the
// 16-byte little-endian two's-complement encoding builder.decimal128Builder
// produces. The visitor sees the decimal as its canonical string form
// ("123.45"), matching the textual form a Timestamp strategy string would
// use -- there is no dedicated Visit method for a 128-bit value.
type decimal128View struct {
	base
	buf *buffers.PrimitiveBuffer[[16]byte]
}

func newDecimal128View(b base, buf *buffers.PrimitiveBuffer[[16]byte]) *decimal128View {
	b.n = buf.Len()
	return &decimal128View{base: b, buf: buf}
}

func (v *decimal128View) IsSome(i int) bool {
	return !v.field.Nullable || v.buf.Validity().Get(i)
}

func (v *decimal128View) DeserializeStr(i int, vis event.Visitor) (any, error) {
	return vis.VisitStr(decodeDecimal128(v.buf.Values()[i], v.field.DataType.Scale))
}

func (v *decimal128View) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeStr)(i, vis)
}
