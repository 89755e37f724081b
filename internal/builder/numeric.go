package builder

import (
	"math"
	"strconv"

	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// numT bounds the Go types a numeric column can be stored as.
type numT interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// typedNumeric is the generic numeric Sink: coerce converts any numeric
// event into T, or reports an IncompatibleType error (spec.md §4.E.4:
// "Integer builders accept any numeric primitive and fail on overflow ...
// Float builders accept any numeric primitive, cross-casting losslessly").
type typedNumeric[T numT] struct {
	base
	buf    *buffers.PrimitiveBuffer[T]
	coerce func(event.Event) (T, error)
}

func (nb *typedNumeric[T]) Len() int { return nb.buf.Len() }

func (nb *typedNumeric[T]) Accept(e event.Event) error {
	switch e.Tag {
	case event.I8, event.I16, event.I32, event.I64,
		event.U8, event.U16, event.U32, event.U64,
		event.F32, event.F64:
		v, err := nb.coerce(e)
		if err != nil {
			return nb.ctx(err)
		}
		nb.buf.PushValue(v)
		return nil
	case event.Null:
		return nb.ctx(nb.buf.PushNull())
	case event.Default:
		nb.buf.PushDefault()
		return nil
	default:
		return nb.unexpected(e.Tag)
	}
}

func (nb *typedNumeric[T]) Take() *buffers.PrimitiveBuffer[T] { return nb.buf.Take() }

func (nb *typedNumeric[T]) Snapshot() any { return nb.Take() }

// numericValue describes e's arithmetic payload as the widest Go forms it
// could have arrived in, regardless of its exact source tag.
func numericValue(e event.Event) (i int64, u uint64, f float64, isFloat, isUnsigned bool) {
	switch e.Tag {
	case event.I8, event.I16, event.I32, event.I64:
		return e.I64, 0, 0, false, false
	case event.U8, event.U16, event.U32, event.U64:
		return 0, e.U64, 0, false, true
	case event.F32:
		return 0, 0, float64(e.F32), true, false
	case event.F64:
		return 0, 0, e.F64, true, false
	default:
		return 0, 0, 0, false, false
	}
}

func describeNumericEvent(e event.Event) string {
	switch e.Tag {
	case event.I8, event.I16, event.I32, event.I64:
		return strconv.FormatInt(e.I64, 10)
	case event.U8, event.U16, event.U32, event.U64:
		return strconv.FormatUint(e.U64, 10)
	case event.F32:
		return strconv.FormatFloat(float64(e.F32), 'g', -1, 32)
	case event.F64:
		return strconv.FormatFloat(e.F64, 'g', -1, 64)
	default:
		return e.Tag.String()
	}
}

func numericOverflow(kind schema.Kind, e event.Event) error {
	return fieldpath.New(fieldpath.IncompatibleType,
		"value %s out of range for %s", describeNumericEvent(e), kind)
}

// coerceSigned converts e into an int64 bounded to [min, max], the overflow
// window of the target signed integer width.
func coerceSigned(kind schema.Kind, e event.Event, min, max int64) (int64, error) {
	i, u, f, isFloat, isUnsigned := numericValue(e)
	switch {
	case isFloat:
		if math.IsNaN(f) || f < float64(min) || f > float64(max) {
			return 0, numericOverflow(kind, e)
		}
		return int64(f), nil
	case isUnsigned:
		if u > uint64(max) {
			return 0, numericOverflow(kind, e)
		}
		return int64(u), nil
	default:
		if i < min || i > max {
			return 0, numericOverflow(kind, e)
		}
		return i, nil
	}
}

// coerceUnsigned converts e into a uint64 bounded to [0, max], the overflow
// window of the target unsigned integer width.
func coerceUnsigned(kind schema.Kind, e event.Event, max uint64) (uint64, error) {
	i, u, f, isFloat, isUnsigned := numericValue(e)
	switch {
	case isFloat:
		if math.IsNaN(f) || f < 0 || f > float64(max) {
			return 0, numericOverflow(kind, e)
		}
		return uint64(f), nil
	case isUnsigned:
		if u > max {
			return 0, numericOverflow(kind, e)
		}
		return u, nil
	default:
		if i < 0 || uint64(i) > max {
			return 0, numericOverflow(kind, e)
		}
		return uint64(i), nil
	}
}

// coerceFloat cross-casts e into a float64 from any numeric tag.
func coerceFloat(e event.Event) float64 {
	i, u, f, isFloat, isUnsigned := numericValue(e)
	switch {
	case isFloat:
		return f
	case isUnsigned:
		return float64(u)
	default:
		return float64(i)
	}
}

// newNumericBuilder dispatches on Kind to the right instantiation of
// typedNumeric. Float16 has no dedicated event tag; it is carried as the
// raw 16-bit pattern on a U16 event, matching how the rest of the corpus
// treats half-precision floats as an opaque bit pattern, so it keeps its
// own narrow, non-coercing Accept path instead of the numeric-coercion one.
func newNumericBuilder(b base) (Builder, error) {
	nullable := b.field.Nullable
	kind := b.field.DataType.Kind
	switch kind {
	case schema.Int8:
		return &typedNumeric[int8]{base: b, buf: buffers.NewPrimitiveBuffer[int8](nullable),
			coerce: func(e event.Event) (int8, error) {
				v, err := coerceSigned(kind, e, math.MinInt8, math.MaxInt8)
				return int8(v), err
			}}, nil
	case schema.Int16:
		return &typedNumeric[int16]{base: b, buf: buffers.NewPrimitiveBuffer[int16](nullable),
			coerce: func(e event.Event) (int16, error) {
				v, err := coerceSigned(kind, e, math.MinInt16, math.MaxInt16)
				return int16(v), err
			}}, nil
	case schema.Int32:
		return &typedNumeric[int32]{base: b, buf: buffers.NewPrimitiveBuffer[int32](nullable),
			coerce: func(e event.Event) (int32, error) {
				v, err := coerceSigned(kind, e, math.MinInt32, math.MaxInt32)
				return int32(v), err
			}}, nil
	case schema.Int64:
		return &typedNumeric[int64]{base: b, buf: buffers.NewPrimitiveBuffer[int64](nullable),
			coerce: func(e event.Event) (int64, error) {
				return coerceSigned(kind, e, math.MinInt64, math.MaxInt64)
			}}, nil
	case schema.Uint8:
		return &typedNumeric[uint8]{base: b, buf: buffers.NewPrimitiveBuffer[uint8](nullable),
			coerce: func(e event.Event) (uint8, error) {
				v, err := coerceUnsigned(kind, e, math.MaxUint8)
				return uint8(v), err
			}}, nil
	case schema.Uint16:
		return &typedNumeric[uint16]{base: b, buf: buffers.NewPrimitiveBuffer[uint16](nullable),
			coerce: func(e event.Event) (uint16, error) {
				v, err := coerceUnsigned(kind, e, math.MaxUint16)
				return uint16(v), err
			}}, nil
	case schema.Float16:
		return &typedNumeric[uint16]{base: b, buf: buffers.NewPrimitiveBuffer[uint16](nullable),
			coerce: func(e event.Event) (uint16, error) {
				if e.Tag != event.U16 {
					return 0, fieldpath.New(fieldpath.IncompatibleType,
						"float16 requires a raw U16 bit pattern, got %s", e.Tag)
				}
				return uint16(e.U64), nil
			}}, nil
	case schema.Uint32:
		return &typedNumeric[uint32]{base: b, buf: buffers.NewPrimitiveBuffer[uint32](nullable),
			coerce: func(e event.Event) (uint32, error) {
				v, err := coerceUnsigned(kind, e, math.MaxUint32)
				return uint32(v), err
			}}, nil
	case schema.Uint64:
		return &typedNumeric[uint64]{base: b, buf: buffers.NewPrimitiveBuffer[uint64](nullable),
			coerce: func(e event.Event) (uint64, error) {
				return coerceUnsigned(kind, e, math.MaxUint64)
			}}, nil
	case schema.Float32:
		return &typedNumeric[float32]{base: b, buf: buffers.NewPrimitiveBuffer[float32](nullable),
			coerce: func(e event.Event) (float32, error) {
				return float32(coerceFloat(e)), nil
			}}, nil
	case schema.Float64:
		return &typedNumeric[float64]{base: b, buf: buffers.NewPrimitiveBuffer[float64](nullable),
			coerce: func(e event.Event) (float64, error) {
				return coerceFloat(e), nil
			}}, nil
	default:
		return nil, fieldpath.New(fieldpath.IncompatibleType, "not a numeric kind: %s", kind)
	}
}
