package builder

import (
	"math/big"
	"time"

	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// temporalBuilder backs Date32/Date64/Time32/Time64/Timestamp/Duration: all
// of them are a single integer physical value at some unit, optionally
// produced by parsing an ISO-8601-ish string (spec.md §3.3 date strategies:
// UtcStrAsDate64 parses RFC3339 with an offset, NaiveStrAsDate64 parses a
// bare "YYYY-MM-DDTHH:MM:SS" with no offset). time.Parse/time.Duration are
// stdlib: no third-party example in the corpus owns calendar arithmetic, so
// this is the one temporal concern with no natural external library.
type temporalBuilder struct {
	base
	buf      *buffers.PrimitiveBuffer[int64]
	expect   event.Tag
	strategy schema.Strategy
	kind     schema.Kind
}

func newTemporalBuilder(b base) (Builder, error) {
	k := b.field.DataType.Kind
	tb := &temporalBuilder{base: b, buf: buffers.NewPrimitiveBuffer[int64](b.field.Nullable), kind: k}
	switch k {
	case schema.Date32, schema.Time32:
		tb.expect = event.I32
	case schema.Date64, schema.Time64, schema.Timestamp, schema.Duration:
		tb.expect = event.I64
	default:
		return nil, fieldpath.New(fieldpath.IncompatibleType, "not a temporal kind: %s", k)
	}
	tb.strategy, _ = b.field.Strategy()
	return tb, nil
}

func (tb *temporalBuilder) Len() int { return tb.buf.Len() }

func (tb *temporalBuilder) Accept(e event.Event) error {
	switch e.Tag {
	case tb.expect:
		tb.buf.PushValue(e.I64)
		return nil
	case event.I32:
		tb.buf.PushValue(e.I64)
		return nil
	case event.I64:
		tb.buf.PushValue(e.I64)
		return nil
	case event.Str, event.OwnedStr:
		v, err := tb.parseString(e.Str)
		if err != nil {
			return tb.ctx(fieldpath.New(fieldpath.ParseError, "%v", err))
		}
		tb.buf.PushValue(v)
		return nil
	case event.Null:
		return tb.ctx(tb.buf.PushNull())
	case event.Default:
		tb.buf.PushDefault()
		return nil
	default:
		return tb.unexpected(e.Tag)
	}
}

func (tb *temporalBuilder) parseString(s string) (int64, error) {
	switch tb.kind {
	case schema.Date64:
		if tb.strategy == schema.NaiveStrAsDate64 {
			t, err := time.Parse("2006-01-02T15:04:05", s)
			if err != nil {
				return 0, err
			}
			return t.UnixMilli(), nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return 0, err
		}
		return t.UnixMilli(), nil
	case schema.Date32:
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return 0, err
		}
		return int64(t.Unix() / 86400), nil
	case schema.Timestamp:
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return 0, err
		}
		return unitTicks(t, tb.field.DataType.Unit), nil
	case schema.Duration:
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, err
		}
		return durationTicks(d, tb.field.DataType.Unit), nil
	default:
		return 0, fieldpath.New(fieldpath.ParseError, "no string form for %s", tb.kind)
	}
}

func unitTicks(t time.Time, u schema.TimeUnit) int64 {
	switch u {
	case schema.Second:
		return t.Unix()
	case schema.Millisecond:
		return t.UnixMilli()
	case schema.Microsecond:
		return t.UnixMicro()
	default:
		return t.UnixNano()
	}
}

func durationTicks(d time.Duration, u schema.TimeUnit) int64 {
	switch u {
	case schema.Second:
		return int64(d / time.Second)
	case schema.Millisecond:
		return int64(d / time.Millisecond)
	case schema.Microsecond:
		return int64(d / time.Microsecond)
	default:
		return int64(d)
	}
}

func (tb *temporalBuilder) Take() *buffers.PrimitiveBuffer[int64] { return tb.buf.Take() }

func (tb *temporalBuilder) Snapshot() any { return tb.Take() }

// decimal128Builder backs Decimal128(precision, scale): the 128-bit value is
// stored little-endian two's-complement, matching Arrow's own layout, so
// arrowio can copy it straight into an arrow-go decimal128.Num.
type decimal128Builder struct {
	base
	buf *buffers.PrimitiveBuffer[[16]byte]
}

func newDecimal128Builder(b base) *decimal128Builder {
	return &decimal128Builder{base: b, buf: buffers.NewPrimitiveBuffer[[16]byte](b.field.Nullable)}
}

func (db *decimal128Builder) Len() int { return db.buf.Len() }

func (db *decimal128Builder) Accept(e event.Event) error {
	switch e.Tag {
	case event.Str, event.OwnedStr:
		enc, err := db.encode(e.Str)
		if err != nil {
			return db.ctx(fieldpath.New(fieldpath.ParseError, "%v", err))
		}
		db.buf.PushValue(enc)
		return nil
	case event.I64:
		db.buf.PushValue(encodeInt128(big.NewInt(e.I64)))
		return nil
	case event.Null:
		return db.ctx(db.buf.PushNull())
	case event.Default:
		db.buf.PushDefault()
		return nil
	default:
		return db.unexpected(e.Tag)
	}
}

// encode scales a decimal string like "123.45" by the field's scale and
// packs it into 16 little-endian two's-complement bytes.
func (db *decimal128Builder) encode(s string) ([16]byte, error) {
	scale := db.field.DataType.Scale
	r := new(big.Rat)
	if _, ok := r.SetString(s); !ok {
		return [16]byte{}, fieldpath.New(fieldpath.ParseError, "invalid decimal literal %q", s)
	}
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	r.Mul(r, new(big.Rat).SetInt(factor))
	scaled := new(big.Int).Quo(r.Num(), r.Denom())
	return encodeInt128(scaled), nil
}

func encodeInt128(v *big.Int) [16]byte {
	var out [16]byte
	neg := v.Sign() < 0
	mag := new(big.Int).Abs(v)
	b := mag.Bytes()
	for i := 0; i < len(b) && i < 16; i++ {
		out[i] = b[len(b)-1-i]
	}
	if neg {
		for i := range out {
			out[i] = ^out[i]
		}
		carry := byte(1)
		for i := 0; i < 16 && carry != 0; i++ {
			sum := uint16(out[i]) + uint16(carry)
			out[i] = byte(sum)
			carry = byte(sum >> 8)
		}
	}
	return out
}

func (db *decimal128Builder) Take() *buffers.PrimitiveBuffer[[16]byte] { return db.buf.Take() }

func (db *decimal128Builder) Snapshot() any { return db.Take() }
