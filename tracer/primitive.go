package tracer

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// acceptUnknown resolves an Unknown node's shape from the first event it
// sees, then re-dispatches the same event to the now-established shape's
// handler (spec.md §4.G: "each event either transitions the current node
// or creates children").
func (n *node) acceptUnknown(e event.Event) error {
	switch e.Tag {
	case event.Null:
		n.nullable = true
		return nil
	case event.Some:
		n.nullable = true
		return nil
	case event.Default:
		return nil
	case event.Bool:
		n.becomePrimitive(schema.BooleanType, "")
		return n.acceptPrimitive(e)
	case event.I8, event.I16, event.I32, event.I64,
		event.U8, event.U16, event.U32, event.U64, event.F32, event.F64:
		n.becomePrimitive(numericSeed(e.Tag), "")
		return n.acceptPrimitive(e)
	case event.Str, event.OwnedStr:
		n.becomePrimitive(n.stringType(), "")
		return n.acceptPrimitive(e)
	case event.StartSequence, event.StartTuple:
		n.shape = shapeList
		if n.child == nil {
			n.child = newNode("element", fieldpath.Element(n.path), n.opts)
		}
		return n.acceptList(e)
	case event.StartStruct:
		n.shape = shapeStruct
		n.fields = newOrderedFields()
		n.seenThisRow = map[string]bool{}
		return n.acceptStruct(e)
	case event.StartMap:
		if n.opts.MapAsStruct {
			n.shape = shapeStruct
			n.fields = newOrderedFields()
			n.seenThisRow = map[string]bool{}
			n.mapEntryDecode = true
			return n.acceptStruct(e)
		}
		n.shape = shapeMap
		return n.acceptMap(e)
	case event.Variant:
		n.shape = shapeUnion
		n.variants = newOrderedFields()
		return n.acceptUnion(e)
	default:
		return fieldpath.New(fieldpath.UnexpectedEvent, "tracer: unexpected event %s on unknown node", e.Tag)
	}
}

func (n *node) becomePrimitive(dt schema.DataType, strategy schema.Strategy) {
	n.shape = shapePrimitive
	n.dtype = dt
	n.strategy = strategy
}

func numericSeed(t event.Tag) schema.DataType {
	switch t {
	case event.I8:
		return schema.Int8Type
	case event.I16:
		return schema.Int16Type
	case event.I32:
		return schema.Int32Type
	case event.I64:
		return schema.Int64Type
	case event.U8:
		return schema.Uint8Type
	case event.U16:
		return schema.Uint16Type
	case event.U32:
		return schema.DataType{Kind: schema.Uint32}
	case event.U64:
		return schema.DataType{Kind: schema.Uint64}
	case event.F32:
		return schema.Float32Type
	default:
		return schema.Float64Type
	}
}

func (n *node) stringType() schema.DataType {
	if n.opts.StringDictionaryEncoding {
		vt := schema.LargeUtf8Type
		if !n.opts.StringsAsLargeUtf8 {
			vt = schema.Utf8Type
		}
		return schema.DictionaryOf(schema.DataType{Kind: schema.Uint32}, vt)
	}
	if n.opts.StringsAsLargeUtf8 {
		return schema.LargeUtf8Type
	}
	return schema.Utf8Type
}

// acceptPrimitive folds new evidence into an already-typed scalar node,
// applying the numeric coercion matrix and date-guessing rules of spec.md
// §4.G/§8 and erroring with InconsistentTypes when no coercion rule
// reconciles the conflict.
func (n *node) acceptPrimitive(e event.Event) error {
	switch e.Tag {
	case event.Null, event.Some:
		n.nullable = true
		return nil
	case event.Default:
		return nil
	case event.Bool:
		if n.dtype.Kind != schema.Boolean {
			return n.inconsistent(schema.BooleanType)
		}
		return nil
	case event.I8, event.I16, event.I32, event.I64,
		event.U8, event.U16, event.U32, event.U64, event.F32, event.F64:
		return n.foldNumeric(numericSeed(e.Tag))
	case event.Str, event.OwnedStr:
		return n.foldString(e.Str)
	default:
		return fieldpath.New(fieldpath.UnexpectedEvent, "tracer: unexpected event %s on primitive node", e.Tag)
	}
}

func (n *node) inconsistent(seen schema.DataType) error {
	return n.ctx(fieldpath.New(fieldpath.InconsistentTypes,
		"incompatible evidence for %q: already %s, now %s", n.path, n.dtype.Kind, seen.Kind))
}

// foldNumeric applies spec.md §8's numeric coercion matrix:
// unsigned+unsigned -> widest u64, signed+signed -> widest i64,
// signed+unsigned -> i64, any+float -> f64.
func (n *node) foldNumeric(seen schema.DataType) error {
	if n.dtype.Kind == seen.Kind {
		return nil
	}
	if !n.opts.CoerceNumbers {
		if isNumericKind(n.dtype.Kind) && isNumericKind(seen.Kind) {
			return n.inconsistent(seen)
		}
		return n.inconsistent(seen)
	}
	if !isNumericKind(n.dtype.Kind) {
		return n.inconsistent(seen)
	}
	n.dtype = widenNumeric(n.dtype, seen)
	return nil
}

func isNumericKind(k schema.Kind) bool {
	switch k {
	case schema.Int8, schema.Int16, schema.Int32, schema.Int64,
		schema.Uint8, schema.Uint16, schema.Uint32, schema.Uint64,
		schema.Float32, schema.Float64:
		return true
	default:
		return false
	}
}

func isFloatKind(k schema.Kind) bool { return k == schema.Float32 || k == schema.Float64 }
func isUnsignedKind(k schema.Kind) bool {
	switch k {
	case schema.Uint8, schema.Uint16, schema.Uint32, schema.Uint64:
		return true
	default:
		return false
	}
}
func isSignedKind(k schema.Kind) bool {
	switch k {
	case schema.Int8, schema.Int16, schema.Int32, schema.Int64:
		return true
	default:
		return false
	}
}

// widenNumeric implements the matrix of spec.md §8: {U8,U16}->U16 (widest
// unsigned), {U16,I16}->I64 (mixed sign promotes to the 64-bit signed
// type), {I32,F32}->F64 (any float mixed with anything promotes to F64).
func widenNumeric(a, b schema.DataType) schema.DataType {
	if isFloatKind(a.Kind) || isFloatKind(b.Kind) {
		return schema.Float64Type
	}
	if isUnsignedKind(a.Kind) && isUnsignedKind(b.Kind) {
		return schema.DataType{Kind: widestUnsigned(a.Kind, b.Kind)}
	}
	if isSignedKind(a.Kind) && isSignedKind(b.Kind) {
		return schema.Int64Type
	}
	// one signed, one unsigned (or the zero-value mix from Finalize re-entry).
	return schema.Int64Type
}

var unsignedRank = map[schema.Kind]int{schema.Uint8: 1, schema.Uint16: 2, schema.Uint32: 3, schema.Uint64: 4}

func widestUnsigned(a, b schema.Kind) schema.Kind {
	if unsignedRank[a] >= unsignedRank[b] {
		return a
	}
	return b
}

// foldString applies spec.md §4.G's guess_dates rule: a string matching the
// ISO-ish timestamp pattern traces as Date64 with a strategy, and a later
// incompatible string downgrades back to a plain Utf8-ish column.
func (n *node) foldString(s string) error {
	if n.dtype.Kind == schema.Date64 {
		if n.opts.GuessDates && (utcDateRe.MatchString(s) || naiveDateRe.MatchString(s)) {
			if utcDateRe.MatchString(s) && n.strategy != schema.UtcStrAsDate64 {
				n.strategy = schema.UtcStrAsDate64
			}
			return nil
		}
		// Incompatible string: downgrade to a plain string column.
		n.dtype = n.stringType()
		n.strategy = schema.StrategyNone
		return nil
	}
	if !isStringKind(n.dtype.Kind) {
		return n.inconsistent(n.stringType())
	}
	if n.opts.GuessDates {
		if utcDateRe.MatchString(s) {
			n.dtype = schema.Date64Type
			n.strategy = schema.UtcStrAsDate64
			return nil
		}
		if naiveDateRe.MatchString(s) {
			n.dtype = schema.Date64Type
			n.strategy = schema.NaiveStrAsDate64
			return nil
		}
	}
	return nil
}

func isStringKind(k schema.Kind) bool {
	switch k {
	case schema.Utf8, schema.LargeUtf8, schema.Utf8View, schema.Dictionary:
		return true
	default:
		return false
	}
}
