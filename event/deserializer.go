package event

// Visitor is the symmetric counterpart of Sink on the read side: a host
// value-builder that a RandomAccessDeserializer drives one call at a time
// (spec.md §4.D/§4.F: "a positional Deserializer consumes a ViewTree and
// drives a host visitor"). Every method returns the host value it built so
// a nested call (VisitSeq, VisitStruct, VisitMap) can hand results back up
// without the visitor needing any shared mutable state of its own, though
// concrete visitors are free to ignore the return value and accumulate
// into themselves instead.
type Visitor interface {
	VisitNull() (any, error)
	VisitBool(v bool) (any, error)
	VisitI8(v int8) (any, error)
	VisitI16(v int16) (any, error)
	VisitI32(v int32) (any, error)
	VisitI64(v int64) (any, error)
	VisitU8(v uint8) (any, error)
	VisitU16(v uint16) (any, error)
	VisitU32(v uint32) (any, error)
	VisitU64(v uint64) (any, error)
	VisitF32(v float32) (any, error)
	VisitF64(v float64) (any, error)
	VisitStr(v string) (any, error)

	// VisitSeq/VisitStruct/VisitMap receive a callback they invoke once per
	// child element/field/entry, each call driving one more position of the
	// underlying RandomAccessDeserializer; the visitor returns the
	// assembled host value once the callback signals exhaustion by
	// returning (false, nil).
	VisitSeq(next func() (any, bool, error)) (any, error)
	VisitStruct(next func() (string, any, bool, error)) (any, error)
	VisitMap(next func() (any, any, bool, error)) (any, error)
}

// RandomAccessDeserializer is the read-side mirror of Sink: rather than a
// push stream, it exposes one method per primitive kind, each parameterized
// by a row index so any position can be decoded independently (spec.md
// §4.D, §4.F).
type RandomAccessDeserializer interface {
	Len() int
	IsSome(i int) bool

	DeserializeAny(i int, v Visitor) (any, error)
	DeserializeBool(i int, v Visitor) (any, error)
	DeserializeI8(i int, v Visitor) (any, error)
	DeserializeI16(i int, v Visitor) (any, error)
	DeserializeI32(i int, v Visitor) (any, error)
	DeserializeI64(i int, v Visitor) (any, error)
	DeserializeU8(i int, v Visitor) (any, error)
	DeserializeU16(i int, v Visitor) (any, error)
	DeserializeU32(i int, v Visitor) (any, error)
	DeserializeU64(i int, v Visitor) (any, error)
	DeserializeF32(i int, v Visitor) (any, error)
	DeserializeF64(i int, v Visitor) (any, error)
	DeserializeStr(i int, v Visitor) (any, error)
	DeserializeOption(i int, v Visitor) (any, error)
	DeserializeSeq(i int, v Visitor) (any, error)
	DeserializeStruct(i int, v Visitor) (any, error)
	DeserializeMap(i int, v Visitor) (any, error)
}

// At binds a RandomAccessDeserializer to one row, giving back a thunk that
// drives DeserializeAny(i, v) for any visitor -- the positional wrapper
// spec.md §4.D calls out explicitly ("the `At(d,i)` wrapper").
func At(d RandomAccessDeserializer, i int) func(Visitor) (any, error) {
	return func(v Visitor) (any, error) { return d.DeserializeAny(i, v) }
}
