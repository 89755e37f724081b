// Package event implements the neutral visitor protocol of spec.md §4.D:
// a tagged stream of events plus the Sink/RandomAccessDeserializer
// interfaces that, respectively, the column builders and column readers
// implement. The concrete host visitor/framework that produces or consumes
// these events (serde, JSON, reflection over a Go struct, ...) is an
// external collaborator per spec.md §1; package hostshim provides one
// concrete instance of it.
package event

// Tag identifies the kind of Event.
type Tag int

const (
	StartSequence Tag = iota
	EndSequence
	StartTuple
	EndTuple
	StartStruct
	EndStruct
	StartMap
	EndMap
	Item
	StructField
	Some
	Null
	Variant
	Bool
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Str
	OwnedStr
	Default
)

func (t Tag) String() string {
	names := [...]string{
		"StartSequence", "EndSequence", "StartTuple", "EndTuple",
		"StartStruct", "EndStruct", "StartMap", "EndMap", "Item", "StructField",
		"Some", "Null", "Variant", "Bool", "I8", "I16", "I32", "I64",
		"U8", "U16", "U32", "U64", "F32", "F64", "Str", "OwnedStr", "Default",
	}
	if int(t) < 0 || int(t) >= len(names) {
		return "Tag(?)"
	}
	return names[t]
}

// Event is one token of the neutral stream (spec.md §4.D).
type Event struct {
	Tag Tag

	Bool bool
	I64  int64 // carries I8..I64 sign-extended
	U64  uint64 // carries U8..U64 zero-extended
	F32  float32
	F64  float64
	Str  string // Str (borrowed semantics are irrelevant in Go) or OwnedStr

	VariantName  string
	VariantIndex int
}

func (e Event) String() string { return e.Tag.String() }

func EvStartSequence() Event { return Event{Tag: StartSequence} }
func EvEndSequence() Event   { return Event{Tag: EndSequence} }
func EvStartTuple() Event    { return Event{Tag: StartTuple} }
func EvEndTuple() Event      { return Event{Tag: EndTuple} }
func EvStartStruct() Event   { return Event{Tag: StartStruct} }
func EvEndStruct() Event     { return Event{Tag: EndStruct} }
func EvStartMap() Event      { return Event{Tag: StartMap} }
func EvEndMap() Event        { return Event{Tag: EndMap} }
func EvItem() Event          { return Event{Tag: Item} }

// EvStructField marks the next value as belonging to the named struct
// field; it precedes that field's own value event(s) (spec.md §4.E.1).
func EvStructField(name string) Event { return Event{Tag: StructField, VariantName: name} }
func EvSome() Event          { return Event{Tag: Some} }
func EvNull() Event          { return Event{Tag: Null} }
func EvDefault() Event       { return Event{Tag: Default} }
func EvVariant(name string, index int) Event {
	return Event{Tag: Variant, VariantName: name, VariantIndex: index}
}
func EvBool(v bool) Event    { return Event{Tag: Bool, Bool: v} }
func EvI8(v int8) Event      { return Event{Tag: I8, I64: int64(v)} }
func EvI16(v int16) Event    { return Event{Tag: I16, I64: int64(v)} }
func EvI32(v int32) Event    { return Event{Tag: I32, I64: int64(v)} }
func EvI64(v int64) Event    { return Event{Tag: I64, I64: v} }
func EvU8(v uint8) Event     { return Event{Tag: U8, U64: uint64(v)} }
func EvU16(v uint16) Event   { return Event{Tag: U16, U64: uint64(v)} }
func EvU32(v uint32) Event   { return Event{Tag: U32, U64: uint64(v)} }
func EvU64(v uint64) Event   { return Event{Tag: U64, U64: v} }
func EvF32(v float32) Event  { return Event{Tag: F32, F32: v} }
func EvF64(v float64) Event  { return Event{Tag: F64, F64: v} }
func EvStr(s string) Event      { return Event{Tag: Str, Str: s} }
func EvOwnedStr(s string) Event { return Event{Tag: OwnedStr, Str: s} }

// Sink is the single-method acceptor every builder implements (spec.md
// §4.D): `one method accept(event) plus helpers for each event variant`.
// The helpers live as the free Accept* functions below so concrete Sinks
// only need to implement Accept.
type Sink interface {
	Accept(e Event) error
}

func AcceptStartSequence(s Sink) error { return s.Accept(EvStartSequence()) }
func AcceptEndSequence(s Sink) error   { return s.Accept(EvEndSequence()) }
func AcceptStartStruct(s Sink) error   { return s.Accept(EvStartStruct()) }
func AcceptEndStruct(s Sink) error     { return s.Accept(EvEndStruct()) }
func AcceptStartMap(s Sink) error      { return s.Accept(EvStartMap()) }
func AcceptEndMap(s Sink) error        { return s.Accept(EvEndMap()) }
func AcceptItem(s Sink) error          { return s.Accept(EvItem()) }
func AcceptNull(s Sink) error          { return s.Accept(EvNull()) }
func AcceptSome(s Sink) error          { return s.Accept(EvSome()) }
func AcceptBool(s Sink, v bool) error  { return s.Accept(EvBool(v)) }
func AcceptStr(s Sink, v string) error { return s.Accept(EvStr(v)) }
func AcceptVariant(s Sink, name string, index int) error {
	return s.Accept(EvVariant(name, index))
}
func AcceptStructField(s Sink, name string) error { return s.Accept(EvStructField(name)) }
