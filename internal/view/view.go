// Package view implements the read side of spec.md §4.F: a tree of views
// mirroring the builder tree of internal/builder, each a
// event.RandomAccessDeserializer over the buffers a builder produced.
// Grounded on loicalleyne-bodkin's reader package (reader/reader.go,
// reader/recordfactory.go), which walks an Arrow schema to build a
// matching decode plan; generalized here to walk our own schema.Field tree
// and decode from our own buffers rather than arrow-go arrays.
package view

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// View is the read-side counterpart of builder.Builder.
type View interface {
	event.RandomAccessDeserializer
	Field() schema.Field
}

// base gives every concrete view Field()/ctx() plus a stub implementation
// of every RandomAccessDeserializer method that a given Kind doesn't use,
// so concrete views only need to override the handful that apply to them.
type base struct {
	field schema.Field
	path  string
	n     int
}

func (b base) Field() schema.Field { return b.field }
func (b base) Len() int            { return b.n }

func (b base) ctx(err error) error {
	return fieldpath.Annotate(err, b.path, b.field.DataType.Kind.String())
}

func (b base) wrongKind(method string) error {
	return b.ctx(fieldpath.New(fieldpath.IncompatibleType, "%s called on %s view", method, b.field.DataType.Kind))
}

func (b base) IsSome(i int) bool { return true }

func (b base) DeserializeAny(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeAny")
}
func (b base) DeserializeBool(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeBool")
}
func (b base) DeserializeI8(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeI8")
}
func (b base) DeserializeI16(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeI16")
}
func (b base) DeserializeI32(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeI32")
}
func (b base) DeserializeI64(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeI64")
}
func (b base) DeserializeU8(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeU8")
}
func (b base) DeserializeU16(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeU16")
}
func (b base) DeserializeU32(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeU32")
}
func (b base) DeserializeU64(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeU64")
}
func (b base) DeserializeF32(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeF32")
}
func (b base) DeserializeF64(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeF64")
}
func (b base) DeserializeStr(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeStr")
}
func (b base) DeserializeOption(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeOption")
}
func (b base) DeserializeSeq(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeSeq")
}
func (b base) DeserializeStruct(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeStruct")
}
func (b base) DeserializeMap(i int, v event.Visitor) (any, error) {
	return nil, b.wrongKind("DeserializeMap")
}

// withOption wraps a nullable view's DeserializeAny so a null row resolves
// via v.VisitNull() and a present row delegates to decode.
func withOption(nullable bool, isNull func(i int) bool, decode func(i int, v event.Visitor) (any, error)) func(int, event.Visitor) (any, error) {
	return func(i int, v event.Visitor) (any, error) {
		if nullable && isNull(i) {
			return v.VisitNull()
		}
		return decode(i, v)
	}
}
