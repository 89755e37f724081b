package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagString(t *testing.T) {
	assert.Equal(t, "StartStruct", StartStruct.String())
	assert.Equal(t, "I64", I64.String())
	assert.Equal(t, "Tag(?)", Tag(999).String())
}

func TestEventConstructors(t *testing.T) {
	assert.Equal(t, Event{Tag: Bool, Bool: true}, EvBool(true))
	assert.Equal(t, Event{Tag: I64, I64: -7}, EvI64(-7))
	assert.Equal(t, Event{Tag: U8, U64: 255}, EvU8(255))
	assert.Equal(t, Event{Tag: Str, Str: "hi"}, EvStr("hi"))
	assert.Equal(t, Event{Tag: StructField, VariantName: "name"}, EvStructField("name"))
	assert.Equal(t, Event{Tag: Variant, VariantName: "A", VariantIndex: 2}, EvVariant("A", 2))
}

// recordingSink captures every event handed to it, for asserting on the
// shape emitted by AcceptXxx helpers.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Accept(e Event) error {
	s.events = append(s.events, e)
	return nil
}

func TestAcceptHelpers(t *testing.T) {
	s := &recordingSink{}
	require.NoError(t, AcceptStartStruct(s))
	require.NoError(t, AcceptStructField(s, "id"))
	require.NoError(t, AcceptBool(s, true))
	require.NoError(t, AcceptEndStruct(s))

	require.Len(t, s.events, 4)
	assert.Equal(t, StartStruct, s.events[0].Tag)
	assert.Equal(t, "id", s.events[1].VariantName)
	assert.True(t, s.events[2].Bool)
	assert.Equal(t, EndStruct, s.events[3].Tag)
}

// stubVisitor implements Visitor by returning the raw value it is handed,
// enough to exercise At/DeserializeAny plumbing without a real builder.
type stubVisitor struct{}

func (stubVisitor) VisitNull() (any, error)        { return nil, nil }
func (stubVisitor) VisitBool(v bool) (any, error)  { return v, nil }
func (stubVisitor) VisitI8(v int8) (any, error)    { return v, nil }
func (stubVisitor) VisitI16(v int16) (any, error)  { return v, nil }
func (stubVisitor) VisitI32(v int32) (any, error)  { return v, nil }
func (stubVisitor) VisitI64(v int64) (any, error)  { return v, nil }
func (stubVisitor) VisitU8(v uint8) (any, error)   { return v, nil }
func (stubVisitor) VisitU16(v uint16) (any, error) { return v, nil }
func (stubVisitor) VisitU32(v uint32) (any, error) { return v, nil }
func (stubVisitor) VisitU64(v uint64) (any, error) { return v, nil }
func (stubVisitor) VisitF32(v float32) (any, error) { return v, nil }
func (stubVisitor) VisitF64(v float64) (any, error) { return v, nil }
func (stubVisitor) VisitStr(v string) (any, error)  { return v, nil }
func (stubVisitor) VisitSeq(next func() (any, bool, error)) (any, error) {
	var out []any
	for {
		v, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
func (stubVisitor) VisitStruct(next func() (string, any, bool, error)) (any, error) {
	out := map[string]any{}
	for {
		name, v, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out[name] = v
	}
}
func (stubVisitor) VisitMap(next func() (any, any, bool, error)) (any, error) {
	out := map[any]any{}
	for {
		k, v, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out[k] = v
	}
}

// fakeRowDeserializer answers DeserializeAny for row i with the string
// stored at rows[i], to exercise the At(d,i) positional wrapper.
type fakeRowDeserializer struct {
	rows []string
}

func (f fakeRowDeserializer) Len() int          { return len(f.rows) }
func (f fakeRowDeserializer) IsSome(i int) bool { return true }
func (f fakeRowDeserializer) DeserializeAny(i int, v Visitor) (any, error) {
	return v.VisitStr(f.rows[i])
}
func (f fakeRowDeserializer) DeserializeBool(i int, v Visitor) (any, error) { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeI8(i int, v Visitor) (any, error)   { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeI16(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeI32(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeI64(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeU8(i int, v Visitor) (any, error)   { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeU16(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeU32(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeU64(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeF32(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeF64(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeStr(i int, v Visitor) (any, error)  { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeOption(i int, v Visitor) (any, error) { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeSeq(i int, v Visitor) (any, error)    { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeStruct(i int, v Visitor) (any, error) { return nil, errors.New("unused") }
func (f fakeRowDeserializer) DeserializeMap(i int, v Visitor) (any, error)    { return nil, errors.New("unused") }

func TestAtBindsPositionalWrapper(t *testing.T) {
	d := fakeRowDeserializer{rows: []string{"a", "b", "c"}}
	got, err := At(d, 1)(stubVisitor{})
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}
