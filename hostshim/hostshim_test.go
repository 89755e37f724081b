package hostshim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowtrait/traitarrow/event"
)

func TestToMapFromJSONBytes(t *testing.T) {
	m, err := ToMap([]byte(`{"a": 1, "b": "x"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", m["b"])
	n, ok := m["a"].(interface{ Int64() (int64, error) })
	require.True(t, ok)
	v, err := n.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestToMapFromStruct(t *testing.T) {
	type row struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	m, err := ToMap(row{ID: 7, Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, "n", m["name"])
}

func TestToMapNilInput(t *testing.T) {
	_, err := ToMap(nil)
	assert.ErrorIs(t, err, ErrUndefinedInput)
}

// recordingSink captures the tag sequence emitted by WalkRow/WalkValue.
type recordingSink struct {
	tags []event.Tag
	evs  []event.Event
}

func (s *recordingSink) Accept(e event.Event) error {
	s.tags = append(s.tags, e.Tag)
	s.evs = append(s.evs, e)
	return nil
}

func TestWalkRowEmitsBracketedStruct(t *testing.T) {
	s := &recordingSink{}
	require.NoError(t, WalkRow(map[string]any{"a": int64(1), "b": "x"}, s))
	require.True(t, len(s.tags) >= 4)
	assert.Equal(t, event.StartStruct, s.tags[0])
	assert.Equal(t, event.EndStruct, s.tags[len(s.tags)-1])
}

func TestWalkValueSliceEmitsSequenceBrackets(t *testing.T) {
	s := &recordingSink{}
	require.NoError(t, WalkValue([]any{"a", "b"}, s))
	assert.Equal(t, event.StartSequence, s.tags[0])
	assert.Equal(t, event.EndSequence, s.tags[len(s.tags)-1])
}

func TestWalkValueTypedMapEmitsMapEntryStructs(t *testing.T) {
	s := &recordingSink{}
	require.NoError(t, WalkValue(map[string]int64{"k": 9}, s))
	require.Equal(t, event.StartMap, s.tags[0])
	require.Equal(t, event.EndMap, s.tags[len(s.tags)-1])

	var fieldNames []string
	for _, e := range s.evs {
		if e.Tag == event.StructField {
			fieldNames = append(fieldNames, e.VariantName)
		}
	}
	assert.Equal(t, []string{"key", "value"}, fieldNames)
}

func TestWalkValueNilEmitsNull(t *testing.T) {
	s := &recordingSink{}
	require.NoError(t, WalkValue(nil, s))
	require.Len(t, s.tags, 1)
	assert.Equal(t, event.Null, s.tags[0])
}

func TestGoVisitorRoundTripsScalarsAndContainers(t *testing.T) {
	v := GoVisitor{}

	got, err := v.VisitI64(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	seq, err := v.VisitSeq(func() (any, bool, error) {
		return nil, false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []any{}, seq)

	i := 0
	items := []any{"a", "b"}
	got, err = v.VisitSeq(func() (any, bool, error) {
		if i >= len(items) {
			return nil, false, nil
		}
		x := items[i]
		i++
		return x, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)

	fields := []struct {
		name string
		val  any
	}{{"id", int64(1)}, {"name", "x"}}
	j := 0
	got, err = v.VisitStruct(func() (string, any, bool, error) {
		if j >= len(fields) {
			return "", nil, false, nil
		}
		f := fields[j]
		j++
		return f.name, f.val, true, nil
	})
	require.NoError(t, err)
	m := got.(map[string]any)
	assert.Equal(t, int64(1), m["id"])
	assert.Equal(t, "x", m["name"])
}
