package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowtrait/traitarrow/schema"
)

func findField(sc *schema.Schema, name string) (schema.Field, bool) {
	for _, f := range sc.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return schema.Field{}, false
}

func TestFromSamplesScalarTypes(t *testing.T) {
	sc, err := FromSamples([]any{
		map[string]any{"id": int64(1), "name": "alice", "active": true},
		map[string]any{"id": int64(2), "name": "bob", "active": false},
	})
	require.NoError(t, err)

	id, ok := findField(sc, "id")
	require.True(t, ok)
	assert.Equal(t, schema.Int64, id.DataType.Kind)
	assert.False(t, id.Nullable)

	name, ok := findField(sc, "name")
	require.True(t, ok)
	assert.Equal(t, schema.Utf8, name.DataType.Kind)

	active, ok := findField(sc, "active")
	require.True(t, ok)
	assert.Equal(t, schema.Boolean, active.DataType.Kind)
}

func TestFromSamplesCoercesMixedNumerics(t *testing.T) {
	sc, err := FromSamples([]any{
		map[string]any{"n": int32(1)},
		map[string]any{"n": 3.5},
	})
	require.NoError(t, err)
	n, ok := findField(sc, "n")
	require.True(t, ok)
	assert.Equal(t, schema.Float64, n.DataType.Kind)
}

func TestFromSamplesRejectsNumericConflictWithoutCoercion(t *testing.T) {
	_, err := FromSamples([]any{
		map[string]any{"n": int32(1)},
		map[string]any{"n": 3.5},
	}, WithCoerceNumbers(false))
	require.Error(t, err)
}

func TestFromSamplesNullableFromMissingRow(t *testing.T) {
	sc, err := FromSamples([]any{
		map[string]any{"id": int64(1), "extra": "x"},
		map[string]any{"id": int64(2)},
	})
	require.NoError(t, err)
	extra, ok := findField(sc, "extra")
	require.True(t, ok)
	assert.True(t, extra.Nullable)
}

func TestFromSamplesGuessDatesAppliesStrategy(t *testing.T) {
	sc, err := FromSamples([]any{
		map[string]any{"created": "2024-01-02T03:04:05Z"},
		map[string]any{"created": "2024-06-07T08:09:10Z"},
	})
	require.NoError(t, err)
	created, ok := findField(sc, "created")
	require.True(t, ok)
	assert.Equal(t, schema.Date64, created.DataType.Kind)
	strat, ok := created.Strategy()
	require.True(t, ok)
	assert.Equal(t, schema.UtcStrAsDate64, strat)
}

func TestFromSamplesListOfStruct(t *testing.T) {
	sc, err := FromSamples([]any{
		map[string]any{"items": []any{
			map[string]any{"sku": "A1", "qty": int64(2)},
		}},
	})
	require.NoError(t, err)
	items, ok := findField(sc, "items")
	require.True(t, ok)
	require.Equal(t, schema.List, items.DataType.Kind)
	require.NotNil(t, items.DataType.Child)
	assert.Equal(t, schema.Struct, items.DataType.Child.DataType.Kind)
}

func TestFromSamplesMapAsStructDefault(t *testing.T) {
	sc, err := FromSamples([]any{
		map[string]any{"attrs": map[string]any{"x": int64(1)}},
	})
	require.NoError(t, err)
	attrs, ok := findField(sc, "attrs")
	require.True(t, ok)
	assert.Equal(t, schema.Struct, attrs.DataType.Kind)
	strat, ok := attrs.Strategy()
	require.True(t, ok)
	assert.Equal(t, schema.MapAsStruct, strat)
}

func TestFromSamplesMapWhenMapAsStructDisabled(t *testing.T) {
	sc, err := FromSamples([]any{
		map[string]any{"attrs": map[string]any{"x": int64(1)}},
	}, WithMapAsStruct(false))
	require.NoError(t, err)
	attrs, ok := findField(sc, "attrs")
	require.True(t, ok)
	assert.Equal(t, schema.Map, attrs.DataType.Kind)
}

func TestFromSamplesNullOnlyFieldRejectedWithoutAllowNullFields(t *testing.T) {
	_, err := FromSamples([]any{
		map[string]any{"x": nil},
	}, WithAllowNullFields(false))
	assert.Error(t, err)
}

func TestFromSamplesOverwriteReplacesSubtree(t *testing.T) {
	override := schema.NewField("id", schema.Utf8Type, false)
	sc, err := FromSamples([]any{
		map[string]any{"id": int64(1)},
	}, WithOverwrite("$.id", override))
	require.NoError(t, err)
	id, ok := findField(sc, "id")
	require.True(t, ok)
	assert.Equal(t, schema.Utf8, id.DataType.Kind)
}

type traceablePerson struct {
	Name string `json:"name"`
	Age  int64  `json:"age"`
}

func TestFromTypeStruct(t *testing.T) {
	sc, err := FromType[traceablePerson]()
	require.NoError(t, err)
	name, ok := findField(sc, "name")
	require.True(t, ok)
	assert.Equal(t, schema.Utf8, name.DataType.Kind)
	age, ok := findField(sc, "age")
	require.True(t, ok)
	assert.Equal(t, schema.Int64, age.DataType.Kind)
}

type withMapField struct {
	Attrs map[string]int64 `json:"attrs"`
}

func TestFromTypeErrorsOnMapWithMapAsStructDefault(t *testing.T) {
	_, err := FromType[withMapField]()
	assert.Error(t, err)
}

func TestFromTypeAllowsMapWhenMapAsStructDisabled(t *testing.T) {
	sc, err := FromType[withMapField](WithMapAsStruct(false))
	require.NoError(t, err)
	attrs, ok := findField(sc, "attrs")
	require.True(t, ok)
	assert.Equal(t, schema.Map, attrs.DataType.Kind)
}

type deepA struct{ B deepB }
type deepB struct{ C deepC }
type deepC struct{ D int64 }

func TestFromTypeBudgetExhausted(t *testing.T) {
	_, err := FromType[deepA](WithFromTypeBudget(1))
	require.Error(t, err)
}

func TestFromTypeBudgetZeroIsUnbounded(t *testing.T) {
	_, err := FromType[deepA](WithFromTypeBudget(0))
	require.NoError(t, err)
}
