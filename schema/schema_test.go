package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataTypeScalarsAndAliases(t *testing.T) {
	dt, err := ParseDataType("I64")
	require.NoError(t, err)
	assert.True(t, dt.Equal(Int64Type))

	dt, err = ParseDataType("Bool")
	require.NoError(t, err)
	assert.True(t, dt.Equal(BooleanType))

	_, err = ParseDataType("NotAType")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestParseDataTypeWithArguments(t *testing.T) {
	dt, err := ParseDataType("FixedSizeBinary(16)")
	require.NoError(t, err)
	assert.Equal(t, int32(16), dt.FixedSize)

	dt, err = ParseDataType("Timestamp(Millisecond, None)")
	require.NoError(t, err)
	assert.Equal(t, Millisecond, dt.Unit)
	assert.Nil(t, dt.Timezone)

	dt, err = ParseDataType(`Timestamp(Microsecond, Some("UTC"))`)
	require.NoError(t, err)
	require.NotNil(t, dt.Timezone)
	assert.Equal(t, "UTC", *dt.Timezone)

	dt, err = ParseDataType("Decimal128(38, 10)")
	require.NoError(t, err)
	assert.Equal(t, uint8(38), dt.Precision)
	assert.Equal(t, int8(10), dt.Scale)
}

func TestDataTypeStringRoundTrip(t *testing.T) {
	cases := []DataType{
		Int64Type,
		FixedSizeBinaryOf(4),
		Time32Of(Second),
		DurationOf(Nanosecond),
		TimestampOf(Millisecond, nil),
		Decimal128Of(10, 2),
	}
	for _, dt := range cases {
		s := dt.String()
		parsed, err := ParseDataType(s)
		require.NoError(t, err)
		assert.Truef(t, dt.Equal(parsed), "round trip of %s produced %s", s, parsed.String())
	}
}

func TestNewFieldNullNormalization(t *testing.T) {
	f := NewField("x", NullType, false)
	assert.True(t, f.Nullable)
}

func TestFieldStrategy(t *testing.T) {
	f := NewField("created", Date64Type, true)
	_, ok := f.Strategy()
	assert.False(t, ok)

	f = f.WithStrategy(UtcStrAsDate64)
	s, ok := f.Strategy()
	require.True(t, ok)
	assert.Equal(t, UtcStrAsDate64, s)

	f = f.WithStrategy(StrategyNone)
	_, ok = f.Strategy()
	assert.False(t, ok)
}

func TestSchemaFromJSONBareArray(t *testing.T) {
	doc := `[
		{"name": "id", "data_type": "I64", "nullable": false},
		{"name": "name", "data_type": "Utf8"}
	]`
	sc, err := FromJSON([]byte(doc))
	require.NoError(t, err)
	require.Len(t, sc.Fields, 2)
	assert.Equal(t, "id", sc.Fields[0].Name)
	assert.False(t, sc.Fields[0].Nullable)
	assert.False(t, sc.Fields[1].Nullable)
}

func TestSchemaFromJSONWrappedObject(t *testing.T) {
	doc := `{"fields": [{"name": "id", "data_type": "I64"}]}`
	sc, err := FromJSON([]byte(doc))
	require.NoError(t, err)
	require.Len(t, sc.Fields, 1)
}

func TestSchemaFromJSONNestedListOfStruct(t *testing.T) {
	doc := `{
		"fields": [
			{
				"name": "tags",
				"data_type": "List",
				"children": [
					{
						"name": "item",
						"data_type": "Struct",
						"children": [
							{"name": "key", "data_type": "Utf8", "nullable": false}
						]
					}
				]
			}
		]
	}`
	sc, err := FromJSON([]byte(doc))
	require.NoError(t, err)
	require.Len(t, sc.Fields, 1)
	f := sc.Fields[0]
	require.Equal(t, List, f.DataType.Kind)
	require.NotNil(t, f.DataType.Child)
	assert.Equal(t, Struct, f.DataType.Child.DataType.Kind)
	require.Len(t, f.DataType.Child.DataType.Children, 1)
	assert.Equal(t, "key", f.DataType.Child.DataType.Children[0].Name)
}

func TestSchemaFromJSONMapRequiresEntryStruct(t *testing.T) {
	doc := `{
		"fields": [
			{"name": "m", "data_type": "Map", "children": [{"name": "item", "data_type": "Utf8"}]}
		]
	}`
	_, err := FromJSON([]byte(doc))
	assert.ErrorIs(t, err, ErrInvalidChildren)
}

func TestSchemaToJSONRoundTrip(t *testing.T) {
	original := &Schema{Fields: []Field{
		NewField("id", Int64Type, false),
		NewField("name", Utf8Type, true),
		NewField("amount", Decimal128Of(20, 4), true),
		NewField("tags", ListOf(NewField("item", Utf8Type, true)), true),
	}}
	doc, err := original.ToJSON()
	require.NoError(t, err)

	round, err := FromJSON(doc)
	require.NoError(t, err)
	require.Len(t, round.Fields, len(original.Fields))
	for i := range original.Fields {
		assert.Truef(t, original.Fields[i].Equal(round.Fields[i]), "field %d mismatch: %+v vs %+v", i, original.Fields[i], round.Fields[i])
	}
}

func TestSchemaValidateDuplicateTopLevelField(t *testing.T) {
	sc := &Schema{Fields: []Field{
		NewField("id", Int64Type, false),
		NewField("id", Utf8Type, true),
	}}
	err := sc.Validate()
	assert.ErrorIs(t, err, ErrInvalidChildren)
}

func TestSchemaValidateNullMustBeNullable(t *testing.T) {
	sc := &Schema{Fields: []Field{
		{Name: "n", DataType: NullType, Nullable: false},
	}}
	err := sc.Validate()
	assert.ErrorIs(t, err, ErrInvalidNullability)
}

func TestSchemaValidateMapEntryShape(t *testing.T) {
	good := &Schema{Fields: []Field{
		NewField("m", MapOf(NewField("entries", StructOf(
			NewField("key", Utf8Type, false),
			NewField("value", Int64Type, true),
		), false), false), true),
	}}
	assert.NoError(t, good.Validate())

	bad := &Schema{Fields: []Field{
		NewField("m", MapOf(NewField("entries", Utf8Type, false), false), true),
	}}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidChildren)
}

func TestPatchStrategy(t *testing.T) {
	sc := &Schema{Fields: []Field{NewField("created", Date64Type, true)}}
	doc, err := sc.ToJSON()
	require.NoError(t, err)

	patched, err := PatchStrategy(doc, "created", UtcStrAsDate64)
	require.NoError(t, err)

	round, err := FromJSON(patched)
	require.NoError(t, err)
	s, ok := round.Fields[0].Strategy()
	require.True(t, ok)
	assert.Equal(t, UtcStrAsDate64, s)
}

func TestPatchStrategyUnknownField(t *testing.T) {
	sc := &Schema{Fields: []Field{NewField("created", Date64Type, true)}}
	doc, err := sc.ToJSON()
	require.NoError(t, err)

	_, err = PatchStrategy(doc, "missing", UtcStrAsDate64)
	assert.ErrorIs(t, err, ErrInvalidChildren)
}

func TestKindIntegerSignedFloat(t *testing.T) {
	assert.True(t, Int32.IsInteger())
	assert.True(t, Int32.IsSigned())
	assert.False(t, Uint32.IsSigned())
	assert.True(t, Uint32.IsInteger())
	assert.True(t, Float64.IsFloat())
	assert.False(t, Utf8.IsFloat())
}

func TestDataTypeEqualNested(t *testing.T) {
	a := StructOf(NewField("a", Int64Type, false), NewField("b", Utf8Type, true))
	b := StructOf(NewField("a", Int64Type, false), NewField("b", Utf8Type, true))
	c := StructOf(NewField("a", Int64Type, false))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
