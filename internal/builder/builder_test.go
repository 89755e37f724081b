package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowtrait/traitarrow/hostshim"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

func rootStructField(children ...schema.Field) schema.Field {
	return schema.NewField("$root", schema.StructOf(children...), false)
}

func TestStructBuilderScalarFieldsAndMissingDefault(t *testing.T) {
	root := rootStructField(
		schema.NewField("id", schema.Int64Type, false),
		schema.NewField("name", schema.Utf8Type, true),
	)
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	require.NoError(t, hostshim.WalkRow(map[string]any{"id": int64(1), "name": "alice"}, b))
	require.NoError(t, hostshim.WalkRow(map[string]any{"id": int64(2)}, b))

	assert.Equal(t, 2, b.Len())

	ss, ok := b.Snapshot().(StructSnapshot)
	require.True(t, ok)
	require.Len(t, ss.Children, 2)
	assert.Equal(t, 2, ss.Children[0].Len())
	assert.Equal(t, 2, ss.Children[1].Len())
}

func TestStructBuilderUnknownFieldIsDrainedNotErrored(t *testing.T) {
	root := rootStructField(
		schema.NewField("id", schema.Int64Type, false),
		schema.NewField("name", schema.Utf8Type, true),
	)
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	require.NoError(t, hostshim.WalkRow(map[string]any{
		"id":      int64(1),
		"name":    "alice",
		"unknown": map[string]any{"nested": []any{int64(1), int64(2)}},
	}, b))
	require.NoError(t, hostshim.WalkRow(map[string]any{"id": int64(2), "also_unknown": int64(9)}, b))

	assert.Equal(t, 2, b.Len())
	ss, ok := b.Snapshot().(StructSnapshot)
	require.True(t, ok)
	assert.Equal(t, 2, ss.Children[0].Len())
	assert.Equal(t, 2, ss.Children[1].Len())
}

func TestListBuilderAccumulatesOffsets(t *testing.T) {
	root := rootStructField(
		schema.NewField("tags", schema.ListOf(schema.NewField("item", schema.Utf8Type, false)), false),
	)
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	require.NoError(t, hostshim.WalkRow(map[string]any{"tags": []any{"a", "b", "c"}}, b))
	require.NoError(t, hostshim.WalkRow(map[string]any{"tags": []any{}}, b))

	ss := b.Snapshot().(StructSnapshot)
	listSnap := ss.Children[0].Snapshot().(ListSnapshot32)
	assert.Equal(t, []int32{0, 3, 3}, listSnap.Offsets.Offsets())
	assert.Equal(t, 3, listSnap.Child.Len())
}

func TestMapBuilderWiresEntryStruct(t *testing.T) {
	entry := schema.NewField("entries", schema.StructOf(
		schema.NewField("key", schema.Utf8Type, false),
		schema.NewField("value", schema.Int64Type, true),
	), false)
	root := rootStructField(
		schema.NewField("attrs", schema.MapOf(entry, false), false),
	)
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	require.NoError(t, hostshim.WalkRow(map[string]any{
		"attrs": map[string]any{"a": int64(1), "b": int64(2)},
	}, b))

	ss := b.Snapshot().(StructSnapshot)
	mapSnap := ss.Children[0].Snapshot().(MapSnapshot)
	assert.Equal(t, []int32{0, 2}, mapSnap.Offsets.Offsets())
	assert.Equal(t, 2, mapSnap.Entry.Len())
}

func TestFixedSizeListRejectsWrongArity(t *testing.T) {
	root := rootStructField(
		schema.NewField("point", schema.FixedSizeListOf(schema.NewField("item", schema.Float64Type, false), 2), false),
	)
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	err = hostshim.WalkRow(map[string]any{"point": []any{1.0, 2.0, 3.0}}, b)
	require.Error(t, err)
	var fe *fieldpath.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fieldpath.InvalidNumberOfItems, fe.Kind)
}

func TestNumericBuilderCoercesJSONInt64IntoNarrowerKind(t *testing.T) {
	root := rootStructField(schema.NewField("a", schema.Uint8Type, false))
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	// hostshim emits every JSON integer as an I64 event regardless of the
	// target column's declared width (spec.md §4.E.4 scenario #2).
	require.NoError(t, hostshim.WalkRow(map[string]any{"a": int64(1)}, b))

	ss := b.Snapshot().(StructSnapshot)
	buf := ss.Children[0].Snapshot().(*buffers.PrimitiveBuffer[uint8])
	assert.Equal(t, []uint8{1}, buf.Values())
}

func TestNumericBuilderRejectsOutOfRangeValue(t *testing.T) {
	root := rootStructField(schema.NewField("a", schema.Uint8Type, false))
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	err = hostshim.WalkRow(map[string]any{"a": int64(300)}, b)
	require.Error(t, err)
	var fe *fieldpath.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fieldpath.IncompatibleType, fe.Kind)
}

func TestFloatBuilderCrossCastsFromInteger(t *testing.T) {
	root := rootStructField(schema.NewField("a", schema.Float64Type, false))
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	require.NoError(t, hostshim.WalkRow(map[string]any{"a": int64(7)}, b))

	ss := b.Snapshot().(StructSnapshot)
	buf := ss.Children[0].Snapshot().(*buffers.PrimitiveBuffer[float64])
	assert.Equal(t, []float64{7}, buf.Values())
}

func TestUtf8BuilderAcceptsCoercedScalars(t *testing.T) {
	root := rootStructField(
		schema.NewField("n", schema.Utf8Type, false),
		schema.NewField("flag", schema.Utf8Type, false),
	)
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	require.NoError(t, hostshim.WalkRow(map[string]any{"n": int64(42), "flag": true}, b))

	ss := b.Snapshot().(StructSnapshot)
	nBuf := ss.Children[0].Snapshot().(*buffers.BytesBuffer[int32])
	assert.Equal(t, "42", string(nBuf.Get(0)))
	flagBuf := ss.Children[1].Snapshot().(*buffers.BytesBuffer[int32])
	assert.Equal(t, "true", string(flagBuf.Get(0)))
}

func TestBinaryBuilderRejectsCoercedScalars(t *testing.T) {
	root := rootStructField(schema.NewField("b", schema.BinaryType, false))
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	err = hostshim.WalkRow(map[string]any{"b": int64(1)}, b)
	assert.Error(t, err)
}

func TestNonNullableFieldRejectsNull(t *testing.T) {
	root := rootStructField(schema.NewField("id", schema.Int64Type, false))
	b, err := New(root, fieldpath.Root)
	require.NoError(t, err)

	err = hostshim.WalkRow(map[string]any{"id": nil}, b)
	require.Error(t, err)
}
