package traitarrow

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowtrait/traitarrow/internal/builder"
	"github.com/arrowtrait/traitarrow/schema"
)

func samplePersonSchema() *schema.Schema {
	return &schema.Schema{Fields: []schema.Field{
		schema.NewField("id", schema.Int64Type, false),
		schema.NewField("name", schema.Utf8Type, true),
		schema.NewField("tags", schema.ListOf(schema.NewField("item", schema.Utf8Type, false)), true),
	}}
}

func TestBuilderPushAndLen(t *testing.T) {
	b, err := NewBuilder(samplePersonSchema())
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())

	require.NoError(t, b.Push(map[string]any{"id": int64(1), "name": "alice", "tags": []any{"a"}}))
	require.NoError(t, b.Push(map[string]any{"id": int64(2)}))
	assert.Equal(t, 2, b.Len())
}

func TestBuilderExtendStopsAtFirstError(t *testing.T) {
	b, err := NewBuilder(samplePersonSchema())
	require.NoError(t, err)

	rows := []any{
		map[string]any{"id": int64(1)},
		map[string]any{"id": nil},
		map[string]any{"id": int64(3)},
	}
	err = b.Extend(rows)
	require.Error(t, err)
	assert.Equal(t, 1, b.Len())
}

func TestBuilderSchemaReturnsOriginal(t *testing.T) {
	sc := samplePersonSchema()
	b, err := NewBuilder(sc)
	require.NoError(t, err)
	assert.Same(t, sc, b.Schema())
}

func TestBuildArraysRoundTripsThroughDeserializer(t *testing.T) {
	sc := samplePersonSchema()
	b, err := NewBuilder(sc)
	require.NoError(t, err)

	require.NoError(t, b.Push(map[string]any{"id": int64(1), "name": "alice", "tags": []any{"a", "b"}}))
	require.NoError(t, b.Push(map[string]any{"id": int64(2), "name": "bob", "tags": []any{}}))

	d, err := b.BuildArrays()
	require.NoError(t, err)
	require.False(t, d.IsEmpty())
	require.Equal(t, 2, d.Len())

	row0, err := d.Row(0)
	require.NoError(t, err)
	m0 := row0.(map[string]any)
	assert.Equal(t, int64(1), m0["id"])
	assert.Equal(t, "alice", m0["name"])
	assert.Equal(t, []any{"a", "b"}, m0["tags"])

	rows, err := d.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestNewDeserializerFromSnapshot(t *testing.T) {
	sc := samplePersonSchema()
	b, err := NewBuilder(sc)
	require.NoError(t, err)
	require.NoError(t, b.Push(map[string]any{"id": int64(5), "name": "eve"}))

	snap := b.b.Snapshot()
	ss, ok := snap.(builder.StructSnapshot)
	require.True(t, ok)

	d, err := NewDeserializer(sc, ss)
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	row0, err := d.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "eve", row0.(map[string]any)["name"])
}

func TestDeserializerIsEmptyWithNoRows(t *testing.T) {
	b, err := NewBuilder(samplePersonSchema())
	require.NoError(t, err)
	d, err := b.BuildArrays()
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.Equal(t, 0, d.Len())
}

func TestDebugPrintProgramTogglesLogging(t *testing.T) {
	defer SetDebugPrintProgram(false)
	assert.False(t, DebugPrintProgram())

	SetDebugPrintProgram(true)
	assert.True(t, DebugPrintProgram())

	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	b, err := NewBuilder(samplePersonSchema())
	require.NoError(t, err)
	require.NoError(t, b.Push(map[string]any{"id": int64(1)}))

	assert.Contains(t, buf.String(), "traitarrow:")
}
