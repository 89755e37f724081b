package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/hostshim"
	"github.com/arrowtrait/traitarrow/internal/builder"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

func rootStructField(children ...schema.Field) schema.Field {
	return schema.NewField("$root", schema.StructOf(children...), false)
}

func buildAndView(t *testing.T, root schema.Field, rows []any) View {
	t.Helper()
	b, err := builder.New(root, fieldpath.Root)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, hostshim.WalkRow(r, b))
	}
	v, err := New(root, fieldpath.Root, b.Snapshot())
	require.NoError(t, err)
	return v
}

func TestStructViewRoundTripsScalarsAndNulls(t *testing.T) {
	root := rootStructField(
		schema.NewField("id", schema.Int64Type, false),
		schema.NewField("name", schema.Utf8Type, true),
	)
	rows := []any{
		map[string]any{"id": int64(1), "name": "alice"},
		map[string]any{"id": int64(2)},
	}
	v := buildAndView(t, root, rows)
	require.Equal(t, 2, v.Len())

	row0, err := event.At(v, 0)(hostshim.GoVisitor{})
	require.NoError(t, err)
	m0 := row0.(map[string]any)
	assert.Equal(t, int64(1), m0["id"])
	assert.Equal(t, "alice", m0["name"])

	row1, err := event.At(v, 1)(hostshim.GoVisitor{})
	require.NoError(t, err)
	m1 := row1.(map[string]any)
	assert.Equal(t, int64(2), m1["id"])
	assert.Nil(t, m1["name"])
}

func TestListViewRoundTrips(t *testing.T) {
	root := rootStructField(
		schema.NewField("tags", schema.ListOf(schema.NewField("item", schema.Utf8Type, false)), false),
	)
	rows := []any{
		map[string]any{"tags": []any{"a", "b"}},
		map[string]any{"tags": []any{}},
	}
	v := buildAndView(t, root, rows)

	row0, err := event.At(v, 0)(hostshim.GoVisitor{})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, row0.(map[string]any)["tags"])

	row1, err := event.At(v, 1)(hostshim.GoVisitor{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, row1.(map[string]any)["tags"])
}

func TestMapViewRoundTrips(t *testing.T) {
	entry := schema.NewField("entries", schema.StructOf(
		schema.NewField("key", schema.Utf8Type, false),
		schema.NewField("value", schema.Int64Type, true),
	), false)
	root := rootStructField(
		schema.NewField("attrs", schema.MapOf(entry, false), false),
	)
	rows := []any{
		map[string]any{"attrs": map[string]any{"a": int64(1), "b": int64(2)}},
	}
	v := buildAndView(t, root, rows)

	row0, err := event.At(v, 0)(hostshim.GoVisitor{})
	require.NoError(t, err)
	attrs := row0.(map[string]any)["attrs"].(map[string]any)
	assert.Equal(t, int64(1), attrs["a"])
	assert.Equal(t, int64(2), attrs["b"])
}

func TestNewRejectsSnapshotTypeMismatch(t *testing.T) {
	root := rootStructField(schema.NewField("id", schema.Int64Type, false))
	_, err := New(root, fieldpath.Root, "not a struct snapshot")
	require.Error(t, err)
	var fe *fieldpath.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fieldpath.IncompatibleType, fe.Kind)
}
