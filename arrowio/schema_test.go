package arrowio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowtrait/traitarrow/schema"
)

func sampleSchema() *schema.Schema {
	return &schema.Schema{Fields: []schema.Field{
		schema.NewField("id", schema.Int64Type, false),
		schema.NewField("name", schema.Utf8Type, true).WithStrategy(schema.StrategyNone),
		schema.NewField("created", schema.Date64Type, true).WithStrategy(schema.UtcStrAsDate64),
		schema.NewField("amount", schema.Decimal128Of(18, 4), true),
		schema.NewField("tags", schema.ListOf(schema.NewField("item", schema.Utf8Type, false)), true),
		schema.NewField("attrs", schema.MapOf(schema.NewField("entries", schema.StructOf(
			schema.NewField("key", schema.Utf8Type, false),
			schema.NewField("value", schema.Int64Type, true),
		), false), false), true),
		schema.NewField("profile", schema.StructOf(
			schema.NewField("age", schema.Int32Type, true),
		), true),
	}}
}

func TestToArrowSchemaAndBackRoundTrips(t *testing.T) {
	sc := sampleSchema()
	as, err := ToArrowSchema(sc)
	require.NoError(t, err)
	assert.Equal(t, len(sc.Fields), as.NumFields())

	back, err := FromArrowSchema(as)
	require.NoError(t, err)
	require.Len(t, back.Fields, len(sc.Fields))
	for i := range sc.Fields {
		assert.Truef(t, sc.Fields[i].Equal(back.Fields[i]), "field %d (%s) mismatch: %+v vs %+v", i, sc.Fields[i].Name, sc.Fields[i], back.Fields[i])
	}
}

func TestToArrowSchemaPreservesStrategyMetadata(t *testing.T) {
	sc := &schema.Schema{Fields: []schema.Field{
		schema.NewField("created", schema.Date64Type, true).WithStrategy(schema.UtcStrAsDate64),
	}}
	as, err := ToArrowSchema(sc)
	require.NoError(t, err)
	idx := as.Field(0).Metadata.FindKey(schema.StrategyKey)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, string(schema.UtcStrAsDate64), as.Field(0).Metadata.Values()[idx])
}

func TestExportImportSchemaBytes(t *testing.T) {
	sc := sampleSchema()
	raw, err := ExportSchema(sc)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	back, err := ImportSchema(raw)
	require.NoError(t, err)
	require.Len(t, back.Fields, len(sc.Fields))
	for i := range sc.Fields {
		assert.True(t, sc.Fields[i].Equal(back.Fields[i]))
	}
}

func TestExportImportSchemaFile(t *testing.T) {
	sc := sampleSchema()
	path := filepath.Join(t.TempDir(), "schema.arrows")
	require.NoError(t, ExportSchemaFile(sc, path))

	back, err := ImportSchemaFile(path)
	require.NoError(t, err)
	require.Len(t, back.Fields, len(sc.Fields))
}

func TestToArrowSchemaRejectsUnsupportedKind(t *testing.T) {
	sc := &schema.Schema{Fields: []schema.Field{
		{Name: "bad", DataType: schema.DataType{Kind: schema.Kind(999)}},
	}}
	_, err := ToArrowSchema(sc)
	assert.Error(t, err)
}
