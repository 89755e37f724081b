package arrowio

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowtrait/traitarrow/schema"
)

func simpleSchema() *schema.Schema {
	return &schema.Schema{Fields: []schema.Field{
		schema.NewField("id", schema.Int64Type, false),
		schema.NewField("name", schema.Utf8Type, true),
	}}
}

func TestNewParquetWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.parquet")
	pw, err := NewParquetWriter(simpleSchema(), nil, path)
	require.NoError(t, err)
	defer pw.Close()
	assert.Equal(t, 0, pw.RecordCount())
}

func TestParquetWriterWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_write.parquet")
	pw, err := NewParquetWriter(simpleSchema(), DefaultWriterProperties, path)
	require.NoError(t, err)
	defer pw.Close()

	jsonData, err := json.Marshal(map[string]any{"id": 1, "name": "test"})
	require.NoError(t, err)

	require.NoError(t, pw.WriteJSON(jsonData))
	assert.Equal(t, 1, pw.RecordCount())
}

func TestParquetWriterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_close.parquet")
	pw, err := NewParquetWriter(simpleSchema(), nil, path)
	require.NoError(t, err)
	require.NoError(t, pw.Close())
}

func TestWriteParquetOneShot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")
	rows := make([][]byte, 0, 3)
	for i := 0; i < 3; i++ {
		b, err := json.Marshal(map[string]any{"id": i, "name": "row"})
		require.NoError(t, err)
		rows = append(rows, b)
	}

	n, err := WriteParquet(simpleSchema(), DefaultWriterProperties, path, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
