package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONL(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	var content string
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadJSONLSkipsBlankLines(t *testing.T) {
	path := writeJSONL(t, `{"id":1}`, "", `{"id":2}`)
	samples, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, samples, 2)
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, err := readJSONL(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestInferCmdWritesSchemaToOutFile(t *testing.T) {
	recordsPath := writeJSONL(t, `{"id":1,"name":"alice"}`, `{"id":2,"name":"bob"}`)
	outPath := filepath.Join(t.TempDir(), "schema.json")

	cmd := newInferCmd()
	cmd.SetArgs([]string{recordsPath, "--out", outPath})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id"`)
	assert.Contains(t, string(raw), `"name"`)
}

func TestBuildCmdProducesParquetFile(t *testing.T) {
	recordsPath := writeJSONL(t, `{"id":1,"name":"alice"}`, `{"id":2,"name":"bob"}`)
	outPath := filepath.Join(t.TempDir(), "out.parquet")

	cmd := newBuildCmd()
	cmd.SetArgs([]string{recordsPath, outPath})
	require.NoError(t, cmd.Execute())

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuildCmdWithExplicitSchema(t *testing.T) {
	recordsPath := writeJSONL(t, `{"id":1,"name":"alice"}`)
	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"fields":[
		{"name":"id","data_type":"Int64","nullable":false},
		{"name":"name","data_type":"Utf8","nullable":true}
	]}`), 0644))
	outPath := filepath.Join(t.TempDir(), "out.parquet")

	cmd := newBuildCmd()
	cmd.SetArgs([]string{"--schema", schemaPath, recordsPath, outPath})
	require.NoError(t, cmd.Execute())

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRootCmdTogglesDebugFlag(t *testing.T) {
	recordsPath := writeJSONL(t, `{"id":1}`)
	outPath := filepath.Join(t.TempDir(), "schema.json")

	root := newRootCmd()
	root.SetArgs([]string{"--debug", "infer", recordsPath, "--out", outPath})
	require.NoError(t, root.Execute())

	_, err := os.Stat(outPath)
	require.NoError(t, err)
}
