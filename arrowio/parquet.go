package arrowio

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/arrowtrait/traitarrow/schema"
)

const defaultRowGroupByteLimit = 10 * 1024 * 1024

// DefaultWriterProperties mirrors loicalleyne-bodkin's pq.DefaultWrtp:
// dictionary encoding on, Parquet format version 2, zstd compression,
// column statistics on.
var DefaultWriterProperties = parquet.NewWriterProperties(
	parquet.WithDictionaryDefault(true),
	parquet.WithVersion(parquet.V2_LATEST),
	parquet.WithCompression(compress.Codecs.Zstd),
	parquet.WithStats(true),
	parquet.WithRootName("traitarrow"),
)

// ParquetWriter buffers JSON-encoded rows conforming to a schema.Schema and
// flushes them as Parquet row groups. It is the arrowio counterpart of
// loicalleyne-bodkin's pq.ParquetWriter, adapted to build its Arrow schema
// from our neutral schema.Schema instead of taking one directly.
type ParquetWriter struct {
	destFile *os.File
	pqwrt    *pqarrow.FileWriter
	sc       *arrow.Schema
	count    int
}

// NewParquetWriter creates a ParquetWriter that writes Parquet data
// matching sc to path, using wrtp (or DefaultWriterProperties if nil).
func NewParquetWriter(sc *schema.Schema, wrtp *parquet.WriterProperties, path string) (*ParquetWriter, error) {
	if wrtp == nil {
		wrtp = DefaultWriterProperties
	}
	as, err := ToArrowSchema(sc)
	if err != nil {
		return nil, fmt.Errorf("arrowio: failed to build arrow schema: %w", err)
	}
	destFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("arrowio: failed to create destination file: %w", err)
	}
	artp := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	pqwrt, err := pqarrow.NewFileWriter(as, destFile, wrtp, artp)
	if err != nil {
		destFile.Close()
		return nil, fmt.Errorf("arrowio: failed to create parquet writer: %w", err)
	}
	return &ParquetWriter{destFile: destFile, pqwrt: pqwrt, sc: as}, nil
}

// WriteJSON decodes one JSON-encoded row (a single JSON object) through
// arrow-go's own RecordBuilder and writes it to the current row group,
// exactly as pq.ParquetWriter.Write does.
func (pw *ParquetWriter) WriteJSON(jsonData []byte) error {
	recbld := array.NewRecordBuilder(memory.DefaultAllocator, pw.sc)
	defer recbld.Release()

	if err := recbld.UnmarshalJSON(jsonData); err != nil {
		return fmt.Errorf("arrowio: failed to unmarshal JSON: %w", err)
	}
	rec := recbld.NewRecord()
	defer rec.Release()
	return pw.WriteRecord(rec)
}

// WriteRecord writes a prebuilt Arrow record, rotating into a new buffered
// row group once the current one crosses defaultRowGroupByteLimit.
func (pw *ParquetWriter) WriteRecord(rec arrow.Record) error {
	if err := pw.pqwrt.WriteBuffered(rec); err != nil {
		return fmt.Errorf("arrowio: failed to write to parquet: %w", err)
	}
	if pw.pqwrt.RowGroupTotalBytesWritten() >= defaultRowGroupByteLimit {
		pw.pqwrt.NewBufferedRowGroup()
	}
	pw.count++
	return nil
}

// RecordCount returns the total number of records written.
func (pw *ParquetWriter) RecordCount() int { return pw.count }

// Close flushes and closes the Parquet file.
func (pw *ParquetWriter) Close() error {
	if err := pw.pqwrt.Close(); err != nil {
		return fmt.Errorf("arrowio: failed to close parquet writer: %w", err)
	}
	return pw.destFile.Close()
}

// WriteParquet is the one-shot convenience form: write every row in rows
// (each already JSON-encoded) to a fresh Parquet file at path under sc.
func WriteParquet(sc *schema.Schema, wrtp *parquet.WriterProperties, path string, rows [][]byte) (int, error) {
	pw, err := NewParquetWriter(sc, wrtp, path)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if err := pw.WriteJSON(row); err != nil {
			pw.Close()
			return pw.RecordCount(), err
		}
	}
	if err := pw.Close(); err != nil {
		return pw.RecordCount(), err
	}
	return pw.RecordCount(), nil
}
