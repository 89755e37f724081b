package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/arrowtrait/traitarrow"
	"github.com/arrowtrait/traitarrow/arrowio"
	"github.com/arrowtrait/traitarrow/schema"
	"github.com/arrowtrait/traitarrow/tracer"
)

func newBuildCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "build <jsonl-file> <parquet-out>",
		Short: "Push sample records through the builder tree and write them out as Parquet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordsPath, outPath := args[0], args[1]

			sc, err := loadOrTraceSchema(schemaPath, recordsPath)
			if err != nil {
				return err
			}

			b, err := traitarrow.NewBuilder(sc)
			if err != nil {
				return fmt.Errorf("traitarrow build: %w", err)
			}

			rows, err := readJSONL(recordsPath)
			if err != nil {
				return err
			}
			for i, row := range rows {
				if err := b.Push(row); err != nil {
					return fmt.Errorf("traitarrow build: row %d: %w", i, err)
				}
			}

			dz, err := b.BuildArrays()
			if err != nil {
				return fmt.Errorf("traitarrow build: %w", err)
			}
			decoded, err := dz.Rows()
			if err != nil {
				return fmt.Errorf("traitarrow build: %w", err)
			}
			jsonRows := make([][]byte, len(decoded))
			for i, row := range decoded {
				enc, err := json.Marshal(row)
				if err != nil {
					return fmt.Errorf("traitarrow build: row %d: %w", i, err)
				}
				jsonRows[i] = enc
			}

			n, err := arrowio.WriteParquet(sc, arrowio.DefaultWriterProperties, outPath, jsonRows)
			if err != nil {
				return fmt.Errorf("traitarrow build: %w", err)
			}
			fmt.Printf("wrote %d records to %s\n", n, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a JSON schema document; if empty the schema is traced from the sample file")
	return cmd
}

func loadOrTraceSchema(schemaPath, recordsPath string) (*schema.Schema, error) {
	if schemaPath != "" {
		raw, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, err
		}
		return schema.FromJSON(raw)
	}
	samples, err := readJSONL(recordsPath)
	if err != nil {
		return nil, err
	}
	return tracer.FromSamples(samples)
}
