package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arrowtrait/traitarrow/tracer"
)

func newInferCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "infer <jsonl-file>",
		Short: "Trace a schema from a newline-delimited JSON sample file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := readJSONL(args[0])
			if err != nil {
				return err
			}
			sc, err := tracer.FromSamples(samples)
			if err != nil {
				return fmt.Errorf("traitarrow infer: %w", err)
			}
			doc, err := sc.ToJSON()
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Println(string(doc))
				return nil
			}
			return os.WriteFile(out, doc, 0644)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the traced schema to this file instead of stdout")
	return cmd
}

// readJSONL scans path line by line, the way cmd/main.go's bufio.Scanner
// loop over large-file.json did, returning each non-empty line as a []byte
// sample hostshim/tracer can decode independently.
func readJSONL(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []any
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for s.Scan() {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		samples = append(samples, cp)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
