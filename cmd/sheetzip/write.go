package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/sheetzip/format"
	"github.com/tsawler/sheetzip/xlsx"
)

func newWriteCmd(a *app) *cobra.Command {
	var output, sheet string

	cmd := &cobra.Command{
		Use:   "write <rows.json|->",
		Short: "Build an .xlsx workbook from a JSON array of rows",
		Long: `write reads a JSON array of rows, each an array of strings and numbers,
and writes a single-sheet workbook. Numbers become numeric cells; everything
else becomes an inline string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			rows, err := decodeRows(data)
			if err != nil {
				return err
			}
			a.log.Printf("[write] %d rows, sheet %q", len(rows), sheet)

			out := xlsx.WriteWithOptions(rows, xlsx.WriteOptions{SheetName: sheet})
			a.log.Printf("[write] %d bytes", len(out))
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .xlsx path (default: stdout)")
	cmd.Flags().StringVar(&sheet, "sheet", xlsx.DefaultSheetName, "Worksheet name")
	return cmd
}

// decodeRows parses a JSON array of rows into cell values, keeping
// numbers in their original textual form.
func decodeRows(data []byte) ([][]xlsx.Value, error) {
	if f := format.DetectBytes(data); f != format.JSON {
		return nil, fmt.Errorf("expected a JSON array of rows, got %s input", f)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw [][]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}

	rows := make([][]xlsx.Value, len(raw))
	for i, r := range raw {
		rows[i] = xlsx.Row(r...)
	}
	return rows, nil
}
