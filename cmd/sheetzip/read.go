package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/sheetzip/format"
	"github.com/tsawler/sheetzip/xlsx"
)

// Output formats accepted by read.
var readFormats = []string{"json", "text", "markdown", "html"}

func newReadCmd(a *app) *cobra.Command {
	var output, sheet, outFormat string
	var listSheets bool

	cmd := &cobra.Command{
		Use:   "read <workbook.xlsx|->",
		Short: "Print the rows of a worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if err := format.CheckSpreadsheet(data); err != nil {
				return err
			}
			opts := xlsx.ReadOptions{Sheet: sheet, Inflate: a.cfg.inflate}

			if listSheets {
				names := xlsx.Sheets(data, opts)
				a.log.Printf("[read] %d sheets", len(names))
				return writeOutput(cmd, output, []byte(strings.Join(names, "\n")+"\n"))
			}

			rows, err := xlsx.DecodeWithOptions(data, opts)
			if err != nil {
				return err
			}
			a.log.Printf("[read] %d rows", len(rows))

			out, err := renderRows(rows, outFormat)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: stdout)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().StringVarP(&outFormat, "format", "f", a.cfg.format,
		"Output format: "+strings.Join(readFormats, ", ")+" (env SHEETZIP_FORMAT)")
	cmd.Flags().BoolVar(&listSheets, "list-sheets", false, "List worksheet names instead of rows")
	return cmd
}

// renderRows formats rows as JSON, or as a table whose first row is the header.
func renderRows(rows [][]string, outFormat string) ([]byte, error) {
	switch strings.ToLower(outFormat) {
	case "json":
		if rows == nil {
			rows = [][]string{}
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding rows: %w", err)
		}
		return append(out, '\n'), nil
	case "text":
		return []byte(xlsx.NewTable(rows).Text("\t")), nil
	case "markdown", "md":
		return []byte(xlsx.NewTable(rows).Markdown()), nil
	case "html":
		s, err := xlsx.NewTable(rows).HTML()
		if err != nil {
			return nil, err
		}
		return []byte(s + "\n"), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be %s)", outFormat, strings.Join(readFormats, ", "))
	}
}
