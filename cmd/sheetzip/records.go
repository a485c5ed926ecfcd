package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/sheetzip/format"
	"github.com/tsawler/sheetzip/records"
	"github.com/tsawler/sheetzip/xlsx"
)

func newInventoryCmd(a *app) *cobra.Command {
	return newRecordsCmd(a, "inventory", "inventory items", records.ExportInventory, records.ImportInventory)
}

func newCustomersCmd(a *app) *cobra.Command {
	return newRecordsCmd(a, "customers", "customer records", records.ExportCustomers, records.ImportCustomers)
}

// newRecordsCmd builds the export and import subcommands for one record type.
func newRecordsCmd[T any](
	a *app,
	name, noun string,
	export func([]T) []byte,
	importFn func([]byte, xlsx.ReadOptions) ([]T, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: "Convert " + noun + " between JSON and .xlsx",
	}

	var exportOut string
	exportCmd := &cobra.Command{
		Use:   "export <records.json|->",
		Short: "Write " + noun + " from a JSON array to an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var items []T
			if err := json.Unmarshal(data, &items); err != nil {
				return fmt.Errorf("decoding %s: %w", noun, err)
			}
			a.log.Printf("[%s] exporting %d records", name, len(items))
			return writeOutput(cmd, exportOut, export(items))
		},
	}
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output .xlsx path (default: stdout)")

	var importOut, sheet string
	importCmd := &cobra.Command{
		Use:   "import <workbook.xlsx|->",
		Short: "Read " + noun + " from an .xlsx workbook as JSON",
		Long: `import reads the first worksheet (or --sheet) of a workbook. Rows that
fail validation are reported on stderr and left out of the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if err := format.CheckSpreadsheet(data); err != nil {
				return err
			}

			items, err := importFn(data, xlsx.ReadOptions{Sheet: sheet, Inflate: a.cfg.inflate})
			if err != nil {
				if len(items) == 0 {
					return err
				}
				warn(cmd, "%v", err)
			}
			a.log.Printf("[%s] imported %d records", name, len(items))

			out, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding %s: %w", noun, err)
			}
			return writeOutput(cmd, importOut, append(out, '\n'))
		},
	}
	importCmd.Flags().StringVarP(&importOut, "output", "o", "", "Output JSON path (default: stdout)")
	importCmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}
