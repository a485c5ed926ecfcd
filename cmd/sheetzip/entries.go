package main

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/sheetzip/container"
)

func newEntriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "entries <archive.zip|->",
		Short: "List the entries of a ZIP archive",
		Long: `entries lists every entry found in a ZIP archive with its compression
method, sizes and CRC-32. The central directory is used when it can be read;
otherwise entries are recovered by scanning for local file headers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			headers, err := container.Directory(data)
			if err != nil {
				a.log.Printf("[entries] %v, scanning local headers", err)
				if headers = container.Headers(data); len(headers) == 0 {
					return fmt.Errorf("no ZIP entries found in %s", args[0])
				}
			}
			a.log.Printf("[entries] %d entries", len(headers))

			return writeOutput(cmd, "", formatEntries(headers))
		},
	}
}

func formatEntries(headers []container.FileHeader) []byte {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMETHOD\tSIZE\tCOMPRESSED\tCRC32")
	for _, h := range headers {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%08x\n", h.Name, methodName(h.Method), h.UncompressedSize, h.CompressedSize, h.CRC32)
	}
	w.Flush()
	return buf.Bytes()
}

func methodName(m uint16) string {
	switch m {
	case container.Store:
		return "store"
	case container.Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("method %d", m)
	}
}
