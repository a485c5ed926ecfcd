// Command sheetzip writes and reads minimal .xlsx workbooks, lists ZIP
// archive entries and converts inventory and customer records between
// JSON and worksheets.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries the configuration and logger shared by every command.
type app struct {
	cfg config
	log *log.Logger
}

func main() {
	// A missing .env file is fine; the environment alone is used then.
	_ = godotenv.Load()

	if err := newRootCmd(loadConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config) *cobra.Command {
	a := &app{cfg: cfg, log: log.New(io.Discard, "", 0)}

	rootCmd := &cobra.Command{
		Use:   "sheetzip",
		Short: "Write and read minimal .xlsx workbooks",
		Long: `sheetzip builds single-sheet .xlsx workbooks from JSON rows and reads
worksheets back as rows, without any external archive library.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.cfg.verbose {
				a.log = log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.cfg.verbose, "verbose", "v", cfg.verbose, "Log progress to stderr (env SHEETZIP_VERBOSE)")
	rootCmd.PersistentFlags().BoolVar(&a.cfg.inflate, "inflate", cfg.inflate, "Read compressed workbook parts (env SHEETZIP_INFLATE)")

	rootCmd.AddCommand(
		newWriteCmd(a),
		newReadCmd(a),
		newEntriesCmd(a),
		newInventoryCmd(a),
		newCustomersCmd(a),
	)
	return rootCmd
}

// warn prints a non-fatal problem to stderr.
func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
}
