// Package cli provides the sweep command-line interface. It runs the same
// load, clean, select and export pipeline as the web UI over local files.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/datasweeper/internal/core"
	"github.com/JonMunkholm/datasweeper/internal/logging"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates the sweep root command.
func NewRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Data Sweeper - clean, chart and convert CSV and Excel files",
		Long: `sweep runs the Data Sweeper pipeline over local files.

Files are loaded from .csv or .xlsx, optionally cleaned (numeric text
coercion, duplicate removal, mean imputation), projected onto a set of
columns and written back out as CSV or Excel.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Setup(logLevel, "text")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newChartCmd())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

// printError writes the technical error and, for known failures, the
// user-facing explanation with its code.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if core.IsUserFacing(err) {
		fmt.Fprintln(w, core.FormatUserError(err))
	}
}

// loadFile reads path and runs the pipeline with opts.
func loadFile(path string, opts core.FileOptions) (core.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Result{}, fmt.Errorf("read %s: %w", path, err)
	}

	res := core.Run(core.NewUploadedFile(filepath.Base(path), data), opts)
	if !res.OK() {
		return res, res.Err
	}
	return res, nil
}
