package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/datasweeper/internal/core"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	dedupe  bool
	fill    bool
	coerce  bool
	columns []string
	format  string
	out     string
}

func newConvertCmd() *cobra.Command {
	var o convertOptions

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Clean a file and write it as CSV or Excel",
		Example: `  # Drop duplicate rows and write data.xlsx next to data.csv
  sweep convert data.csv --dedupe --format Excel

  # Fill missing numbers with the column mean, keep two columns, print CSV
  sweep convert sales.xlsx --fill --columns region,revenue --out -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := core.FileOptions{
				RemoveDuplicates: o.dedupe,
				FillMissing:      o.fill,
				CoerceNumeric:    o.coerce,
			}
			if cmd.Flags().Changed("columns") {
				opts.Columns = append([]string{}, o.columns...)
			}
			return runConvert(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts, o.format, o.out)
		},
	}

	cmd.Flags().BoolVar(&o.dedupe, "dedupe", false, "Remove duplicate rows")
	cmd.Flags().BoolVar(&o.fill, "fill", false, "Fill missing numeric values with the column mean")
	cmd.Flags().BoolVar(&o.coerce, "coerce", false, "Convert numeric-looking text columns to numbers")
	cmd.Flags().StringSliceVar(&o.columns, "columns", nil, "Columns to keep, in order (default: all)")
	cmd.Flags().StringVar(&o.format, "format", string(core.FormatCSV), "Output format (CSV|Excel)")
	cmd.Flags().StringVar(&o.out, "out", "", `Output path, "-" for stdout (default: input name with the new extension)`)

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(core.FormatCSV), string(core.FormatExcel)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runConvert(stdout, stderr io.Writer, path string, opts core.FileOptions, formatName, out string) error {
	format, err := core.ParseFormat(formatName)
	if err != nil {
		return err
	}

	res, err := loadFile(path, opts)
	if err != nil {
		return err
	}
	if res.NoColumns() {
		return fmt.Errorf("%w: none of %v exist", core.ErrNoColumns, opts.Columns)
	}

	var buf bytes.Buffer
	if err := res.Export(&buf, format); err != nil {
		return err
	}

	if out == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if out == "" {
		out = defaultOutput(path, res.File.ExportName(format))
	}
	if same, err := samePath(path, out); err != nil {
		return err
	} else if same {
		return errors.New("output would overwrite the input file; choose a path with --out")
	}

	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	slog.Debug("converted", "in", path, "out", out, "format", format, "bytes", buf.Len())
	fmt.Fprintf(stderr, "%s: %d rows, %d columns", res.File.Name, res.Table.Nrow(), res.Table.Ncol())
	if opts.RemoveDuplicates {
		fmt.Fprintf(stderr, ", %d duplicates removed", res.Stats.DuplicatesRemoved)
	}
	if opts.FillMissing {
		fmt.Fprintf(stderr, ", %d values filled", res.Stats.ValuesFilled)
	}
	if len(res.Stats.Coerced) > 0 {
		fmt.Fprintf(stderr, ", coerced %v", res.Stats.Coerced)
	}
	fmt.Fprintf(stderr, " -> %s\n", out)
	return nil
}

// defaultOutput places the export next to the input, adding a _clean
// suffix when the name would otherwise be the input itself.
func defaultOutput(in, name string) string {
	out := filepath.Join(filepath.Dir(in), name)
	if same, err := samePath(in, out); err == nil && same {
		ext := filepath.Ext(name)
		out = filepath.Join(filepath.Dir(in), strings.TrimSuffix(name, ext)+"_clean"+ext)
	}
	return out
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
