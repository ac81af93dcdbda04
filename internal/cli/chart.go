package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/datasweeper/internal/core"
	"github.com/spf13/cobra"
)

func newChartCmd() *cobra.Command {
	var (
		out  string
		rows int
		opts core.FileOptions
	)

	cmd := &cobra.Command{
		Use:   "chart <file>",
		Short: "Render a bar chart of the first two numeric columns as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadFile(args[0], opts)
			if err != nil {
				return err
			}

			data, ok := res.Chart(rows)
			if !ok {
				return fmt.Errorf("%s has no numeric columns to chart", res.File.Name)
			}

			var buf bytes.Buffer
			if err := core.RenderChartSVG(&buf, data); err != nil {
				return fmt.Errorf("render chart: %w", err)
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if out == "" {
				base := strings.TrimSuffix(res.File.Name, filepath.Ext(res.File.Name))
				out = filepath.Join(filepath.Dir(args[0]), base+".svg")
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: charted %d rows -> %s\n", res.File.Name, data.Rows(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", `Output path, "-" for stdout (default: input name with .svg)`)
	cmd.Flags().IntVar(&rows, "rows", 100, "Maximum number of rows to plot")
	cmd.Flags().BoolVar(&opts.RemoveDuplicates, "dedupe", false, "Remove duplicate rows first")
	cmd.Flags().BoolVar(&opts.FillMissing, "fill", false, "Fill missing numeric values first")
	cmd.Flags().BoolVar(&opts.CoerceNumeric, "coerce", false, "Convert numeric-looking text columns first")

	return cmd
}
