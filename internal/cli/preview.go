package cli

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/datasweeper/internal/core"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var (
		rows   int
		schema bool
		opts   core.FileOptions
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Print the first rows of a file as a table",
		Example: `  sweep preview data.csv --rows 20
  sweep preview book.xlsx --schema`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadFile(args[0], opts)
			if err != nil {
				return err
			}
			if schema {
				return renderSchema(cmd.OutOrStdout(), res.Table)
			}
			return renderPreview(cmd.OutOrStdout(), res.Table, rows)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "Number of rows to show")
	cmd.Flags().BoolVar(&schema, "schema", false, "Show column names, types and missing counts instead of rows")
	cmd.Flags().BoolVar(&opts.RemoveDuplicates, "dedupe", false, "Remove duplicate rows first")
	cmd.Flags().BoolVar(&opts.FillMissing, "fill", false, "Fill missing numeric values first")
	cmd.Flags().BoolVar(&opts.CoerceNumeric, "coerce", false, "Convert numeric-looking text columns first")

	return cmd
}

func renderPreview(w io.Writer, t core.Table, rows int) error {
	if t.Ncol() == 0 {
		_, err := fmt.Fprintln(w, "(0 columns)")
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, t.Ncol())
	for i, name := range t.Names() {
		header[i] = name
	}
	tw.AppendHeader(header)

	head := t.Head(max(rows, 0))
	for r := 0; r < head.Nrow(); r++ {
		cells := head.Row(r)
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		tw.AppendRow(row)
	}
	tw.Render()

	_, err := fmt.Fprintf(w, "(%d of %d rows)\n", head.Nrow(), t.Nrow())
	return err
}

func renderSchema(w io.Writer, t core.Table) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Column", "Type", "Missing"})

	for i, c := range core.Columns(t) {
		tw.AppendRow(table.Row{i + 1, c.Name, string(c.Kind), c.Missing})
	}
	tw.Render()

	_, err := fmt.Fprintf(w, "(%d rows)\n", t.Nrow())
	return err
}
