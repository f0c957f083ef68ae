package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/edakit/internal/chart"
	"github.com/spf13/cobra"
)

var (
	hgLoad    loadFlags
	hgOut     chartFlags
	hgColumns string
	hgCols    int
)

var histGridCmd = &cobra.Command{
	Use:   "hist-grid <file>",
	Short: "Plot histograms of several numeric columns on one figure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		columns := splitColumns(hgColumns)
		if len(columns) == 0 {
			return fmt.Errorf("--columns needs at least one column name")
		}
		if hgCols < 1 {
			return fmt.Errorf("invalid --cols: %d (must be at least 1)", hgCols)
		}
		c, err := currentConfig()
		if err != nil {
			return err
		}
		t, err := hgLoad.loadTable(args[0])
		if err != nil {
			return err
		}
		d, err := hgOut.displayer(c)
		if err != nil {
			return err
		}

		cols := min(hgCols, len(columns))
		rows := (len(columns) + cols - 1) / cols
		fig := chart.NewFigure(rows, cols, hgOut.size(c))
		for i, name := range columns {
			opt := histOptions(cmd, c.Bins, c.Color, c.EdgeColor)
			opt.Surface = chart.BorrowedSurface(fig, fig.Axes(i/cols, i%cols))
			if _, _, err := chart.Histogram(t, name, opt); err != nil {
				return err
			}
			slog.Debug("histogram drawn", "column", name, "row", i/cols, "col", i%cols)
		}
		if err := d.Display(fig, "hist-grid-"+strings.Join(columns, "-")); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d histograms to %s\n", len(columns), d.LastPath)
		return nil
	},
}

func splitColumns(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(histGridCmd)
	addLoadFlags(histGridCmd, &hgLoad)
	addChartFlags(histGridCmd, &hgOut)
	addHistFlags(histGridCmd)
	histGridCmd.Flags().StringVar(&hgColumns, "columns", "", "comma-separated numeric columns to plot")
	histGridCmd.Flags().IntVar(&hgCols, "cols", 2, "histograms per row")
	_ = histGridCmd.MarkFlagRequired("columns")
}
