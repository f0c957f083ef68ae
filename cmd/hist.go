package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edakit/internal/chart"
	"github.com/spf13/cobra"
)

var (
	histLoad      loadFlags
	histOut       chartFlags
	histColumn    string
	histBins      int
	histKDE       bool
	histGrid      bool
	histColor     string
	histEdgeColor string
	histTitle     string
	histXLabel    string
	histYLabel    string
)

var histCmd = &cobra.Command{
	Use:   "hist <file>",
	Short: "Plot a histogram of a numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		t, err := histLoad.loadTable(args[0])
		if err != nil {
			return err
		}
		d, err := histOut.displayer(c)
		if err != nil {
			return err
		}
		opt := histOptions(cmd, c.Bins, c.Color, c.EdgeColor)
		opt.FigSize = histOut.size(c)
		opt.Display = d
		if _, _, err := chart.Histogram(t, histColumn, opt); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote histogram of '%s' to %s\n", histColumn, d.LastPath)
		return nil
	},
}

// histOptions applies the histogram flags over config defaults.
func histOptions(cmd *cobra.Command, bins int, color, edge string) chart.HistOptions {
	opt := chart.DefaultHistOptions()
	opt.Bins = bins
	opt.Color = color
	opt.EdgeColor = edge
	if cmd.Flags().Changed("bins") {
		opt.Bins = histBins
	}
	if cmd.Flags().Changed("color") {
		opt.Color = histColor
	}
	if cmd.Flags().Changed("edge-color") {
		opt.EdgeColor = histEdgeColor
	}
	opt.KDE = histKDE
	opt.Grid = histGrid
	opt.Title = optionalText(cmd, "title", histTitle)
	opt.XLabel = optionalText(cmd, "xlabel", histXLabel)
	opt.YLabel = optionalText(cmd, "ylabel", histYLabel)
	return opt
}

func addHistFlags(c *cobra.Command) {
	c.Flags().IntVar(&histBins, "bins", 50, "number of equal-width bins (default: config bins)")
	c.Flags().BoolVar(&histKDE, "kde", false, "overlay a kernel density curve")
	c.Flags().BoolVar(&histGrid, "grid", true, "draw grid lines")
	c.Flags().StringVar(&histColor, "color", "skyblue", "bar fill color (default: config color)")
	c.Flags().StringVar(&histEdgeColor, "edge-color", "black", "bar edge color or 'none' (default: config edge_color)")
	c.Flags().StringVar(&histXLabel, "xlabel", "", "x axis label (default: column name)")
	c.Flags().StringVar(&histYLabel, "ylabel", "", "y axis label (default: Frequency)")
}

func init() {
	rootCmd.AddCommand(histCmd)
	addLoadFlags(histCmd, &histLoad)
	addChartFlags(histCmd, &histOut)
	addHistFlags(histCmd)
	histCmd.Flags().StringVarP(&histColumn, "column", "c", "", "numeric column to plot")
	histCmd.Flags().StringVar(&histTitle, "title", "", "plot title (default: Distribution of <column>)")
	_ = histCmd.MarkFlagRequired("column")
}
