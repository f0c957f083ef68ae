package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edakit/internal/chart"
	"github.com/spf13/cobra"
)

var (
	barLoad       loadFlags
	barOut        chartFlags
	barColumn     string
	barHorizontal bool
	barAnnotate   bool
	barRotate     bool
	barPalette    string
	barTitle      string
	barXLabel     string
	barYLabel     string
)

var barCmd = &cobra.Command{
	Use:   "bar <file>",
	Short: "Plot value frequencies of a categorical column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		t, err := barLoad.loadTable(args[0])
		if err != nil {
			return err
		}
		d, err := barOut.displayer(c)
		if err != nil {
			return err
		}
		opt := chart.DefaultBarOptions()
		opt.Palette = c.Palette
		if cmd.Flags().Changed("palette") {
			opt.Palette = barPalette
		}
		opt.Horizontal = barHorizontal
		opt.Annotate = barAnnotate
		opt.RotateXLabels = barRotate
		opt.FigSize = barOut.size(c)
		opt.Title = optionalText(cmd, "title", barTitle)
		opt.XLabel = optionalText(cmd, "xlabel", barXLabel)
		opt.YLabel = optionalText(cmd, "ylabel", barYLabel)
		opt.Display = d
		if _, err := chart.Bar(t, barColumn, opt); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote bar plot of '%s' to %s\n", barColumn, d.LastPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(barCmd)
	addLoadFlags(barCmd, &barLoad)
	addChartFlags(barCmd, &barOut)
	barCmd.Flags().StringVarP(&barColumn, "column", "c", "", "column whose values are counted")
	barCmd.Flags().BoolVar(&barHorizontal, "horizontal", false, "draw horizontal bars")
	barCmd.Flags().BoolVar(&barAnnotate, "annotate", true, "write each count past its bar")
	barCmd.Flags().BoolVar(&barRotate, "rotate", true, "rotate x tick labels 45 degrees (vertical bars only)")
	barCmd.Flags().StringVar(&barPalette, "palette", "default", "palette name (default|soft|dark) or comma-separated colors (default: config palette)")
	barCmd.Flags().StringVar(&barTitle, "title", "", "plot title (default: Bar Plot of <column>)")
	barCmd.Flags().StringVar(&barXLabel, "xlabel", "", "x axis label")
	barCmd.Flags().StringVar(&barYLabel, "ylabel", "", "y axis label")
	_ = barCmd.MarkFlagRequired("column")
}
