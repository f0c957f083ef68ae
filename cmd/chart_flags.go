package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edakit/internal/chart"
	cfgpkg "github.com/KaramelBytes/edakit/internal/config"
	"github.com/spf13/cobra"
)

// chartFlags are the output flags shared by the plotting commands.
type chartFlags struct {
	output string
	format string
	width  float64
	height float64
	open   bool
}

func addChartFlags(c *cobra.Command, cf *chartFlags) {
	c.Flags().StringVarP(&cf.output, "output", "o", "", "image path (default: generated name under output_dir)")
	c.Flags().StringVar(&cf.format, "format", "", "image format: png|jpg|svg (default: output extension or image_format)")
	c.Flags().Float64Var(&cf.width, "width", 0, "figure width in inches (default: fig_width)")
	c.Flags().Float64Var(&cf.height, "height", 0, "figure height in inches (default: fig_height)")
	c.Flags().BoolVar(&cf.open, "open", false, "open the image with open_command after writing")
}

func (cf *chartFlags) size(c *cfgpkg.Global) chart.Size {
	s := chart.Size{Width: c.FigWidth, Height: c.FigHeight}
	if cf.width > 0 {
		s.Width = cf.width
	}
	if cf.height > 0 {
		s.Height = cf.height
	}
	return s
}

func (cf *chartFlags) displayer(c *cfgpkg.Global) (*chart.FileDisplayer, error) {
	d := &chart.FileDisplayer{Dir: c.OutputDir, Path: cf.output, Format: cf.format}
	if d.Format == "" && cf.output == "" {
		d.Format = c.ImageFormat
	}
	if cf.open {
		if c.OpenCommand == "" {
			return nil, fmt.Errorf("--open needs open_command in config (e.g. xdg-open)")
		}
		d.OpenCommand = c.OpenCommand
	}
	return d, nil
}

// optionalText returns a pointer to v when the flag was set, so unset label
// flags keep the plotter's column-derived defaults.
func optionalText(c *cobra.Command, name, v string) *string {
	if !c.Flags().Changed(name) {
		return nil
	}
	return chart.Text(v)
}
