package chart

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/KaramelBytes/edakit/internal/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HistOptions configures Histogram. Start from DefaultHistOptions; the nil
// label fields fall back to defaults derived from the column name.
type HistOptions struct {
	// Bins is the number of equal-width bins. Default 50.
	Bins int
	// FigSize is used only when the plotter creates the figure. Default 10x6 in.
	FigSize Size
	// EdgeColor outlines each bar. Default "black"; "none" disables outlines.
	EdgeColor string
	// Color fills the bars. Default "skyblue".
	Color string
	// Title defaults to "Distribution of {column}".
	Title *string
	// XLabel defaults to the column name.
	XLabel *string
	// YLabel defaults to "Frequency".
	YLabel *string
	// Grid draws grid lines. Default true.
	Grid bool
	// KDE overlays a density curve scaled to counts. Default false.
	KDE bool
	// Surface selects an owned (default) or borrowed drawing target.
	Surface Surface
	// Display shows owned figures. Nil means DefaultDisplayer.
	Display Displayer
}

// DefaultHistOptions returns the documented defaults.
func DefaultHistOptions() HistOptions {
	return HistOptions{
		Bins:      50,
		FigSize:   DefaultSize,
		EdgeColor: "black",
		Color:     "skyblue",
		Grid:      true,
	}
}

// Histogram bins the non-missing values of a numeric column and draws them.
// On an owned surface the new figure is displayed before returning; on a
// borrowed surface the caller's figure is only drawn on. The figure and axes
// are returned either way for further customization.
func Histogram(t *table.Table, column string, opt HistOptions) (*Figure, *plot.Plot, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, nil, err
	}
	if col.Kind() != table.KindNumeric {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotNumeric, column)
	}
	vals, _ := col.Floats()
	if opt.Bins < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidBins, opt.Bins)
	}
	if len(vals) == 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrNoData, column)
	}
	if err := checkFinite(vals); err != nil {
		return nil, nil, fmt.Errorf("column %q: %w", column, err)
	}
	fill, err := ParseColor(opt.Color)
	if err != nil {
		return nil, nil, fmt.Errorf("fill color: %w", err)
	}
	edge, err := ParseColor(opt.EdgeColor)
	if err != nil {
		return nil, nil, fmt.Errorf("edge color: %w", err)
	}

	h, err := plotter.NewHist(plotter.Values(vals), opt.Bins)
	if err != nil {
		return nil, nil, fmt.Errorf("bin %q: %w", column, err)
	}
	h.FillColor = fill
	if edge == nil {
		h.LineStyle.Width = 0
	} else {
		h.LineStyle.Color = edge
	}

	fig, ax := opt.Surface.resolve(opt.FigSize)
	if opt.Grid {
		ax.Add(plotter.NewGrid())
	}
	ax.Add(h)
	if opt.KDE {
		h.FillColor = withAlpha(fill, 160)
		if err := addDensity(ax, vals, h.Width, fill); err != nil {
			return nil, nil, err
		}
	}

	ax.Title.Text = textOr(opt.Title, "Distribution of "+column)
	ax.X.Label.Text = textOr(opt.XLabel, column)
	ax.Y.Label.Text = textOr(opt.YLabel, "Frequency")

	if opt.Surface.Owned() {
		if err := displayer(opt.Display).Display(fig, "hist-"+column); err != nil {
			return fig, ax, fmt.Errorf("display histogram: %w", err)
		}
	}
	return fig, ax, nil
}

func addDensity(ax *plot.Plot, vals []float64, binWidth float64, c color.Color) error {
	pts, ok := densityCurve(vals, float64(len(vals))*binWidth)
	if !ok {
		slog.Debug("density overlay skipped: sample has no spread", "values", len(vals))
		return nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("density line: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	if c != nil {
		line.LineStyle.Color = c
	}
	ax.Add(line)
	return nil
}

// HistogramBins returns the equal-width bins Histogram would draw for values.
func HistogramBins(values []float64, bins int) ([]plotter.HistogramBin, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBins, bins)
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	if err := checkFinite(values); err != nil {
		return nil, err
	}
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, err
	}
	return h.Bins, nil
}

// checkFinite rejects infinities and value ranges whose width overflows, both
// of which break equal-width binning.
func checkFinite(vals []float64) error {
	for _, v := range vals {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: got %g", ErrNonFinite, v)
		}
	}
	lo, hi := floats.Min(vals), floats.Max(vals)
	if math.IsInf(hi-lo, 0) {
		return fmt.Errorf("%w: range %g to %g overflows", ErrNonFinite, lo, hi)
	}
	return nil
}
