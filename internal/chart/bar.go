package chart

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"strconv"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// annotationOffset is the gap, in count units, between a bar's end and its label.
const annotationOffset = 0.2

// BarOptions configures Bar. Start from DefaultBarOptions.
type BarOptions struct {
	// Title defaults to "Bar Plot of {column}".
	Title *string
	// XLabel defaults to the column name (vertical) or "Count" (horizontal).
	XLabel *string
	// YLabel defaults to "Count" (vertical) or the column name (horizontal).
	YLabel *string
	// Palette is a palette name or a comma-separated color list. Default "default".
	Palette string
	// FigSize of the created figure. Default 10x6 in.
	FigSize Size
	// Annotate writes each count past the end of its bar. Default true.
	Annotate bool
	// RotateXLabels turns x tick labels 45 degrees, right-aligned. Only affects vertical bars. Default true.
	RotateXLabels bool
	// Horizontal puts values on the y axis and counts on the x axis. Default false.
	Horizontal bool
	// Display shows the figure. Nil means DefaultDisplayer.
	Display Displayer
}

// DefaultBarOptions returns the documented defaults.
func DefaultBarOptions() BarOptions {
	return BarOptions{
		Palette:       "default",
		FigSize:       DefaultSize,
		Annotate:      true,
		RotateXLabels: true,
	}
}

// Bar draws one bar per distinct value of a column, most frequent first, on a
// new figure that is always displayed. The axes are returned for further customization.
func Bar(t *table.Table, column string, opt BarOptions) (*plot.Plot, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	freq := analysis.ValueCounts(col)
	colors, err := Palette(opt.Palette, len(freq))
	if err != nil {
		return nil, err
	}

	fig := NewFigure(1, 1, opt.FigSize)
	ax := fig.Axes(0, 0)
	bars, err := barCharts(freq, colors, barWidth(fig.Size, len(freq), opt.Horizontal), opt.Horizontal)
	if err != nil {
		return nil, err
	}
	for _, b := range bars {
		ax.Add(b)
	}
	if len(freq) == 0 {
		slog.Warn("bar plot has no values to draw", "column", column)
	}

	if opt.Annotate && len(freq) > 0 {
		labels, err := countLabels(freq, opt.Horizontal)
		if err != nil {
			return nil, err
		}
		ax.Add(labels)
	}

	catLabel, countLabel := column, "Count"
	if opt.Horizontal {
		if len(freq) > 0 {
			ax.NominalY(freq.Labels()...)
		}
		ax.X.Min = 0
		ax.Title.Text = textOr(opt.Title, "Bar Plot of "+column)
		ax.X.Label.Text = textOr(opt.XLabel, countLabel)
		ax.Y.Label.Text = textOr(opt.YLabel, catLabel)
	} else {
		if len(freq) > 0 {
			ax.NominalX(freq.Labels()...)
		}
		ax.Y.Min = 0
		ax.Title.Text = textOr(opt.Title, "Bar Plot of "+column)
		ax.X.Label.Text = textOr(opt.XLabel, catLabel)
		ax.Y.Label.Text = textOr(opt.YLabel, countLabel)
		if opt.RotateXLabels {
			ax.X.Tick.Label.Rotation = math.Pi / 4
			ax.X.Tick.Label.XAlign = text.XRight
			ax.X.Tick.Label.YAlign = text.YCenter
		}
	}

	if err := displayer(opt.Display).Display(fig, "bar-"+column); err != nil {
		return ax, fmt.Errorf("display bar plot: %w", err)
	}
	return ax, nil
}

// barCharts builds one single-bar chart per category at positions 0..n-1.
func barCharts(freq analysis.FrequencyTable, colors []color.Color, width vg.Length, horizontal bool) ([]*plotter.BarChart, error) {
	bars := make([]*plotter.BarChart, len(freq))
	for i, fc := range freq {
		b, err := plotter.NewBarChart(plotter.Values{float64(fc.Count)}, width)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", fc.Value, err)
		}
		b.XMin = float64(i)
		b.Color = colors[i]
		b.LineStyle.Width = 0
		b.Horizontal = horizontal
		bars[i] = b
	}
	return bars, nil
}

func countLabels(freq analysis.FrequencyTable, horizontal bool) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(freq))
	names := make([]string, len(freq))
	for i, fc := range freq {
		end := float64(fc.Count) + annotationOffset
		if horizontal {
			xys[i] = plotter.XY{X: end, Y: float64(i)}
		} else {
			xys[i] = plotter.XY{X: float64(i), Y: end}
		}
		names[i] = strconv.Itoa(fc.Count)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("count labels: %w", err)
	}
	for i := range l.TextStyle {
		if horizontal {
			l.TextStyle[i].YAlign = text.YCenter
		} else {
			l.TextStyle[i].XAlign = text.XCenter
		}
	}
	return l, nil
}

// barWidth spreads n bars over roughly 70% of the category axis.
func barWidth(s Size, n int, horizontal bool) vg.Length {
	w, h := s.lengths()
	span := w
	if horizontal {
		span = h
	}
	if n < 1 {
		n = 1
	}
	return span * 0.7 / vg.Length(n+1)
}
