package chart

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

type recorder struct {
	figs  []*Figure
	names []string
	err   error
}

func (r *recorder) Display(fig *Figure, name string) error {
	r.figs = append(r.figs, fig)
	r.names = append(r.names, name)
	return r.err
}

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		[]string{"age", "city", "empty"},
		[][]string{
			{"23", "Paris", ""},
			{"", "Lyon", "NA"},
			{"31", "Paris", ""},
			{"45", "", ""},
			{"38", "Nice", ""},
			{"29", "Paris", ""},
		},
		table.DefaultLoadOptions(),
	)
	require.NoError(t, err)
	return tbl
}

func TestHistogramOwnedSurfaceDisplaysOnce(t *testing.T) {
	rec := &recorder{}
	opt := DefaultHistOptions()
	opt.Bins = 5
	opt.Display = rec

	fig, ax, err := Histogram(sampleTable(t), "age", opt)
	require.NoError(t, err)
	require.NotNil(t, fig)
	require.Len(t, rec.figs, 1)
	assert.Same(t, fig, rec.figs[0])
	assert.Equal(t, "hist-age", rec.names[0])
	assert.Same(t, fig.Axes(0, 0), ax)
	assert.Equal(t, "Distribution of age", ax.Title.Text)
	assert.Equal(t, "age", ax.X.Label.Text)
	assert.Equal(t, "Frequency", ax.Y.Label.Text)
	assert.Equal(t, DefaultSize, fig.Size)
}

func TestHistogramBorrowedSurfaceNeverDisplays(t *testing.T) {
	rec := &recorder{}
	shared := NewFigure(1, 2, Size{Width: 8, Height: 4})
	opt := DefaultHistOptions()
	opt.Display = rec
	opt.Surface = BorrowedSurface(shared, shared.Axes(0, 1))
	opt.Title = Text("Ages")
	opt.YLabel = Text("")

	fig, ax, err := Histogram(sampleTable(t), "age", opt)
	require.NoError(t, err)
	assert.Empty(t, rec.figs)
	assert.Same(t, shared, fig)
	assert.Same(t, shared.Axes(0, 1), ax)
	assert.Equal(t, "Ages", ax.Title.Text)
	assert.Equal(t, "", ax.Y.Label.Text)

	var buf bytes.Buffer
	require.NoError(t, shared.Render(&buf, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestHistogramWithDensityOverlay(t *testing.T) {
	rec := &recorder{}
	opt := DefaultHistOptions()
	opt.KDE = true
	opt.Grid = false
	opt.Display = rec
	_, _, err := Histogram(sampleTable(t), "age", opt)
	require.NoError(t, err)
	require.Len(t, rec.figs, 1)

	var buf bytes.Buffer
	require.NoError(t, rec.figs[0].Render(&buf, "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestHistogramErrors(t *testing.T) {
	tbl := sampleTable(t)
	rec := &recorder{}
	opt := DefaultHistOptions()
	opt.Display = rec

	_, _, err := Histogram(tbl, "missing", opt)
	assert.True(t, errors.Is(err, table.ErrColumnNotFound))

	_, _, err = Histogram(tbl, "city", opt)
	assert.True(t, errors.Is(err, ErrNotNumeric))

	_, _, err = Histogram(tbl, "empty", opt)
	assert.True(t, errors.Is(err, ErrNoData))

	bad := opt
	bad.Bins = 0
	_, _, err = Histogram(tbl, "age", bad)
	assert.True(t, errors.Is(err, ErrInvalidBins))

	bad = opt
	bad.Color = "not-a-color"
	_, _, err = Histogram(tbl, "age", bad)
	assert.Error(t, err)

	assert.Empty(t, rec.figs)
}

func TestHistogramDisplayErrorStillReturnsFigure(t *testing.T) {
	rec := &recorder{err: errors.New("no screen")}
	opt := DefaultHistOptions()
	opt.Display = rec
	fig, ax, err := Histogram(sampleTable(t), "age", opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no screen")
	assert.NotNil(t, fig)
	assert.NotNil(t, ax)
}

func TestHistogramBinsPreserveCount(t *testing.T) {
	values := []float64{-3.5, 0, 0, 1, 2.25, 2.25, 7, 9.75, 10, 10, 11, 42}
	for bins := 1; bins <= 25; bins++ {
		hb, err := HistogramBins(values, bins)
		require.NoError(t, err)
		assert.Len(t, hb, bins)
		var sum float64
		for _, b := range hb {
			sum += b.Weight
		}
		assert.Equal(t, float64(len(values)), sum, "bins=%d", bins)
	}

	hb, err := HistogramBins([]float64{5, 5, 5}, 4)
	require.NoError(t, err)
	var sum float64
	for _, b := range hb {
		sum += b.Weight
	}
	assert.Equal(t, 3.0, sum)

	_, err = HistogramBins(nil, 3)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestDensityCurve(t *testing.T) {
	xs := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}
	pts, ok := densityCurve(xs, 1)
	require.True(t, ok)
	require.Len(t, pts, densityPoints)
	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, 5.0, pts[len(pts)-1].X)

	var area float64
	for i := 1; i < len(pts); i++ {
		area += (pts[i].X - pts[i-1].X) * (pts[i].Y + pts[i-1].Y) / 2
	}
	assert.Greater(t, area, 0.7)
	assert.Less(t, area, 1.0)

	_, ok = densityCurve([]float64{2, 2, 2}, 1)
	assert.False(t, ok)
	_, ok = densityCurve([]float64{2}, 1)
	assert.False(t, ok)
}

func TestBarVertical(t *testing.T) {
	rec := &recorder{}
	opt := DefaultBarOptions()
	opt.Display = rec

	ax, err := Bar(sampleTable(t), "city", opt)
	require.NoError(t, err)
	require.Len(t, rec.figs, 1)
	assert.Equal(t, "bar-city", rec.names[0])
	assert.Same(t, rec.figs[0].Axes(0, 0), ax)
	assert.Equal(t, "Bar Plot of city", ax.Title.Text)
	assert.Equal(t, "city", ax.X.Label.Text)
	assert.Equal(t, "Count", ax.Y.Label.Text)
	assert.InDelta(t, math.Pi/4, ax.X.Tick.Label.Rotation, 1e-12)
	assert.Equal(t, 0.0, ax.Y.Min)

	var buf bytes.Buffer
	require.NoError(t, rec.figs[0].Render(&buf, "png"))
	assert.NotZero(t, buf.Len())
}

func TestBarHorizontalIgnoresRotation(t *testing.T) {
	rec := &recorder{}
	opt := DefaultBarOptions()
	opt.Display = rec
	opt.Horizontal = true
	opt.Annotate = false
	opt.Palette = "dark"

	ax, err := Bar(sampleTable(t), "city", opt)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ax.X.Tick.Label.Rotation)
	assert.Equal(t, "Count", ax.X.Label.Text)
	assert.Equal(t, "city", ax.Y.Label.Text)
	assert.Len(t, rec.figs, 1)
}

func TestBarErrors(t *testing.T) {
	rec := &recorder{}
	opt := DefaultBarOptions()
	opt.Display = rec

	_, err := Bar(sampleTable(t), "nope", opt)
	assert.True(t, errors.Is(err, table.ErrColumnNotFound))

	opt.Palette = "red,nonsense"
	_, err = Bar(sampleTable(t), "city", opt)
	assert.Error(t, err)
	assert.Empty(t, rec.figs)
}

func TestCountLabelsOffset(t *testing.T) {
	tbl := sampleTable(t)
	col, err := tbl.Column("city")
	require.NoError(t, err)
	freq := analysis.ValueCounts(col)

	l, err := countLabels(freq, false)
	require.NoError(t, err)
	require.Len(t, l.XYs, 3)
	assert.InDelta(t, 3.2, l.XYs[0].Y, 1e-9)
	assert.Equal(t, 0.0, l.XYs[0].X)
	assert.Equal(t, []string{"3", "1", "1"}, l.Labels)

	l, err = countLabels(freq, true)
	require.NoError(t, err)
	assert.InDelta(t, 3.2, l.XYs[0].X, 1e-9)
	assert.Equal(t, 2.0, l.XYs[2].Y)
}

func TestFigureRenderFormats(t *testing.T) {
	fig := NewFigure(0, 0, Size{})
	rows, cols := fig.Grid()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, cols)

	var buf bytes.Buffer
	require.NoError(t, fig.Render(&buf, "JPG"))
	assert.NotZero(t, buf.Len())

	err := fig.Render(&buf, "gif")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFileDisplayer(t *testing.T) {
	dir := t.TempDir()
	d := &FileDisplayer{Dir: filepath.Join(dir, "charts")}
	require.NoError(t, d.Display(NewFigure(1, 1, Size{Width: 3, Height: 2}), "hist-Mass [mg/L]"))
	assert.True(t, strings.HasPrefix(filepath.Base(d.LastPath), "hist-mass-mg-l-"))
	assert.Equal(t, ".png", filepath.Ext(d.LastPath))
	_, err := os.Stat(d.LastPath)
	require.NoError(t, err)

	explicit := &FileDisplayer{Path: filepath.Join(dir, "out.svg")}
	require.NoError(t, explicit.Display(NewFigure(1, 1, DefaultSize), "ignored"))
	b, err := os.ReadFile(explicit.LastPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")
}

func TestSurfaceOwnership(t *testing.T) {
	assert.True(t, NewOwnedSurface().Owned())
	assert.True(t, Surface{}.Owned())
	fig := NewFigure(2, 2, DefaultSize)
	s := BorrowedSurface(fig, nil)
	assert.False(t, s.Owned())
	gotFig, ax := s.resolve(DefaultSize)
	assert.Same(t, fig, gotFig)
	assert.Same(t, fig.Axes(0, 0), ax)
}

func singleColumn(t *testing.T, name string, cells ...string) *table.Table {
	t.Helper()
	records := make([][]string, len(cells))
	for i, c := range cells {
		records[i] = []string{c}
	}
	tbl, err := table.New([]string{name}, records, table.DefaultLoadOptions())
	require.NoError(t, err)
	return tbl
}

func TestHistogramRejectsNonFiniteValues(t *testing.T) {
	cases := map[string][]string{
		"negative infinity": {"-Infinity", "2", "3"},
		"positive infinity": {"1", "2", "inf"},
		"overflowing range": {"1e308", "-1e308"},
	}
	for name, cells := range cases {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{}
			opt := DefaultHistOptions()
			opt.KDE = true
			opt.Display = rec
			var err error
			require.NotPanics(t, func() {
				_, _, err = Histogram(singleColumn(t, "v", cells...), "v", opt)
			})
			assert.True(t, errors.Is(err, ErrNonFinite), "got %v", err)
			assert.Empty(t, rec.figs)
		})
	}
}

func TestHistogramBinsRejectsNonFiniteValues(t *testing.T) {
	for _, vals := range [][]float64{
		{math.Inf(-1), 2, 3},
		{1, 2, math.Inf(1)},
		{1, math.NaN()},
		{1e308, -1e308},
	} {
		_, err := HistogramBins(vals, 10)
		assert.True(t, errors.Is(err, ErrNonFinite), "values %v: got %v", vals, err)
	}
}

func TestHistogramWideFiniteRangeSkipsDensity(t *testing.T) {
	rec := &recorder{}
	opt := DefaultHistOptions()
	opt.KDE = true
	opt.Display = rec
	_, _, err := Histogram(singleColumn(t, "v", "1e307", "-1e307", "0"), "v", opt)
	require.NoError(t, err)
	assert.Len(t, rec.figs, 1)
}

func TestBarOneBarPerDistinctValue(t *testing.T) {
	tbl := singleColumn(t, "letter", "x", "y", "x", "z", "x")
	col, err := tbl.Column("letter")
	require.NoError(t, err)
	freq := analysis.ValueCounts(col)
	colors, err := Palette("default", len(freq))
	require.NoError(t, err)

	bars, err := barCharts(freq, colors, vg.Points(20), false)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	var total float64
	for i, b := range bars {
		require.Len(t, b.Values, 1)
		assert.Equal(t, float64(i), b.XMin)
		total += b.Values[0]
	}
	assert.Equal(t, 5.0, total)
	assert.Equal(t, 3.0, bars[0].Values[0])

	rec := &recorder{}
	opt := DefaultBarOptions()
	opt.Annotate = false
	opt.Display = rec
	ax, err := Bar(tbl, "letter", opt)
	require.NoError(t, err)
	require.Len(t, rec.figs, 1)

	ticks, ok := ax.X.Tick.Marker.(plot.ConstantTicks)
	require.True(t, ok)
	var labels []string
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"x", "y", "z"}, labels)
	assert.Equal(t, 0.0, ax.X.Min)
	assert.Equal(t, 2.0, ax.X.Max)
	assert.Equal(t, 0.0, ax.Y.Min)
	assert.Equal(t, 3.0, ax.Y.Max)

	opt.Horizontal = true
	ax, err = Bar(tbl, "letter", opt)
	require.NoError(t, err)
	_, ok = ax.Y.Tick.Marker.(plot.ConstantTicks)
	assert.True(t, ok)
	assert.Equal(t, 2.0, ax.Y.Max)
	assert.Equal(t, 3.0, ax.X.Max)
	assert.Len(t, rec.figs, 2)
}

func TestBarAllMissingColumnDrawsEmptyFigure(t *testing.T) {
	for _, horizontal := range []bool{false, true} {
		rec := &recorder{}
		opt := DefaultBarOptions()
		opt.Horizontal = horizontal
		opt.Display = rec
		var ax *plot.Plot
		var err error
		require.NotPanics(t, func() {
			ax, err = Bar(sampleTable(t), "empty", opt)
		})
		require.NoError(t, err)
		require.Len(t, rec.figs, 1)
		assert.Equal(t, "Bar Plot of empty", ax.Title.Text)

		var buf bytes.Buffer
		require.NoError(t, rec.figs[0].Render(&buf, "png"))
		assert.NotZero(t, buf.Len())
	}
}
