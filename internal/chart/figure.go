package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

var (
	ErrNotNumeric        = errors.New("column is not numeric")
	ErrNoData            = errors.New("column has no non-missing values")
	ErrInvalidBins       = errors.New("bin count must be at least 1")
	ErrNonFinite         = errors.New("values must be finite with a finite range")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Size is a figure size in inches.
type Size struct {
	Width, Height float64
}

// DefaultSize matches a 10x6 inch figure.
var DefaultSize = Size{Width: 10, Height: 6}

func (s Size) lengths() (vg.Length, vg.Length) {
	if s.Width <= 0 || s.Height <= 0 {
		s = DefaultSize
	}
	return vg.Length(s.Width) * vg.Inch, vg.Length(s.Height) * vg.Inch
}

// Figure is a drawing surface holding a rows x cols grid of axes.
type Figure struct {
	Size Size
	axes [][]*plot.Plot
}

// NewFigure creates a figure with one empty plot per grid cell. Grid
// dimensions below 1 are raised to 1.
func NewFigure(rows, cols int, size Size) *Figure {
	rows, cols = max(rows, 1), max(cols, 1)
	f := &Figure{Size: size, axes: make([][]*plot.Plot, rows)}
	for r := range f.axes {
		f.axes[r] = make([]*plot.Plot, cols)
		for c := range f.axes[r] {
			f.axes[r][c] = plot.New()
		}
	}
	return f
}

// Grid returns the figure's row and column count.
func (f *Figure) Grid() (rows, cols int) {
	return len(f.axes), len(f.axes[0])
}

// Axes returns the plot at row r, column c.
func (f *Figure) Axes(r, c int) *plot.Plot {
	return f.axes[r][c]
}

// Render lays out the grid and encodes the figure as png, jpg or svg.
func (f *Figure) Render(w io.Writer, format string) error {
	width, height := f.Size.lengths()
	switch strings.ToLower(format) {
	case "png", "jpg", "jpeg":
		img := vgimg.New(width, height)
		f.draw(draw.New(img))
		var err error
		if strings.EqualFold(format, "png") {
			_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(w)
		} else {
			_, err = vgimg.JpegCanvas{Canvas: img}.WriteTo(w)
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}
	case "svg":
		c := vgsvg.New(width, height)
		f.draw(draw.New(c))
		if _, err := c.WriteTo(w); err != nil {
			return fmt.Errorf("encode svg: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q (use png, jpg or svg)", ErrUnsupportedFormat, format)
	}
	return nil
}

func (f *Figure) draw(dc draw.Canvas) {
	rows, cols := f.Grid()
	if rows == 1 && cols == 1 {
		f.axes[0][0].Draw(dc)
		return
	}
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}
	canvases := plot.Align(f.axes, tiles, dc)
	for r := range f.axes {
		for c := range f.axes[r] {
			f.axes[r][c].Draw(canvases[r][c])
		}
	}
}

// Surface says where a plotter draws. The zero value is an owned surface: the
// plotter creates the figure, lays it out and displays it. A borrowed surface
// belongs to the caller and is only drawn on.
type Surface struct {
	fig *Figure
	ax  *plot.Plot
}

// NewOwnedSurface asks the plotter to create and display its own figure.
func NewOwnedSurface() Surface { return Surface{} }

// BorrowedSurface draws onto ax, which lives in the caller's fig. When ax is
// nil the figure's first axes are used. fig may be nil if the caller only holds axes.
func BorrowedSurface(fig *Figure, ax *plot.Plot) Surface {
	if ax == nil && fig != nil {
		ax = fig.Axes(0, 0)
	}
	return Surface{fig: fig, ax: ax}
}

// Owned reports whether the plotter owns the figure lifecycle.
func (s Surface) Owned() bool { return s.ax == nil }

func (s Surface) resolve(size Size) (*Figure, *plot.Plot) {
	if s.Owned() {
		fig := NewFigure(1, 1, size)
		return fig, fig.Axes(0, 0)
	}
	return s.fig, s.ax
}

// Text returns a pointer to s, for the optional label fields of the option structs.
func Text(s string) *string { return &s }

func textOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
