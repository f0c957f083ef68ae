package chart

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
)

const densityPoints = 200

// densityCurve evaluates a Gaussian kernel density estimate over the data range,
// with Scott's bandwidth, scaled by scale. It reports false when the sample has
// fewer than two values or no spread.
func densityCurve(xs []float64, scale float64) (plotter.XYs, bool) {
	n := len(xs)
	if n < 2 {
		return nil, false
	}
	sd := stat.StdDev(xs, nil)
	if sd == 0 || math.IsNaN(sd) || math.IsInf(sd, 0) {
		return nil, false
	}
	kernel := distuv.Normal{Mu: 0, Sigma: sd * math.Pow(float64(n), -0.2)}
	grid := floats.Span(make([]float64, densityPoints), floats.Min(xs), floats.Max(xs))
	pts := make(plotter.XYs, len(grid))
	for i, g := range grid {
		var sum float64
		for _, x := range xs {
			sum += kernel.Prob(g - x)
		}
		pts[i] = plotter.XY{X: g, Y: sum / float64(n) * scale}
	}
	return pts, true
}
