// Package histfit fits parametric models to 1D histograms by chi-square
// minimization over the bin centers.
package histfit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/banshee-data/gridhist/hist"
)

// Model evaluates a parametric curve at x.
type Model func(params []float64, x float64) float64

// Gaussian is a three-parameter peak model: amplitude, mean, sigma.
func Gaussian(params []float64, x float64) float64 {
	a, mu, sigma := params[0], params[1], params[2]
	if sigma == 0 {
		return 0
	}
	d := (x - mu) / sigma
	return a * math.Exp(-0.5*d*d)
}

// Result holds the outcome of a fit.
type Result struct {
	// Params are the best-fit parameter values.
	Params []float64
	// ChiSquare is the weighted residual sum at the minimum.
	ChiSquare float64
	// NDF is the number of degrees of freedom: fitted cells minus
	// parameters.
	NDF int
}

// ReducedChiSquare returns ChiSquare / NDF, or NaN when NDF is not
// positive.
func (r *Result) ReducedChiSquare() float64 {
	if r.NDF <= 0 {
		return math.NaN()
	}
	return r.ChiSquare / float64(r.NDF)
}

// Fit minimizes the chi-square of model against a 1D histogram, starting
// from initial. Residuals are weighted by the per-bin uncertainty, with
// the Poisson fallback for untracked histograms; cells with zero
// uncertainty carry no information and are skipped.
func Fit(h *hist.Histogram, model Model, initial []float64) (*Result, error) {
	if h.Dim() != 1 {
		return nil, fmt.Errorf("%w: fitting needs a 1D histogram", hist.ErrDimension)
	}
	if len(initial) == 0 {
		return nil, fmt.Errorf("fit needs at least one initial parameter")
	}

	centers := h.Axis(0).BinCenters()
	data := h.Data()
	uncert := h.Uncert()

	used := 0
	for _, u := range uncert {
		if u > 0 {
			used++
		}
	}
	if used <= len(initial) {
		return nil, fmt.Errorf("fit is underdetermined: %d usable cells for %d parameters", used, len(initial))
	}

	chi2 := func(params []float64) float64 {
		sum := 0.0
		for i, u := range uncert {
			if u <= 0 {
				continue
			}
			r := (data[i] - model(params, centers[i])) / u
			sum += r * r
		}
		return sum
	}

	problem := optimize.Problem{Func: chi2}
	start := make([]float64, len(initial))
	copy(start, initial)

	res, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("fit failed: %w", err)
	}
	if err := res.Status.Err(); err != nil {
		return nil, fmt.Errorf("fit did not converge: %w", err)
	}

	return &Result{
		Params:    res.X,
		ChiSquare: res.F,
		NDF:       used - len(initial),
	}, nil
}

// GaussianGuess derives starting parameters for Gaussian from the
// histogram's own moments: peak value, mean and standard deviation.
func GaussianGuess(h *hist.Histogram) []float64 {
	amp := h.Max()
	if amp == 0 {
		amp = 1
	}
	mean := h.Mean()[0]
	sigma := h.StD()[0]
	if math.IsNaN(mean) {
		mean = (h.Axis(0).Min() + h.Axis(0).Max()) / 2
	}
	if math.IsNaN(sigma) || sigma == 0 {
		sigma = h.Axis(0).BinWidth(0)
	}
	return []float64{amp, mean, sigma}
}

// Eval builds a histogram of the model evaluated at h's bin centers, for
// overlaying a fitted curve on the data.
func Eval(h *hist.Histogram, model Model, params []float64) (*hist.Histogram, error) {
	if h.Dim() != 1 {
		return nil, fmt.Errorf("%w: evaluation needs a 1D histogram", hist.ErrDimension)
	}
	centers := h.Axis(0).BinCenters()
	values := make([]float64, len(centers))
	for i, c := range centers {
		values[i] = model(params, c)
	}
	return hist.New([]*hist.Axis{h.Axis(0).Clone()},
		hist.WithData(values), hist.WithDType(hist.Float64), hist.WithLabel(h.Label()))
}
