package histfit

import (
	"errors"
	"math"
	"testing"

	"github.com/banshee-data/gridhist/hist"
)

// gaussHist builds a histogram holding an exact Gaussian curve with unit
// uncertainties, so the fit has a known minimum.
func gaussHist(t *testing.T, amp, mean, sigma float64) *hist.Histogram {
	t.Helper()
	h, err := hist.NewUniform(60, mean-6*sigma, mean+6*sigma)
	if err != nil {
		t.Fatal(err)
	}
	centers := h.Axis(0).BinCenters()
	data := make([]float64, len(centers))
	uncert := make([]float64, len(centers))
	for i, c := range centers {
		data[i] = Gaussian([]float64{amp, mean, sigma}, c)
		uncert[i] = 1
	}
	if err := h.SetData(data); err != nil {
		t.Fatal(err)
	}
	if err := h.SetUncert(uncert); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestFitGaussian(t *testing.T) {
	h := gaussHist(t, 100, 5, 1.5)

	res, err := Fit(h, Gaussian, []float64{80, 4, 1})
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{100, 5, 1.5}
	for i, p := range res.Params {
		if math.Abs(p-want[i]) > 0.05 {
			t.Errorf("param %d = %v, want %v", i, p, want[i])
		}
	}
	if res.ChiSquare > 1 {
		t.Errorf("chi-square at the exact minimum = %v, want near 0", res.ChiSquare)
	}
	if res.NDF != 60-3 {
		t.Errorf("NDF = %d, want 57", res.NDF)
	}
}

func TestFitWithGaussianGuess(t *testing.T) {
	h := gaussHist(t, 40, -2, 0.8)

	guess := GaussianGuess(h)
	res, err := Fit(h, Gaussian, guess)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Params[1]-(-2)) > 0.05 {
		t.Errorf("fitted mean = %v, want -2", res.Params[1])
	}
	if math.Abs(res.Params[2]-0.8) > 0.05 {
		t.Errorf("fitted sigma = %v, want 0.8", res.Params[2])
	}
}

func TestFitSkipsZeroUncertainty(t *testing.T) {
	h := gaussHist(t, 100, 5, 1.5)

	// Poison one cell and zero its uncertainty: the fit must ignore it.
	data := h.Data()
	uncert := h.Uncert()
	data[30] = 1e6
	uncert[30] = 0
	if err := h.SetData(data); err != nil {
		t.Fatal(err)
	}
	if err := h.SetUncert(uncert); err != nil {
		t.Fatal(err)
	}

	res, err := Fit(h, Gaussian, []float64{80, 4, 1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Params[1]-5) > 0.05 {
		t.Errorf("fitted mean = %v, want 5 despite the poisoned cell", res.Params[1])
	}
	if res.NDF != 59-3 {
		t.Errorf("NDF = %d, want 56 (one cell skipped)", res.NDF)
	}
}

func TestFitErrors(t *testing.T) {
	ax, _ := hist.NewAxis(3, 0, 3)
	ay, _ := hist.NewAxis(3, 0, 3)
	h2d, err := hist.New([]*hist.Axis{ax, ay})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Fit(h2d, Gaussian, []float64{1, 0, 1}); !errors.Is(err, hist.ErrDimension) {
		t.Errorf("2D fit: got %v, want ErrDimension", err)
	}

	h := gaussHist(t, 10, 1, 1)
	if _, err := Fit(h, Gaussian, nil); err == nil {
		t.Error("empty initial parameters should be rejected")
	}

	// All-zero uncertainties leave nothing to fit.
	flat, err := hist.NewUniform(10, 0, 10, hist.WithUncert(make([]float64, 10)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Fit(flat, Gaussian, []float64{1, 5, 1}); err == nil {
		t.Error("fit with no usable cells should be rejected")
	}
}

func TestEval(t *testing.T) {
	h := gaussHist(t, 100, 5, 1.5)

	curve, err := Eval(h, Gaussian, []float64{100, 5, 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if !curve.Axis(0).Equal(h.Axis(0)) {
		t.Error("Eval should reuse the source binning")
	}
	if curve.DType() != hist.Float64 {
		t.Errorf("Eval DType = %v, want float64", curve.DType())
	}
	// The curve reproduces the data it was built from.
	diff, err := curve.Sub(hist.Hist(h))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(diff.Sum()) > 1e-9 {
		t.Errorf("curve differs from source data by %v", diff.Sum())
	}
}
