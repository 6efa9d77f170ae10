package hist

import (
	"errors"
	"math"
	"testing"
)

func TestNewAxisUniform(t *testing.T) {
	tests := []struct {
		name     string
		bins     int
		min, max float64
	}{
		{"unit bins", 10, 0, 10},
		{"fractional width", 3, 0, 1},
		{"negative range", 90, -3, 3},
		{"single bin", 1, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAxis(tt.bins, tt.min, tt.max)
			if err != nil {
				t.Fatalf("NewAxis(%d, %v, %v) failed: %v", tt.bins, tt.min, tt.max, err)
			}
			if a.NBins() != tt.bins {
				t.Errorf("NBins() = %d, want %d", a.NBins(), tt.bins)
			}
			if a.Min() != tt.min || a.Max() != tt.max {
				t.Errorf("Limits = [%v, %v], want [%v, %v]", a.Min(), a.Max(), tt.min, tt.max)
			}
			want := (tt.max - tt.min) / float64(tt.bins)
			for i, w := range a.BinWidths() {
				if math.Abs(w-want) > 1e-12 {
					t.Errorf("BinWidths()[%d] = %v, want %v", i, w, want)
				}
			}
		})
	}
}

func TestNewAxisErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Axis, error)
		wantErr error
	}{
		{"zero bins", func() (*Axis, error) { return NewAxis(0, 0, 1) }, ErrInvalidBinCount},
		{"negative bins", func() (*Axis, error) { return NewAxis(-3, 0, 1) }, ErrInvalidBinCount},
		{"reversed range", func() (*Axis, error) { return NewAxis(10, 5, 1) }, ErrInvalidRange},
		{"equal range", func() (*Axis, error) { return NewAxis(10, 2, 2) }, ErrInvalidRange},
		{"one edge", func() (*Axis, error) { return NewAxisEdges([]float64{1}) }, ErrInvalidEdges},
		{"non-increasing", func() (*Axis, error) { return NewAxisEdges([]float64{0, 1, 1, 2}) }, ErrInvalidEdges},
		{"decreasing", func() (*Axis, error) { return NewAxisEdges([]float64{3, 2, 1}) }, ErrInvalidEdges},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.build(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAxisEqualIgnoresLabel(t *testing.T) {
	a, _ := NewAxis(100, 0, 10)

	edges := make([]float64, 101)
	for i := range edges {
		edges[i] = float64(i) * 0.1
	}
	b, err := NewAxisEdges(edges)
	if err != nil {
		t.Fatal(err)
	}
	b.SetLabel("distance (m)")

	if !a.Equal(b) {
		t.Error("uniform axis and equivalent explicit edges should be equal")
	}
	if !b.Equal(a) {
		t.Error("Equal should be symmetric")
	}

	c, _ := NewAxis(100, 0, 10.1)
	if a.Equal(c) {
		t.Error("axes with different ranges should not be equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
}

func TestAxisBin(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	tests := []struct {
		x    float64
		want int
	}{
		{-0.5, -1}, // below first edge
		{0, 0},     // low edge is inclusive
		{0.5, 0},
		{1, 1}, // interior edge belongs to the upper bin
		{5.999, 5},
		{9.999, 9},
		{10, 10}, // at the last edge: one past the last bin
		{42, 10},
	}

	for _, tt := range tests {
		if got := a.Bin(tt.x); got != tt.want {
			t.Errorf("Bin(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestAxisInAxis(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	for _, tt := range []struct {
		x    float64
		want bool
	}{
		{-0.01, false},
		{0, true},
		{9.999, true},
		{10, false}, // max is exclusive, consistent with Bin
	} {
		if got := a.InAxis(tt.x); got != tt.want {
			t.Errorf("InAxis(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestAxisEdgeIndex(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	tests := []struct {
		name string
		x    float64
		snap Snap
		want int
	}{
		{"nearest low side", 3.2, SnapNearest, 3},
		{"nearest high side", 3.8, SnapNearest, 4},
		{"nearest exact tie prefers low", 3.5, SnapNearest, 3},
		{"nearest on edge", 4.0, SnapNearest, 4},
		{"low", 3.8, SnapLow, 3},
		{"high", 3.2, SnapHigh, 4},
		{"below range clamps", -5, SnapLow, 0},
		{"below range clamps high", -5, SnapHigh, 0},
		{"above range clamps", 15, SnapHigh, 10},
		{"above range clamps low", 15, SnapLow, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.EdgeIndex(tt.x, tt.snap)
			if err != nil {
				t.Fatalf("EdgeIndex(%v, %q) failed: %v", tt.x, tt.snap, err)
			}
			if got != tt.want {
				t.Errorf("EdgeIndex(%v, %q) = %d, want %d", tt.x, tt.snap, got, tt.want)
			}
		})
	}

	if _, err := a.EdgeIndex(3, Snap("sideways")); !errors.Is(err, ErrUnknownSnap) {
		t.Errorf("unknown snap: got %v, want ErrUnknownSnap", err)
	}
}

func TestAxisEdgeIndexBoth(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	low, high := a.EdgeIndexBoth(3.5)
	if low != 3 || high != 4 {
		t.Errorf("EdgeIndexBoth(3.5) = (%d, %d), want (3, 4)", low, high)
	}
	low, high = a.EdgeIndexBoth(-2)
	if low != 0 || high != 0 {
		t.Errorf("EdgeIndexBoth(-2) = (%d, %d), want (0, 0)", low, high)
	}
	low, high = a.EdgeIndexBoth(11)
	if low != 10 || high != 10 {
		t.Errorf("EdgeIndexBoth(11) = (%d, %d), want (10, 10)", low, high)
	}
}

func TestAxisBinWidthDefault(t *testing.T) {
	a, _ := NewAxisEdges([]float64{0, 1, 3, 6})

	// Without an argument the width of bin 1 (the second bin) is returned,
	// a historical default kept for compatibility.
	if got := a.BinWidth(); got != 2 {
		t.Errorf("BinWidth() = %v, want 2", got)
	}
	if got := a.BinWidth(0); got != 1 {
		t.Errorf("BinWidth(0) = %v, want 1", got)
	}
	if got := a.BinWidth(2); got != 3 {
		t.Errorf("BinWidth(2) = %v, want 3", got)
	}
}

func TestAxisIsUniform(t *testing.T) {
	uniform, _ := NewAxis(100, 0, 10)
	if !uniform.IsUniform(DefaultRTol, DefaultATol) {
		t.Error("uniform axis reported non-uniform")
	}

	log, _ := NewAxisEdges([]float64{1, 10, 100, 1000})
	if log.IsUniform(DefaultRTol, DefaultATol) {
		t.Error("log-spaced axis reported uniform")
	}

	// One outlier bin: the median keeps the comparison anchored on the
	// regular width, so the axis is still flagged non-uniform.
	outlier, _ := NewAxisEdges([]float64{0, 1, 2, 3, 10})
	if outlier.IsUniform(DefaultRTol, DefaultATol) {
		t.Error("axis with one outlier bin reported uniform")
	}
}

func TestAxisDerived(t *testing.T) {
	a, _ := NewAxisEdges([]float64{0, 1, 3, 6})

	if got := a.Overflow(); got != 7 {
		t.Errorf("Overflow() = %v, want 7", got)
	}
	wantCenters := []float64{0.5, 2, 4.5}
	for i, c := range a.BinCenters() {
		if c != wantCenters[i] {
			t.Errorf("BinCenters()[%d] = %v, want %v", i, c, wantCenters[i])
		}
	}
	if min, max := a.Limits(); min != 0 || max != 6 {
		t.Errorf("Limits() = (%v, %v), want (0, 6)", min, max)
	}
}

func TestAxisSetEdgesRevalidates(t *testing.T) {
	a, _ := NewAxis(10, 0, 10)

	if err := a.SetEdges([]float64{0, 2, 4}); err != nil {
		t.Fatalf("SetEdges valid: %v", err)
	}
	if a.NBins() != 2 {
		t.Errorf("NBins() after SetEdges = %d, want 2", a.NBins())
	}
	if err := a.SetEdges([]float64{4, 2, 0}); !errors.Is(err, ErrInvalidEdges) {
		t.Errorf("SetEdges decreasing: got %v, want ErrInvalidEdges", err)
	}
	if err := a.SetEdges([]float64{1}); !errors.Is(err, ErrInvalidEdges) {
		t.Errorf("SetEdges single edge: got %v, want ErrInvalidEdges", err)
	}
}

func TestAxisCloneIndependent(t *testing.T) {
	a, _ := NewAxis(4, 0, 4)
	a.SetLabel("x")

	c := a.Clone()
	if !a.Equal(c) || c.Label() != "x" {
		t.Fatal("clone should copy edges and label")
	}
	if err := c.SetEdges([]float64{0, 10, 20}); err != nil {
		t.Fatal(err)
	}
	if a.NBins() != 4 {
		t.Error("mutating a clone changed the original axis")
	}
}

func TestNewAxisEdgesDefensiveCopy(t *testing.T) {
	edges := []float64{0, 1, 2}
	a, err := NewAxisEdges(edges)
	if err != nil {
		t.Fatal(err)
	}
	edges[1] = 99
	if a.Edges()[1] != 1 {
		t.Error("axis shares storage with the caller's edge slice")
	}
}
