package hist

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// DType tags the numeric kind of a histogram's bin values. Storage is
// always float64; the tag drives promotion rules: integer histograms hold
// whole-number values and refuse in-place division by another histogram.
type DType int

const (
	// Int64 is the default for histograms filled from raw sample counts.
	Int64 DType = iota
	// Float64 marks a histogram promoted to floating point.
	Float64
)

func (dt DType) String() string {
	if dt == Int64 {
		return "int64"
	}
	return "float64"
}

// Histogram is a dense N-dimensional binned-data container: an ordered
// tuple of axes defining a rectilinear bin lattice, a same-shaped array of
// bin values, and an optional array of per-bin statistical uncertainties
// (standard deviations).
//
// Structural and arithmetic operations return a new Histogram; in-place
// arithmetic and the fill/set family mutate the receiver's buffers while
// leaving its axes untouched.
type Histogram struct {
	axes   []*Axis
	data   *ndarray
	uncert *ndarray // nil = uncertainty not tracked
	dtype  DType
	label  string
	title  string
}

// Option configures a histogram at construction.
type Option func(*histConfig)

type histConfig struct {
	data   []float64
	uncert []float64
	label  string
	title  string
	dtype  *DType
}

// WithData sets the initial bin values from a flat row-major slice whose
// length must equal the product of the axis bin counts. Fractional values
// promote the histogram to Float64 unless WithDType says otherwise.
func WithData(values []float64) Option { return func(c *histConfig) { c.data = values } }

// WithUncert sets the initial per-bin uncertainties (same layout as
// WithData). Passing it turns uncertainty tracking on.
func WithUncert(values []float64) Option { return func(c *histConfig) { c.uncert = values } }

// WithLabel sets the histogram's value label (e.g. "counts").
func WithLabel(label string) Option { return func(c *histConfig) { c.label = label } }

// WithTitle sets the histogram's display title.
func WithTitle(title string) Option { return func(c *histConfig) { c.title = title } }

// WithDType forces the numeric kind, overriding what WithData would infer.
func WithDType(dt DType) Option { return func(c *histConfig) { c.dtype = &dt } }

// New builds a histogram over the given axes, zero-filled unless WithData
// is supplied. Axes are cloned so no edges are shared with the caller.
func New(axes []*Axis, opts ...Option) (*Histogram, error) {
	if len(axes) == 0 {
		return nil, ErrNoAxes
	}
	var c histConfig
	for _, opt := range opts {
		opt(&c)
	}

	h := &Histogram{
		axes:  make([]*Axis, len(axes)),
		label: c.label,
		title: c.title,
	}
	shape := make([]int, len(axes))
	for i, a := range axes {
		if a == nil {
			return nil, fmt.Errorf("%w: axis %d is nil", ErrNoAxes, i)
		}
		h.axes[i] = a.Clone()
		shape[i] = a.NBins()
	}
	h.data = newNDArray(shape)

	if c.data != nil {
		if len(c.data) != h.data.size() {
			return nil, fmt.Errorf("%w: got %d values, want %d", ErrShape, len(c.data), h.data.size())
		}
		copy(h.data.data, c.data)
		if !allIntegral(c.data) {
			h.dtype = Float64
		}
	}
	if c.uncert != nil {
		if len(c.uncert) != h.data.size() {
			return nil, fmt.Errorf("%w: got %d uncertainties, want %d", ErrShape, len(c.uncert), h.data.size())
		}
		h.uncert = newNDArray(shape)
		copy(h.uncert.data, c.uncert)
	}
	if c.dtype != nil {
		h.dtype = *c.dtype
	}
	return h, nil
}

// NewUniform is a 1D convenience: bins uniform bins spanning [min, max].
func NewUniform(bins int, min, max float64, opts ...Option) (*Histogram, error) {
	ax, err := NewAxis(bins, min, max)
	if err != nil {
		return nil, err
	}
	return New([]*Axis{ax}, opts...)
}

func allIntegral(v []float64) bool {
	for _, x := range v {
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

// Dim returns the number of axes.
func (h *Histogram) Dim() int { return len(h.axes) }

// Shape returns the per-axis bin counts.
func (h *Histogram) Shape() []int {
	s := make([]int, len(h.data.shape))
	copy(s, h.data.shape)
	return s
}

// Size returns the total number of bins across all axes.
func (h *Histogram) Size() int { return h.data.size() }

// Axes returns the histogram's axes. Callers must treat them as read-only;
// structural operations swap axes out wholesale rather than editing them.
func (h *Histogram) Axes() []*Axis {
	axes := make([]*Axis, len(h.axes))
	copy(axes, h.axes)
	return axes
}

// Axis returns the axis for one dimension.
func (h *Histogram) Axis(i int) *Axis { return h.axes[i] }

// DType returns the histogram's numeric kind.
func (h *Histogram) DType() DType { return h.dtype }

// Label returns the value label.
func (h *Histogram) Label() string { return h.label }

// SetLabel sets the value label; labels never affect numerics.
func (h *Histogram) SetLabel(label string) { h.label = label }

// Title returns the display title.
func (h *Histogram) Title() string { return h.title }

// SetTitle sets the display title.
func (h *Histogram) SetTitle(title string) { h.title = title }

// Data returns a copy of the bin values as a flat row-major slice.
func (h *Histogram) Data() []float64 { return h.data.flat() }

// DataAt returns the value of a single cell by multi-index.
func (h *Histogram) DataAt(ix ...int) float64 { return h.data.at(ix) }

// SetData overwrites the bin values in place from a flat row-major slice.
// Fractional values promote the histogram to Float64.
func (h *Histogram) SetData(values []float64) error {
	if len(values) != h.data.size() {
		return fmt.Errorf("%w: got %d values, want %d", ErrShape, len(values), h.data.size())
	}
	copy(h.data.data, values)
	if !allIntegral(values) {
		h.dtype = Float64
	}
	return nil
}

// HasUncert reports whether uncertainty is explicitly tracked.
func (h *Histogram) HasUncert() bool { return h.uncert != nil }

// Uncert returns the per-bin uncertainties as a flat row-major slice. When
// uncertainty is not tracked, the Poisson assumption sqrt(|count|) is
// computed lazily from the data.
func (h *Histogram) Uncert() []float64 {
	if h.uncert != nil {
		return h.uncert.flat()
	}
	u := make([]float64, h.data.size())
	for i, v := range h.data.data {
		u[i] = math.Sqrt(math.Abs(v))
	}
	return u
}

// SetUncert overwrites the tracked uncertainties; nil turns tracking off.
func (h *Histogram) SetUncert(values []float64) error {
	if values == nil {
		h.uncert = nil
		return nil
	}
	if len(values) != h.data.size() {
		return fmt.Errorf("%w: got %d uncertainties, want %d", ErrShape, len(values), h.data.size())
	}
	if h.uncert == nil {
		h.uncert = newNDArray(h.data.shape)
	}
	copy(h.uncert.data, values)
	return nil
}

// Clone returns a deep copy, including independent axis copies and all
// metadata. An optional dtype coerces the copy; coercing to Int64
// truncates values toward zero.
func (h *Histogram) Clone(dtype ...DType) *Histogram {
	c := &Histogram{
		axes:  make([]*Axis, len(h.axes)),
		data:  h.data.clone(),
		dtype: h.dtype,
		label: h.label,
		title: h.title,
	}
	for i, a := range h.axes {
		c.axes[i] = a.Clone()
	}
	if h.uncert != nil {
		c.uncert = h.uncert.clone()
	}
	if len(dtype) > 0 {
		c.dtype = dtype[0]
		if c.dtype == Int64 {
			for i, v := range c.data.data {
				c.data.data[i] = math.Trunc(v)
			}
		}
	}
	return c
}

// Reset zeroes the bin values and turns uncertainty tracking off, leaving
// the axes untouched.
func (h *Histogram) Reset() {
	h.data.fill(0)
	h.uncert = nil
}

// Set overwrites every bin value with val. An optional second value sets
// every uncertainty cell; omitting it turns uncertainty tracking off.
func (h *Histogram) Set(val float64, uncert ...float64) {
	h.data.fill(val)
	if val != math.Trunc(val) {
		h.dtype = Float64
	}
	if len(uncert) == 0 {
		h.uncert = nil
		return
	}
	if h.uncert == nil {
		h.uncert = newNDArray(h.data.shape)
	}
	h.uncert.fill(uncert[0])
}

// At evaluates the histogram at a point, returning the value of the bin
// that contains it.
func (h *Histogram) At(pt ...float64) (float64, error) {
	ix, ok, err := h.binIndex(pt)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, pt)
	}
	return h.data.at(ix), nil
}

// binIndex maps a point to a multi-index via independent per-axis bin
// lookups. ok is false when any coordinate falls outside its axis.
func (h *Histogram) binIndex(pt []float64) (ix []int, ok bool, err error) {
	if len(pt) != len(h.axes) {
		return nil, false, fmt.Errorf("%w: point has %d coordinates, histogram has %d axes",
			ErrDimension, len(pt), len(h.axes))
	}
	ix = make([]int, len(pt))
	for d, a := range h.axes {
		b := a.Bin(pt[d])
		if b < 0 || b >= a.NBins() {
			return nil, false, nil
		}
		ix[d] = b
	}
	return ix, true, nil
}

// Equal reports whether both histograms have close axes, close data and
// matching uncertainty (same tracking state, close values when tracked).
// Labels and titles are ignored; IsIdentical includes them.
func (h *Histogram) Equal(that *Histogram) bool {
	if that == nil || len(h.axes) != len(that.axes) {
		return false
	}
	for i, a := range h.axes {
		if !a.Equal(that.axes[i]) {
			return false
		}
	}
	if !allClose(h.data.data, that.data.data) {
		return false
	}
	if (h.uncert == nil) != (that.uncert == nil) {
		return false
	}
	if h.uncert != nil && !allClose(h.uncert.data, that.uncert.data) {
		return false
	}
	return true
}

// IsIdentical is Equal plus matching dtype, labels, title and axis labels.
func (h *Histogram) IsIdentical(that *Histogram) bool {
	if !h.Equal(that) {
		return false
	}
	if h.dtype != that.dtype || h.label != that.label || h.title != that.title {
		return false
	}
	for i, a := range h.axes {
		if a.Label() != that.axes[i].Label() {
			return false
		}
	}
	return true
}

func allClose(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !scalar.EqualWithinAbsOrRel(a[i], b[i], DefaultATol, DefaultRTol) {
			return false
		}
	}
	return true
}

// String summarises the histogram's shape and metadata.
func (h *Histogram) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Histogram(%s", h.dtype)
	for _, a := range h.axes {
		fmt.Fprintf(&sb, ", %d bins [%v, %v]", a.NBins(), a.Min(), a.Max())
	}
	if h.title != "" {
		fmt.Fprintf(&sb, ", %q", h.title)
	}
	sb.WriteString(")")
	return sb.String()
}

// withStructure assembles a derived histogram that shares the receiver's
// metadata but carries replacement axes and buffers. Used by the structural
// operations, which swap axes out atomically with a newly shaped data and
// uncertainty pair.
func (h *Histogram) withStructure(axes []*Axis, data, uncert *ndarray) *Histogram {
	return &Histogram{
		axes:   axes,
		data:   data,
		uncert: uncert,
		dtype:  h.dtype,
		label:  h.label,
		title:  h.title,
	}
}
