package hist

import (
	"fmt"
	"math"
)

// arithOp tags the four binary operations handled by the single arithmetic
// engine. Public wrappers select the op and the mutating or allocating form.
type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
)

func (op arithOp) String() string {
	return [...]string{"add", "subtract", "multiply", "divide"}[op]
}

// operandKind distinguishes the three things a histogram can be combined
// with: a scalar, a flat array matching the data layout, or another
// histogram with identical axes.
type operandKind int

const (
	operandScalar operandKind = iota
	operandValues
	operandHist
)

// Operand is the right-hand side of a histogram arithmetic operation.
// Build one with Scalar, Values or Hist.
type Operand struct {
	kind   operandKind
	scalar float64
	values []float64
	hist   *Histogram
}

// Scalar wraps a single number applied to every bin.
func Scalar(v float64) Operand { return Operand{kind: operandScalar, scalar: v} }

// Values wraps a flat row-major array that must match the histogram's size.
func Values(v []float64) Operand { return Operand{kind: operandValues, values: v} }

// Hist wraps another histogram, which must have identical axes.
func Hist(h *Histogram) Operand { return Operand{kind: operandHist, hist: h} }

// Add returns h + o without mutating h.
func (h *Histogram) Add(o Operand) (*Histogram, error) { return h.binary(opAdd, o, false, false) }

// Sub returns h - o without mutating h.
func (h *Histogram) Sub(o Operand) (*Histogram, error) { return h.binary(opSub, o, false, false) }

// Mul returns h * o without mutating h.
func (h *Histogram) Mul(o Operand) (*Histogram, error) { return h.binary(opMul, o, false, false) }

// Div returns h / o without mutating h. Cells with a zero divisor yield
// zero rather than NaN or Inf.
func (h *Histogram) Div(o Operand) (*Histogram, error) { return h.binary(opDiv, o, false, false) }

// SubFrom returns o - h, the reflected form of Sub.
func (h *Histogram) SubFrom(o Operand) (*Histogram, error) { return h.binary(opSub, o, false, true) }

// DivFrom returns o / h, the reflected form of Div.
func (h *Histogram) DivFrom(o Operand) (*Histogram, error) { return h.binary(opDiv, o, false, true) }

// AddInPlace accumulates o into h's own buffers.
func (h *Histogram) AddInPlace(o Operand) error {
	_, err := h.binary(opAdd, o, true, false)
	return err
}

// SubInPlace subtracts o from h in place.
func (h *Histogram) SubInPlace(o Operand) error {
	_, err := h.binary(opSub, o, true, false)
	return err
}

// MulInPlace multiplies h by o in place.
func (h *Histogram) MulInPlace(o Operand) error {
	_, err := h.binary(opMul, o, true, false)
	return err
}

// DivInPlace divides h by o in place, promoting the histogram to Float64.
// Dividing an Int64 histogram by another histogram returns
// ErrIntegerDivision; dividing by a scalar or array promotes and proceeds.
func (h *Histogram) DivInPlace(o Operand) error {
	_, err := h.binary(opDiv, o, true, false)
	return err
}

// binary is the single entry point behind all arithmetic forms. reflected
// swaps the roles of receiver and operand (o - h, o / h). The receiver's
// axes are never touched; in-place calls mutate only the data and
// uncertainty buffers.
func (h *Histogram) binary(op arithOp, o Operand, inPlace, reflected bool) (*Histogram, error) {
	size := h.data.size()

	var (
		rhsAt      func(i int) float64
		rhsUncAt   func(i int) float64
		rhsTracked bool
		rhsFloat   bool
	)
	switch o.kind {
	case operandScalar:
		v := o.scalar
		rhsAt = func(int) float64 { return v }
		rhsFloat = v != math.Trunc(v)
	case operandValues:
		if len(o.values) != size {
			return nil, fmt.Errorf("%w: operand has %d values, histogram has %d bins",
				ErrShape, len(o.values), size)
		}
		vals := o.values
		rhsAt = func(i int) float64 { return vals[i] }
		rhsFloat = !allIntegral(vals)
	case operandHist:
		that := o.hist
		if that == nil {
			return nil, fmt.Errorf("%w: nil histogram operand", ErrAxisMismatch)
		}
		if len(that.axes) != len(h.axes) {
			return nil, fmt.Errorf("%w: %d axes vs %d", ErrAxisMismatch, len(that.axes), len(h.axes))
		}
		for i, a := range h.axes {
			if !a.Equal(that.axes[i]) {
				return nil, fmt.Errorf("%w: axis %d differs", ErrAxisMismatch, i)
			}
		}
		rhsAt = func(i int) float64 { return that.data.data[i] }
		rhsFloat = that.dtype == Float64
		if that.uncert != nil {
			rhsTracked = true
			rhsUncAt = func(i int) float64 { return that.uncert.data[i] }
		}
	}
	if rhsUncAt == nil {
		rhsUncAt = func(int) float64 { return 0 }
	}

	resDType := h.dtype
	if op == opDiv || rhsFloat {
		resDType = Float64
	}
	if inPlace && op == opDiv && o.kind == operandHist && h.dtype == Int64 {
		return nil, fmt.Errorf("%w: promote with Clone(Float64) first", ErrIntegerDivision)
	}

	// Uncertainty is propagated only when at least one operand tracks it,
	// and is computed before the data buffer changes so mul/div ratios see
	// the original values.
	tracked := h.uncert != nil || rhsTracked
	var newUncert []float64
	if tracked {
		newUncert = make([]float64, size)
		for i := 0; i < size; i++ {
			a, b := h.data.data[i], rhsAt(i)
			ua, ub := 0.0, rhsUncAt(i)
			if h.uncert != nil {
				ua = h.uncert.data[i]
			}
			if reflected {
				a, b = b, a
				ua, ub = ub, ua
			}
			newUncert[i] = propagate(op, a, b, ua, ub)
		}
	}

	target := h
	if !inPlace {
		target = h.Clone()
	}
	for i := 0; i < size; i++ {
		a, b := h.data.data[i], rhsAt(i)
		if reflected {
			a, b = b, a
		}
		target.data.data[i] = apply(op, a, b)
	}
	target.dtype = resDType
	if tracked {
		if target.uncert == nil {
			target.uncert = newNDArray(target.data.shape)
		}
		copy(target.uncert.data, newUncert)
	} else {
		target.uncert = nil
	}
	return target, nil
}

func apply(op arithOp, a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	default:
		if b == 0 {
			return 0
		}
		return a / b
	}
}

// propagate computes the uncertainty of a single result cell. Add and
// subtract combine in quadrature; multiply and divide combine the relative
// uncertainties in quadrature, with zero-valued cells contributing zero to
// the ratio instead of NaN or Inf.
func propagate(op arithOp, a, b, ua, ub float64) float64 {
	switch op {
	case opAdd, opSub:
		return math.Hypot(ua, ub)
	default:
		res := apply(op, a, b)
		return math.Abs(res) * math.Sqrt(relTerm(ua, a)+relTerm(ub, b))
	}
}

func relTerm(u, d float64) float64 {
	if d == 0 {
		return 0
	}
	r := u / d
	return r * r
}
