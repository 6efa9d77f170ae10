package hist

import "errors"

var (
	// ErrNoAxes is returned when constructing a histogram without axes.
	ErrNoAxes = errors.New("histogram requires at least one axis")

	// ErrInvalidBinCount is returned for a non-positive uniform bin count.
	ErrInvalidBinCount = errors.New("bin count must be positive")

	// ErrInvalidRange is returned when a uniform axis range is not low < high.
	ErrInvalidRange = errors.New("axis range must be from low to high")

	// ErrInvalidEdges is returned when bin edges are not a strictly
	// increasing sequence of at least two values.
	ErrInvalidEdges = errors.New("bin edges must be strictly increasing with at least two values")

	// ErrUnknownSnap is returned for an unrecognised snap keyword.
	ErrUnknownSnap = errors.New("unknown snap keyword")

	// ErrAxisIndex is returned when an axis index is outside [0, Dim).
	ErrAxisIndex = errors.New("axis index out of range")

	// ErrAxisMismatch is returned when a histogram-histogram operation is
	// attempted between histograms whose axes differ.
	ErrAxisMismatch = errors.New("histogram axes do not match")

	// ErrShape is returned when a data or uncertainty array does not match
	// the shape implied by the axes.
	ErrShape = errors.New("array shape does not match histogram axes")

	// ErrIntegerDivision is returned for in-place division of an
	// integer-typed histogram by another histogram, which would silently
	// truncate.
	ErrIntegerDivision = errors.New("in-place division of integer histogram by histogram")

	// ErrOutOfRange is returned when evaluating the histogram at a point
	// outside its axes.
	ErrOutOfRange = errors.New("point is outside the histogram axes")

	// ErrDimension is returned when an operation requires a different
	// dimensionality than the histogram has.
	ErrDimension = errors.New("wrong histogram dimensionality for operation")
)
