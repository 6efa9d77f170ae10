package hist

import "math"

// ndarray is a dense row-major N-dimensional array of float64. It carries
// the index arithmetic shared by data and uncertainty buffers so that the
// two can never disagree about shape. All axis-wise kernels allocate a
// fresh result; nothing aliases the receiver.
type ndarray struct {
	shape []int
	data  []float64
}

func newNDArray(shape []int) *ndarray {
	size := 1
	for _, n := range shape {
		size *= n
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &ndarray{shape: s, data: make([]float64, size)}
}

func (a *ndarray) size() int { return len(a.data) }

func (a *ndarray) clone() *ndarray {
	c := newNDArray(a.shape)
	copy(c.data, a.data)
	return c
}

func (a *ndarray) fill(v float64) {
	for i := range a.data {
		a.data[i] = v
	}
}

// flat returns a copy of the underlying row-major buffer.
func (a *ndarray) flat() []float64 {
	f := make([]float64, len(a.data))
	copy(f, a.data)
	return f
}

// flatIndex converts a multi-index to a position in the row-major buffer.
// The multi-index must already be in range on every axis.
func (a *ndarray) flatIndex(ix []int) int {
	flat := 0
	for d, i := range ix {
		flat = flat*a.shape[d] + i
	}
	return flat
}

func (a *ndarray) at(ix []int) float64     { return a.data[a.flatIndex(ix)] }
func (a *ndarray) setAt(ix []int, v float64) { a.data[a.flatIndex(ix)] = v }
func (a *ndarray) addAt(ix []int, v float64) { a.data[a.flatIndex(ix)] += v }

// axisDims decomposes the array around axis ax: outer iterates the axes
// before ax, n is the extent of ax, inner iterates the axes after it. The
// flat index of (o, j, i) is (o*n+j)*inner + i.
func (a *ndarray) axisDims(ax int) (outer, n, inner int) {
	outer, inner = 1, 1
	for d := 0; d < ax; d++ {
		outer *= a.shape[d]
	}
	n = a.shape[ax]
	for d := ax + 1; d < len(a.shape); d++ {
		inner *= a.shape[d]
	}
	return outer, n, inner
}

// shapeWithout returns the shape with axis ax removed.
func (a *ndarray) shapeWithout(ax int) []int {
	s := make([]int, 0, len(a.shape)-1)
	for d, n := range a.shape {
		if d != ax {
			s = append(s, n)
		}
	}
	return s
}

// sumAxis sums out axis ax. With quad true the values combine in
// quadrature (sqrt of the sum of squares), as uncertainties do.
func (a *ndarray) sumAxis(ax int, quad bool) *ndarray {
	outer, n, inner := a.axisDims(ax)
	out := newNDArray(a.shapeWithout(ax))
	for o := 0; o < outer; o++ {
		for j := 0; j < n; j++ {
			base := (o*n + j) * inner
			for i := 0; i < inner; i++ {
				v := a.data[base+i]
				if quad {
					v *= v
				}
				out.data[o*inner+i] += v
			}
		}
	}
	if quad {
		for i, v := range out.data {
			out.data[i] = math.Sqrt(v)
		}
	}
	return out
}

// compressAxis keeps only the positions of axis ax where mask is true.
func (a *ndarray) compressAxis(ax int, mask []bool) *ndarray {
	outer, n, inner := a.axisDims(ax)
	kept := 0
	for _, m := range mask {
		if m {
			kept++
		}
	}
	shape := make([]int, len(a.shape))
	copy(shape, a.shape)
	shape[ax] = kept
	out := newNDArray(shape)
	for o := 0; o < outer; o++ {
		k := 0
		for j := 0; j < n; j++ {
			if !mask[j] {
				continue
			}
			src := (o*n + j) * inner
			dst := (o*kept + k) * inner
			copy(out.data[dst:dst+inner], a.data[src:src+inner])
			k++
		}
	}
	return out
}

// groupAxis reduces axis ax by summing runs of positions. bounds holds the
// group boundaries in original bin indices: group g covers
// [bounds[g], bounds[g+1]). Positions outside [bounds[0], bounds[len-1])
// are dropped. With quad true groups combine in quadrature.
func (a *ndarray) groupAxis(ax int, bounds []int, quad bool) *ndarray {
	outer, n, inner := a.axisDims(ax)
	groups := len(bounds) - 1
	shape := make([]int, len(a.shape))
	copy(shape, a.shape)
	shape[ax] = groups
	out := newNDArray(shape)
	for o := 0; o < outer; o++ {
		for g := 0; g < groups; g++ {
			dst := (o*groups + g) * inner
			for j := bounds[g]; j < bounds[g+1] && j < n; j++ {
				src := (o*n + j) * inner
				for i := 0; i < inner; i++ {
					v := a.data[src+i]
					if quad {
						v *= v
					}
					out.data[dst+i] += v
				}
			}
		}
	}
	if quad {
		for i, v := range out.data {
			out.data[i] = math.Sqrt(v)
		}
	}
	return out
}

// sliceAxis fixes axis ax at position j, removing that axis.
func (a *ndarray) sliceAxis(ax, j int) *ndarray {
	outer, n, inner := a.axisDims(ax)
	out := newNDArray(a.shapeWithout(ax))
	for o := 0; o < outer; o++ {
		src := (o*n + j) * inner
		copy(out.data[o*inner:(o+1)*inner], a.data[src:src+inner])
	}
	return out
}
