package jit

// Batch helpers over the compiled scalar callable. These make no batching or
// vectorization promises: each invokes the Function once per element.

// Map stores f(x) for every x in xs into dst and returns it, allocating a
// fresh slice when dst is nil or shorter than xs. dst and xs may alias.
func (f *Function) Map(dst, xs []float64) []float64 {
	if len(dst) < len(xs) {
		dst = make([]float64, len(xs))
	}
	for i, x := range xs {
		dst[i] = f.call(x)
	}
	return dst
}

// Sum returns Σ f(x) over xs, accumulating left to right. The empty slice
// sums to 0.
func (f *Function) Sum(xs []float64) float64 {
	var acc float64
	for _, x := range xs {
		acc += f.call(x)
	}
	return acc
}

// Table samples f at n points evenly spaced over [x0, x1], endpoints
// included. n must be at least 2.
func (f *Function) Table(x0, x1 float64, n int) []float64 {
	out := make([]float64, n)
	step := (x1 - x0) / float64(n-1)
	for i := range out {
		out[i] = f.call(x0 + float64(i)*step)
	}
	return out
}
