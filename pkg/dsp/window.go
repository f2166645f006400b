package dsp

import "math"

// Hamming returns a new slice with the Hamming window applied:
// x[i] * (0.54 - 0.46*cos(2*pi*i/(N-1))). Applied before the transform to
// suppress edge discontinuities that smear spectral peaks.
func Hamming(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 1 {
		out[0] = x[0]
		return out
	}
	for i, v := range x {
		out[i] = v * (0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return out
}
