package dsp

import (
	"errors"
	"math"
)

var (
	ErrLengthMismatch = errors.New("dsp: real and imaginary parts differ in length")
	ErrNotPowerOfTwo  = errors.New("dsp: transform length is not a power of two")
)

// Transform computes the discrete Fourier transform of the signal whose real
// and imaginary parts are given in re and im, in place (Cooley-Tukey radix-2:
// bit-reversal permutation followed by iterative butterfly passes).
func Transform(re, im []float64) error {
	if len(re) != len(im) {
		return ErrLengthMismatch
	}
	n := len(re)
	if n == 0 || n&(n-1) != 0 {
		return ErrNotPowerOfTwo
	}
	if n == 1 {
		return nil
	}

	bitReverse(re, im)

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		angle := -2 * math.Pi / float64(size)
		wRe, wIm := math.Cos(angle), math.Sin(angle)
		for start := 0; start < n; start += size {
			tRe, tIm := 1.0, 0.0
			for j := start; j < start+half; j++ {
				k := j + half
				vRe := tRe*re[k] - tIm*im[k]
				vIm := tRe*im[k] + tIm*re[k]
				re[k] = re[j] - vRe
				im[k] = im[j] - vIm
				re[j] += vRe
				im[j] += vIm
				tRe, tIm = tRe*wRe-tIm*wIm, tRe*wIm+tIm*wRe
			}
		}
	}
	return nil
}

// Inverse computes the inverse transform in place: conjugate, forward
// transform, conjugate again and scale by 1/N. A rejected input is left
// unmodified.
func Inverse(re, im []float64) error {
	if len(re) != len(im) {
		return ErrLengthMismatch
	}
	if n := len(re); n == 0 || n&(n-1) != 0 {
		return ErrNotPowerOfTwo
	}
	for i := range im {
		im[i] = -im[i]
	}
	if err := Transform(re, im); err != nil {
		return err
	}
	scale := 1 / float64(len(re))
	for i := range re {
		re[i] *= scale
		im[i] *= -scale
	}
	return nil
}

func bitReverse(re, im []float64) {
	n := len(re)
	bits := 0
	for tmp := n; tmp > 1; tmp >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := reverseBits(i, bits)
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}
}

func reverseBits(x, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
