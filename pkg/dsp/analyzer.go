package dsp

import "math"

// epsilon keeps log10 away from zero for silent bins and silent blocks.
const epsilon = 1e-12

const (
	thresholdOldWeight = 0.9
	thresholdNewWeight = 0.1
)

// Analyzer extracts a dominant-frequency estimate from raw sample blocks.
// It keeps two pieces of per-session state: an adaptive noise threshold
// blended from block energy, and a FIFO of recent valid estimates whose mean
// is what gets handed to the classifier. Not safe for concurrent use; a
// session feeds it from a single receive goroutine.
type Analyzer struct {
	sampleRate  int
	baseCeiling float64 // configured base threshold, dB; the adaptive value never exceeds it
	threshold   float64 // current adaptive threshold, dB
	smoothing   int     // FIFO capacity W
	history     []float64
}

func NewAnalyzer(sampleRate int, baseThresholdDB float64, smoothing int) *Analyzer {
	if smoothing < 1 {
		smoothing = 1
	}
	a := &Analyzer{
		sampleRate:  sampleRate,
		baseCeiling: baseThresholdDB,
		smoothing:   smoothing,
	}
	a.Reset()
	return a
}

// Reset restores the threshold to the configured base and drops the estimate
// history. Called when a session starts so no state leaks across sessions.
func (a *Analyzer) Reset() {
	a.threshold = a.baseCeiling
	a.history = a.history[:0]
}

// Threshold reports the current adaptive threshold in dB.
func (a *Analyzer) Threshold() float64 {
	return a.threshold
}

// Analyze consumes one sample block and returns the smoothed dominant
// frequency in Hz. ok is false when no spectral peak exceeded the noise
// threshold this block; the threshold is still updated in that case.
func (a *Analyzer) Analyze(block []float64) (freq float64, ok bool) {
	est, valid := a.detect(block)
	a.updateThreshold(block)
	if !valid {
		return 0, false
	}

	if len(a.history) == a.smoothing {
		a.history = a.history[1:]
	}
	a.history = append(a.history, est)

	var sum float64
	for _, f := range a.history {
		sum += f
	}
	return sum / float64(len(a.history)), true
}

// detect runs the spectral pipeline on one block: zero-pad to a power of two,
// Hamming window, forward transform, then pick the strongest bin among those
// whose dB magnitude clears the current threshold. Bins below threshold are
// excluded before the maximum is taken, so a weak direct-path peak is never
// outvoted by sub-threshold noise.
func (a *Analyzer) detect(block []float64) (float64, bool) {
	if len(block) == 0 {
		return 0, false
	}

	n := NextPowerOfTwo(len(block))
	padded := make([]float64, n)
	copy(padded, block)

	re := Hamming(padded)
	im := make([]float64, n)
	if err := Transform(re, im); err != nil {
		// n is a power of two by construction
		return 0, false
	}

	best := -1
	bestMag := math.Inf(-1)
	for i := 0; i < n/2; i++ {
		mag := 10 * math.Log10(re[i]*re[i]+im[i]*im[i]+epsilon)
		if mag > a.threshold && mag > bestMag {
			best = i
			bestMag = mag
		}
	}
	if best < 0 {
		return 0, false
	}
	return float64(best) * float64(a.sampleRate) / float64(n), true
}

// updateThreshold blends the block's RMS energy into the running threshold,
// 0.9 old / 0.1 new, then clamps at the base ceiling. Runs every block
// regardless of detection outcome: the detector tightens in a quiet room and
// loosens, but never past the ceiling, in a noisy one.
func (a *Analyzer) updateThreshold(block []float64) {
	if len(block) == 0 {
		return
	}
	var sum float64
	for _, v := range block {
		sum += v * v
	}
	meanSquare := sum / float64(len(block))
	db := 10 * math.Log10(meanSquare+epsilon)

	a.threshold = thresholdOldWeight*a.threshold + thresholdNewWeight*db
	if a.threshold > a.baseCeiling {
		a.threshold = a.baseCeiling
	}
}
