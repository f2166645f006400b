package modem

import (
	"math"
	"time"
)

// Synthesizer renders (frequency, duration) pairs into PCM waveforms.
// Stateless and deterministic: the same inputs always produce the same
// samples.
type Synthesizer struct {
	SampleRate int
	Amplitude  int32 // peak amplitude; 0 means full scale
}

func (s Synthesizer) amplitude() float64 {
	if s.Amplitude == 0 {
		return float64(math.MaxInt32)
	}
	return float64(s.Amplitude)
}

func (s Synthesizer) sampleCount(d time.Duration) int {
	return s.SampleRate * int(d.Milliseconds()) / 1000
}

// Tone renders a pure sinusoid at freq Hz lasting d.
func (s Synthesizer) Tone(freq float64, d time.Duration) []int32 {
	n := s.sampleCount(d)
	amp := s.amplitude()
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(math.Round(amp * math.Sin(2*math.Pi*float64(i)*freq/float64(s.SampleRate))))
	}
	return out
}

// Silence renders a zero-filled gap lasting d.
func (s Synthesizer) Silence(d time.Duration) []int32 {
	return make([]int32, s.sampleCount(d))
}
