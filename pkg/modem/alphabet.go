package modem

import (
	"fmt"
	"math"
)

// Symbol is one unit of transmitted information: a data symbol in 0..M-1, or
// one of the two frame markers.
type Symbol int

const (
	SymbolStart Symbol = -1
	SymbolStop  Symbol = -2
)

func (s Symbol) IsData() bool {
	return s >= 0
}

func (s Symbol) String() string {
	switch s {
	case SymbolStart:
		return "START"
	case SymbolStop:
		return "STOP"
	default:
		return fmt.Sprintf("D%d", int(s))
	}
}

// AlphabetConfig describes an M-ary FSK alphabet. Data symbol k is carried at
// BaseFreq + k*FreqStep; the START and STOP markers use their own dedicated
// frequencies outside the data band.
type AlphabetConfig struct {
	Size       int     // M, 2 or 4
	BaseFreq   float64 // Hz, data symbol 0
	FreqStep   float64 // Hz between adjacent data symbols
	StartFreq  float64 // Hz, frame start marker
	StopFreq   float64 // Hz, frame stop marker
	Tolerance  float64 // Hz accepted around each target
	SampleRate int
}

// New validates the configuration and builds the alphabet. Overlapping
// tolerance bands make the channel non-deterministic, so they are rejected
// here rather than discovered on air.
func (c AlphabetConfig) New() (*Alphabet, error) {
	if c.Size != 2 && c.Size != 4 {
		return nil, fmt.Errorf("alphabet size must be 2 or 4, got %d", c.Size)
	}
	if c.FreqStep <= 0 {
		return nil, fmt.Errorf("frequency step must be positive, got %g", c.FreqStep)
	}
	if c.Tolerance <= 0 {
		return nil, fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	if c.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}

	a := &Alphabet{
		size:      c.Size,
		tolerance: c.Tolerance,
		start:     c.StartFreq,
		stop:      c.StopFreq,
		freqs:     make([]float64, c.Size),
	}
	for k := 0; k < c.Size; k++ {
		a.freqs[k] = c.BaseFreq + float64(k)*c.FreqStep
	}

	nyquist := float64(c.SampleRate) / 2
	targets := append(append([]float64{}, a.freqs...), a.start, a.stop)
	for _, f := range targets {
		if f <= 0 {
			return nil, fmt.Errorf("target frequency %g Hz is not positive", f)
		}
		if f+c.Tolerance >= nyquist {
			return nil, fmt.Errorf("target frequency %g Hz too close to Nyquist (%g Hz)", f, nyquist)
		}
	}
	for i := 0; i < len(targets); i++ {
		for j := i + 1; j < len(targets); j++ {
			if math.Abs(targets[i]-targets[j]) < 2*c.Tolerance {
				return nil, fmt.Errorf("tolerance bands overlap: %g Hz and %g Hz with tolerance %g Hz",
					targets[i], targets[j], c.Tolerance)
			}
		}
	}
	return a, nil
}

// Alphabet is the validated symbol set with its frequency bindings.
type Alphabet struct {
	size      int
	tolerance float64
	freqs     []float64
	start     float64
	stop      float64
}

func (a *Alphabet) Size() int { return a.size }

// BitsPerSymbol is 1 in binary mode and 2 in quaternary mode.
func (a *Alphabet) BitsPerSymbol() int {
	if a.size == 4 {
		return 2
	}
	return 1
}

// Freq returns the target frequency bound to a symbol.
func (a *Alphabet) Freq(s Symbol) float64 {
	switch s {
	case SymbolStart:
		return a.start
	case SymbolStop:
		return a.stop
	default:
		return a.freqs[int(s)]
	}
}

// Classify maps a frequency estimate onto the alphabet: markers first, then
// the nearest data frequency. A frequency must fall strictly inside a
// tolerance band; an estimate exactly between two adjacent bands matches
// neither and is reported as unmatched.
func (a *Alphabet) Classify(freq float64) (Symbol, bool) {
	if math.Abs(freq-a.start) < a.tolerance {
		return SymbolStart, true
	}
	if math.Abs(freq-a.stop) < a.tolerance {
		return SymbolStop, true
	}
	best := -1
	bestDist := math.Inf(1)
	for k, target := range a.freqs {
		if d := math.Abs(freq - target); d < bestDist {
			best = k
			bestDist = d
		}
	}
	if bestDist < a.tolerance {
		return Symbol(best), true
	}
	return 0, false
}
