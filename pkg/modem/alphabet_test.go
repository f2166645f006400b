package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAlphabet(t *testing.T, size int) *Alphabet {
	t.Helper()
	a, err := AlphabetConfig{
		Size:       size,
		BaseFreq:   2000,
		FreqStep:   400,
		StartFreq:  4000,
		StopFreq:   4400,
		Tolerance:  150,
		SampleRate: 44100,
	}.New()
	require.NoError(t, err)
	return a
}

func TestAlphabetFrequencies(t *testing.T) {
	a := testAlphabet(t, 4)
	assert.Equal(t, 2000.0, a.Freq(Symbol(0)))
	assert.Equal(t, 2400.0, a.Freq(Symbol(1)))
	assert.Equal(t, 2800.0, a.Freq(Symbol(2)))
	assert.Equal(t, 3200.0, a.Freq(Symbol(3)))
	assert.Equal(t, 4000.0, a.Freq(SymbolStart))
	assert.Equal(t, 4400.0, a.Freq(SymbolStop))
}

func TestAlphabetBitsPerSymbol(t *testing.T) {
	assert.Equal(t, 1, testAlphabet(t, 2).BitsPerSymbol())
	assert.Equal(t, 2, testAlphabet(t, 4).BitsPerSymbol())
}

func TestClassifyWithinBand(t *testing.T) {
	a := testAlphabet(t, 4)

	cases := []struct {
		freq float64
		want Symbol
	}{
		{2000, Symbol(0)},
		{2050, Symbol(0)},
		{1900, Symbol(0)},
		{2449, Symbol(1)},
		{2800, Symbol(2)},
		{3300, Symbol(3)},
		{4001, SymbolStart},
		{4399, SymbolStop},
	}
	for _, c := range cases {
		sym, ok := a.Classify(c.freq)
		require.True(t, ok, "freq %g", c.freq)
		assert.Equal(t, c.want, sym, "freq %g", c.freq)
	}
}

func TestClassifyOutsideBands(t *testing.T) {
	a := testAlphabet(t, 4)
	for _, freq := range []float64{500, 2200, 2600, 3000, 3400, 3600, 4200, 9000} {
		_, ok := a.Classify(freq)
		assert.False(t, ok, "freq %g must not classify", freq)
	}
}

// A frequency exactly at the midpoint between two adjacent bands belongs to
// neither: bands are open intervals and never silently absorb the boundary.
func TestClassifyMidpointUnmatched(t *testing.T) {
	a, err := AlphabetConfig{
		Size:       2,
		BaseFreq:   2000,
		FreqStep:   300, // bands touch exactly: 2000±150 and 2300±150
		StartFreq:  4000,
		StopFreq:   4400,
		Tolerance:  150,
		SampleRate: 44100,
	}.New()
	require.NoError(t, err)

	_, ok := a.Classify(2150)
	assert.False(t, ok, "exact band boundary must be unmatched")

	sym, ok := a.Classify(2150.5)
	require.True(t, ok)
	assert.Equal(t, Symbol(1), sym)
}

func TestAlphabetConfigErrors(t *testing.T) {
	base := AlphabetConfig{
		Size:       2,
		BaseFreq:   2000,
		FreqStep:   400,
		StartFreq:  4000,
		StopFreq:   4400,
		Tolerance:  150,
		SampleRate: 44100,
	}

	bad := base
	bad.Size = 3
	_, err := bad.New()
	assert.Error(t, err)

	bad = base
	bad.FreqStep = 200 // bands 2000±150 and 2200±150 overlap
	_, err = bad.New()
	assert.ErrorContains(t, err, "overlap")

	bad = base
	bad.StopFreq = 4100 // collides with the start band
	_, err = bad.New()
	assert.ErrorContains(t, err, "overlap")

	bad = base
	bad.Tolerance = 0
	_, err = bad.New()
	assert.Error(t, err)

	bad = base
	bad.StartFreq = 22000 // above Nyquist headroom
	_, err = bad.New()
	assert.Error(t, err)

	bad = base
	bad.SampleRate = 0
	_, err = bad.New()
	assert.ErrorContains(t, err, "sample rate")

	bad = base
	bad.SampleRate = -44100
	_, err = bad.New()
	assert.ErrorContains(t, err, "sample rate")
}

func TestSymbolString(t *testing.T) {
	assert.Equal(t, "START", SymbolStart.String())
	assert.Equal(t, "STOP", SymbolStop.String())
	assert.Equal(t, "D3", Symbol(3).String())
}
