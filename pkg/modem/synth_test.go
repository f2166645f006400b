package modem

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneShape(t *testing.T) {
	s := Synthesizer{SampleRate: 44100}
	out := s.Tone(2000, 100*time.Millisecond)

	require.Len(t, out, 4410)
	assert.EqualValues(t, 0, out[0])

	for i, v := range out {
		want := math.Round(float64(math.MaxInt32) * math.Sin(2*math.Pi*float64(i)*2000/44100))
		assert.EqualValues(t, want, v, "sample %d", i)
	}
}

func TestToneCustomAmplitude(t *testing.T) {
	s := Synthesizer{SampleRate: 44100, Amplitude: 1 << 20}
	out := s.Tone(4000, 50*time.Millisecond)

	require.Len(t, out, 2205)
	for i, v := range out {
		assert.LessOrEqual(t, v, int32(1<<20), "sample %d", i)
		assert.GreaterOrEqual(t, v, int32(-(1 << 20)), "sample %d", i)
	}
}

func TestToneDeterministic(t *testing.T) {
	s := Synthesizer{SampleRate: 44100}
	assert.Equal(t, s.Tone(2400, 20*time.Millisecond), s.Tone(2400, 20*time.Millisecond))
}

func TestSilence(t *testing.T) {
	s := Synthesizer{SampleRate: 44100}
	out := s.Silence(20 * time.Millisecond)

	require.Len(t, out, 882)
	for _, v := range out {
		require.Zero(t, v)
	}
}
