package device

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, rate int, samples []int32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.wav")
	sink := &WAVSink{Path: path, SampleRate: rate}
	require.NoError(t, sink.Open())
	require.NoError(t, sink.Push(context.Background(), samples))
	require.NoError(t, sink.FlushAndStop())
	return path
}

func TestWAVRoundTrip(t *testing.T) {
	// sink stores 16-bit samples; values on 16-bit boundaries survive exactly
	samples := make([]int32, 600)
	for i := range samples {
		samples[i] = int32(i-300) << 16
	}
	path := writeWAV(t, 44100, samples)

	src := &WAVSource{Path: path, SampleRate: 44100}
	require.NoError(t, src.Open())
	defer src.Close()

	ctx := context.Background()
	var got []int32
	for {
		block, err := src.Pull(ctx, 256)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, block...)
	}
	assert.Equal(t, samples, got)
}

func TestWAVSourceRejectsRateMismatch(t *testing.T) {
	path := writeWAV(t, 22050, make([]int32, 100))

	src := &WAVSource{Path: path, SampleRate: 44100}
	err := src.Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "22050")
}

func TestWAVSourceAcceptsFileRateWhenUnset(t *testing.T) {
	path := writeWAV(t, 22050, make([]int32, 100))

	src := &WAVSource{Path: path}
	require.NoError(t, src.Open())
	src.Close()
}

func TestWAVSourceRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not RIFF"), 0o644))

	src := &WAVSource{Path: path, SampleRate: 44100}
	assert.Error(t, src.Open())
}
