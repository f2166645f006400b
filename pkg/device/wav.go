package device

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSource plays back a mono WAV file as a sample source, letting the
// receive path run against recorded signals instead of a microphone.
type WAVSource struct {
	Path       string
	SampleRate int // expected rate; 0 accepts whatever the file carries

	f     *os.File
	dec   *wav.Decoder
	shift uint // left shift from file bit depth up to int32 full scale
}

func (s *WAVSource) Open() error {
	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("open wav source: %w", err)
	}
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return fmt.Errorf("open wav source: %s is not a valid WAV file", s.Path)
	}
	dec.FwdToPCM()
	if err := dec.Err(); err != nil {
		f.Close()
		return fmt.Errorf("open wav source: %w", err)
	}
	if dec.NumChans != 1 {
		f.Close()
		return fmt.Errorf("open wav source: %s has %d channels, want mono", s.Path, dec.NumChans)
	}
	// a mismatched rate would silently rescale every frequency estimate
	if s.SampleRate != 0 && int(dec.SampleRate) != s.SampleRate {
		f.Close()
		return fmt.Errorf("open wav source: %s is sampled at %d Hz, want %d Hz", s.Path, dec.SampleRate, s.SampleRate)
	}
	s.f = f
	s.dec = dec
	s.shift = uint(32 - dec.BitDepth)
	return nil
}

func (s *WAVSource) Pull(ctx context.Context, max int) ([]int32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: int(s.dec.SampleRate)},
		Data:   make([]int, max),
	}
	n, err := s.dec.PCMBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("read wav source: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(buf.Data[i]) << s.shift
	}
	return out, nil
}

func (s *WAVSource) Close() error {
	return s.f.Close()
}

// WAVSink records pushed samples into a 16-bit mono WAV file, so a transmit
// run can be captured and replayed without hardware.
type WAVSink struct {
	Path       string
	SampleRate int

	f   *os.File
	enc *wav.Encoder
}

func (s *WAVSink) Open() error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create wav sink: %w", err)
	}
	s.f = f
	s.enc = wav.NewEncoder(f, s.SampleRate, 16, 1, 1)
	return nil
}

func (s *WAVSink) Push(ctx context.Context, samples []int32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: s.SampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, v := range samples {
		buf.Data[i] = int(v >> 16)
	}
	if err := s.enc.Write(buf); err != nil {
		return fmt.Errorf("write wav sink: %w", err)
	}
	return nil
}

func (s *WAVSink) FlushAndStop() error {
	if err := s.enc.Close(); err != nil {
		s.f.Close()
		return fmt.Errorf("finalize wav sink: %w", err)
	}
	return s.f.Close()
}
