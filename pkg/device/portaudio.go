package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"
)

// ListDevices enumerates the host's audio devices with their channel counts.
func ListDevices() ([]string, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("portaudio devices: %w", err)
	}
	list := make([]string, 0, len(devices))
	for _, d := range devices {
		list = append(list, fmt.Sprintf("%s (in:%d out:%d)", d.Name, d.MaxInputChannels, d.MaxOutputChannels))
	}
	return list, nil
}

func findDevice(name string, input bool) (*portaudio.DeviceInfo, error) {
	if name == "" {
		if input {
			return portaudio.DefaultInputDevice()
		}
		return portaudio.DefaultOutputDevice()
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if !strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			continue
		}
		if input && d.MaxInputChannels > 0 {
			return d, nil
		}
		if !input && d.MaxOutputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no audio device matching %q", name)
}

// PortAudioSource captures mono PCM from a live input device.
type PortAudioSource struct {
	DeviceName string
	SampleRate int
	BlockSize  int // frames per hardware buffer; 0 means device.BlockSize

	stream *portaudio.Stream
	buf    []int32
	rest   []int32
}

func (s *PortAudioSource) Open() error {
	if s.BlockSize == 0 {
		s.BlockSize = BlockSize
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	info, err := findDevice(s.DeviceName, true)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open input: %w", err)
	}

	p := portaudio.HighLatencyParameters(info, nil)
	p.Input.Channels = 1
	p.SampleRate = float64(s.SampleRate)
	p.FramesPerBuffer = s.BlockSize

	s.buf = make([]int32, s.BlockSize)
	s.stream, err = portaudio.OpenStream(p, s.buf)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open input: %w", err)
	}
	if err := s.stream.Start(); err != nil {
		s.stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start input: %w", err)
	}
	return nil
}

func (s *PortAudioSource) Pull(ctx context.Context, max int) ([]int32, error) {
	out := make([]int32, 0, max)
	n := copy(out[:cap(out)], s.rest)
	out = out[:n]
	s.rest = s.rest[n:]

	for len(out) < max {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.stream.Read(); err != nil {
			if errors.Is(err, portaudio.InputOverflowed) {
				// transient underrun on the hardware side; surface what we have
				if len(out) > 0 {
					return out, nil
				}
				continue
			}
			return nil, fmt.Errorf("read input: %w", err)
		}
		need := max - len(out)
		if len(s.buf) > need {
			out = append(out, s.buf[:need]...)
			s.rest = append(s.rest[:0], s.buf[need:]...)
		} else {
			out = append(out, s.buf...)
		}
	}
	return out, nil
}

func (s *PortAudioSource) Close() error {
	s.stream.Stop()
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}

// PortAudioSink plays mono PCM on a live output device.
type PortAudioSink struct {
	DeviceName string
	SampleRate int
	BlockSize  int

	stream *portaudio.Stream
	buf    []int32
}

func (s *PortAudioSink) Open() error {
	if s.BlockSize == 0 {
		s.BlockSize = BlockSize
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	info, err := findDevice(s.DeviceName, false)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open output: %w", err)
	}

	p := portaudio.HighLatencyParameters(nil, info)
	p.Output.Channels = 1
	p.SampleRate = float64(s.SampleRate)
	p.FramesPerBuffer = s.BlockSize

	s.buf = make([]int32, s.BlockSize)
	s.stream, err = portaudio.OpenStream(p, s.buf)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open output: %w", err)
	}
	if err := s.stream.Start(); err != nil {
		s.stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start output: %w", err)
	}
	return nil
}

func (s *PortAudioSink) Push(ctx context.Context, samples []int32) error {
	for off := 0; off < len(samples); off += len(s.buf) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := copy(s.buf, samples[off:])
		for i := n; i < len(s.buf); i++ {
			s.buf[i] = 0
		}
		if err := s.stream.Write(); err != nil && !errors.Is(err, portaudio.OutputUnderflowed) {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func (s *PortAudioSink) FlushAndStop() error {
	s.stream.Stop()
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
