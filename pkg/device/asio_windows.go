//go:build windows

package device

import (
	"context"
	"io"
	"sync"

	"github.com/xsjk/go-asio"
)

// ASIODuplex drives an ASIO device in full duplex: the hardware callback
// feeds captured samples to the source side and drains queued samples on the
// sink side. A single instance can serve as both the session's Source and
// Sink.
type ASIODuplex struct {
	DeviceName string
	SampleRate float64
	InChannel  int
	OutChannel int

	device asio.Device

	openOnce sync.Once
	stopOnce sync.Once
	done     chan struct{}

	in   chan []int32
	rest []int32

	mu      sync.Mutex
	pending []int32
}

func (a *ASIODuplex) Open() error {
	a.openOnce.Do(func() {
		a.in = make(chan []int32, 64)
		a.done = make(chan struct{})
		a.device.Load(a.DeviceName)
		a.device.SetSampleRate(a.SampleRate)
		a.device.Open()
		a.device.Start(func(in, out [][]int32) {
			a.exchange(in[a.InChannel], out[a.OutChannel])
		})
	})
	return nil
}

// exchange runs on the ASIO callback thread. Captured blocks are dropped when
// the source side lags rather than stalling the hardware.
func (a *ASIODuplex) exchange(in, out []int32) {
	chunk := make([]int32, len(in))
	copy(chunk, in)
	select {
	case a.in <- chunk:
	default:
	}

	a.mu.Lock()
	n := copy(out, a.pending)
	a.pending = a.pending[n:]
	a.mu.Unlock()
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

func (a *ASIODuplex) Pull(ctx context.Context, max int) ([]int32, error) {
	out := make([]int32, 0, max)
	n := copy(out[:cap(out)], a.rest)
	out = out[:n]
	a.rest = a.rest[n:]

	for len(out) < max {
		select {
		case chunk := <-a.in:
			need := max - len(out)
			if len(chunk) > need {
				out = append(out, chunk[:need]...)
				a.rest = chunk[need:]
			} else {
				out = append(out, chunk...)
			}
		case <-a.done:
			if len(out) == 0 {
				return nil, io.EOF
			}
			return out, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}

func (a *ASIODuplex) Push(ctx context.Context, samples []int32) error {
	select {
	case <-a.done:
		return io.ErrClosedPipe
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	a.mu.Lock()
	a.pending = append(a.pending, samples...)
	a.mu.Unlock()
	return nil
}

func (a *ASIODuplex) release() {
	a.stopOnce.Do(func() {
		close(a.done)
		a.device.Stop()
		a.device.Close()
		a.device.Unload()
	})
}

func (a *ASIODuplex) Close() error {
	a.release()
	return nil
}

func (a *ASIODuplex) FlushAndStop() error {
	a.mu.Lock()
	a.pending = nil
	a.mu.Unlock()
	a.release()
	return nil
}
