package device

import (
	"context"
	"io"
	"sync"
)

// Loopback is an in-memory pipe that is both a Sink and a Source: samples
// pushed on the sink side come back out of the source side in order. It
// stands in for hardware in tests and in the loopback demo: one session can
// transmit into it and receive its own signal back.
type Loopback struct {
	ch   chan []int32
	done chan struct{}

	rest []int32 // carry-over between Pull calls, single reader only

	mu      sync.Mutex // guards stopped and the sink-side send
	stopped bool

	closeOnce sync.Once
}

func NewLoopback() *Loopback {
	return &Loopback{
		ch:   make(chan []int32, 256),
		done: make(chan struct{}),
	}
}

func (l *Loopback) Open() error { return nil }

// Push queues a copy of samples for the source side. Pushing into a stopped
// or closed pipe reports io.ErrClosedPipe.
func (l *Loopback) Push(ctx context.Context, samples []int32) error {
	chunk := make([]int32, len(samples))
	copy(chunk, samples)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return io.ErrClosedPipe
	}
	select {
	case l.ch <- chunk:
		return nil
	case <-l.done:
		return io.ErrClosedPipe
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FlushAndStop closes the sink side; pending samples remain readable and the
// source side sees io.EOF after draining them.
func (l *Loopback) FlushAndStop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.stopped {
		l.stopped = true
		close(l.ch)
	}
	return nil
}

// Pull returns up to max samples, blocking until they arrive. It returns a
// short block followed by io.EOF once the sink side has stopped.
func (l *Loopback) Pull(ctx context.Context, max int) ([]int32, error) {
	out := make([]int32, 0, max)

	n := copy(out[:cap(out)], l.rest)
	out = out[:n]
	l.rest = l.rest[n:]

	for len(out) < max {
		select {
		case chunk, ok := <-l.ch:
			if !ok {
				if len(out) == 0 {
					return nil, io.EOF
				}
				return out, nil
			}
			need := max - len(out)
			if len(chunk) > need {
				out = append(out, chunk[:need]...)
				l.rest = chunk[need:]
			} else {
				out = append(out, chunk...)
			}
		case <-l.done:
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

// Close releases the source side; subsequent Pull calls drain nothing.
func (l *Loopback) Close() error {
	l.closeOnce.Do(func() { close(l.done) })
	return nil
}
