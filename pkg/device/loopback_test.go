package device

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(start, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(start + i)
	}
	return out
}

func TestLoopbackPreservesOrder(t *testing.T) {
	l := NewLoopback()
	ctx := context.Background()

	// writes and reads use different chunk sizes, so Pull has to split and
	// carry samples across calls
	require.NoError(t, l.Push(ctx, ramp(0, 300)))
	require.NoError(t, l.Push(ctx, ramp(300, 300)))
	require.NoError(t, l.FlushAndStop())

	var got []int32
	for {
		block, err := l.Pull(ctx, 128)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, block...)
	}
	assert.Equal(t, ramp(0, 600), got)
}

func TestLoopbackShortBlockThenEOF(t *testing.T) {
	l := NewLoopback()
	ctx := context.Background()

	require.NoError(t, l.Push(ctx, ramp(0, 100)))
	require.NoError(t, l.FlushAndStop())

	block, err := l.Pull(ctx, BlockSize)
	require.NoError(t, err)
	assert.Equal(t, ramp(0, 100), block)

	_, err = l.Pull(ctx, BlockSize)
	assert.Equal(t, io.EOF, err)
}

func TestLoopbackPushCopies(t *testing.T) {
	l := NewLoopback()
	ctx := context.Background()

	buf := ramp(0, 4)
	require.NoError(t, l.Push(ctx, buf))
	buf[0] = 99 // caller may reuse its buffer

	require.NoError(t, l.FlushAndStop())
	block, err := l.Pull(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, ramp(0, 4), block)
}

func TestLoopbackPullHonorsContext(t *testing.T) {
	l := NewLoopback()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := l.Pull(ctx, BlockSize)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoopbackCloseUnblocksPull(t *testing.T) {
	l := NewLoopback()

	errs := make(chan error, 1)
	go func() {
		_, err := l.Pull(context.Background(), BlockSize)
		errs <- err
	}()

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, l.Close())

	select {
	case err := <-errs:
		assert.Equal(t, io.EOF, err)
	case <-time.After(time.Second):
		t.Fatal("Pull did not return after Close")
	}
}

func TestLoopbackPushAfterStop(t *testing.T) {
	l := NewLoopback()
	ctx := context.Background()

	require.NoError(t, l.FlushAndStop())
	require.NoError(t, l.FlushAndStop()) // stopping twice is safe

	err := l.Push(ctx, ramp(0, 8))
	assert.Equal(t, io.ErrClosedPipe, err)

	// reopening does not revive the sink side
	require.NoError(t, l.Open())
	err = l.Push(ctx, ramp(0, 8))
	assert.Equal(t, io.ErrClosedPipe, err)
}

func TestLoopbackPushAfterClose(t *testing.T) {
	l := NewLoopback()
	require.NoError(t, l.Close())

	err := l.Push(context.Background(), ramp(0, 8))
	assert.Equal(t, io.ErrClosedPipe, err)
}
