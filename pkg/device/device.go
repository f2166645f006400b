package device

import "context"

// BlockSize is the default number of samples moved per hardware exchange.
const BlockSize = 512

// Source delivers mono int32 PCM sample blocks. Pull blocks until max samples
// are available and returns fewer only at end of stream or on a transient
// underrun; it returns io.EOF once the stream is exhausted. A source is
// acquired by Open for exclusive use and must be released with Close exactly
// once.
type Source interface {
	Open() error
	Pull(ctx context.Context, max int) ([]int32, error)
	Close() error
}

// Sink accepts mono int32 PCM samples for playback. Push blocks until the
// samples are queued; FlushAndStop cuts playback off and releases the sink.
type Sink interface {
	Open() error
	Push(ctx context.Context, samples []int32) error
	FlushAndStop() error
}
