package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"Sonotext/configs"
	"Sonotext/pkg/async"
	"Sonotext/pkg/device"
	"Sonotext/pkg/dsp"
	"Sonotext/pkg/modem"
)

// Session owns one modem instance: the receive pipeline (source -> analyzer
// -> classifier -> frame assembler -> message channel) and the transmit path
// (codec -> synthesizer -> sink). Either side may be absent by passing a nil
// source or sink.
//
// All receive-side state (analyzer threshold and history, frame buffer) is
// written only by the session's single receive goroutine, so it needs no
// locking; Start enforces that at most one loop runs.
type Session struct {
	cfg       configs.ModemConfig
	alphabet  *modem.Alphabet
	codec     *modem.Codec
	synth     modem.Synthesizer
	analyzer  *dsp.Analyzer
	assembler *modem.Assembler

	source device.Source
	sink   device.Sink

	logger *zap.Logger

	messages chan string
	errs     *async.Signal[error]

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	recvCtx context.Context // receive loop's context, read only by that loop

	sendMu sync.Mutex
}

// New validates the configuration and assembles a session. Configuration
// errors (overlapping tolerance bands, bad rates) are reported here, before
// any audio resource is touched.
func New(cfg configs.ModemConfig, source device.Source, sink device.Sink, logger *zap.Logger) (*Session, error) {
	alphabet, err := cfg.Alphabet()
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		cfg:      cfg,
		alphabet: alphabet,
		codec:    modem.NewCodec(alphabet, cfg.Checksum),
		synth:    modem.Synthesizer{SampleRate: cfg.SampleRate},
		analyzer: dsp.NewAnalyzer(cfg.SampleRate, cfg.NoiseFloorDB, cfg.SmoothingWindow),
		source:   source,
		sink:     sink,
		logger:   logger,
		messages: make(chan string, 16),
		errs:     async.NewSignal[error](),
	}
	s.assembler = modem.NewAssembler(s.codec, s.deliver)
	return s, nil
}

// Messages yields one decoded text per completed frame.
func (s *Session) Messages() <-chan string {
	return s.messages
}

// Errors surfaces receive-loop faults (source failures). Detection misses and
// out-of-frame symbols are not errors and never appear here.
func (s *Session) Errors() <-chan error {
	return s.errs.Chan()
}

// Start acquires the session's source and sink and launches the receive loop
// if a source is present. Starting an already-running session is a no-op.
// Acquisition failures are reported synchronously and leave nothing held.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	if s.sink != nil {
		if err := s.sink.Open(); err != nil {
			return fmt.Errorf("acquire sink: %w", err)
		}
	}
	if s.source != nil {
		if err := s.source.Open(); err != nil {
			if s.sink != nil {
				s.sink.FlushAndStop()
			}
			return fmt.Errorf("acquire source: %w", err)
		}

		// fresh modem state per run: nothing leaks across stop/start
		s.analyzer.Reset()
		s.assembler.Reset()

		loopCtx, cancel := context.WithCancel(ctx)
		s.cancel = cancel
		s.done = make(chan struct{})
		s.recvCtx = loopCtx
		go s.receiveLoop(loopCtx, s.done)
	}

	s.running = true
	return nil
}

// Stop cancels the receive loop, waits for it to release the source, and
// flushes the sink. Safe to call on a stopped session.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	if s.sink != nil {
		if err := s.sink.FlushAndStop(); err != nil {
			s.logger.Warn("sink release failed", zap.Error(err))
		}
	}
}

// Wait blocks until the receive loop exits on its own (end of stream or
// failure). It returns immediately for transmit-only sessions.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Send encodes text, synthesizes the framed waveform and hands it to the sink
// as one ordered write. One transmit operation runs at a time; concurrent
// callers serialize. Transmission may overlap an active receive loop.
func (s *Session) Send(ctx context.Context, text string) error {
	s.mu.Lock()
	running, sink := s.running, s.sink
	s.mu.Unlock()
	if !running {
		return errors.New("session not started")
	}
	if sink == nil {
		return errors.New("session has no sample sink")
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	wave := s.Waveform(text)
	s.logger.Debug("transmitting",
		zap.Int("text_bytes", len(text)),
		zap.Int("samples", len(wave)),
	)
	return sink.Push(ctx, wave)
}

// Waveform builds the complete framed transmission for text:
// START tone, gap, one tone per data symbol with gaps between, STOP tone.
func (s *Session) Waveform(text string) []int32 {
	symbols := s.codec.Encode(text)
	tone := s.cfg.SymbolDuration
	gap := s.synth.Silence(s.cfg.GapDuration)

	out := make([]int32, 0, (len(symbols)+2)*(s.cfg.SymbolSamples()+len(gap)))
	out = append(out, s.synth.Tone(s.alphabet.Freq(modem.SymbolStart), tone)...)
	out = append(out, gap...)
	for _, sym := range symbols {
		out = append(out, s.synth.Tone(s.alphabet.Freq(sym), tone)...)
		out = append(out, gap...)
	}
	out = append(out, s.synth.Tone(s.alphabet.Freq(modem.SymbolStop), tone)...)
	return out
}

// receiveLoop pulls one block per symbol duration, in arrival order, and
// drives the analyze/classify/assemble pipeline. It is the sole writer of
// analyzer and assembler state.
func (s *Session) receiveLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	defer func() {
		if err := s.source.Close(); err != nil {
			s.logger.Warn("source release failed", zap.Error(err))
		}
	}()

	blockSize := s.cfg.SymbolSamples()
	for {
		if ctx.Err() != nil {
			return
		}
		block, err := s.source.Pull(ctx, blockSize)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error("sample source failed", zap.Error(err))
			s.errs.TrySend(err)
			return
		}

		freq, ok := s.analyzer.Analyze(modem.PCMToFloat(block))
		if !ok {
			continue // no qualifying peak this block
		}
		sym, ok := s.alphabet.Classify(freq)
		if !ok {
			s.logger.Debug("unclassified frequency", zap.Float64("freq_hz", freq))
			continue
		}
		s.assembler.Push(sym)
	}
}

// deliver hands one decoded message to the consumer. It blocks the receive
// loop until the message is taken, so every completed frame is delivered
// exactly once; only session shutdown abandons an undelivered message.
func (s *Session) deliver(msg string) {
	s.logger.Info("message decoded", zap.Int("bytes", len(msg)))
	select {
	case s.messages <- msg:
	case <-s.recvCtx.Done():
		s.logger.Warn("message dropped: session stopping", zap.Int("bytes", len(msg)))
	}
}
