package modem

// FrameState is the assembler's position in the marker protocol.
type FrameState int

const (
	Idle FrameState = iota
	Recording
)

// Assembler consumes a live symbol stream and reassembles marker-delimited
// frames. Any symbol outside an active frame is silently dropped, so spurious
// tones before the first START or after a STOP never corrupt state; the
// protocol self-synchronizes on the next START. A single receive goroutine is
// the only writer.
type Assembler struct {
	codec   *Codec
	emit    func(string)
	state   FrameState
	payload []Symbol
}

// NewAssembler builds an assembler that calls emit exactly once per completed
// START...STOP frame with the decoded text.
func NewAssembler(codec *Codec, emit func(string)) *Assembler {
	return &Assembler{codec: codec, emit: emit}
}

func (f *Assembler) State() FrameState { return f.state }

// Reset aborts any frame in progress and returns to Idle.
func (f *Assembler) Reset() {
	f.state = Idle
	f.payload = f.payload[:0]
}

// Push advances the state machine by one symbol.
func (f *Assembler) Push(sym Symbol) {
	switch {
	case sym == SymbolStart:
		if f.state == Idle {
			f.payload = f.payload[:0]
			f.state = Recording
		}
		// a START inside an active frame is ignored: no nested frames

	case sym == SymbolStop:
		if f.state == Recording {
			if msg, err := f.codec.Decode(f.payload); err == nil {
				f.emit(msg)
			}
			f.Reset()
		}
		// a STOP outside a frame is out-of-frame noise

	case sym.IsData():
		if f.state == Recording {
			f.payload = append(f.payload, sym)
		}
	}
}
