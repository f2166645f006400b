package modem

import "errors"

var ErrChecksum = errors.New("modem: frame checksum mismatch")

// Codec converts between text and data-symbol streams. Each input byte is
// expanded to 8 bits MSB-first; in binary mode every bit is one symbol, in
// quaternary mode bits are grouped in MSB-first pairs (an odd trailing bit is
// zero-padded). With Checksum enabled a CRC-8 byte is appended to the payload
// before expansion and verified and stripped on decode.
type Codec struct {
	alphabet *Alphabet
	checksum bool
}

func NewCodec(a *Alphabet, checksum bool) *Codec {
	return &Codec{alphabet: a, checksum: checksum}
}

// Encode expands text into the data-symbol sequence that carries it. Frame
// markers are not included; the session wraps the result in START/STOP.
func (c *Codec) Encode(text string) []Symbol {
	data := []byte(text)
	if c.checksum {
		data = append(data, Checksum(data))
	}

	bitsPerSymbol := c.alphabet.BitsPerSymbol()
	bits := make([]bool, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1 == 1)
		}
	}

	symbols := make([]Symbol, 0, (len(bits)+bitsPerSymbol-1)/bitsPerSymbol)
	for i := 0; i < len(bits); i += bitsPerSymbol {
		v := 0
		for j := 0; j < bitsPerSymbol; j++ {
			v <<= 1
			if i+j < len(bits) && bits[i+j] {
				v |= 1
			}
		}
		symbols = append(symbols, Symbol(v))
	}
	return symbols
}

// Decode inverts Encode on a complete, framed payload (markers already
// stripped by the frame assembler). A trailing group short of a full byte is
// dropped; a malformed frame therefore decodes to a truncated or empty string
// rather than failing. Only a checksum mismatch is an error, and only when
// checksums are enabled.
func (c *Codec) Decode(payload []Symbol) (string, error) {
	bitsPerSymbol := c.alphabet.BitsPerSymbol()

	bits := make([]bool, 0, len(payload)*bitsPerSymbol)
	for _, s := range payload {
		if !s.IsData() {
			continue
		}
		for j := bitsPerSymbol - 1; j >= 0; j-- {
			bits = append(bits, (int(s)>>j)&1 == 1)
		}
	}

	data := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b <<= 1
			if bits[i+j] {
				b |= 1
			}
		}
		data = append(data, b)
	}

	if c.checksum {
		if len(data) == 0 {
			return "", ErrChecksum
		}
		payload, sum := data[:len(data)-1], data[len(data)-1]
		if Checksum(payload) != sum {
			return "", ErrChecksum
		}
		data = payload
	}
	return string(data), nil
}
