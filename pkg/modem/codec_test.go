package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHiBinary(t *testing.T) {
	c := NewCodec(testAlphabet(t, 2), false)

	// "Hi" = 0x48 0x69 = 0100100001101001 MSB first
	want := "0100100001101001"
	symbols := c.Encode("Hi")
	require.Len(t, symbols, 16)
	got := ""
	for _, s := range symbols {
		require.True(t, s.IsData())
		got += string('0' + byte(s))
	}
	assert.Equal(t, want, got)
}

func TestEncodeHiQuaternary(t *testing.T) {
	c := NewCodec(testAlphabet(t, 4), false)

	// bit pairs of 0100 1000 0110 1001, MSB first
	want := []Symbol{1, 0, 2, 0, 1, 2, 2, 1}
	assert.Equal(t, want, c.Encode("Hi"))
}

func TestCodecRoundTripPrintableASCII(t *testing.T) {
	printable := ""
	for b := byte(0x20); b < 0x7f; b++ {
		printable += string(b)
	}
	texts := []string{"Hi", "hello world", "A", "", printable}

	for _, size := range []int{2, 4} {
		c := NewCodec(testAlphabet(t, size), false)
		for _, text := range texts {
			decoded, err := c.Decode(c.Encode(text))
			require.NoError(t, err)
			assert.Equal(t, text, decoded, "M=%d text %q", size, text)
		}
	}
}

func TestDecodeDropsTrailingIncompleteByte(t *testing.T) {
	c := NewCodec(testAlphabet(t, 2), false)

	symbols := c.Encode("Hi")
	// losing the tail of the last byte truncates the message, never errors
	decoded, err := c.Decode(symbols[:13])
	require.NoError(t, err)
	assert.Equal(t, "H", decoded)

	decoded, err = c.Decode(symbols[:3])
	require.NoError(t, err)
	assert.Equal(t, "", decoded)

	decoded, err = c.Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, "", decoded)
}

func TestCodecChecksum(t *testing.T) {
	c := NewCodec(testAlphabet(t, 4), true)

	symbols := c.Encode("Hi")
	// 2 payload bytes + 1 CRC byte, 4 symbols per byte
	require.Len(t, symbols, 12)

	decoded, err := c.Decode(symbols)
	require.NoError(t, err)
	assert.Equal(t, "Hi", decoded)

	// corrupt one symbol: checksum must catch it
	corrupted := append([]Symbol(nil), symbols...)
	corrupted[3] ^= 1
	_, err = c.Decode(corrupted)
	assert.ErrorIs(t, err, ErrChecksum)

	// empty frame cannot carry a checksum
	_, err = c.Decode(nil)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestChecksumKnownValue(t *testing.T) {
	// CRC-8 with polynomial 0x07, check value for "123456789"
	assert.Equal(t, byte(0xF4), Checksum([]byte("123456789")))

	var c CRC8
	for _, b := range []byte("123456789") {
		c.Update(b)
	}
	assert.Equal(t, byte(0xF4), c.Sum())
	c.Reset()
	assert.Equal(t, byte(0x00), c.Sum())
}
