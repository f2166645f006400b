package modem

// crcPoly is the CRC-8 polynomial x^8 + x^2 + x + 1.
const crcPoly = 0x07

// CRC8 is a running CRC-8 checker over payload bytes.
type CRC8 struct {
	crc uint8
}

func (c *CRC8) Reset() {
	c.crc = 0
}

func (c *CRC8) Update(b byte) {
	c.crc ^= b
	for i := 0; i < 8; i++ {
		if c.crc&0x80 != 0 {
			c.crc = (c.crc << 1) ^ crcPoly
		} else {
			c.crc <<= 1
		}
	}
}

func (c *CRC8) Sum() byte {
	return c.crc
}

// Checksum computes the CRC-8 of data in one shot.
func Checksum(data []byte) byte {
	var c CRC8
	for _, b := range data {
		c.Update(b)
	}
	return c.Sum()
}
