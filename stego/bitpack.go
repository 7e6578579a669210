// Package stego implements the 2-bit LSB container format used by binimg.
//
// A payload is framed as
//
//	magic "bimg" | nameLength u32 | name | payloadLength u32 | payload
//
// and every logical byte of that frame is spread over four carrier bytes,
// most significant pair first. Only the two low bits of a carrier byte are
// ever modified.
package stego

import "errors"

const (
	chunkMask     = 0b11
	chunkBits     = 2
	chunksPerByte = 8 / chunkBits
)

// ErrShortCarrier is returned by a Cursor when a read or write would run
// past the end of the carrier.
var ErrShortCarrier = errors.New("carrier exhausted")

// WriteChunk stores the low 2 bits of value in the low 2 bits of b and
// returns the result. The upper 6 bits of b are kept.
func WriteChunk(b, value byte) byte {
	return (b &^ chunkMask) | (value & chunkMask)
}

// ReadChunk returns the 2-bit chunk held in b.
func ReadChunk(b byte) byte {
	return b & chunkMask
}

// Cursor walks a carrier buffer one carrier byte at a time. It only ever
// moves forward.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset is the index of the next carrier byte to be touched.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining is the number of carrier bytes left after the cursor.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// WriteByte spreads b over the next four carrier bytes.
func (c *Cursor) WriteByte(b byte) error {
	if c.Remaining() < chunksPerByte {
		return ErrShortCarrier
	}
	for offset := 8 - chunkBits; offset >= 0; offset -= chunkBits {
		c.buf[c.off] = WriteChunk(c.buf[c.off], b>>offset)
		c.off++
	}
	return nil
}

// ReadByte reassembles one byte from the next four carrier bytes.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < chunksPerByte {
		return 0, ErrShortCarrier
	}
	var value byte
	for offset := 8 - chunkBits; offset >= 0; offset -= chunkBits {
		value |= ReadChunk(c.buf[c.off]) << offset
		c.off++
	}
	return value, nil
}

// writePartial writes the chunks of b starting at bit offset 6 until either
// the byte is complete or the carrier ends. It returns the number of carrier
// bytes written.
func (c *Cursor) writePartial(b byte) int {
	n := 0
	for offset := 8 - chunkBits; offset >= 0 && c.off < len(c.buf); offset -= chunkBits {
		c.buf[c.off] = WriteChunk(c.buf[c.off], b>>offset)
		c.off++
		n++
	}
	return n
}
