package stego

// WriteUint32 writes v big-endian, consuming 16 carrier bytes.
func (c *Cursor) WriteUint32(v uint32) error {
	if c.Remaining() < 4*chunksPerByte {
		return ErrShortCarrier
	}
	for shift := 24; shift >= 0; shift -= 8 {
		if err := c.WriteByte(byte(v >> shift)); err != nil {
			return err
		}
	}
	return nil
}

// ReadUint32 reads a big-endian uint32 written by WriteUint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	if c.Remaining() < 4*chunksPerByte {
		return 0, ErrShortCarrier
	}
	var v uint32
	for shift := 24; shift >= 0; shift -= 8 {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << shift
	}
	return v, nil
}

// WriteText writes the bytes of s in order.
func (c *Cursor) WriteText(s string) error {
	if c.Remaining()/chunksPerByte < len(s) {
		return ErrShortCarrier
	}
	for i := 0; i < len(s); i++ {
		if err := c.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadText reads exactly n bytes. The carrier is bounds-checked before any
// allocation so a corrupt length cannot trigger a huge make.
func (c *Cursor) ReadText(n int) (string, error) {
	if n < 0 || c.Remaining()/chunksPerByte < n {
		return "", ErrShortCarrier
	}
	text := make([]byte, n)
	for i := range text {
		b, err := c.ReadByte()
		if err != nil {
			return "", err
		}
		text[i] = b
	}
	return string(text), nil
}
