package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteChunk(t *testing.T) {
	tests := []struct {
		name  string
		b     byte
		value byte
		want  byte
	}{
		{"clear low bits", 0xFF, 0b00, 0xFC},
		{"set low bits", 0x00, 0b11, 0x03},
		{"keeps upper bits", 0b1010_1001, 0b10, 0b1010_1010},
		{"ignores upper bits of value", 0x40, 0xFE, 0x42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WriteChunk(tt.b, tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.value&0b11, ReadChunk(got))
		})
	}
}

func TestCursorByteRoundTrip(t *testing.T) {
	original := []byte{0xA5, 0x5A, 0xF0, 0x0F}

	for v := 0; v < 256; v++ {
		buf := append([]byte(nil), original...)

		w := NewCursor(buf)
		require.NoError(t, w.WriteByte(byte(v)))
		assert.Equal(t, 4, w.Offset())

		for i := range buf {
			assert.Equal(t, original[i]&^0b11, buf[i]&^0b11, "upper bits of byte %d changed for value %d", i, v)
		}

		r := NewCursor(buf)
		got, err := r.ReadByte()
		require.NoError(t, err)
		assert.Equal(t, byte(v), got)
	}
}

func TestCursorWriteByteMSBFirst(t *testing.T) {
	buf := make([]byte, 4)
	require.NoError(t, NewCursor(buf).WriteByte(0b11_10_01_00))
	assert.Equal(t, []byte{3, 2, 1, 0}, buf)
}

func TestCursorShortCarrier(t *testing.T) {
	buf := []byte{1, 2, 3}
	c := NewCursor(buf)

	assert.ErrorIs(t, c.WriteByte(0xFF), ErrShortCarrier)
	_, err := c.ReadByte()
	assert.ErrorIs(t, err, ErrShortCarrier)
	assert.Equal(t, 0, c.Offset(), "cursor must not move on failure")
	assert.Equal(t, []byte{1, 2, 3}, buf)
}

func TestCursorWritePartial(t *testing.T) {
	buf := make([]byte, 6)
	c := NewCursor(buf)

	assert.Equal(t, 4, c.writePartial(0xE4))
	assert.Equal(t, 2, c.writePartial(0x1B))
	assert.Equal(t, 0, c.writePartial(0xFF))
	assert.Equal(t, []byte{3, 2, 1, 0, 0, 1}, buf)
}

func TestFieldRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0xFF, 0x1234, 0xDEADBEEF, 0xFFFFFFFF}

	for _, v := range values {
		buf := make([]byte, 16)
		w := NewCursor(buf)
		require.NoError(t, w.WriteUint32(v))
		assert.Equal(t, 16, w.Offset())

		got, err := NewCursor(buf).ReadUint32()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestUint32BigEndian(t *testing.T) {
	buf := make([]byte, 16)
	require.NoError(t, NewCursor(buf).WriteUint32(0x01000000))

	b, err := NewCursor(buf).ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b, "most significant byte comes first")
}

func TestTextRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	w := NewCursor(buf)
	require.NoError(t, w.WriteText("report.pdf"))
	assert.Equal(t, 40, w.Offset())

	got, err := NewCursor(buf).ReadText(10)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got)
}

func TestReadTextBounds(t *testing.T) {
	c := NewCursor(make([]byte, 8))

	_, err := c.ReadText(3)
	assert.ErrorIs(t, err, ErrShortCarrier)
	_, err = c.ReadText(-1)
	assert.ErrorIs(t, err, ErrShortCarrier)
	assert.Equal(t, 0, c.Offset())
}
