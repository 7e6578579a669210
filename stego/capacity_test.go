package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderCost(t *testing.T) {
	assert.Equal(t, uint64(48), HeaderCost(0))
	assert.Equal(t, uint64(68), HeaderCost(5))
	assert.Equal(t, uint64(4000), PayloadCost(1000))
	assert.Equal(t, uint64(48+20+20), Required(5, 5))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		carrier    int
		nameLen    int
		payloadLen int
		want       bool
	}{
		{"exact fit", 48 + 4 + 40, 1, 10, true},
		{"one byte over", 48 + 4 + 44 - 1, 1, 11, false},
		{"empty payload", 52, 1, 0, true},
		{"header alone too big", 51, 1, 0, false},
		{"large carrier", 10_000, 5, 5, true},
		{"negative length", 100, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.carrier, tt.nameLen, tt.payloadLen))
		})
	}
}

func TestMaxPayload(t *testing.T) {
	tests := []struct {
		name    string
		carrier int
		nameLen int
		want    int
	}{
		{"too small", 40, 1, 0},
		{"header only", 52, 1, 0},
		{"rounds down", 52 + 7, 1, 1},
		{"typical image", 400 * 200 * 4, 5, (400*200*4 - 68) / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxPayload(tt.carrier, tt.nameLen)
			assert.Equal(t, tt.want, got)
			if got > 0 {
				assert.True(t, Check(tt.carrier, tt.nameLen, got))
				assert.False(t, Check(tt.carrier, tt.nameLen, got+1))
			}
		})
	}
}
