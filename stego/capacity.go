package stego

import "math"

const (
	// Magic marks a carrier as holding an embedded payload.
	Magic = "bimg"

	// DefaultName is stored when the caller supplies no payload name.
	DefaultName = "binimg-generated"

	// headerFixedBytes counts magic, nameLength and payloadLength.
	headerFixedBytes = len(Magic) + 4 + 4
)

// HeaderCost is the number of carrier bytes used by a header whose name is
// nameLen bytes long.
func HeaderCost(nameLen int) uint64 {
	return chunksPerByte * (uint64(headerFixedBytes) + uint64(nameLen))
}

// PayloadCost is the number of carrier bytes used by a payload of
// payloadLen bytes.
func PayloadCost(payloadLen int) uint64 {
	return chunksPerByte * uint64(payloadLen)
}

// Required is the total number of carrier bytes needed for the header and
// one copy of the payload.
func Required(nameLen, payloadLen int) uint64 {
	return HeaderCost(nameLen) + PayloadCost(payloadLen)
}

// Check reports whether a carrier of carrierLen bytes can hold a payload of
// payloadLen bytes stored under a name of nameLen bytes.
func Check(carrierLen, nameLen, payloadLen int) bool {
	if carrierLen < 0 || nameLen < 0 || payloadLen < 0 {
		return false
	}
	return Required(nameLen, payloadLen) <= uint64(carrierLen)
}

// MaxPayload returns the largest payload, in bytes, that fits in a carrier
// of carrierLen bytes next to a name of nameLen bytes. It is 0 when not even
// the header fits, and never exceeds what a uint32 length field can declare.
func MaxPayload(carrierLen, nameLen int) int {
	if carrierLen < 0 || nameLen < 0 {
		return 0
	}
	header := HeaderCost(nameLen)
	if header > uint64(carrierLen) {
		return 0
	}
	n := (uint64(carrierLen) - header) / chunksPerByte
	if n > math.MaxUint32 {
		n = math.MaxUint32
	}
	return int(n)
}
