package stego

import (
	"fmt"
	"math"
)

// Stats describes how an Encode call used the carrier.
type Stats struct {
	Name         string // name stored in the header
	HeaderBytes  int    // carrier bytes used by the header
	PayloadBytes int    // carrier bytes used by the first payload copy
	FillBytes    int    // carrier bytes used by redundant copies
	Copies       int    // complete redundant copies written
}

// Encode hides payload under name in the low bits of carrier, in place.
//
// After the header and the payload, the rest of the carrier is filled with
// the payload repeated from its start, truncated at the last carrier byte,
// so no boundary separates modified and unmodified bytes. Decode never
// reads those copies.
//
// On any error the carrier is left untouched.
func Encode(carrier, payload []byte, name string) (Stats, error) {
	if len(carrier) == 0 {
		return Stats{}, &ValidationError{Field: "carrier"}
	}
	if payload == nil {
		return Stats{}, &ValidationError{Field: "payload"}
	}
	if name == "" {
		name = DefaultName
	}
	if uint64(len(name)) > math.MaxUint32 {
		return Stats{}, &ValidationError{Field: "name", Reason: "longer than a 32-bit length"}
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return Stats{}, &ValidationError{Field: "payload", Reason: "longer than a 32-bit length"}
	}
	if !Check(len(carrier), len(name), len(payload)) {
		return Stats{}, &CapacityError{
			Required:  Required(len(name), len(payload)),
			Available: len(carrier),
		}
	}

	c := NewCursor(carrier)
	if err := writeHeader(c, name, uint32(len(payload))); err != nil {
		return Stats{}, err
	}
	stats := Stats{Name: name, HeaderBytes: c.Offset()}

	for _, b := range payload {
		if err := c.WriteByte(b); err != nil {
			return stats, fmt.Errorf("%s: %w", StatePayload, err)
		}
	}
	stats.PayloadBytes = c.Offset() - stats.HeaderBytes

	stats.FillBytes = fill(c, payload)
	if stats.PayloadBytes > 0 {
		stats.Copies = stats.FillBytes / stats.PayloadBytes
	}
	return stats, nil
}

func writeHeader(c *Cursor, name string, payloadLen uint32) error {
	if err := c.WriteText(Magic); err != nil {
		return fmt.Errorf("%s: %w", StateMagic, err)
	}
	if err := c.WriteUint32(uint32(len(name))); err != nil {
		return fmt.Errorf("%s: %w", StateNameLen, err)
	}
	if err := c.WriteText(name); err != nil {
		return fmt.Errorf("%s: %w", StateName, err)
	}
	if err := c.WriteUint32(payloadLen); err != nil {
		return fmt.Errorf("%s: %w", StatePayloadLen, err)
	}
	return nil
}

// fill cycles payload over the remaining carrier bytes and returns how many
// it wrote. The last byte may be cut at any chunk boundary.
func fill(c *Cursor, payload []byte) int {
	if len(payload) == 0 {
		return 0
	}
	n := 0
	for c.Remaining() > 0 {
		for _, b := range payload {
			if c.Remaining() == 0 {
				break
			}
			n += c.writePartial(b)
		}
	}
	return n
}
