package stego

import (
	"fmt"
	"strconv"
)

// Header is the parsed framing of a container.
type Header struct {
	Name       string
	PayloadLen int
	// Offset is the carrier index of the first payload byte.
	Offset int
}

// Inspect parses and validates the header of carrier without reading the
// payload.
func Inspect(carrier []byte) (Header, error) {
	if len(carrier) == 0 {
		return Header{}, &ValidationError{Field: "carrier"}
	}
	c := NewCursor(carrier)
	return readHeader(c)
}

// Extract reads the header and then the payload it declares in one pass
// over carrier. The payload slice is newly allocated; redundant copies after
// it are ignored.
func Extract(carrier []byte) (Header, []byte, error) {
	if len(carrier) == 0 {
		return Header{}, nil, &ValidationError{Field: "carrier"}
	}
	c := NewCursor(carrier)
	h, err := readHeader(c)
	if err != nil {
		return Header{}, nil, err
	}

	payload := make([]byte, h.PayloadLen)
	for i := range payload {
		b, err := c.ReadByte()
		if err != nil {
			return Header{}, nil, fmt.Errorf("%s: %w", StatePayload, err)
		}
		payload[i] = b
	}
	return h, payload, nil
}

// Decode extracts the payload hidden by Encode. It returns the name to save
// the payload under (see DecodedName) and the payload.
func Decode(carrier []byte) (string, []byte, error) {
	h, payload, err := Extract(carrier)
	if err != nil {
		return "", nil, err
	}
	return DecodedName(h.Name), payload, nil
}

// DecodedName derives the output file name for a payload stored as name.
func DecodedName(name string) string {
	return "decoded." + name
}

func readHeader(c *Cursor) (Header, error) {
	magic, err := c.ReadText(len(Magic))
	if err != nil {
		return Header{}, &FormatError{State: StateMagic, Got: "truncated", Want: strconv.Quote(Magic)}
	}
	if magic != Magic {
		return Header{}, &FormatError{State: StateMagic, Got: strconv.Quote(magic), Want: strconv.Quote(Magic)}
	}

	nameLen, err := c.ReadUint32()
	if err != nil {
		return Header{}, &FormatError{State: StateNameLen, Got: "truncated"}
	}
	if nameLen == 0 {
		return Header{}, &FormatError{State: StateNameLen, Got: "0"}
	}
	// The name and payloadLength field must both still fit.
	if uint64(nameLen)+4 > uint64(c.Remaining()/chunksPerByte) {
		return Header{}, &FormatError{
			State: StateNameLen,
			Got:   strconv.FormatUint(uint64(nameLen), 10),
			Want:  "at most " + strconv.Itoa(max(c.Remaining()/chunksPerByte-4, 0)),
		}
	}

	name, err := c.ReadText(int(nameLen))
	if err != nil {
		return Header{}, &FormatError{State: StateName, Got: "truncated"}
	}

	payloadLen, err := c.ReadUint32()
	if err != nil {
		return Header{}, &FormatError{State: StatePayloadLen, Got: "truncated"}
	}
	if uint64(payloadLen) > uint64(c.Remaining()/chunksPerByte) {
		return Header{}, &FormatError{
			State: StatePayloadLen,
			Got:   strconv.FormatUint(uint64(payloadLen), 10),
			Want:  "at most " + strconv.Itoa(c.Remaining()/chunksPerByte),
		}
	}

	return Header{Name: name, PayloadLen: int(payloadLen), Offset: c.Offset()}, nil
}
