package carrier

import (
	"encoding/binary"
	"fmt"
)

// mp3Frame is the part of an MPEG Layer III frame header binimg reports.
type mp3Frame struct {
	Version    int // 1, 2, or 25 for MPEG 2.5
	Bitrate    int // bits per second
	SampleRate int
	Length     int // frame length in bytes, header included
}

// MPEG version IDs as coded in the frame header.
const (
	mpegVersion25 = 0
	mpegVersion2  = 2
	mpegVersion1  = 3

	mpegLayer3 = 1
)

var (
	mp3BitratesV1 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	mp3BitratesV2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}

	mp3SampleRates = map[int][4]int{
		mpegVersion1:  {44100, 48000, 32000, 0},
		mpegVersion2:  {22050, 24000, 16000, 0},
		mpegVersion25: {11025, 12000, 8000, 0},
	}
)

// syncSafe decodes a 28-bit ID3v2 size.
func syncSafe(b []byte) int {
	return int(b[0]&0x7F)<<21 |
		int(b[1]&0x7F)<<14 |
		int(b[2]&0x7F)<<7 |
		int(b[3]&0x7F)
}

// id3v2Size is the length of a leading ID3v2 tag, header included, or 0.
func id3v2Size(data []byte) int {
	if len(data) < 10 || string(data[:3]) != "ID3" {
		return 0
	}
	return 10 + syncSafe(data[6:10])
}

// parseMP3Frame parses the 4-byte frame header at the start of b.
func parseMP3Frame(b []byte) (mp3Frame, error) {
	if len(b) < 4 {
		return mp3Frame{}, fmt.Errorf("short frame header")
	}
	header := binary.BigEndian.Uint32(b)
	if header&0xFFE00000 != 0xFFE00000 {
		return mp3Frame{}, fmt.Errorf("invalid sync word: 0x%08X", header)
	}

	version := int(header>>19) & 0x3
	layer := int(header>>17) & 0x3
	rates, ok := mp3SampleRates[version]
	if !ok || layer != mpegLayer3 {
		return mp3Frame{}, fmt.Errorf("unsupported MPEG version %d layer %d", version, layer)
	}

	// MPEG-2 and 2.5 frames hold half as many samples as MPEG-1 frames.
	bitrates, slots, id := mp3BitratesV1, 144, 1
	switch version {
	case mpegVersion2:
		bitrates, slots, id = mp3BitratesV2, 72, 2
	case mpegVersion25:
		bitrates, slots, id = mp3BitratesV2, 72, 25
	}

	bitrate := bitrates[(header>>12)&0xF] * 1000
	sampleRate := rates[(header>>10)&0x3]
	if bitrate == 0 || sampleRate == 0 {
		return mp3Frame{}, fmt.Errorf("unsupported bitrate or samplerate")
	}
	padding := int(header>>9) & 0x1

	return mp3Frame{
		Version:    id,
		Bitrate:    bitrate,
		SampleRate: sampleRate,
		Length:     slots*bitrate/sampleRate + padding,
	}, nil
}

// firstMP3Frame finds the first frame header after any ID3v2 tag.
func firstMP3Frame(data []byte) (mp3Frame, error) {
	off := id3v2Size(data)
	if off >= len(data) {
		return mp3Frame{}, fmt.Errorf("no audio frames after ID3v2 tag")
	}
	return parseMP3Frame(data[off:])
}
