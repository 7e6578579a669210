package carrier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMP3Frame(t *testing.T) {
	tests := []struct {
		name    string
		header  []byte
		want    mp3Frame
		wantErr bool
	}{
		{"128k 44.1kHz", []byte{0xFF, 0xFB, 0x90, 0x64}, mp3Frame{Version: 1, Bitrate: 128000, SampleRate: 44100, Length: 417}, false},
		{"padded", []byte{0xFF, 0xFB, 0x92, 0x64}, mp3Frame{Version: 1, Bitrate: 128000, SampleRate: 44100, Length: 418}, false},
		{"320k 48kHz", []byte{0xFF, 0xFB, 0xE4, 0x00}, mp3Frame{Version: 1, Bitrate: 320000, SampleRate: 48000, Length: 960}, false},
		{"mpeg-2 80k 22.05kHz", []byte{0xFF, 0xF3, 0x90, 0x00}, mp3Frame{Version: 2, Bitrate: 80000, SampleRate: 22050, Length: 261}, false},
		{"mpeg-2.5 8k 8kHz", []byte{0xFF, 0xE3, 0x18, 0xC4}, mp3Frame{Version: 25, Bitrate: 8000, SampleRate: 8000, Length: 72}, false},
		{"reserved version", []byte{0xFF, 0xEB, 0x90, 0x64}, mp3Frame{}, true},
		{"layer II", []byte{0xFF, 0xFD, 0x90, 0x64}, mp3Frame{}, true},
		{"free bitrate", []byte{0xFF, 0xFB, 0x00, 0x00}, mp3Frame{}, true},
		{"bad bitrate", []byte{0xFF, 0xFB, 0xF0, 0x00}, mp3Frame{}, true},
		{"reserved samplerate", []byte{0xFF, 0xFB, 0x9C, 0x00}, mp3Frame{}, true},
		{"no sync", []byte{0x00, 0xFB, 0x90, 0x64}, mp3Frame{}, true},
		{"short", []byte{0xFF, 0xFB}, mp3Frame{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMP3Frame(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstMP3FrameSkipsID3(t *testing.T) {
	// 10-byte ID3v2 header declaring a 130-byte tag body (syncsafe 0x01 0x02).
	data := append([]byte("ID3\x04\x00\x00\x00\x00\x01\x02"), make([]byte, 130)...)
	assert.Equal(t, 140, id3v2Size(data))

	_, err := firstMP3Frame(data)
	assert.Error(t, err)

	data = append(data, 0xFF, 0xFB, 0x90, 0x64)
	f, err := firstMP3Frame(data)
	require.NoError(t, err)
	assert.Equal(t, 128000, f.Bitrate)
}

func TestID3v2SizeWithoutTag(t *testing.T) {
	assert.Equal(t, 0, id3v2Size([]byte{0xFF, 0xFB, 0x90, 0x64}))
	assert.Equal(t, 0, id3v2Size([]byte("ID3")))
}
