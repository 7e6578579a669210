package carrier

import "bytes"

// Sniff identifies a carrier format from its leading bytes. It returns ""
// when the data is not a supported format.
func Sniff(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "gif"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case bytes.HasPrefix(data, []byte("BM")):
		return "bmp"
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP":
		return "webp"
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WAVE":
		return "wav"
	case bytes.HasPrefix(data, []byte("ID3")):
		return "mp3"
	case isMP3Frame(data):
		return "mp3"
	default:
		return ""
	}
}

// isMP3Frame reports whether data starts with an MPEG Layer III frame
// header. A bare sync word is too weak a signal on its own.
func isMP3Frame(data []byte) bool {
	_, err := parseMP3Frame(data)
	return err == nil
}
