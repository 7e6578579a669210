// Package carrier loads and saves the media whose component bytes hold a
// hidden payload. Every carrier exposes one flat, mutable byte slice with a
// fixed number of components per pixel (images) or per frame (audio), and is
// always written back losslessly.
package carrier

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/go-audio/audio"
)

// Kind distinguishes image carriers from audio carriers.
type Kind int

const (
	KindImage Kind = iota
	KindAudio
)

func (k Kind) String() string {
	if k == KindAudio {
		return "audio"
	}
	return "image"
}

// ErrUnsupportedFormat is returned when the input is not a recognised
// image or audio file.
var ErrUnsupportedFormat = errors.New("unsupported carrier format")

// Carrier is a decoded image or audio file.
type Carrier struct {
	Kind   Kind
	Format string // format the carrier was read from: png, bmp, jpeg, gif, webp, wav, mp3

	// Components is the number of carrier bytes per pixel or per audio frame.
	Components int

	Width, Height int // images

	SampleRate int    // audio
	BitDepth   int
	Bitrate    int    // source bitrate of mp3 carriers
	Title      string // mp3 tags, when present
	Artist     string

	img     *image.NRGBA
	pcm     *audio.IntBuffer
	samples []byte
}

// Bytes returns the carrier bytes. The slice is the carrier's own storage:
// changes made through it are what Save and Encode write out.
func (c *Carrier) Bytes() []byte {
	if c.Kind == KindImage {
		return c.img.Pix
	}
	return c.samples
}

// Len is the number of carrier bytes.
func (c *Carrier) Len() int {
	return len(c.Bytes())
}

// Units is the number of pixels or audio frames.
func (c *Carrier) Units() int {
	if c.Components == 0 {
		return 0
	}
	return c.Len() / c.Components
}

// OutputFormat is the lossless format Encode writes: wav for audio, png for
// every image. BMP input is not written back as BMP: its decoder forces
// alpha to 0xFF, losing the bits embedded there.
func (c *Carrier) OutputFormat() string {
	if c.Kind == KindAudio {
		return "wav"
	}
	return "png"
}

// OutputExt is OutputFormat with a leading dot.
func (c *Carrier) OutputExt() string {
	return "." + c.OutputFormat()
}

// ContentType is the MIME type of Encode's output.
func (c *Carrier) ContentType() string {
	if c.OutputFormat() == "wav" {
		return "audio/wav"
	}
	return "image/png"
}

// Load reads and decodes the carrier at path.
func Load(path string) (*Carrier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carrier: %w", err)
	}
	c, err := Read(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read decodes a carrier held in memory.
func Read(data []byte) (*Carrier, error) {
	format := Sniff(data)
	switch format {
	case "png", "gif", "jpeg", "bmp", "webp":
		return decodeImage(data, format)
	case "wav":
		return decodeWAV(data)
	case "mp3":
		return decodeMP3(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Encode writes the carrier in its output format.
func (c *Carrier) Encode(w io.Writer) error {
	if c.Kind == KindAudio {
		return c.encodeWAV(w)
	}
	return c.encodeImage(w)
}

// Save writes the carrier to path in its output format.
func (c *Carrier) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if c.Kind == KindAudio {
		err = c.writeWAV(f)
	} else {
		err = c.encodeImage(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
