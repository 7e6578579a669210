package carrier

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math/rand"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageComponents is the number of carrier bytes per pixel: R, G, B, A.
const ImageComponents = 4

func decodeImage(data []byte, format string) (*Carrier, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return FromImage(img, format), nil
}

// FromImage wraps img as a carrier. The pixels are copied into a
// non-premultiplied RGBA buffer so that the alpha channel cannot alter the
// colour bytes on save.
func FromImage(img image.Image, format string) *Carrier {
	nrgba := toNRGBA(img)
	b := nrgba.Bounds()
	return &Carrier{
		Kind:       KindImage,
		Format:     format,
		Components: ImageComponents,
		Width:      b.Dx(),
		Height:     b.Dy(),
		img:        nrgba,
	}
}

// Image returns the carrier's pixels. It is nil for audio carriers.
func (c *Carrier) Image() *image.NRGBA {
	return c.img
}

func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if n, ok := src.(*image.NRGBA); ok {
		rowLen := b.Dx() * ImageComponents
		for y := 0; y < b.Dy(); y++ {
			from := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], n.Pix[from:from+rowLen])
		}
		return dst
	}

	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func (c *Carrier) encodeImage(w io.Writer) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, c.img)
}

// Generate builds a width×height PNG carrier filled with a flat colour and
// a random alpha channel, handy for trying the tool without a real photo.
func Generate(width, height int, seed int64) *Carrier {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rng := rand.New(rand.NewSource(seed))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 100, G: 200, B: 100, A: uint8(rng.Intn(255))})
		}
	}
	return FromImage(img, "png")
}
