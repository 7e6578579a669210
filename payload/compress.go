package payload

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks a stored name whose payload is zstd-compressed.
const CompressedExt = ".zst"

// Compress zstd-compresses the payload and appends CompressedExt to its
// name.
func (f *File) Compress() error {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer enc.Close()

	f.Data = enc.EncodeAll(f.Data, make([]byte, 0, len(f.Data)))
	f.Name = f.NameOrDefault() + CompressedExt
	return nil
}

// Compressed reports whether the name carries CompressedExt.
func (f *File) Compressed() bool {
	return strings.HasSuffix(f.Name, CompressedExt)
}

// Decompress reverses Compress. A payload whose name lacks CompressedExt is
// left alone.
func (f *File) Decompress() error {
	if !f.Compressed() {
		return nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(f.Data, nil)
	if err != nil {
		return fmt.Errorf("failed to decompress payload: %w", err)
	}
	f.Data = data
	f.Name = strings.TrimSuffix(f.Name, CompressedExt)
	return nil
}
