// Package pipeline runs the stego codec over loaded carriers and payload
// files. It adds what the command line and the HTTP API share: optional
// compression, digests, distortion measurement, logging and metrics.
package pipeline

import (
	"fmt"
	"time"

	"binimg/carrier"
	"binimg/internal/logger"
	"binimg/metrics"
	"binimg/payload"
	"binimg/stego"
)

// Operation names used in logs and metrics.
const (
	OpEncode   = "encode"
	OpDecode   = "decode"
	OpCapacity = "capacity"
	OpInspect  = "inspect"
)

// Options tunes Encode and Decode.
type Options struct {
	// DefaultName is stored for payloads without a name.
	DefaultName string
	// Compress zstd-compresses the payload before embedding.
	Compress bool
	// Decompress reverses Compress on decode when the stored name says so.
	Decompress bool
	// MinPSNR, when positive, logs a warning for encodes below it.
	MinPSNR float64
	// Recorder receives operation metrics. May be nil.
	Recorder *metrics.Recorder
}

// EncodeResult describes a finished Encode.
type EncodeResult struct {
	Stats    stego.Stats
	Size     int // embedded bytes, after compression
	PSNR     float64
	Digest   string // BLAKE3 digest of the embedded bytes
	Capacity int    // largest payload the carrier could take under this name
}

// DecodeResult describes a finished Decode.
type DecodeResult struct {
	File   *payload.File // Name is the output file name
	Stored string        // name read from the header
	Digest string        // BLAKE3 digest of the extracted bytes, before decompression
}

// CapacityReport is what a carrier can hold.
type CapacityReport struct {
	Format       string
	Kind         string
	CarrierBytes int
	Components   int
	Units        int
	NameLength   int
	HeaderCost   uint64
	MaxPayload   int
}

// Encode hides f in c. c is modified in place; on error it is unchanged.
func Encode(c *carrier.Carrier, f *payload.File, opts Options) (res EncodeResult, err error) {
	start := time.Now()
	defer func() { opts.Recorder.ObserveOperation(OpEncode, time.Since(start), err) }()

	if f.Name == "" && opts.DefaultName != "" {
		f = &payload.File{Name: opts.DefaultName, Data: f.Data}
	}
	if opts.Compress {
		f = &payload.File{Name: f.Name, Data: f.Data}
		if err = f.Compress(); err != nil {
			return EncodeResult{}, err
		}
	}

	data := f.Data
	if data == nil {
		data = []byte{}
	}
	name := f.NameOrDefault()

	buf := c.Bytes()
	original := make([]byte, len(buf))
	copy(original, buf)

	res.Stats, err = stego.Encode(buf, data, name)
	if err != nil {
		logger.Debug("Encode rejected",
			logger.KeyFormat, c.Format,
			logger.KeyCarrierLen, c.Len(),
			logger.KeyRequired, stego.Required(len(name), len(data)),
			logger.KeyError, err)
		return EncodeResult{}, err
	}

	res.Size = len(data)
	res.PSNR = stego.PSNR(original, buf)
	res.Digest = payload.Digest(data)
	res.Capacity = stego.MaxPayload(c.Len(), len(name))
	opts.Recorder.RecordBytes(OpEncode, len(data))

	logger.Info("Payload embedded",
		logger.KeyFormat, c.Format,
		logger.KeyPayload, res.Stats.Name,
		logger.KeySize, len(data),
		logger.KeyCarrierLen, c.Len(),
		logger.KeyCopies, res.Stats.Copies,
		logger.KeyDigest, res.Digest,
		logger.KeyPSNR, res.PSNR,
		logger.KeyDurationMs, logger.Duration(start))

	if opts.MinPSNR > 0 && !stego.AcceptablePSNR(res.PSNR, opts.MinPSNR) {
		logger.Warn("Distortion above configured limit",
			logger.KeyPSNR, res.PSNR,
			"min_psnr", opts.MinPSNR)
	}
	return res, nil
}

// Decode extracts the payload hidden in c.
func Decode(c *carrier.Carrier, opts Options) (res DecodeResult, err error) {
	start := time.Now()
	defer func() { opts.Recorder.ObserveOperation(OpDecode, time.Since(start), err) }()

	h, data, err := stego.Extract(c.Bytes())
	if err != nil {
		return DecodeResult{}, err
	}

	res.Stored = h.Name
	res.Digest = payload.Digest(data)
	res.File = &payload.File{
		Name: stego.DecodedName(payload.SafeName(h.Name)),
		Data: data,
	}
	if opts.Decompress {
		if err = res.File.Decompress(); err != nil {
			return DecodeResult{}, err
		}
	}
	opts.Recorder.RecordBytes(OpDecode, len(data))

	logger.Info("Payload extracted",
		logger.KeyFormat, c.Format,
		logger.KeyPayload, res.File.Name,
		logger.KeySize, len(res.File.Data),
		logger.KeyDigest, res.Digest,
		logger.KeyDurationMs, logger.Duration(start))
	return res, nil
}

// Inspect parses the header of c without extracting the payload.
func Inspect(c *carrier.Carrier, opts Options) (h stego.Header, err error) {
	start := time.Now()
	defer func() { opts.Recorder.ObserveOperation(OpInspect, time.Since(start), err) }()

	h, err = stego.Inspect(c.Bytes())
	if err != nil {
		return stego.Header{}, err
	}
	logger.Debug("Header parsed",
		logger.KeyPayload, h.Name,
		logger.KeySize, h.PayloadLen)
	return h, nil
}

// Capacity reports how large a payload c can hold under a name of
// nameLength bytes.
func Capacity(c *carrier.Carrier, nameLength int) (CapacityReport, error) {
	if nameLength < 0 {
		return CapacityReport{}, &stego.ValidationError{
			Field:  "name length",
			Reason: fmt.Sprintf("must not be negative, got %d", nameLength),
		}
	}
	return CapacityReport{
		Format:       c.Format,
		Kind:         c.Kind.String(),
		CarrierBytes: c.Len(),
		Components:   c.Components,
		Units:        c.Units(),
		NameLength:   nameLength,
		HeaderCost:   stego.HeaderCost(nameLength),
		MaxPayload:   stego.MaxPayload(c.Len(), nameLength),
	}, nil
}
