package logger

// Standard field keys. Use these instead of ad-hoc strings so log lines can
// be queried consistently.
const (
	KeyOperation = "operation" // encode, decode, capacity, inspect
	KeyCarrier   = "carrier"   // carrier path or upload name
	KeyFormat    = "format"    // carrier format: png, bmp, wav...
	KeyPayload   = "payload"   // payload path or stored name
	KeyOutput    = "output"    // output path

	KeySize       = "size"        // payload size in bytes
	KeyCarrierLen = "carrier_len" // carrier length in carrier bytes
	KeyRequired   = "required"    // carrier bytes needed
	KeyAvailable  = "available"   // carrier bytes available
	KeyCopies     = "copies"      // complete redundant payload copies
	KeyDigest     = "digest"      // BLAKE3 payload digest
	KeyPSNR       = "psnr_db"     // distortion introduced by encoding

	KeyRequestID  = "request_id"
	KeyClientIP   = "client_ip"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDurationMs = "duration_ms"
	KeyError      = "error"
)
