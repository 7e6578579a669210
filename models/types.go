// Package models contain the API request and response bodies
package models

// StegoResponse is returned by encode, and by every endpoint on failure
type StegoResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Error   string  `json:"error,omitempty"` // validation, capacity, format, internal
	PSNR    float64 `json:"psnr,omitempty"`
}

// ExtractResponse describes a decoded payload. The payload itself is
// streamed as the response body; this shape is only used for errors.
type ExtractResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SecretFilename string `json:"secret_filename,omitempty"`
}

// CapacityResponse reports how much a carrier can hold
type CapacityResponse struct {
	Success      bool   `json:"success"`
	Format       string `json:"format"`
	Kind         string `json:"kind"`
	CarrierBytes int    `json:"carrier_bytes"`
	Components   int    `json:"components"`
	Units        int    `json:"units"`
	NameLength   int    `json:"name_length"`
	HeaderCost   uint64 `json:"header_cost"`
	MaxPayload   int    `json:"max_payload"`
}

// InspectResponse is the header of a container
type InspectResponse struct {
	Success       bool   `json:"success"`
	Name          string `json:"name"`
	PayloadLength int    `json:"payload_length"`
	PayloadOffset int    `json:"payload_offset"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}
