// Package handlers is made to handle requests
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"binimg/carrier"
	"binimg/internal/logger"
	"binimg/internal/pipeline"
	"binimg/internal/version"
	"binimg/models"
	"binimg/payload"
	"binimg/stego"
)

type StegoHandler struct {
	maxUpload int64
	opts      pipeline.Options
}

func NewStegoHandler(maxUpload int64, opts pipeline.Options) *StegoHandler {
	return &StegoHandler{
		maxUpload: maxUpload,
		opts:      opts,
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Message: "binimg API is running",
		Version: version.Version,
	})
}

// Encode hides the "secret" upload in the "container" upload and streams
// back the stego carrier.
func (h *StegoHandler) Encode(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	container, err := h.readCarrier(c)
	if err != nil {
		return
	}

	secretData, secretHeader, err := readUpload(c, "secret")
	if err != nil {
		fail(c, http.StatusBadRequest, "validation", "Secret file is required")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = payload.BaseName(secretHeader.Filename)
	}

	opts := h.opts
	if v := c.PostForm("compress"); v != "" {
		compress, err := strconv.ParseBool(v)
		if err != nil {
			fail(c, http.StatusBadRequest, "validation", "compress must be true or false")
			return
		}
		opts.Compress = compress
	}

	res, err := pipeline.Encode(container, &payload.File{Name: name, Data: secretData}, opts)
	if err != nil {
		failErr(c, err)
		return
	}

	var out bytes.Buffer
	if err := container.Encode(&out); err != nil {
		failErr(c, fmt.Errorf("failed to encode stego carrier: %w", err))
		return
	}

	base := strings.TrimSuffix(containerName(c), filepath.Ext(containerName(c)))
	outputFilename := fmt.Sprintf("%s_stego%s", base, container.OutputExt())

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", attachment(outputFilename))
	c.Header("X-Stego-Name", res.Stats.Name)
	c.Header("X-Stego-PSNR", formatPSNR(res.PSNR))
	c.Header("X-Stego-Digest", res.Digest)
	c.Header("X-Stego-Capacity", strconv.Itoa(res.Capacity))
	c.Header("X-Stego-Copies", strconv.Itoa(res.Stats.Copies))

	c.Data(http.StatusOK, container.ContentType(), out.Bytes())
}

// Decode extracts the payload hidden in the "container" upload.
func (h *StegoHandler) Decode(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	container, err := h.readCarrier(c)
	if err != nil {
		return
	}

	opts := h.opts
	if v := c.PostForm("decompress"); v != "" {
		decompress, err := strconv.ParseBool(v)
		if err != nil {
			fail(c, http.StatusBadRequest, "validation", "decompress must be true or false")
			return
		}
		opts.Decompress = decompress
	}

	res, err := pipeline.Decode(container, opts)
	if err != nil {
		failErr(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", attachment(res.File.Name))
	c.Header("X-Stego-Name", res.Stored)
	c.Header("X-Stego-Digest", res.Digest)

	c.Data(http.StatusOK, "application/octet-stream", res.File.Data)
}

// Capacity reports the largest payload the "container" upload can take
// under a name of "name_length" bytes.
func (h *StegoHandler) Capacity(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	nameLength := len(h.defaultName())
	if v := c.PostForm("name_length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fail(c, http.StatusBadRequest, "validation", "name_length must be a non-negative integer")
			return
		}
		nameLength = n
	}

	container, err := h.readCarrier(c)
	if err != nil {
		return
	}

	r, err := pipeline.Capacity(container, nameLength)
	if err != nil {
		failErr(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CapacityResponse{
		Success:      true,
		Format:       r.Format,
		Kind:         r.Kind,
		CarrierBytes: r.CarrierBytes,
		Components:   r.Components,
		Units:        r.Units,
		NameLength:   r.NameLength,
		HeaderCost:   r.HeaderCost,
		MaxPayload:   r.MaxPayload,
	})
}

// Inspect returns the header of the "container" upload.
func (h *StegoHandler) Inspect(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	container, err := h.readCarrier(c)
	if err != nil {
		return
	}

	hdr, err := pipeline.Inspect(container, h.opts)
	if err != nil {
		failErr(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InspectResponse{
		Success:       true,
		Name:          hdr.Name,
		PayloadLength: hdr.PayloadLen,
		PayloadOffset: hdr.Offset,
	})
}

func (h *StegoHandler) defaultName() string {
	if h.opts.DefaultName != "" {
		return h.opts.DefaultName
	}
	return stego.DefaultName
}

// parseForm reads the multipart body, rejecting bodies over maxUpload.
func (h *StegoHandler) parseForm(c *gin.Context) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, "validation",
				fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
			return false
		}
		fail(c, http.StatusBadRequest, "validation", fmt.Sprintf("Failed to parse form: %v", err))
		return false
	}
	return true
}

// readCarrier decodes the "container" upload. On error the response has
// already been written.
func (h *StegoHandler) readCarrier(c *gin.Context) (*carrier.Carrier, error) {
	data, _, err := readUpload(c, "container")
	if err != nil {
		fail(c, http.StatusBadRequest, "validation", "Container file is required")
		return nil, err
	}

	container, err := carrier.Read(data)
	if err != nil {
		logger.Debug("Rejected container upload",
			logger.KeyCarrier, containerName(c),
			logger.KeyError, err)
		msg := fmt.Sprintf("Failed to decode container: %v", err)
		if errors.Is(err, carrier.ErrUnsupportedFormat) {
			msg = "Unsupported container format. Supported: PNG, BMP, GIF, JPEG, WebP, WAV, MP3"
		}
		fail(c, http.StatusBadRequest, "validation", msg)
		return nil, err
	}
	return container, nil
}

func readUpload(c *gin.Context, field string) ([]byte, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return data, header, nil
}

func containerName(c *gin.Context) string {
	if c.Request.MultipartForm == nil {
		return ""
	}
	if files := c.Request.MultipartForm.File["container"]; len(files) > 0 {
		return payload.BaseName(files[0].Filename)
	}
	return ""
}

// attachment builds a Content-Disposition value, quoting or encoding the
// filename as needed.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

// formatPSNR renders a PSNR for a header. Unmodified carriers give "inf".
func formatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return strconv.FormatFloat(psnr, 'f', 2, 64)
}

// statusFor maps codec errors to HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, stego.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, stego.ErrCapacity):
		return http.StatusRequestEntityTooLarge, "capacity"
	case errors.Is(err, stego.ErrFormat):
		return http.StatusUnprocessableEntity, "format"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func failErr(c *gin.Context, err error) {
	status, kind := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", logger.KeyError, err)
	}
	fail(c, status, kind, err.Error())
}

func fail(c *gin.Context, status int, kind, message string) {
	c.JSON(status, models.StegoResponse{
		Success: false,
		Message: message,
		Error:   kind,
	})
}
