package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, lvl, format string) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	InitWithWriter(buf, lvl, format)
	t.Cleanup(func() {
		InitWithWriter(os.Stderr, "INFO", "text")
	})
	return buf
}

func TestLevelFiltering(t *testing.T) {
	t.Run("InfoHidesDebug", func(t *testing.T) {
		buf := capture(t, "INFO", "text")

		Debug("hidden")
		Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("ErrorOnly", func(t *testing.T) {
		buf := capture(t, "ERROR", "text")

		Warn("warned")
		Error("failed")

		assert.NotContains(t, buf.String(), "warned")
		assert.Contains(t, buf.String(), "failed")
	})

	t.Run("InvalidLevelIgnored", func(t *testing.T) {
		buf := capture(t, "DEBUG", "text")
		SetLevel("VERBOSE")

		Debug("still debug")
		assert.Contains(t, buf.String(), "still debug")
	})
}

func TestJSONFormat(t *testing.T) {
	buf := capture(t, "INFO", "json")

	Info("encoded", KeyCarrier, "cat.png", KeySize, 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "encoded", entry["msg"])
	assert.Equal(t, "cat.png", entry[KeyCarrier])
	assert.Equal(t, float64(42), entry[KeySize])
}

func TestSetFormatIgnoresUnknown(t *testing.T) {
	buf := capture(t, "INFO", "text")
	SetFormat("xml")

	Info("plain")
	assert.True(t, strings.Contains(buf.String(), "msg=plain"))
}

func TestWith(t *testing.T) {
	buf := capture(t, "INFO", "text")

	With(KeyRequestID, "abc").Info("request")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestInitFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binimg.log")
	require.NoError(t, Init(Config{Level: "INFO", Format: "text", Output: path}))
	t.Cleanup(func() {
		InitWithWriter(os.Stderr, "INFO", "text")
	})

	Info("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestDuration(t *testing.T) {
	start := time.Now().Add(-1500 * time.Microsecond)
	assert.GreaterOrEqual(t, Duration(start), 1.5)
}
