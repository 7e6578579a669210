package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledRecorderIsNil(t *testing.T) {
	Reset()
	assert.False(t, IsEnabled())

	r := NewRecorder()
	assert.Nil(t, r)

	// Nil recorders must not panic.
	r.ObserveOperation("encode", time.Millisecond, nil)
	r.RecordBytes("encode", 10)
}

func TestRecorder(t *testing.T) {
	InitRegistry()
	t.Cleanup(Reset)

	r := NewRecorder()
	require.NotNil(t, r)

	r.ObserveOperation("encode", 3*time.Millisecond, nil)
	r.ObserveOperation("encode", time.Millisecond, errors.New("boom"))
	r.ObserveOperation("decode", time.Millisecond, nil)
	r.RecordBytes("encode", 128)
	r.RecordBytes("encode", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("encode", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("encode", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("decode", "success")))
	assert.Equal(t, 128.0, testutil.ToFloat64(r.bytes.WithLabelValues("encode")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}
