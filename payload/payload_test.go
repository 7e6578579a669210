package payload

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binimg/stego"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 1, 2, 3}, 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret.bin", f.Name)
	assert.Equal(t, []byte{0, 1, 2, 3}, f.Data)

	out := filepath.Join(dir, "copy.bin")
	require.NoError(t, f.Save(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, f.Data, data)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	tests := []struct {
		in       string
		base     string
		safeName string
	}{
		{"a.txt", "a.txt", "a.txt"},
		{"/tmp/dir/a.txt", "a.txt", "a.txt"},
		{`C:\Users\me\a.txt`, "a.txt", "a.txt"},
		{"../../etc/passwd", "passwd", "passwd"},
		{"dir/", "", stego.DefaultName},
		{"..", "..", stego.DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.base, BaseName(tt.in))
			assert.Equal(t, tt.safeName, SafeName(tt.in))
		})
	}
}

func TestNameOrDefault(t *testing.T) {
	assert.Equal(t, stego.DefaultName, (&File{}).NameOrDefault())
	assert.Equal(t, "x", (&File{Name: "x"}).NameOrDefault())
}

func TestDigest(t *testing.T) {
	// BLAKE3 of the empty input.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Digest(nil))
	assert.Len(t, (&File{Data: []byte("hello")}).Digest(), 64)
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}

func TestCompressRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("steganography "), 200)
	f := &File{Name: "notes.txt", Data: append([]byte(nil), original...)}

	require.NoError(t, f.Compress())
	assert.Equal(t, "notes.txt.zst", f.Name)
	assert.True(t, f.Compressed())
	assert.Less(t, len(f.Data), len(original))

	require.NoError(t, f.Decompress())
	assert.Equal(t, "notes.txt", f.Name)
	assert.Equal(t, original, f.Data)
}

func TestDecompressPlainIsNoop(t *testing.T) {
	f := &File{Name: "plain.txt", Data: []byte("raw")}
	require.NoError(t, f.Decompress())
	assert.Equal(t, []byte("raw"), f.Data)
}

func TestDecompressCorrupt(t *testing.T) {
	f := &File{Name: "bad.zst", Data: []byte("not zstd at all")}
	assert.Error(t, f.Decompress())
}
