package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binimg/carrier"
	"binimg/stego"
)

// run executes the command line with an isolated config directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "ERROR"))
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	secret := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("meet at noon"), 0644))

	_, err := run(t, "generate", cover, "--width", "40", "--height", "40", "--seed", "7")
	require.NoError(t, err)

	out, err := run(t, "encode", cover, secret)
	require.NoError(t, err)
	stegoFile := filepath.Join(dir, "cover.stego.png")
	assert.FileExists(t, stegoFile)
	assert.Contains(t, out, "secret.txt")

	out, err = run(t, "inspect", stegoFile)
	require.NoError(t, err)
	assert.Contains(t, out, "secret.txt")
	assert.Contains(t, out, "12 bytes")

	decoded := filepath.Join(dir, "out.txt")
	_, err = run(t, "decode", stegoFile, decoded)
	require.NoError(t, err)
	data, err := os.ReadFile(decoded)
	require.NoError(t, err)
	assert.Equal(t, "meet at noon", string(data))
}

func TestGenerateDefaultSize(t *testing.T) {
	cover := filepath.Join(t.TempDir(), "cover.png")

	out, err := run(t, "generate", cover, "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 400x200 carrier")

	c, err := carrier.Load(cover)
	require.NoError(t, err)
	assert.Equal(t, 400, c.Width)
	assert.Equal(t, 200, c.Height)
	assert.Equal(t, 400*200*carrier.ImageComponents, c.Len())
}

func TestEncodeCompressedWithName(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	secret := filepath.Join(dir, "in.bin")
	stegoFile := filepath.Join(dir, "custom.png")
	content := bytes.Repeat([]byte("zstd "), 300)
	require.NoError(t, os.WriteFile(secret, content, 0644))
	require.NoError(t, carrier.Generate(40, 40, 1).Save(cover))

	out, err := run(t, "encode", cover, secret, "--name", "log.txt", "--compress", "-o", stegoFile)
	require.NoError(t, err)
	assert.Contains(t, out, "log.txt.zst")

	decoded := filepath.Join(dir, "log.txt")
	_, err = run(t, "decode", stegoFile, decoded, "--decompress")
	require.NoError(t, err)
	data, err := os.ReadFile(decoded)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDecodeDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	c := carrier.Generate(20, 20, 3)
	_, err = stego.Encode(c.Bytes(), []byte("hello"), "a.txt")
	require.NoError(t, err)
	require.NoError(t, c.Save("in.png"))

	_, err = run(t, "decode", "in.png")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "decoded.a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestEncodeTooLarge(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "tiny.png")
	secret := filepath.Join(dir, "big.bin")
	require.NoError(t, carrier.Generate(5, 5, 1).Save(cover))
	require.NoError(t, os.WriteFile(secret, make([]byte, 1000), 0644))

	_, err := run(t, "encode", cover, secret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, stego.ErrCapacity))
	assert.NoFileExists(t, filepath.Join(dir, "tiny.stego.png"))
}

func TestDecodeNotAContainer(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "plain.png")
	require.NoError(t, carrier.Generate(10, 10, 1).Save(cover))

	_, err := run(t, "decode", cover)
	assert.True(t, errors.Is(err, stego.ErrFormat))
}

func TestCapacity(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "c.png")
	require.NoError(t, carrier.Generate(10, 10, 1).Save(cover))

	out, err := run(t, "capacity", cover, "--name-length", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "400")
	assert.Contains(t, out, "68")
	assert.Contains(t, out, "83 bytes")
}

func TestConfigInitValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binimg.yaml")

	out, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = run(t, "config", "init", "--config", path)
	assert.Error(t, err)

	_, err = run(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)

	out, err = run(t, "config", "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation: OK")
}

func TestInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"capacity", "missing.png", "--log-level", "chatty"})
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Error(t, cmd.Execute())
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "binimg dev")
}

func TestArgs(t *testing.T) {
	_, err := run(t, "encode", "only-one")
	assert.Error(t, err)
}
