// Package payload reads and writes the files hidden inside carriers.
package payload

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/zeebo/blake3"

	"binimg/stego"
)

// File is a payload and the name it is stored under.
type File struct {
	Name string
	Data []byte
}

// Load reads the file at path. Its name is the path's base name.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return &File{Name: BaseName(path), Data: data}, nil
}

// Save writes the payload bytes to path.
func (f *File) Save(path string) error {
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

// NameOrDefault is the name to store in a container header.
func (f *File) NameOrDefault() string {
	if f.Name == "" {
		return stego.DefaultName
	}
	return f.Name
}

// Digest is the hex BLAKE3-256 digest of the payload bytes.
func (f *File) Digest() string {
	return Digest(f.Data)
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// BaseName strips any directory part, accepting both / and \ separators so
// names recorded on another OS stay usable.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	return path
}

// SafeName reduces a name read from a container header to a single path
// element, so a crafted header cannot write outside the output directory.
func SafeName(name string) string {
	name = BaseName(name)
	if name == "" || name == "." || name == ".." {
		return stego.DefaultName
	}
	return name
}
