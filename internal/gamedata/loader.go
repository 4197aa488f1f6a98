package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
)

// Load decodes one embedded content file.
func Load[T any](filename string) (T, error) {
	return LoadFrom[T](dataFS, filename)
}

// LoadFrom decodes a content file from any filesystem. Unknown fields are
// rejected so a typo in a content table fails loudly instead of reading as
// a zero value.
func LoadFrom[T any](fsys fs.FS, filename string) (T, error) {
	var out T
	raw, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return out, fmt.Errorf("read %s: %w", filename, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", filename, err)
	}
	return out, nil
}

// MustLoad is Load for content the game cannot run without.
func MustLoad[T any](filename string) T {
	v, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return v
}
