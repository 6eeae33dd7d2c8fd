package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed *.png *.json
var assetsFS embed.FS

const (
	// DefaultTileset is the tileset image shipped with the editor.
	DefaultTileset = "tileset.png"
	// DefaultMetadata describes DefaultTileset.
	DefaultMetadata = "tileset.json"
)

// LoadImage decodes an embedded image by assets-relative path.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// LoadFile reads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(CleanPath(path))
}

// ListImages returns the embedded PNG files.
func ListImages() []string {
	names, err := fs.Glob(assetsFS, "*.png")
	if err != nil {
		return nil
	}
	return names
}

// CleanPath converts an absolute or "assets/"-prefixed path into an
// assets-relative one.
func CleanPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
