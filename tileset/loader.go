package tileset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/tilecanvas/assets"
)

// Loader fetches and decodes a tileset image.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, url string) (image.Image, error)

func (f LoaderFunc) Load(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// FSLoader resolves URLs against the local filesystem first and then the
// embedded assets. A "file://" prefix is accepted.
type FSLoader struct {
	// Root is tried as a prefix for relative paths; defaults to "assets".
	Root string
}

// ReadFile returns the raw bytes behind url.
func (l FSLoader) ReadFile(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(url, "file://")
	if path == "" {
		return nil, ErrNoImage
	}
	if b, ok := l.readDisk(path); ok {
		return b, nil
	}
	if b, err := assets.LoadFile(path); err == nil {
		return b, nil
	}
	return nil, notFound(path)
}

// Load reads url and decodes it as an image.
func (l FSLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(url, "file://")
	if path == "" {
		return nil, ErrNoImage
	}
	if b, ok := l.readDisk(path); ok {
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", url, err)
		}
		return img, nil
	}
	img, err := assets.LoadImage(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(path)
	}
	return img, err
}

func (l FSLoader) readDisk(path string) ([]byte, bool) {
	for _, p := range l.candidates(path) {
		if b, err := os.ReadFile(p); err == nil {
			return b, true
		}
	}
	return nil, false
}

func notFound(path string) error {
	return fmt.Errorf("%s not found on disk or in embedded assets", path)
}

// Resolve returns the on-disk path url maps to, if any. Embedded-only
// assets resolve to "".
func (l FSLoader) Resolve(url string) string {
	path := strings.TrimPrefix(url, "file://")
	for _, p := range l.candidates(path) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func (l FSLoader) candidates(path string) []string {
	root := l.Root
	if root == "" {
		root = "assets"
	}
	if filepath.IsAbs(path) {
		return []string{path}
	}
	return []string{path, filepath.Join(root, assets.CleanPath(path))}
}
