package tileset

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/tilecanvas/assets"
	"github.com/milk9111/tilecanvas/grid"
)

func TestFSLoaderEmbedded(t *testing.T) {
	ctx := context.Background()
	var l FSLoader

	for _, url := range []string{
		assets.DefaultTileset,
		"assets/" + assets.DefaultTileset,
		"file://" + assets.DefaultTileset,
	} {
		t.Run(url, func(t *testing.T) {
			img, err := l.Load(ctx, url)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 64 {
				t.Fatalf("unexpected bounds %v", b)
			}
		})
	}

	if _, err := l.Load(ctx, "nope.png"); err == nil {
		t.Fatalf("expected an error for a missing image")
	}
	if p := l.Resolve(assets.DefaultTileset); p != "" {
		t.Fatalf("embedded-only asset resolved to %q", p)
	}
}

func TestFSLoaderDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, checker(48, 16)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	l := FSLoader{Root: dir}
	img, err := l.Load(context.Background(), "sheet.png")
	if err != nil {
		t.Fatalf("Load via root: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 16 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if got := l.Resolve("file://" + path); got != path {
		t.Fatalf("Resolve = %q, want %q", got, path)
	}
}

func TestFSLoaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (FSLoader{}).Load(ctx, assets.DefaultTileset); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadEmbeddedMetadata(t *testing.T) {
	m, err := FSLoader{}.LoadMetadata(context.Background(), assets.DefaultMetadata)
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if m.Name != "default" {
		t.Fatalf("unexpected name %q", m.Name)
	}
	if cs, ok := m.CellSize(); !ok || cs != grid.DefaultCellSize {
		t.Fatalf("unexpected cell size %v (%v)", cs, ok)
	}
	if v := m.Properties(grid.Coord{Row: 3, Col: 7})["hazard"]; v != "true" {
		t.Fatalf("expected hazard property, got %q", v)
	}
}

func TestParseMetadata(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"minimal", `{"name":"x"}`, false},
		{"with tiles", `{"tiles":{"2|5":{"k":"v"}}}`, false},
		{"bad key", `{"tiles":{"two|five":{"k":"v"}}}`, true},
		{"bad json", `{"tiles":`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseMetadata([]byte(c.doc))
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
		})
	}

	var nilMeta *Metadata
	if _, ok := nilMeta.CellSize(); ok {
		t.Fatalf("nil metadata should declare no cell size")
	}
	if nilMeta.Properties(grid.Coord{}) != nil {
		t.Fatalf("nil metadata should have no properties")
	}
}
