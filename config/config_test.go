package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/tilecanvas/grid"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded default does not validate: %v", err)
	}
	if cfg.Cell() != grid.DefaultCellSize {
		t.Fatalf("unexpected cell size %v", cfg.Cell())
	}

	opts, err := cfg.CanvasOptions()
	if err != nil {
		t.Fatalf("CanvasOptions: %v", err)
	}
	if opts.Width != 40*16 || opts.Height != 30*16 {
		t.Fatalf("unexpected map size %dx%d", opts.Width, opts.Height)
	}
	if opts.Grid.Color != (color.NRGBA{A: 0x99}) {
		t.Fatalf("unexpected grid color %v", opts.Grid.Color)
	}
	if len(opts.Grid.Dash) != 2 || opts.Grid.Dash[0] != 4 || opts.Grid.Dash[1] != 2 {
		t.Fatalf("unexpected dash %v", opts.Grid.Dash)
	}
	if opts.HoverColor != (color.NRGBA{A: 0x1a}) {
		t.Fatalf("unexpected hover color %v", opts.HoverColor)
	}

	topts, err := cfg.TilesetOptions()
	if err != nil {
		t.Fatalf("TilesetOptions: %v", err)
	}
	if topts.ImageURL != "assets/tileset.png" || topts.MetadataURL != "assets/tileset.json" {
		t.Fatalf("unexpected tileset urls %q %q", topts.ImageURL, topts.MetadataURL)
	}
	if topts.Canvas.Width != 0 || topts.Canvas.Height != 0 {
		t.Fatalf("tileset canvas should size itself from the image")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	doc := "cell_size: {x: 32, y: 24}\nclear_render: true\ngrid:\n  color: \"#ff000080\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Cell() != (grid.CellSize{W: 32, H: 24}) {
		t.Fatalf("cell size override ignored: %v", cfg.Cell())
	}
	if !cfg.ClearRender {
		t.Fatalf("clear_render override ignored")
	}
	if cfg.Map.Cols != 40 || cfg.Tileset.Image == "" || cfg.Grid.LineWidth != 1 {
		t.Fatalf("keys missing from the file should keep their defaults: %+v", cfg)
	}
	opts, err := cfg.CanvasOptions()
	if err != nil {
		t.Fatalf("CanvasOptions: %v", err)
	}
	if opts.Grid.Color != (color.NRGBA{R: 0xff, A: 0x80}) {
		t.Fatalf("unexpected grid color %v", opts.Grid.Color)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "cell_size: [1, 2"},
		{"zero cell", "cell_size: {x: 0, y: 16}"},
		{"negative map", "map: {cols: -1, rows: 2}"},
		{"bad color", "hover: {color: \"#12\"}"},
		{"negative dash", "grid: {dash: [4, -2]}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(dir, c.name+".yaml")
			if err := os.WriteFile(path, []byte(c.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if cfg, err := LoadFile(""); err != nil || cfg.Map.Rows != 30 {
		t.Fatalf("empty path should return the defaults, got %v", err)
	}
}

func TestLoadSpecFallsBackToEmbedded(t *testing.T) {
	spec, err := LoadSpec[Config](DefaultFile)
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if spec.Window.Title == "" {
		t.Fatalf("expected the embedded window title")
	}
}

func TestDefaultPrefersWorkingDirectory(t *testing.T) {
	embedded, err := configFS.ReadFile(DefaultFile)
	if err != nil {
		t.Fatalf("read embedded: %v", err)
	}
	dir := t.TempDir()
	local := strings.Replace(string(embedded), "title: tile canvas", "title: local canvas", 1)
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte(local), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if cfg.Window.Title != "local canvas" {
		t.Fatalf("expected the working directory copy, got title %q", cfg.Window.Title)
	}

	bad := strings.Replace(local, "cell_size:\n  x: 16", "cell_size:\n  x: 0", 1)
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Default(); err == nil {
		t.Fatalf("expected an invalid working directory copy to be rejected")
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#000000", color.NRGBA{A: 0xff}, false},
		{"#3c78ff", color.NRGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}, false},
		{"#00000099", color.NRGBA{A: 0x99}, false},
		{" #FFFFFF ", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"black", color.NRGBA{A: 0xff}, false},
		{"CornflowerBlue", color.NRGBA{R: 100, G: 149, B: 237, A: 0xff}, false},
		{"#fff", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
		{"notacolor", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseHexColor(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if !c.wantErr && got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}
