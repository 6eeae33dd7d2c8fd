package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilecanvas/canvas"
	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/tileset"
)

// DefaultFile is the embedded default configuration.
const DefaultFile = "editor.yaml"

//go:embed editor.yaml
var configFS embed.FS

type WindowSpec struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type SizeSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type GridSpec struct {
	Color     string    `yaml:"color"`
	Dash      []float64 `yaml:"dash"`
	LineWidth float64   `yaml:"line_width"`
}

type HoverSpec struct {
	Color string `yaml:"color"`
}

type MapSpec struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

type TilesetSpec struct {
	Image       string  `yaml:"image"`
	Metadata    string  `yaml:"metadata"`
	Zoom        float64 `yaml:"zoom"`
	Concurrency int     `yaml:"concurrency"`
}

// Config is the editor configuration.
type Config struct {
	Window      WindowSpec  `yaml:"window"`
	CellSize    SizeSpec    `yaml:"cell_size"`
	ClearRender bool        `yaml:"clear_render"`
	Grid        GridSpec    `yaml:"grid"`
	Hover       HoverSpec   `yaml:"hover"`
	Map         MapSpec     `yaml:"map"`
	Tileset     TilesetSpec `yaml:"tileset"`
	Watch       bool        `yaml:"watch"`
}

// Load returns the raw bytes of name, preferring a file on disk over the
// embedded copy.
func Load(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return configFS.ReadFile(filepath.Base(name))
}

// LoadSpec reads filename with Load and unmarshals it into a T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Default returns the default configuration: an editor.yaml in the working
// directory if there is one, otherwise the embedded copy.
func Default() (*Config, error) {
	cfg, err := LoadSpec[Config](DefaultFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", DefaultFile, err)
	}
	return &cfg, nil
}

// LoadFile reads the config at path over the defaults; keys missing from
// the file keep their default values. An empty path returns the defaults.
func LoadFile(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := cfg.Merge(data); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Merge unmarshals a YAML document over c and validates the result.
func (c *Config) Merge(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return c.Validate()
}

// Validate checks the values a canvas cannot fall back from.
func (c *Config) Validate() error {
	if c.CellSize.X <= 0 || c.CellSize.Y <= 0 {
		return fmt.Errorf("cell_size must be positive, got %vx%v", c.CellSize.X, c.CellSize.Y)
	}
	if c.Map.Cols < 0 || c.Map.Rows < 0 {
		return fmt.Errorf("map size must not be negative, got %dx%d", c.Map.Cols, c.Map.Rows)
	}
	if c.Tileset.Zoom < 0 {
		return fmt.Errorf("tileset zoom must not be negative, got %v", c.Tileset.Zoom)
	}
	for _, d := range c.Grid.Dash {
		if d < 0 {
			return fmt.Errorf("grid dash entries must not be negative, got %v", c.Grid.Dash)
		}
	}
	if _, err := ParseHexColor(c.Grid.Color); c.Grid.Color != "" && err != nil {
		return fmt.Errorf("grid color: %w", err)
	}
	if _, err := ParseHexColor(c.Hover.Color); c.Hover.Color != "" && err != nil {
		return fmt.Errorf("hover color: %w", err)
	}
	return nil
}

// Cell returns the configured cell size.
func (c *Config) Cell() grid.CellSize {
	return grid.CellSize{W: c.CellSize.X, H: c.CellSize.Y}
}

// CanvasOptions builds the options of the map canvas.
func (c *Config) CanvasOptions() (canvas.Options, error) {
	cell := c.Cell()
	opts := canvas.Options{
		CellSize:    cell,
		Width:       int(float64(c.Map.Cols) * cell.W),
		Height:      int(float64(c.Map.Rows) * cell.H),
		ClearRender: c.ClearRender,
		Grid: canvas.GridStyle{
			Width: c.Grid.LineWidth,
			Dash:  c.Grid.Dash,
		},
	}
	if c.Grid.Color != "" {
		col, err := ParseHexColor(c.Grid.Color)
		if err != nil {
			return canvas.Options{}, fmt.Errorf("config: grid color: %w", err)
		}
		opts.Grid.Color = col
	}
	if c.Hover.Color != "" {
		col, err := ParseHexColor(c.Hover.Color)
		if err != nil {
			return canvas.Options{}, fmt.Errorf("config: hover color: %w", err)
		}
		opts.HoverColor = col
	}
	return opts, nil
}

// TilesetOptions builds the options of the tileset panel. The tileset
// shares the map's grid and hover styling.
func (c *Config) TilesetOptions() (tileset.Options, error) {
	copts, err := c.CanvasOptions()
	if err != nil {
		return tileset.Options{}, err
	}
	copts.Width, copts.Height = 0, 0
	copts.ClearRender = false
	return tileset.Options{
		Canvas:      copts,
		ImageURL:    c.Tileset.Image,
		MetadataURL: c.Tileset.Metadata,
		Concurrency: c.Tileset.Concurrency,
	}, nil
}
