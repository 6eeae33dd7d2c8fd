package tileset

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"

	"github.com/milk9111/tilecanvas/canvas"
	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/tiles"
)

// Options configures a TileSet. Canvas.Width and Canvas.Height are ignored;
// the surface takes the size of the loaded image.
type Options struct {
	Canvas      canvas.Options
	ImageURL    string
	MetadataURL string
	Loader      Loader
	Metadata    MetadataLoader
	Decoder     Decoder
	// Concurrency bounds parallel cell decodes; <= 0 uses GOMAXPROCS.
	Concurrency int
}

// TileSet is a canvas whose base layer is filled by slicing a source image
// into cells. Dragging over it selects a block of tiles.
//
// Every load gets a generation number. Starting a load cancels the context
// of the previous one and any of its decodes that still finish are dropped
// instead of being written into the newer layers.
type TileSet struct {
	*canvas.Canvas

	loader      Loader
	metaLoader  MetadataLoader
	decoder     Decoder
	concurrency int

	mu          sync.Mutex
	generation  uint64
	cancel      context.CancelFunc
	imageURL    string
	metadataURL string
	tileSize    grid.CellSize
	zoom        float64
	source      *Source
	metadata    *Metadata
}

var (
	_ canvas.Selectable = (*TileSet)(nil)
	_ canvas.Tileable   = (*TileSet)(nil)
	_ canvas.Resizable  = (*TileSet)(nil)
)

// New creates an empty tileset. Call Init to perform the first load.
func New(opts Options) *TileSet {
	copts := opts.Canvas
	copts.Width, copts.Height = 0, 0
	if !copts.CellSize.Valid() {
		copts.CellSize = grid.DefaultCellSize
	}
	fsl := FSLoader{}
	ts := &TileSet{
		Canvas:      canvas.New(copts),
		loader:      opts.Loader,
		metaLoader:  opts.Metadata,
		decoder:     opts.Decoder,
		concurrency: opts.Concurrency,
		imageURL:    opts.ImageURL,
		metadataURL: opts.MetadataURL,
		tileSize:    copts.CellSize,
		zoom:        1,
	}
	if ts.loader == nil {
		ts.loader = fsl
	}
	if ts.metaLoader == nil {
		ts.metaLoader = fsl
	}
	if ts.decoder == nil {
		ts.decoder = CopyDecoder{}
	}
	return ts
}

// Init performs the first load. If it fails the layers are left as they
// were.
func (ts *TileSet) Init(ctx context.Context) error {
	ts.mu.Lock()
	url := ts.imageURL
	ts.mu.Unlock()
	if url == "" {
		return ErrNoImage
	}
	return ts.load(ctx, url, false)
}

// UpdateImageURL clears every layer and loads, slices and renders url. An
// empty url is ignored. If the load fails or ctx is cancelled before every
// cell has settled, the base layer is left empty and a *LoadError is
// returned; per-cell failures come back as joined
// *DecodeError values with the remaining cells committed.
func (ts *TileSet) UpdateImageURL(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	return ts.load(ctx, url, true)
}

// Reload re-reads the current image URL.
func (ts *TileSet) Reload(ctx context.Context) error {
	return ts.UpdateImageURL(ctx, ts.ImageURL())
}

// SetMetadataURL changes the metadata document used by subsequent loads.
func (ts *TileSet) SetMetadataURL(url string) {
	ts.mu.Lock()
	ts.metadataURL = url
	ts.mu.Unlock()
}

// ImageURL returns the URL of the current or most recent load.
func (ts *TileSet) ImageURL() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.imageURL
}

// Generation returns the number of loads started so far.
func (ts *TileSet) Generation() uint64 {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.generation
}

// Source returns the image and geometry of the last committed load.
func (ts *TileSet) Source() *Source {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.source
}

// Metadata returns the metadata of the last committed load.
func (ts *TileSet) Metadata() *Metadata {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.metadata
}

// Resize zooms the tileset view; slicing keeps using source pixels.
func (ts *TileSet) Resize(multiplier float64) {
	if multiplier <= 0 {
		return
	}
	ts.mu.Lock()
	ts.zoom *= multiplier
	ts.mu.Unlock()
	ts.Canvas.Resize(multiplier)
}

// MultiSelect extracts the base tiles under the drag from..to and emits
// canvas.EventMultiSelect with the result.
func (ts *TileSet) MultiSelect(from, to grid.Point) canvas.Selection {
	sel := canvas.ExtractSelection(ts.Store(), ts.Geometry(), from, to)
	ts.Emit(canvas.Event{
		Type: canvas.EventMultiSelect,
		Data: canvas.MultiSelectEvent{From: from, To: to, Tiles: sel},
	})
	return sel
}

func (ts *TileSet) load(ctx context.Context, url string, clear bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ts.mu.Lock()
	if ts.cancel != nil {
		ts.cancel()
	}
	ts.generation++
	gen := ts.generation
	ts.cancel = cancel
	ts.imageURL = url
	metaURL := ts.metadataURL
	if clear {
		ts.ClearLayer(tiles.AllLayers)
	}
	ts.mu.Unlock()

	img, err := ts.loader.Load(ctx, url)
	if err != nil {
		return ts.loadFailed(gen, url, err)
	}
	var meta *Metadata
	if metaURL != "" {
		meta, err = ts.metaLoader.LoadMetadata(ctx, metaURL)
		if err != nil {
			return ts.loadFailed(gen, metaURL, err)
		}
	}

	src, ok := ts.prepare(gen, url, img, meta)
	if !ok {
		return ErrSuperseded
	}

	err = Slice(ctx, src, ts.decoder, ts.concurrency, func(cell grid.Coord, img image.Image) {
		t := tiles.NewFromSource(img, url, cell, meta.Properties(cell))
		ts.commit(gen, cell, t)
	})
	if ts.superseded(gen) {
		log.Printf("tileset: load of %s superseded", url)
		return ErrSuperseded
	}
	if cerr := ctx.Err(); cerr != nil {
		ts.abandon(gen)
		log.Printf("tileset: load of %s cancelled: %v", url, cerr)
		return &LoadError{URL: url, Err: cerr}
	}
	if err != nil {
		log.Printf("tileset: %s sliced with failures: %v", url, err)
	}
	ts.RequestRender()
	return err
}

// prepare sizes the canvas to the image and records the source, unless a
// newer load has started.
func (ts *TileSet) prepare(gen uint64, url string, img image.Image, meta *Metadata) (*Source, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if gen != ts.generation {
		return nil, false
	}
	if cs, ok := meta.CellSize(); ok {
		ts.tileSize = cs
	}
	b := img.Bounds()
	src := &Source{
		Image:    img,
		URL:      url,
		Geometry: grid.NewGeometry(b.Dx(), b.Dy(), ts.tileSize),
	}
	view := src.Geometry
	if ts.zoom != 1 {
		view = view.Scale(ts.zoom)
	}
	ts.SetCellSize(view.Cell)
	ts.SetSize(view.Width, view.Height)
	ts.source = src
	ts.metadata = meta
	return src, true
}

// commit writes one decoded cell if its load is still current.
func (ts *TileSet) commit(gen uint64, cell grid.Coord, t *tiles.Tile) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if gen != ts.generation {
		return false
	}
	ts.UpdateTileByCoord(cell.Row, cell.Col, tiles.Base, t)
	return true
}

// abandon drops the cells a cancelled load managed to commit.
func (ts *TileSet) abandon(gen uint64) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if gen != ts.generation {
		return
	}
	ts.ClearLayer(tiles.Base)
	ts.source = nil
}

func (ts *TileSet) superseded(gen uint64) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return gen != ts.generation
}

func (ts *TileSet) loadFailed(gen uint64, url string, err error) error {
	if ts.superseded(gen) && errors.Is(err, context.Canceled) {
		return ErrSuperseded
	}
	log.Printf("tileset: load %s: %v", url, err)
	return &LoadError{URL: url, Err: err}
}
