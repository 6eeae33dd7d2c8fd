package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tilecanvas/assets"
	"github.com/milk9111/tilecanvas/canvas"
	"github.com/milk9111/tilecanvas/config"
	"github.com/milk9111/tilecanvas/tileset"
	"github.com/milk9111/tilecanvas/watch"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to the embedded editor.yaml)")
	imageURL := flag.String("tileset", "", "tileset image, overrides the config")
	metadataURL := flag.String("metadata", "", "tileset metadata JSON, overrides the config")
	noGrid := flag.Bool("nogrid", false, "start with the grid mesh hidden")
	noWatch := flag.Bool("nowatch", false, "disable reloading the tileset when its files change")
	list := flag.Bool("list", false, "print the embedded tilesets and exit")
	flag.Parse()

	if *list {
		for _, name := range assets.ListImages() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *imageURL != "" {
		cfg.Tileset.Image = *imageURL
		cfg.Tileset.Metadata = *metadataURL
	} else if *metadataURL != "" {
		cfg.Tileset.Metadata = *metadataURL
	}
	if *noGrid {
		cfg.ClearRender = true
	}

	boardOpts, err := cfg.CanvasOptions()
	if err != nil {
		log.Fatal(err)
	}
	tsOpts, err := cfg.TilesetOptions()
	if err != nil {
		log.Fatal(err)
	}

	board := canvas.New(boardOpts)
	ts := tileset.New(tsOpts)
	if cfg.Tileset.Zoom > 0 && cfg.Tileset.Zoom != 1 {
		ts.Resize(cfg.Tileset.Zoom)
	}
	if err := ts.Init(context.Background()); err != nil {
		log.Printf("Failed to load tileset %s: %v", cfg.Tileset.Image, err)
	}

	var w *watch.Watcher
	if cfg.Watch && !*noWatch {
		w = newTilesetWatcher(cfg.Tileset.Image, cfg.Tileset.Metadata)
	}

	editor := NewEditor(board, ts, w)
	defer editor.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	if err := ebiten.RunGame(editor); err != nil {
		log.Fatal(err)
	}
}

// newTilesetWatcher watches whichever tileset files exist on disk. Assets
// served only from the embedded copy cannot change and are skipped.
func newTilesetWatcher(urls ...string) *watch.Watcher {
	var loader tileset.FSLoader
	var paths []string
	for _, u := range urls {
		if u == "" {
			continue
		}
		if p := loader.Resolve(u); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	w, err := watch.ForFiles(paths...)
	if err != nil {
		log.Printf("Failed to watch %v: %v", paths, err)
		return nil
	}
	log.Printf("Watching %v for changes", paths)
	return w
}
