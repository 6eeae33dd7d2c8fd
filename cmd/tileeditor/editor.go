package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tilecanvas/canvas"
	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/surface"
	"github.com/milk9111/tilecanvas/tiles"
	"github.com/milk9111/tilecanvas/tileset"
	"github.com/milk9111/tilecanvas/watch"
)

const panelMargin = 8

var layerCycle = []tiles.Layer{tiles.Base, tiles.Foreground, tiles.Background}

// pane is a canvas blitted onto the screen at an offset.
type pane struct {
	canvas  *canvas.Canvas
	surface *surface.Ebiten
	origin  image.Point
	hovered bool
}

func newPane(c *canvas.Canvas) *pane {
	w, h := c.Size()
	return &pane{canvas: c, surface: surface.NewEbiten(w, h)}
}

func (p *pane) contains(x, y int) bool {
	w, h := p.canvas.Size()
	return image.Pt(x, y).In(image.Rect(p.origin.X, p.origin.Y, p.origin.X+w, p.origin.Y+h))
}

func (p *pane) local(x, y int) grid.Point {
	return grid.Point{X: float64(x - p.origin.X), Y: float64(y - p.origin.Y)}
}

// track forwards the cursor to the canvas, turning exits into PointerLeave.
func (p *pane) track(x, y int) {
	if p.contains(x, y) {
		pt := p.local(x, y)
		p.canvas.PointerMove(pt.X, pt.Y)
		p.hovered = true
		return
	}
	if p.hovered {
		p.canvas.PointerLeave()
		p.hovered = false
	}
}

// draw repaints the offscreen target if needed and blits it.
func (p *pane) draw(screen *ebiten.Image) {
	w, h := p.canvas.Size()
	if sw, sh := p.surface.Size(); sw != max(w, 1) || sh != max(h, 1) {
		p.surface.Resize(w, h)
		p.canvas.RequestRender()
	}
	p.canvas.Frame(p.surface)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(p.origin.X), float64(p.origin.Y))
	screen.DrawImage(p.surface.Target(), op)
}

// Editor is the ebiten game: a map canvas painted with tiles picked from a
// tileset panel.
type Editor struct {
	board   *pane
	palette *pane
	tileset *tileset.TileSet
	ui      *EditorUI
	watcher *watch.Watcher

	layer    int
	dragging bool
	dragFrom grid.Point
	dragTo   grid.Point
	selFrom  grid.Coord
	selTo    grid.Coord
	hasSel   bool

	screenW, screenH int
	reloads          chan error
}

// NewEditor wires the canvases, the toolbar and the optional watcher.
func NewEditor(board *canvas.Canvas, ts *tileset.TileSet, w *watch.Watcher) *Editor {
	e := &Editor{
		board:   newPane(board),
		palette: newPane(ts.Canvas),
		tileset: ts,
		watcher: w,
		reloads: make(chan error, 4),
	}
	e.board.origin = image.Pt(panelMargin, toolbarHeight+panelMargin)

	ts.OnMultiSelect(func(ev canvas.MultiSelectEvent) {
		board.UpdateCurrentTiles(ev.Tiles)
	})
	board.OnRender(e.drawBrush)
	ts.OnRender(e.drawPaletteSelection)

	e.ui = BuildEditorUI(ToolbarActions{
		ToggleGrid: func() bool {
			on := board.ClearRender()
			board.SetClearRender(!on)
			return on
		},
		ZoomIn:    func() { board.Resize(2) },
		ZoomOut:   func() { board.Resize(0.5) },
		NextLayer: e.nextLayer,
		Reload:    e.reload,
		Clear:     func() { board.ClearLayer(e.currentLayer()) },
		Copy:      func() { logCopy(board.CurrentTiles()) },
	}, !board.ClearRender(), e.currentLayer().String())
	return e
}

func (e *Editor) currentLayer() tiles.Layer {
	return layerCycle[e.layer]
}

func (e *Editor) nextLayer() string {
	e.layer = (e.layer + 1) % len(layerCycle)
	return e.currentLayer().String()
}

// reload re-reads the tileset off the game loop.
func (e *Editor) reload() {
	go func() {
		e.reloads <- e.tileset.Reload(context.Background())
	}()
}

func (e *Editor) Update() error {
	e.ui.UI.Update()
	e.drainWatcher()
	e.drainReloads()

	mx, my := ebiten.CursorPosition()
	e.board.track(mx, my)
	e.palette.track(mx, my)

	e.updatePalette(mx, my)
	e.updateBoard(mx, my)
	e.updateKeys()
	e.ui.SetStatus(e.status())
	return nil
}

func (e *Editor) updatePalette(mx, my int) {
	pt := e.palette.local(mx, my)
	if e.palette.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.dragging = true
		e.dragFrom = pt
	}
	if !e.dragging {
		return
	}
	e.dragTo = pt
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.dragging = false
		sel := e.tileset.MultiSelect(e.dragFrom, e.dragTo)
		geom := e.tileset.Geometry()
		e.selFrom, e.selTo = geom.PointToGrid(e.dragFrom), geom.PointToGrid(e.dragTo)
		e.hasSel = !sel.Empty()
		e.tileset.RequestRender()
	}
}

func (e *Editor) updateBoard(mx, my int) {
	if !e.board.hovered || e.dragging {
		return
	}
	cell := e.board.canvas.Geometry().PointToGrid(e.board.local(mx, my))
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		e.board.canvas.Stamp(e.currentLayer(), cell.Row, cell.Col, e.board.canvas.CurrentTiles())
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		e.board.canvas.UpdateTileByCoord(cell.Row, cell.Col, e.currentLayer(), nil)
	}
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (e *Editor) updateKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC) && ctrlPressed():
		logCopy(e.board.canvas.CurrentTiles())
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		on := e.board.canvas.ClearRender()
		e.board.canvas.SetClearRender(!on)
		e.ui.SetGrid(on)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		e.ui.SetLayer(e.nextLayer())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		e.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		e.board.canvas.Resize(2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		e.board.canvas.Resize(0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		e.board.canvas.ClearLayer(e.currentLayer())
	}
}

func (e *Editor) drainWatcher() {
	if e.watcher == nil {
		return
	}
	select {
	case name, ok := <-e.watcher.Events:
		if ok {
			log.Printf("tileeditor: %s changed, reloading", name)
			e.reload()
		}
	case err, ok := <-e.watcher.Errors:
		if ok {
			log.Printf("tileeditor: watch: %v", err)
		}
	default:
	}
}

func (e *Editor) drainReloads() {
	select {
	case err := <-e.reloads:
		e.hasSel = false
		e.board.canvas.UpdateCurrentTiles(canvas.Selection{})
		switch {
		case err == nil:
			log.Printf("tileeditor: tileset %s loaded", e.tileset.ImageURL())
		case errors.Is(err, tileset.ErrSuperseded):
		default:
			log.Printf("tileeditor: reload %s: %v", e.tileset.ImageURL(), err)
		}
	default:
	}
}

func (e *Editor) status() string {
	hover := "-"
	if c, ok := e.board.canvas.Hover(); ok {
		hover = c.String()
	}
	rows, cols := e.board.canvas.CurrentTiles().Extent()
	return fmt.Sprintf("layer %s  cell %s  brush %dx%d  tileset %s",
		e.currentLayer(), hover, rows, cols, e.tileset.ImageURL())
}

// drawBrush previews the current selection under the cursor, after the
// tiles and before the grid.
func (e *Editor) drawBrush(ev canvas.RenderEvent) {
	cell, ok := e.board.canvas.Hover()
	if !ok {
		return
	}
	sel := e.board.canvas.CurrentTiles()
	rows, cols := sel.Extent()
	if rows == 0 || cols == 0 {
		return
	}
	x, y, w, h := ev.Geometry.CellRect(cell)
	canvas.DrawSelection(ev.Surface, sel, x, y, w*float64(cols), h*float64(rows), false)
}

// drawPaletteSelection outlines the last tileset selection.
func (e *Editor) drawPaletteSelection(ev canvas.RenderEvent) {
	if !e.hasSel {
		return
	}
	x0, y0, _, _ := ev.Geometry.CellRect(e.selFrom)
	x1, y1, w, h := ev.Geometry.CellRect(e.selTo)
	x1, y1 = x1+w, y1+h
	p := &surface.Path{}
	p.MoveTo(x0, y0)
	p.LineTo(x1, y0)
	p.LineTo(x1, y1)
	p.LineTo(x0, y1)
	p.LineTo(x0, y0)
	ev.Surface.StrokePath(p, surface.StrokeStyle{Color: colornames.Yellow, Width: 2})
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{60, 60, 70, 255})
	e.layoutPanes()
	e.board.draw(screen)
	e.palette.draw(screen)
	e.ui.UI.Draw(screen)
}

// layoutPanes pins the palette to the right edge.
func (e *Editor) layoutPanes() {
	pw, _ := e.palette.canvas.Size()
	e.palette.origin = image.Pt(max(e.screenW-pw-panelMargin, panelMargin), toolbarHeight+panelMargin)
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.screenW, e.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases the watcher.
func (e *Editor) Close() error {
	if e.watcher == nil {
		return nil
	}
	return e.watcher.Close()
}
