package canvas

import (
	"sync"

	"github.com/milk9111/tilecanvas/grid"
	"github.com/milk9111/tilecanvas/surface"
)

// EventType names an event broadcast by a canvas.
type EventType string

const (
	// EventRender fires after tiles are painted and before the grid.
	EventRender EventType = "render"
	// EventMultiSelect fires with the tiles covered by a drag selection.
	EventMultiSelect EventType = "multiSelect"
)

// Event is a generic canvas event payload.
type Event struct {
	Type EventType
	Data any
}

// RenderEvent is the payload of EventRender.
type RenderEvent struct {
	Surface  surface.Surface
	Geometry grid.Geometry
}

// MultiSelectEvent is the payload of EventMultiSelect.
type MultiSelectEvent struct {
	From  grid.Point
	To    grid.Point
	Tiles Selection
}

type listener struct {
	id int
	fn func(Event)
}

// Emitter fans events out to registered listeners in registration order.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[EventType][]listener
	nextID    int
}

// On registers fn for events of type t and returns a func that removes it.
func (e *Emitter) On(t EventType, fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[EventType][]listener)
	}
	e.nextID++
	id := e.nextID
	e.listeners[t] = append(e.listeners[t], listener{id: id, fn: fn})
	return func() { e.off(t, id) }
}

func (e *Emitter) off(t EventType, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ls := e.listeners[t]
	for i, l := range ls {
		if l.id == id {
			e.listeners[t] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Emit calls every listener registered for evt.Type.
func (e *Emitter) Emit(evt Event) {
	e.mu.RLock()
	ls := append([]listener(nil), e.listeners[evt.Type]...)
	e.mu.RUnlock()
	for _, l := range ls {
		l.fn(evt)
	}
}

// OnRender registers a post-tile-draw hook.
func (e *Emitter) OnRender(fn func(RenderEvent)) func() {
	return e.On(EventRender, func(evt Event) {
		if data, ok := evt.Data.(RenderEvent); ok {
			fn(data)
		}
	})
}

// OnMultiSelect registers a listener for drag selections.
func (e *Emitter) OnMultiSelect(fn func(MultiSelectEvent)) func() {
	return e.On(EventMultiSelect, func(evt Event) {
		if data, ok := evt.Data.(MultiSelectEvent); ok {
			fn(data)
		}
	})
}
