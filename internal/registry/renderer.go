package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrRendererRegistered is returned when a renderer key is already taken.
var ErrRendererRegistered = errors.New("renderer already registered")

// Renderer draws one kind of surface from its props.
type Renderer[P any] interface {
	Render(props P) string
}

// RenderFunc adapts a function to Renderer.
type RenderFunc[P any] func(props P) string

// Render calls f.
func (f RenderFunc[P]) Render(props P) string { return f(props) }

// Key returns the registry key of name for a style. An empty style yields
// the plain name.
func Key(style, name string) string {
	if style == "" {
		return name
	}
	return style + ":" + name
}

// Renderers is a keyed renderer registry with style overrides.
type Renderers[P any] struct {
	mu        sync.Mutex
	entries   map[string]Renderer[P]
	listeners map[int]func([]string)
	nextID    int
}

// NewRenderers returns an empty registry.
func NewRenderers[P any]() *Renderers[P] {
	return &Renderers[P]{
		entries:   make(map[string]Renderer[P]),
		listeners: make(map[int]func([]string)),
	}
}

// Register stores r under key. A taken key fails with ErrRendererRegistered.
// The returned func removes the entry.
func (rs *Renderers[P]) Register(key string, r Renderer[P]) (func(), error) {
	rs.mu.Lock()
	if _, ok := rs.entries[key]; ok {
		rs.mu.Unlock()
		return nil, fmt.Errorf("failed to register renderer %q: %w", key, ErrRendererRegistered)
	}
	rs.entries[key] = r
	rs.mu.Unlock()
	rs.notify()

	var once sync.Once
	return func() {
		once.Do(func() {
			rs.mu.Lock()
			_, ok := rs.entries[key]
			delete(rs.entries, key)
			rs.mu.Unlock()
			if ok {
				rs.notify()
			}
		})
	}, nil
}

// Get returns the renderer stored under key.
func (rs *Renderers[P]) Get(key string) (Renderer[P], bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	r, ok := rs.entries[key]
	return r, ok
}

// Lookup tries "style:name" and then "name".
func (rs *Renderers[P]) Lookup(style, name string) (Renderer[P], bool) {
	if style != "" {
		if r, ok := rs.Get(Key(style, name)); ok {
			return r, true
		}
	}
	return rs.Get(name)
}

// Keys returns the registered keys in sorted order.
func (rs *Renderers[P]) Keys() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return slices.Sorted(maps.Keys(rs.entries))
}

// Subscribe calls fn with the key set after every change.
func (rs *Renderers[P]) Subscribe(fn func(keys []string)) (unsubscribe func()) {
	rs.mu.Lock()
	rs.nextID++
	id := rs.nextID
	rs.listeners[id] = fn
	rs.mu.Unlock()
	return func() {
		rs.mu.Lock()
		delete(rs.listeners, id)
		rs.mu.Unlock()
	}
}

func (rs *Renderers[P]) notify() {
	keys := rs.Keys()
	rs.mu.Lock()
	ids := slices.Sorted(maps.Keys(rs.listeners))
	fns := make([]func([]string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, rs.listeners[id])
	}
	rs.mu.Unlock()
	for _, fn := range fns {
		fn(keys)
	}
}
