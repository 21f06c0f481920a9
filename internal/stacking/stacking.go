// Package stacking assigns front-to-back order tokens to surfaces within
// named groups. Higher tokens render above lower ones. Bringing a surface
// to the front is O(1) until the group counter passes a ceiling, at which
// point the group is compacted to 1..N.
package stacking

import (
	"maps"
	"slices"
	"sync"
)

// Group names an independent stacking bucket.
type Group string

// Known groups, lowest band first.
const (
	Base      Group = "base"
	Anchors   Group = "anchors"
	AlwaysTop Group = "alwaysTop"
	Popups    Group = "popups"
)

// Groups lists the known groups in band order.
var Groups = []Group{Base, Anchors, AlwaysTop, Popups}

// Ceiling is the counter value above which a group is renormalized.
const Ceiling = 1000

// BandSize is the z distance between the bands of consecutive groups.
// Renormalization keeps live tokens well below it.
const BandSize = 10000

// Listener receives a group's snapshot after it changed.
type Listener func(snapshot map[string]int)

type groupState struct {
	counter   int
	order     map[string]int
	listeners map[int]Listener
}

// Registry holds the stacking state for every group.
type Registry struct {
	mu         sync.Mutex
	groups     map[Group]*groupState
	listenerID int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{groups: make(map[Group]*groupState)}
}

func (r *Registry) group(g Group) *groupState {
	s, ok := r.groups[g]
	if !ok {
		s = &groupState{order: make(map[string]int), listeners: make(map[int]Listener)}
		r.groups[g] = s
	}
	return s
}

// Register adds id to group g with the next token unless it is already
// present. The returned func removes it.
func (r *Registry) Register(g Group, id string) (unregister func()) {
	r.mu.Lock()
	s := r.group(g)
	changed := false
	if _, ok := s.order[id]; !ok {
		s.counter++
		s.order[id] = s.counter
		changed = true
	}
	r.mu.Unlock()
	if changed {
		r.notify(g)
	}

	var once sync.Once
	return func() {
		once.Do(func() { r.Unregister(g, id) })
	}
}

// Unregister removes id from group g.
func (r *Registry) Unregister(g Group, id string) {
	r.mu.Lock()
	s := r.group(g)
	_, ok := s.order[id]
	delete(s.order, id)
	r.mu.Unlock()
	if ok {
		r.notify(g)
	}
}

// BringToFront gives id a new highest token in group g, registering it if
// needed. It always assigns a new token, even when id is already in front.
func (r *Registry) BringToFront(g Group, id string) {
	r.mu.Lock()
	s := r.group(g)
	s.counter++
	s.order[id] = s.counter
	s.normalizeIfNeeded()
	r.mu.Unlock()
	r.notify(g)
}

func (s *groupState) normalizeIfNeeded() {
	if s.counter <= Ceiling {
		return
	}
	ids := slices.Collect(maps.Keys(s.order))
	slices.SortFunc(ids, func(a, b string) int { return s.order[a] - s.order[b] })
	for i, id := range ids {
		s.order[id] = i + 1
	}
	s.counter = len(ids)
}

// Order returns the token of id in group g.
func (r *Registry) Order(g Group, id string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.group(g).order[id]
	return v, ok
}

// Layer maps a token to an absolute z value so that every surface of a
// higher group renders above every surface of a lower one.
func Layer(g Group, order int) int {
	band := slices.Index(Groups, g)
	if band < 0 {
		band = 0
	}
	return band*BandSize + order
}

// Z returns the absolute z of id, or the bottom of its band when unknown.
func (r *Registry) Z(g Group, id string) int {
	order, _ := r.Order(g, id)
	return Layer(g, order)
}

// Snapshot returns a copy of the tokens of group g.
func (r *Registry) Snapshot(g Group) map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.group(g).order)
}

// Subscribe registers fn for changes to group g. The returned func removes it.
func (r *Registry) Subscribe(g Group, fn Listener) (unsubscribe func()) {
	r.mu.Lock()
	r.listenerID++
	id := r.listenerID
	r.group(g).listeners[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.group(g).listeners, id)
		r.mu.Unlock()
	}
}

// notify calls listeners outside the lock so they may read the registry.
func (r *Registry) notify(g Group) {
	r.mu.Lock()
	s := r.group(g)
	snap := maps.Clone(s.order)
	keys := slices.Sorted(maps.Keys(s.listeners))
	fns := make([]Listener, 0, len(keys))
	for _, k := range keys {
		fns = append(fns, s.listeners[k])
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
