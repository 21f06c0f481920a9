// Package registry holds the named-surface registries shared by the
// desktop: mount slots that surfaces render into, and renderers that styles
// can override by key.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrSlotRegistered is returned when a slot name already has a target,
// including the same one. Double mounting is a programming error.
var ErrSlotRegistered = errors.New("mount slot already registered")

// SlotSnapshot is the observable state of one slot.
type SlotSnapshot struct {
	Name      string
	Target    any
	HasTarget bool
	Consumers []string
}

type slotRecord struct {
	target    any
	hasTarget bool
	consumers map[string]struct{}
	listeners map[int]func(SlotSnapshot)
}

func (s *slotRecord) empty() bool {
	return !s.hasTarget && len(s.consumers) == 0 && len(s.listeners) == 0
}

// Mounts maps slot names to render targets. Surfaces resolve their slot at
// render time and draw nothing while it is missing.
type Mounts struct {
	mu     sync.Mutex
	slots  map[string]*slotRecord
	nextID int
}

// NewMounts returns an empty mount registry.
func NewMounts() *Mounts {
	return &Mounts{slots: make(map[string]*slotRecord)}
}

func (m *Mounts) record(name string) *slotRecord {
	s, ok := m.slots[name]
	if !ok {
		s = &slotRecord{consumers: make(map[string]struct{}), listeners: make(map[int]func(SlotSnapshot))}
		m.slots[name] = s
	}
	return s
}

func (m *Mounts) cleanup(name string) {
	if s, ok := m.slots[name]; ok && s.empty() {
		delete(m.slots, name)
	}
}

func (s *slotRecord) snapshot(name string) SlotSnapshot {
	consumers := slices.Sorted(maps.Keys(s.consumers))
	return SlotSnapshot{Name: name, Target: s.target, HasTarget: s.hasTarget, Consumers: consumers}
}

// RegisterSlot makes target the owner of name. A name that already has a
// target fails, even when the target is the same. Targets must be
// comparable, typically pointers.
func (m *Mounts) RegisterSlot(name string, target any) error {
	m.mu.Lock()
	s := m.record(name)
	if s.hasTarget {
		m.mu.Unlock()
		return fmt.Errorf("failed to register slot %q: %w", name, ErrSlotRegistered)
	}
	s.target = target
	s.hasTarget = true
	m.mu.Unlock()
	m.notify(name)
	return nil
}

// UnregisterSlot removes target from name. It does nothing when name is
// owned by another target.
func (m *Mounts) UnregisterSlot(name string, target any) {
	m.mu.Lock()
	s, ok := m.slots[name]
	if !ok || !s.hasTarget || s.target != target {
		m.mu.Unlock()
		return
	}
	s.target = nil
	s.hasTarget = false
	m.mu.Unlock()
	m.notify(name)
	m.mu.Lock()
	m.cleanup(name)
	m.mu.Unlock()
}

// Resolve returns the target of name.
func (m *Mounts) Resolve(name string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[name]
	if !ok || !s.hasTarget {
		return nil, false
	}
	return s.target, true
}

// AddConsumer records that id renders into name. The returned func removes
// the record.
func (m *Mounts) AddConsumer(name, id string) (remove func()) {
	m.mu.Lock()
	m.record(name).consumers[id] = struct{}{}
	m.mu.Unlock()
	m.notify(name)

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			if s, ok := m.slots[name]; ok {
				delete(s.consumers, id)
			}
			m.mu.Unlock()
			m.notify(name)
			m.mu.Lock()
			m.cleanup(name)
			m.mu.Unlock()
		})
	}
}

// Snapshot returns the current state of name.
func (m *Mounts) Snapshot(name string) (SlotSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[name]
	if !ok {
		return SlotSnapshot{Name: name}, false
	}
	return s.snapshot(name), true
}

// Names returns the registered slot names in sorted order.
func (m *Mounts) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.slots))
}

// Subscribe calls fn after every change to name.
func (m *Mounts) Subscribe(name string, fn func(SlotSnapshot)) (unsubscribe func()) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.record(name).listeners[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		if s, ok := m.slots[name]; ok {
			delete(s.listeners, id)
		}
		m.cleanup(name)
		m.mu.Unlock()
	}
}

func (m *Mounts) notify(name string) {
	m.mu.Lock()
	s, ok := m.slots[name]
	if !ok {
		m.mu.Unlock()
		return
	}
	snap := s.snapshot(name)
	keys := slices.Sorted(maps.Keys(s.listeners))
	fns := make([]func(SlotSnapshot), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, s.listeners[k])
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
