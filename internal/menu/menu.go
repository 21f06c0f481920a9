package menu

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// FocusTarget says where focus goes when a submenu opens or closes.
type FocusTarget string

const (
	// FocusParent keeps or returns focus on the submenu trigger.
	FocusParent FocusTarget = "parent"
	// FocusFirstChild moves focus to the first focusable item of the
	// opened submenu, or of the parent level after closing.
	FocusFirstChild FocusTarget = "firstChild"
)

// ParseFocusTarget normalizes a focus target, defaulting to FocusParent.
func ParseFocusTarget(s string) FocusTarget {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "firstchild", "first_child", "first-child":
		return FocusFirstChild
	}
	return FocusParent
}

// FocusBehavior configures focus placement on open and close.
type FocusBehavior struct {
	Open  FocusTarget
	Close FocusTarget
}

// DefaultFocusBehavior keeps focus on triggers.
func DefaultFocusBehavior() FocusBehavior {
	return FocusBehavior{Open: FocusParent, Close: FocusParent}
}

// Options configures a Menu.
type Options struct {
	// Bar lays the root items out as a menubar whose roots switch with
	// the left and right arrows.
	Bar      bool
	Focus    FocusBehavior
	OnSelect func(Item)
	Logger   *log.Logger
}

// Focus locates the focused item: Level 0 is the root row and level L
// holds the children of OpenPath[L-1].
type Focus struct {
	Level int
	Index int
}

// Menu is one menu tree with its shared open path.
type Menu struct {
	items   []Item
	opts    Options
	path    OpenPath
	focus   Focus
	focused bool

	listeners map[int]func(OpenPath)
	nextID    int
}

// New validates items and returns a closed menu.
func New(items []Item, opts Options) (*Menu, error) {
	if err := Validate(items); err != nil {
		return nil, fmt.Errorf("failed to build menu: %w", err)
	}
	if opts.Focus.Open == "" {
		opts.Focus.Open = FocusParent
	}
	if opts.Focus.Close == "" {
		opts.Focus.Close = FocusParent
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Menu{items: items, opts: opts, listeners: make(map[int]func(OpenPath))}, nil
}

// Items returns the root items.
func (m *Menu) Items() []Item { return m.items }

// OpenPath returns a copy of the open path.
func (m *Menu) OpenPath() OpenPath { return m.path.Clone() }

// IsOpen reports whether any submenu is open.
func (m *Menu) IsOpen() bool { return len(m.path) > 0 }

// Level returns the items shown at level, if that level is visible.
func (m *Menu) Level(level int) ([]Item, bool) {
	if level < 0 || level > len(m.path) {
		return nil, false
	}
	items := m.items
	for _, id := range m.path[:level] {
		i := IndexOf(items, id)
		if i < 0 {
			return nil, false
		}
		items = items[i].Children
	}
	return items, true
}

// Focus returns the focused item location.
func (m *Menu) Focus() (Focus, bool) { return m.focus, m.focused }

// FocusedItem returns the focused item.
func (m *Menu) FocusedItem() (Item, bool) {
	if !m.focused {
		return Item{}, false
	}
	items, ok := m.Level(m.focus.Level)
	if !ok || m.focus.Index < 0 || m.focus.Index >= len(items) {
		return Item{}, false
	}
	return items[m.focus.Index], true
}

// SetFocus focuses index at level when that item is focusable.
func (m *Menu) SetFocus(level, index int) bool {
	items, ok := m.Level(level)
	if !ok || index < 0 || index >= len(items) || !items[index].Focusable() {
		return false
	}
	m.focus = Focus{Level: level, Index: index}
	m.focused = true
	return true
}

// FocusRoot focuses the first focusable root item, as F10 does on a
// menubar.
func (m *Menu) FocusRoot() bool {
	return m.SetFocus(0, FirstFocusable(m.items))
}

// Blur drops keyboard focus without closing anything.
func (m *Menu) Blur() { m.focused = false }

// Subscribe calls fn after every open path change.
func (m *Menu) Subscribe(fn func(OpenPath)) (unsubscribe func()) {
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	return func() { delete(m.listeners, id) }
}

// setPath replaces the open path with the valid prefix of p. Focus left
// inside a closed level moves to the trigger of the deepest level closed.
func (m *Menu) setPath(p OpenPath) {
	p = ValidPrefix(m.items, p)
	if p.Equal(m.path) {
		return
	}
	old := m.path
	m.path = p

	if m.focused && m.focus.Level > len(p) {
		m.focused = false
		if len(old) > len(p) {
			if items, ok := m.Level(len(p)); ok {
				if i := IndexOf(items, old[len(p)]); i >= 0 {
					m.focus = Focus{Level: len(p), Index: i}
					m.focused = true
				}
			}
		}
	}

	m.opts.Logger.Debug("menu path changed", "path", strings.Join(p, "/"))
	snap := p.Clone()
	for _, k := range slices.Sorted(maps.Keys(m.listeners)) {
		m.listeners[k](snap)
	}
}

// CloseAll closes every open level.
func (m *Menu) CloseAll() { m.setPath(nil) }

// PointerDownOutside handles a pointer-down outside every menu surface.
func (m *Menu) PointerDownOutside() {
	m.CloseAll()
	m.focused = false
}

func (m *Menu) lookup(level int, id string) (Item, int, bool) {
	items, ok := m.Level(level)
	if !ok {
		return Item{}, -1, false
	}
	i := IndexOf(items, id)
	if i < 0 {
		return Item{}, -1, false
	}
	return items[i], i, true
}

// Click handles a click on item id shown at level.
func (m *Menu) Click(level int, id string) {
	it, idx, ok := m.lookup(level, id)
	if !ok || !it.Focusable() {
		return
	}
	m.focus = Focus{Level: level, Index: idx}
	m.focused = true

	if !it.HasChildren() {
		m.activate(it)
		return
	}
	if level == 0 && m.path.IsOpen(0, id) {
		m.CloseAll()
		return
	}
	m.setPath(m.path.With(level, id))
}

// activate selects a leaf and then closes the whole tree.
func (m *Menu) activate(it Item) {
	m.opts.Logger.Debug("menu item selected", "id", it.ID)
	if it.OnSelect != nil {
		it.OnSelect()
	}
	if m.opts.OnSelect != nil {
		m.opts.OnSelect(it)
	}
	m.CloseAll()
}

// Hover handles the pointer entering item id shown at level.
func (m *Menu) Hover(level int, id string) {
	it, idx, ok := m.lookup(level, id)
	if !ok || it.Divider {
		return
	}
	if level == 0 {
		// Roots only follow the pointer while a menu is open.
		if !m.IsOpen() || !it.HasChildren() || it.Disabled {
			return
		}
		m.focus = Focus{Level: 0, Index: idx}
		m.focused = true
		m.setPath(m.path.With(0, id))
		return
	}
	if it.Focusable() {
		m.focus = Focus{Level: level, Index: idx}
		m.focused = true
	}
	if it.HasChildren() && !it.Disabled {
		m.setPath(m.path.With(level, id))
		return
	}
	if len(m.path) > level {
		m.setPath(m.path.Truncate(level))
	}
}
