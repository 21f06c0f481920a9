// Package menu implements the hierarchical menu engine shared by the
// menubar, drop-down and context menus: the item tree, the open path,
// pointer and keyboard navigation, and focus placement.
package menu

import (
	"errors"
	"fmt"
)

// ErrInvalidItem is returned for malformed item trees.
var ErrInvalidItem = errors.New("invalid menu item")

// Item is a menu entry. A divider carries only an id. An action with
// children is a submenu trigger: selecting it opens the submenu instead of
// calling OnSelect.
type Item struct {
	ID       string
	Label    string
	Divider  bool
	Disabled bool
	Shortcut string
	OnSelect func()
	Children []Item
}

// Divider returns a divider item.
func Divider(id string) Item {
	return Item{ID: id, Divider: true}
}

// HasChildren reports whether the item opens a submenu.
func (it Item) HasChildren() bool {
	return !it.Divider && len(it.Children) > 0
}

// Focusable reports whether keyboard focus may rest on the item.
func (it Item) Focusable() bool {
	return !it.Divider && !it.Disabled
}

// Validate checks a tree: dividers carry no label, callback or children,
// and ids are unique within each level.
func Validate(items []Item) error {
	return validateLevel(items, "")
}

func validateLevel(items []Item, parent string) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("item %d under %q has no id: %w", i, parent, ErrInvalidItem)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("duplicate id %q under %q: %w", it.ID, parent, ErrInvalidItem)
		}
		seen[it.ID] = struct{}{}
		if it.Divider && (it.Label != "" || it.OnSelect != nil || len(it.Children) > 0) {
			return fmt.Errorf("divider %q carries content: %w", it.ID, ErrInvalidItem)
		}
		if err := validateLevel(it.Children, it.ID); err != nil {
			return err
		}
	}
	return nil
}

// IndexOf returns the index of id in items, or -1.
func IndexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// FirstFocusable returns the first focusable index, or -1.
func FirstFocusable(items []Item) int {
	for i, it := range items {
		if it.Focusable() {
			return i
		}
	}
	return -1
}

// LastFocusable returns the last focusable index, or -1.
func LastFocusable(items []Item) int {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Focusable() {
			return i
		}
	}
	return -1
}

// NextFocusable moves from current by delta (+1 or -1) over the focusable
// items, wrapping at the ends. When current is not focusable, the nearest
// focusable index in the requested direction is returned, wrapping to the
// opposite end if there is none. It returns -1 when nothing is focusable.
func NextFocusable(items []Item, current, delta int) int {
	var focusable []int
	pos := -1
	for i, it := range items {
		if !it.Focusable() {
			continue
		}
		if i == current {
			pos = len(focusable)
		}
		focusable = append(focusable, i)
	}
	n := len(focusable)
	if n == 0 {
		return -1
	}
	if pos < 0 {
		if delta > 0 {
			for _, i := range focusable {
				if i > current {
					return i
				}
			}
			return focusable[0]
		}
		for j := n - 1; j >= 0; j-- {
			if focusable[j] < current {
				return focusable[j]
			}
		}
		return focusable[n-1]
	}
	return focusable[((pos+delta)%n+n)%n]
}
