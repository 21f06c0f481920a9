package menu

import "slices"

// OpenPath lists the ids of the open submenu triggers, root first.
// Values are never mutated in place; every change builds a new slice.
type OpenPath []string

// Clone returns an independent copy.
func (p OpenPath) Clone() OpenPath {
	if len(p) == 0 {
		return nil
	}
	return slices.Clone(p)
}

// Equal reports whether both paths hold the same ids.
func (p OpenPath) Equal(q OpenPath) bool {
	return slices.Equal(p, q)
}

// Truncate returns the first n ids.
func (p OpenPath) Truncate(n int) OpenPath {
	if n <= 0 {
		return nil
	}
	if n > len(p) {
		n = len(p)
	}
	return slices.Clone(p[:n])
}

// With returns the path truncated to depth with id appended.
func (p OpenPath) With(depth int, id string) OpenPath {
	return append(p.Truncate(depth), id)
}

// IsOpen reports whether the submenu of id at depth is open.
func (p OpenPath) IsOpen(depth int, id string) bool {
	return depth >= 0 && depth < len(p) && p[depth] == id
}

// ValidPrefix returns the longest prefix of p in which every id is a
// submenu trigger among the children of the previous one.
func ValidPrefix(roots []Item, p OpenPath) OpenPath {
	items := roots
	for depth, id := range p {
		i := IndexOf(items, id)
		if i < 0 || !items[i].HasChildren() || items[i].Disabled {
			return p.Truncate(depth)
		}
		items = items[i].Children
	}
	return p.Clone()
}
