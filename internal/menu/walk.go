package menu

// VisitFunc receives one visible level: its depth, its items and the id of
// the item whose submenu is open at that depth ("" when none is).
type VisitFunc func(level int, items []Item, openID string)

// Walk visits every visible level from the root down.
func (m *Menu) Walk(fn VisitFunc) {
	walk(m.items, m.path, 0, fn)
}

func walk(items []Item, path OpenPath, level int, fn VisitFunc) {
	openID := ""
	if level < len(path) {
		openID = path[level]
	}
	fn(level, items, openID)
	if openID == "" {
		return
	}
	i := IndexOf(items, openID)
	if i < 0 || !items[i].HasChildren() {
		return
	}
	walk(items[i].Children, path, level+1, fn)
}

// Find returns the item with id anywhere in the tree.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
		if found, ok := Find(it.Children, id); ok {
			return found, true
		}
	}
	return Item{}, false
}
