package menu

// KeyDown routes a key to the focused level. Keys a level does not use
// bubble toward the root, where a menubar switches between its roots. It
// reports whether the key was used.
func (m *Menu) KeyDown(key string) bool {
	if !m.focused {
		return false
	}
	items, ok := m.Level(m.focus.Level)
	if !ok || m.focus.Index < 0 || m.focus.Index >= len(items) {
		return false
	}
	if m.focus.Level == 0 {
		return m.rootKey(key, items)
	}
	return m.levelKey(key, items)
}

func (m *Menu) rootKey(key string, items []Item) bool {
	idx := m.focus.Index
	it := items[idx]

	switch key {
	case "left":
		return m.switchRoot(-1)
	case "right":
		return m.switchRoot(1)
	case "down":
		if !it.HasChildren() || it.Disabled {
			return false
		}
		if m.path.IsOpen(0, it.ID) {
			return m.SetFocus(1, FirstFocusable(it.Children))
		}
		m.open(0, idx, it)
		return true
	case "enter", "space", " ":
		if it.Disabled {
			return true
		}
		if it.HasChildren() {
			m.open(0, idx, it)
		} else {
			m.activate(it)
		}
		return true
	case "esc", "escape":
		if !m.IsOpen() {
			m.focused = false
			return false
		}
		m.CloseAll()
		return true
	}
	return false
}

func (m *Menu) levelKey(key string, items []Item) bool {
	level := m.focus.Level
	idx := m.focus.Index
	it := items[idx]

	switch key {
	case "down":
		if next := NextFocusable(items, idx, 1); next >= 0 {
			m.focus.Index = next
		}
		return true
	case "up":
		if next := NextFocusable(items, idx, -1); next >= 0 {
			m.focus.Index = next
		}
		return true
	case "home":
		return m.SetFocus(level, FirstFocusable(items))
	case "end":
		return m.SetFocus(level, LastFocusable(items))
	case "enter", "space", " ":
		if !it.Focusable() {
			return true
		}
		if it.HasChildren() {
			m.open(level, idx, it)
		} else {
			m.activate(it)
		}
		return true
	case "right":
		if it.HasChildren() && !it.Disabled {
			m.open(level, idx, it)
			return true
		}
		if m.opts.Bar {
			return m.switchRoot(1)
		}
		return false
	case "left":
		if level > 1 {
			m.closeLevel(level)
			return true
		}
		if m.opts.Bar {
			return m.switchRoot(-1)
		}
		return false
	case "esc", "escape":
		m.closeLevel(level)
		return true
	}
	return false
}

// open opens the submenu of the trigger at (level, idx) and places focus
// according to the open behavior.
func (m *Menu) open(level, idx int, it Item) {
	m.setPath(m.path.With(level, it.ID))
	m.focus = Focus{Level: level, Index: idx}
	m.focused = true
	if m.opts.Focus.Open == FocusFirstChild {
		m.SetFocus(level+1, FirstFocusable(it.Children))
	}
}

// closeLevel closes level and every level below it, then places focus on
// the parent level according to the close behavior.
func (m *Menu) closeLevel(level int) {
	if level < 1 || level > len(m.path) {
		return
	}
	trigger := m.path[level-1]
	m.setPath(m.path.Truncate(level - 1))

	parent, ok := m.Level(level - 1)
	if !ok {
		return
	}
	target := IndexOf(parent, trigger)
	if m.opts.Focus.Close == FocusFirstChild {
		target = FirstFocusable(parent)
	}
	m.SetFocus(level-1, target)
}

// switchRoot opens the adjacent focusable root. Landing on the root that
// is already open leaves everything as it is.
func (m *Menu) switchRoot(delta int) bool {
	current := -1
	switch {
	case m.IsOpen():
		current = IndexOf(m.items, m.path[0])
	case m.focused && m.focus.Level == 0:
		current = m.focus.Index
	default:
		return false
	}

	next := NextFocusable(m.items, current, delta)
	if next < 0 || next == current {
		return true
	}
	target := m.items[next]
	if m.IsOpen() && target.HasChildren() {
		m.open(0, next, target)
		return true
	}
	if m.IsOpen() {
		m.CloseAll()
	}
	m.SetFocus(0, next)
	return true
}
