package config

import (
	"slices"
	"strings"
)

// Desktop actions that can be bound to keys.
const (
	ActionQuit            = "quit"
	ActionNewWindow       = "new_window"
	ActionCloseWindow     = "close_window"
	ActionNextWindow      = "next_window"
	ActionPrevWindow      = "prev_window"
	ActionFocusMenuBar    = "focus_menubar"
	ActionToggleStartMenu = "toggle_start_menu"
	ActionActivateWindow  = "activate_window"
	ActionWindowMenu      = "window_menu"
)

// Actions lists every bindable action.
var Actions = []string{
	ActionQuit,
	ActionNewWindow,
	ActionCloseWindow,
	ActionNextWindow,
	ActionPrevWindow,
	ActionFocusMenuBar,
	ActionToggleStartMenu,
	ActionActivateWindow,
	ActionWindowMenu,
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// DefaultKeybindings returns the default action to keys map.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionQuit:            {"q", "ctrl+c"},
		ActionNewWindow:       {"ctrl+n", "n"},
		ActionCloseWindow:     {"ctrl+w"},
		ActionNextWindow:      {"tab"},
		ActionPrevWindow:      {"shift+tab"},
		ActionFocusMenuBar:    {"f10"},
		ActionToggleStartMenu: {"ctrl+s", "s"},
		ActionActivateWindow:  {"enter", "space"},
		ActionWindowMenu:      {"alt+space", "f2"},
	}
}

var actionDescriptions = map[string]string{
	ActionQuit:            "Quit",
	ActionNewWindow:       "New window",
	ActionCloseWindow:     "Close window",
	ActionNextWindow:      "Focus next window",
	ActionPrevWindow:      "Focus previous window",
	ActionFocusMenuBar:    "Focus the menubar",
	ActionToggleStartMenu: "Toggle the start menu",
	ActionActivateWindow:  "Activate the focused window",
	ActionWindowMenu:      "Open the window menu",
}

// KeyMap resolves key strings to actions.
type KeyMap struct {
	byKey map[string]string
	byAct map[string][]string
}

// NewKeyMap builds a key map from an action to keys map. When a key is
// bound twice the action listed first in Actions wins.
func NewKeyMap(bindings map[string][]string) *KeyMap {
	km := &KeyMap{byKey: make(map[string]string), byAct: make(map[string][]string)}
	for _, action := range Actions {
		for _, key := range bindings[action] {
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			if _, taken := km.byKey[key]; !taken {
				km.byKey[key] = action
			}
			km.byAct[action] = append(km.byAct[action], key)
		}
	}
	return km
}

// Action returns the action bound to key.
func (km *KeyMap) Action(key string) (string, bool) {
	a, ok := km.byKey[strings.ToLower(key)]
	return a, ok
}

// Keys returns the keys bound to action.
func (km *KeyMap) Keys(action string) []string {
	return slices.Clone(km.byAct[action])
}

// Help returns one entry per bound action, in Actions order.
func (km *KeyMap) Help() []Keybinding {
	var out []Keybinding
	for _, action := range Actions {
		keys := km.byAct[action]
		if len(keys) == 0 {
			continue
		}
		out = append(out, Keybinding{Key: strings.Join(keys, "/"), Description: actionDescriptions[action]})
	}
	return out
}
