package app

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dshills/gridpaint/internal/renderer/backend"
)

// Binding maps a key name to an action name.
type Binding struct {
	// Keys is the key name, e.g. "p", "ctrl+z", "shift+left".
	Keys string

	// Action is the name of a registered action.
	Action string
}

// Keymap holds the key bindings of the editor.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[string]string
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[string]string)}
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap()

	// Tools
	km.Add("p", "tool.pencil")
	km.Add("e", "tool.eraser")
	km.Add("f", "tool.fill")
	km.Add("i", "tool.eyedropper")
	km.Add("tab", "tool.next")

	// Palette: 1-9 then 0 for the tenth swatch.
	for i := 1; i <= 9; i++ {
		km.Add(string(rune('0'+i)), "palette."+string(rune('0'+i)))
	}
	km.Add("0", "palette.10")
	km.Add("[", "palette.prev")
	km.Add("]", "palette.next")

	// History
	km.Add("u", "history.undo")
	km.Add("ctrl+z", "history.undo")
	km.Add("r", "history.redo")
	km.Add("ctrl+y", "history.redo")
	km.Add("ctrl+r", "history.redo")
	km.Add("h", "history.show")

	// View
	km.Add("+", "view.zoomIn")
	km.Add("=", "view.zoomIn")
	km.Add("-", "view.zoomOut")
	km.Add("up", "view.panUp")
	km.Add("down", "view.panDown")
	km.Add("left", "view.panLeft")
	km.Add("right", "view.panRight")
	km.Add("shift+up", "view.pageUp")
	km.Add("pgup", "view.pageUp")
	km.Add("shift+down", "view.pageDown")
	km.Add("pgdn", "view.pageDown")
	km.Add("home", "view.home")
	km.Add("ctrl+l", "view.redraw")

	// Canvas
	km.Add("c", "canvas.clear")
	km.Add("ctrl+n", "canvas.new")
	km.Add(">", "canvas.grow")
	km.Add("<", "canvas.shrink")

	// Application
	km.Add("ctrl+s", "export.save")
	km.Add("esc", "message.clear")
	km.Add("q", "app.quit")
	km.Add("ctrl+q", "app.quit")
	km.Add("ctrl+c", "app.quit")

	return km
}

// Add binds keys to action, replacing any previous binding.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[normalizeKeys(keys)] = action
	return k
}

// Remove deletes the binding for keys.
func (k *Keymap) Remove(keys string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.bindings, normalizeKeys(keys))
}

// Get returns the action bound to a key name.
func (k *Keymap) Get(keys string) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	action, ok := k.bindings[normalizeKeys(keys)]
	return action, ok
}

// Lookup returns the action bound to a key event.
func (k *Keymap) Lookup(ev backend.Event) (string, bool) {
	name := KeyName(ev)
	if name == "" {
		return "", false
	}
	return k.Get(name)
}

// normalizeKeys lowercases named keys. Single runes stay case sensitive so
// "N" and "n" can differ.
func normalizeKeys(keys string) string {
	if utf8.RuneCountInString(keys) == 1 {
		return keys
	}
	return strings.ToLower(keys)
}

// Bindings returns every binding sorted by key name.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]Binding, 0, len(k.bindings))
	for keys, action := range k.bindings {
		out = append(out, Binding{Keys: keys, Action: action})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

var keyNames = map[backend.Key]string{
	backend.KeyEscape:   "esc",
	backend.KeyTab:      "tab",
	backend.KeyHome:     "home",
	backend.KeyPageUp:   "pgup",
	backend.KeyPageDown: "pgdn",
	backend.KeyUp:       "up",
	backend.KeyDown:     "down",
	backend.KeyLeft:     "left",
	backend.KeyRight:    "right",
	backend.KeyCtrlC:    "ctrl+c",
	backend.KeyCtrlL:    "ctrl+l",
	backend.KeyCtrlN:    "ctrl+n",
	backend.KeyCtrlQ:    "ctrl+q",
	backend.KeyCtrlR:    "ctrl+r",
	backend.KeyCtrlS:    "ctrl+s",
	backend.KeyCtrlY:    "ctrl+y",
	backend.KeyCtrlZ:    "ctrl+z",
}

// KeyName returns the keymap name of a key event, or "" for events that
// are not keys.
func KeyName(ev backend.Event) string {
	if ev.Type != backend.EventKey {
		return ""
	}

	if ev.Key == backend.KeyRune {
		if ev.Rune == 0 {
			return ""
		}
		name := string(ev.Rune)
		if ev.Mod.Has(backend.ModAlt) {
			name = "alt+" + name
		}
		return name
	}

	name, ok := keyNames[ev.Key]
	if !ok {
		return ""
	}
	if strings.HasPrefix(name, "ctrl+") {
		return name
	}
	if ev.Mod.Has(backend.ModShift) {
		name = "shift+" + name
	}
	if ev.Mod.Has(backend.ModAlt) {
		name = "alt+" + name
	}
	return name
}
