package spotlight

import tea "github.com/charmbracelet/bubbletea"

// KeyMap binds key names (as reported by tea.KeyMsg.String) to the three
// navigation actions. Hosts that want full control can set DisableKeys in
// the config and drive the Provider themselves.
type KeyMap struct {
	Next     []string `toml:"next"`
	Previous []string `toml:"previous"`
	Stop     []string `toml:"stop"`
}

// DefaultKeyMap returns the standard tour bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:     []string{"right", "n", "enter"},
		Previous: []string{"left", "p"},
		Stop:     []string{"esc", "q"},
	}
}

// route dispatches a key press to the provider. It returns true when the
// key was one of the tour bindings, so the host can stop propagating it.
func (k KeyMap) route(msg tea.KeyMsg, p Provider) bool {
	if p == nil {
		return false
	}
	key := msg.String()
	for _, b := range k.Next {
		if key == b {
			p.Next()
			return true
		}
	}
	for _, b := range k.Previous {
		if key == b {
			p.Previous()
			return true
		}
	}
	for _, b := range k.Stop {
		if key == b {
			p.Stop()
			return true
		}
	}
	return false
}
