package key

import "strings"

// Modifier is the set of modifier keys held during a key press.
type Modifier uint8

// Modifier bits. Values combine with |.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt  // Option on macOS
	ModMeta // Cmd on macOS, Win on Windows

	ModNone Modifier = 0
)

// modifierNames lists the modifiers in display order. The first name of
// each entry is canonical; the rest are accepted by Parse.
var modifierNames = []struct {
	mod   Modifier
	names []string
}{
	{ModCtrl, []string{"Ctrl", "control", "c"}},
	{ModAlt, []string{"Alt", "opt", "option", "a"}},
	{ModShift, []string{"Shift", "s"}},
	{ModMeta, []string{"Meta", "cmd", "super", "m"}},
}

// Has reports whether m holds any modifier of mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Without returns m with the modifiers of mod cleared.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String joins the canonical names of the held modifiers, as in "Ctrl+Alt".
func (m Modifier) String() string {
	var parts []string
	for _, entry := range modifierNames {
		if m.Has(entry.mod) {
			parts = append(parts, entry.names[0])
		}
	}
	return strings.Join(parts, "+")
}

func modifierFromName(name string) (Modifier, bool) {
	for _, entry := range modifierNames {
		for _, n := range entry.names {
			if strings.EqualFold(n, name) {
				return entry.mod, true
			}
		}
	}
	return ModNone, false
}
