// Package selection models the "active name" shared by a segment gauge and
// its legend. The composing layer owns the value and passes it down to
// both; neither renderer keeps selection state of its own.
package selection

import "slices"

// None is the empty selection.
const None = ""

// Toggle returns the selection after clicking name: clicking the active
// name clears the selection, anything else selects it.
func Toggle(active, name string) string {
	if active != None && active == name {
		return None
	}
	return name
}

func IsActive(active, name string) bool {
	return active != None && active == name
}

// Dimmed reports whether name should be de-emphasized because another
// name is selected.
func Dimmed(active, name string) bool {
	return active != None && active != name
}

// Index returns the position of the active name in names, or -1.
func Index(active string, names []string) int {
	if active == None {
		return -1
	}
	return slices.Index(names, active)
}

// Next selects the name after active, starting at the first name when
// nothing (or an unknown name) is selected.
func Next(active string, names []string) string {
	if len(names) == 0 {
		return None
	}
	i := Index(active, names)
	return names[(i+1)%len(names)]
}

// Prev selects the name before active, starting at the last name when
// nothing (or an unknown name) is selected.
func Prev(active string, names []string) string {
	if len(names) == 0 {
		return None
	}
	i := Index(active, names)
	if i <= 0 {
		return names[len(names)-1]
	}
	return names[i-1]
}
