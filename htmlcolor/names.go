package htmlcolor

import (
	"sort"
	"sync"

	"golang.org/x/image/colornames"
)

// NameTable maps colour keywords to colours. It is read-only once built and
// safe to share between goroutines.
type NameTable struct {
	entries map[string]Color
}

// NewNameTable copies entries into a new table.
func NewNameTable(entries map[string]Color) *NameTable {
	t := &NameTable{entries: make(map[string]Color, len(entries))}
	for name, c := range entries {
		t.entries[name] = c
	}
	return t
}

// Lookup matches name exactly, including case.
func (t *NameTable) Lookup(name string) (Color, bool) {
	if t == nil {
		return Color{}, false
	}
	c, ok := t.entries[name]
	return c, ok
}

func (t *NameTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Names returns the keywords in lexical order.
func (t *NameTable) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.entries))
	for name := range t.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var defaultNames = sync.OnceValue(func() *NameTable {
	entries := make(map[string]Color, len(colornames.Map))
	for name, rgba := range colornames.Map {
		entries[name] = Color{R: rgba.R, G: rgba.G, B: rgba.B}
	}
	return &NameTable{entries: entries}
})

// DefaultNames returns the SVG/CSS keyword table. The same table is returned
// on every call.
func DefaultNames() *NameTable {
	return defaultNames()
}
