// Package mark stores named positions within a buffer.
package mark

import (
	"sort"

	"github.com/samber/mo"
)

// Mark is a remembered line and column.
type Mark struct {
	Line   int
	Column int
}

// Map holds the marks of one buffer keyed by their single-character name.
// Marks are only removed explicitly.
type Map struct {
	marks map[rune]Mark
}

// NewMap creates an empty mark map.
func NewMap() *Map {
	return &Map{marks: make(map[rune]Mark)}
}

// IsValidName reports whether r can name a user mark.
func IsValidName(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Set creates or overwrites the mark named r.
func (m *Map) Set(r rune, mk Mark) {
	m.marks[r] = mk
}

// Get returns the mark named r.
func (m *Map) Get(r rune) mo.Option[Mark] {
	mk, ok := m.marks[r]
	if !ok {
		return mo.None[Mark]()
	}
	return mo.Some(mk)
}

// Remove deletes the mark named r.
func (m *Map) Remove(r rune) {
	delete(m.marks, r)
}

// Names returns the defined mark names in order.
func (m *Map) Names() []rune {
	names := make([]rune, 0, len(m.marks))
	for r := range m.marks {
		names = append(names, r)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Len returns the number of marks.
func (m *Map) Len() int { return len(m.marks) }
