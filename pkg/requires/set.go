package requires

import (
	"maps"
	"slices"
)

// Set is a set of module names.
type Set map[string]struct{}

// NewSet returns a set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	s.Add(names...)
	return s
}

// Add inserts names into s.
func (s Set) Add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

// Has reports whether name is in s. A nil set is empty.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new set holding the members of s and other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
