package imports

import (
	"fmt"
	"maps"
	"slices"
)

// Kind tells how a module reference was written.
type Kind int

const (
	Absolute Kind = iota
	Relative
	Dynamic
	Conditional
)

// Kinds lists every Kind in report order.
var Kinds = []Kind{Absolute, Relative, Dynamic, Conditional}

func (k Kind) String() string {
	switch k {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	case Dynamic:
		return "dynamic"
	case Conditional:
		return "conditional"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Imports holds the references found in one file, keyed by dotted name.
// Line numbers are 1-based and listed in source order.
type Imports struct {
	Absolute    map[string][]int `json:"absolute"`
	Relative    map[string][]int `json:"relative"`
	Dynamic     map[string][]int `json:"dynamic"`
	Conditional map[string][]int `json:"conditional"`
}

// New returns an Imports with all four maps allocated.
func New() *Imports {
	return &Imports{
		Absolute:    make(map[string][]int),
		Relative:    make(map[string][]int),
		Dynamic:     make(map[string][]int),
		Conditional: make(map[string][]int),
	}
}

// Of returns the map holding references of kind k.
func (im *Imports) Of(k Kind) map[string][]int {
	switch k {
	case Absolute:
		return im.Absolute
	case Relative:
		return im.Relative
	case Dynamic:
		return im.Dynamic
	case Conditional:
		return im.Conditional
	default:
		panic(fmt.Sprintf("imports: unknown kind %d", int(k)))
	}
}

// Add records name at line under kind k.
func (im *Imports) Add(k Kind, name string, line int) {
	m := im.Of(k)
	m[name] = append(m[name], line)
}

// Len returns the number of distinct names across all kinds.
func (im *Imports) Len() int {
	n := 0
	for _, k := range Kinds {
		n += len(im.Of(k))
	}
	return n
}

// Names returns the sorted names recorded under kind k.
func (im *Imports) Names(k Kind) []string {
	return slices.Sorted(maps.Keys(im.Of(k)))
}

// Normalize replaces nil maps, as left by decoding partial JSON, with empty
// ones, and returns im.
func (im *Imports) Normalize() *Imports {
	if im.Absolute == nil {
		im.Absolute = make(map[string][]int)
	}
	if im.Relative == nil {
		im.Relative = make(map[string][]int)
	}
	if im.Dynamic == nil {
		im.Dynamic = make(map[string][]int)
	}
	if im.Conditional == nil {
		im.Conditional = make(map[string][]int)
	}
	return im
}
