package pymod

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// SortPrefixes normalizes search prefixes and orders them by priority:
// deepest path first, reverse-lexical among equal depths. Empty prefixes are
// dropped and duplicates collapsed. The input slice is not modified.
func SortPrefixes(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	seen := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := depth(out[i]), depth(out[j])
		if di != dj {
			return di > dj
		}
		return out[i] > out[j]
	})
	return out
}

func depth(p string) int {
	return len(strings.Split(p, "/"))
}

// matchPrefix returns the highest-priority prefix that is a proper ancestor
// of path. Prefixes must already be sorted with SortPrefixes.
func matchPrefix(path string, sorted []string) (string, bool) {
	for _, pref := range sorted {
		if path != pref && strings.HasPrefix(path, pref+"/") {
			return pref, true
		}
	}
	return "", false
}

// StripPrefix removes the single highest-priority matching prefix from path.
// A prefix equal to path is never stripped.
func StripPrefix(path string, prefixes []string) string {
	if pref, ok := matchPrefix(path, SortPrefixes(prefixes)); ok {
		return strings.TrimPrefix(path, pref+"/")
	}
	return path
}

// IsIdentifier reports whether s is a valid Python identifier.
// Keywords count as identifiers, as with str.isidentifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if r != '_' && !unicode.IsLetter(r) && !unicode.Is(unicode.Nl, r) {
				return false
			}
			continue
		}
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) ||
			unicode.In(r, unicode.Nl, unicode.Mn, unicode.Mc, unicode.Pc) {
			continue
		}
		return false
	}
	return true
}

// IsModuleName reports whether name is a dotted sequence of identifiers,
// such as "os.path" or "données.modèle".
func IsModuleName(name string) bool {
	for part := range strings.SplitSeq(name, ".") {
		if !IsIdentifier(part) {
			return false
		}
	}
	return true
}

// splitPath returns the components of a cleaned path without the root.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
