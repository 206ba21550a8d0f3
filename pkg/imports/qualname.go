package imports

import (
	"path/filepath"
	"strings"

	"github.com/altlinux/py3dephell/pkg/pymod"
)

// QualifiedName turns a relative import into an absolute dotted name.
//
// The parent package is the directory of path with the last level components
// dropped, after removing the deepest matching prefix. dep, when non-empty, is
// appended to it.
//
//	QualifiedName("/pkg/module.py", 1, "requests", nil)               // "pkg.requests"
//	QualifiedName("/pkg/subpkg/module.py", 1, "requests", []string{"/pkg"}) // "subpkg.requests"
func QualifiedName(path string, level int, dep string, prefixes []string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	var parts []string
	for _, p := range strings.Split(abs, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if level > len(parts) {
		level = len(parts)
	}
	parts = parts[:len(parts)-level]

	var parent string
	if len(parts) > 0 {
		parent = pymod.StripPrefix("/"+strings.Join(parts, "/"), prefixes)
		parent = strings.Trim(strings.ReplaceAll(parent, "/", "."), ".")
	}

	switch {
	case dep == "":
		return parent
	case parent == "":
		return dep
	default:
		return parent + "." + dep
	}
}
