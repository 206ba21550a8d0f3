package pymod

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/altlinux/py3dephell/pkg/errors"
)

var discardLogger = log.New(io.Discard)

func loggerOr(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return discardLogger
}

// ResolveOptions controls how a path is turned into provide names.
//
// The zero value skips non-identifier names and does not propagate namespace
// packages, matching what distribution packaging expects by default.
type ResolveOptions struct {
	Abs            bool         // emit only the single fully-qualified name
	Package        bool         // treat a suffix-less path as a package directory
	KeepWrongNames bool         // keep names whose segments are not identifiers
	NamespacePkgs  bool         // also emit the names of the enclosing directory
	Suffixes       *SuffixTable // nil means DefaultSuffixes()
	Logger         *log.Logger  // diagnostics (optional)
}

// Resolve computes every dotted name under which the module at path may be
// imported, given ordered search prefixes.
//
// Examples:
//
//	Resolve("/root/pkg/__init__.py", []string{"/root"}, ResolveOptions{})
//	// ["__init__", "pkg.__init__", "pkg"]
//	Resolve("/root/pkg/mod.py", []string{"/root"}, ResolveOptions{NamespacePkgs: true})
//	// ["mod", "pkg.mod", "pkg"]
//
// An INVALID_PREFIX error is returned when prefix stripping leaves nothing of
// path.
func Resolve(path string, prefixes []string, opts ResolveOptions) ([]string, error) {
	if opts.Suffixes == nil {
		opts.Suffixes = DefaultSuffixes()
	}
	return resolve(filepath.Clean(path), SortPrefixes(prefixes), opts)
}

func resolve(path string, prefixes []string, opts ResolveOptions) ([]string, error) {
	if pref, ok := matchPrefix(path, prefixes); ok {
		path = strings.TrimPrefix(path, pref+"/")
	}
	if path == "" || path == "." {
		return nil, errors.New(errors.ErrCodeInvalidPrefix, "path cannot be empty (possibly it was cut by prefix)")
	}

	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, nil
	}

	last := len(parts) - 1
	name, module := opts.Suffixes.Strip(parts[last])
	parts[last] = name

	var provides []string
	topPackage := false

	if module || opts.Package {
		topPackage = name == InitName
		if strings.Contains(name, ".") {
			loggerOr(opts.Logger).Warn("bad name for provides from path", "path", path)
		}

		if opts.Abs {
			if opts.KeepWrongNames || allIdentifiers(parts) {
				provides = append(provides, strings.Join(parts, "."))
			}
		} else {
			for i := last; i >= 0; i-- {
				if !opts.KeepWrongNames && !IsIdentifier(parts[i]) {
					break
				}
				if len(provides) == 0 {
					provides = append(provides, parts[i])
				} else {
					provides = append(provides, parts[i]+"."+provides[len(provides)-1])
				}
			}
		}
	}

	parent := filepath.Dir(path)
	if (topPackage || opts.NamespacePkgs) && parent != "." && parent != "/" {
		up := opts
		up.Package = true
		up.NamespacePkgs = false
		more, err := resolve(parent, prefixes, up)
		if err != nil {
			return nil, err
		}
		provides = append(provides, more...)
	}

	return provides, nil
}

func allIdentifiers(parts []string) bool {
	for _, p := range parts {
		if !IsIdentifier(p) {
			return false
		}
	}
	return true
}
