package provides

import (
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/altlinux/py3dephell/pkg/errors"
	"github.com/altlinux/py3dephell/pkg/pymod"
)

// Entry is the provide record of one representative path.
type Entry struct {
	// Provides lists the dotted names, in discovery order, without duplicates.
	Provides []string `json:"provides"`
	// Package is the owning top-level module, or "" when the path lies
	// outside every prefix.
	Package string `json:"package,omitempty"`
}

// Builder computes provide sets for a batch of files.
type Builder struct {
	Prefixes   []string             // search prefixes, in any order
	SkipPth    bool                 // do not extend prefixes from .pth files
	OnlyPrefix bool                 // ignore files outside every prefix
	DeepSearch bool                 // collapse package contents into one entry
	Resolve    pymod.ResolveOptions // naming options passed to every Resolve call
	Logger     *log.Logger          // diagnostics (optional)
}

// Build returns the provide entries keyed by representative path.
//
// The representative path is the input file itself, or the module root when
// DeepSearch is set. Build never modifies b.Prefixes or files.
func (b *Builder) Build(files []string) (map[string]Entry, error) {
	for _, f := range files {
		if err := errors.ValidateInputPath(f); err != nil {
			return nil, err
		}
	}

	opts := b.Resolve
	if opts.Logger == nil {
		opts.Logger = b.Logger
	}

	result := b.pass(files, b.Prefixes, opts)
	if b.SkipPth {
		return result, nil
	}

	extra := pymod.DetectPth(b.Prefixes, b.Logger)
	if len(extra) == 0 {
		return result, nil
	}
	merged := slices.Concat(b.Prefixes, appendMissing(nil, extra))
	loggerOr(b.Logger).Debug("rerunning with .pth prefixes", "prefixes", extra)

	for key, more := range b.pass(files, merged, opts) {
		cur, ok := result[key]
		if !ok {
			result[key] = more
			continue
		}
		cur.Provides = appendMissing(cur.Provides, more.Provides)
		if cur.Package == "" {
			cur.Package = more.Package
		}
		result[key] = cur
	}
	return result, nil
}

func (b *Builder) pass(files, prefixes []string, opts pymod.ResolveOptions) map[string]Entry {
	owners := pymod.Classify(files, prefixes, pymod.ClassifyOptions{
		OnlyPrefix: b.OnlyPrefix,
		DeepSearch: b.DeepSearch,
		Logger:     b.Logger,
	})

	result := make(map[string]Entry, len(owners))
	for path, module := range owners {
		result[path] = Entry{
			Provides: appendMissing(nil, Search(path, prefixes, opts)),
			Package:  module,
		}
	}
	return result
}

// Names returns the sorted union of all provide names in entries.
func Names(entries map[string]Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		for _, name := range e.Provides {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Owners maps every input path to its owning module. Entries without an
// owner are omitted.
func Owners(entries map[string]Entry) map[string]string {
	out := make(map[string]string, len(entries))
	for path, e := range entries {
		if e.Package != "" {
			out[path] = e.Package
		}
	}
	return out
}

func appendMissing(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
