package pymod

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// ClassifyOptions controls how input files are grouped by module.
type ClassifyOptions struct {
	OnlyPrefix bool        // drop files outside every prefix
	DeepSearch bool        // collapse a package's files into its root entry
	Logger     *log.Logger // diagnostics (optional)
}

// Classify groups files by the top-level module they belong to.
//
// The result maps a representative path to its owning module; files outside
// every prefix map to "" unless OnlyPrefix drops them. With DeepSearch, all
// files below prefix/module collapse into one entry keyed by the module root
// (with a trailing slash when the module is a directory). Files are visited in
// reverse-sorted order so a package directory is seen before its children.
func Classify(files, prefixes []string, opts ClassifyOptions) map[string]string {
	logger := loggerOr(opts.Logger)
	sorted := SortPrefixes(prefixes)

	ordered := append([]string(nil), files...)
	sort.Sort(sort.Reverse(sort.StringSlice(ordered)))

	result := make(map[string]string, len(files))
	seenModules := make(map[string]bool)
	consumed := make(map[string]bool)

	for _, file := range ordered {
		if consumed[file] {
			continue
		}
		pref, module, ok := detect(file, sorted)
		if !ok {
			if !opts.OnlyPrefix {
				result[file] = ""
			}
			continue
		}

		if !seenModules[module] {
			seenModules[module] = true
			logger.Debug("detected potential module", "module", module)
		}

		if !opts.DeepSearch {
			result[file] = module
			continue
		}

		base := pref + "/" + module
		for _, f := range files {
			if f == base || strings.HasPrefix(f, base+"/") {
				consumed[f] = true
			}
		}
		result[modulePath(file, base)] = module
	}

	return result
}

// modulePath returns the module root, followed by a slash when file
// continues below it (i.e. the module is a package directory).
func modulePath(file, base string) string {
	if strings.HasPrefix(file, base+"/") {
		return base + "/"
	}
	return base
}
