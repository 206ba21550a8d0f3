package provides

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/altlinux/py3dephell/pkg/pymod"
)

// cacheDirName is the bytecode cache directory; nothing under it is importable.
const cacheDirName = "__pycache__"

var discardLogger = log.New(io.Discard)

func loggerOr(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return discardLogger
}

// Search returns the provide names of path. Files and symlinks are resolved
// directly; directories are walked recursively, skipping bytecode caches.
// A path that does not exist contributes nothing.
//
// Resolve failures are logged and the offending file is skipped, so Search
// never fails as a whole.
func Search(path string, prefixes []string, opts pymod.ResolveOptions) []string {
	logger := loggerOr(opts.Logger)
	sorted := pymod.SortPrefixes(prefixes)
	var out []string
	search(path, sorted, opts, logger, &out)
	return out
}

func search(path string, prefixes []string, opts pymod.ResolveOptions, logger *log.Logger, out *[]string) {
	info, err := os.Lstat(path)
	if err != nil {
		logger.Debug("no such file or directory", "path", path)
		return
	}

	if !info.IsDir() {
		names, err := pymod.Resolve(path, prefixes, opts)
		if err != nil {
			logger.Warn("cannot resolve provides", "path", path, "err", err)
			return
		}
		*out = append(*out, names...)
		return
	}

	if strings.Contains(filepath.ToSlash(path), cacheDirName) {
		return
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		logger.Warn("cannot list directory", "path", path, "err", err)
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		search(filepath.Join(path, name), prefixes, opts, logger, out)
	}
}
