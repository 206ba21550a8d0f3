package requires

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

var discardLogger = log.New(io.Discard)

// FilterOptions controls which dependencies survive Filter.
type FilterOptions struct {
	Provides      Set         // names satisfied by the scanned files themselves
	Ignore        Set         // names never reported
	OnlyTopModule bool        // report "a" for "a.b.c"
	Skip          bool        // report nothing; only log what was found
	PipFormat     bool        // bare names instead of "python3(name)"
	Format        Formatter   // overrides PipFormat when set
	Logger        *log.Logger // receives one debug record per dropped name
}

// Filter returns the requirement strings for the dependencies of file.
//
// Each name is checked in order against the ignore list, the provide set and
// the Skip flag; the first match drops it. Surviving names are optionally
// shortened to their top-level module and formatted. The result is sorted
// and has no duplicates.
func Filter(file string, deps map[string][]int, opts FilterOptions) []string {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}
	format := opts.Format
	if format == nil {
		if opts.PipFormat {
			format = PipFormat
		} else {
			format = RPMFormat(DefaultPythonMajor)
		}
	}

	out := NewSet()
	for dep, lines := range deps {
		switch {
		case opts.Ignore.Has(dep):
			logger.Debug("skipping ignored dependency", "file", file, "dep", dep, "lines", lines)
			continue
		case opts.Provides.Has(dep):
			logger.Debug("possibly a self-providing dependency, skip it", "file", file, "dep", dep, "lines", lines)
			continue
		case opts.Skip:
			logger.Debug("skipping conditional dependency", "file", file, "dep", dep, "lines", lines)
			continue
		}

		name := dep
		if opts.OnlyTopModule {
			name, _, _ = strings.Cut(dep, ".")
		}
		out.Add(format(name))
	}
	return out.Sorted()
}
