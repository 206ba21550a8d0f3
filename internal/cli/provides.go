package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/altlinux/py3dephell/pkg/provides"
	"github.com/altlinux/py3dephell/pkg/pymod"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// providesOptions holds the flags of the provides command.
type providesOptions struct {
	prefixes       []string
	absMode        bool
	onlyPrefix     bool
	skipPth        bool
	deepSearch     bool
	keepWrongNames bool
	namespacePkgs  bool
	format         string
}

func (c *CLI) providesCommand() *cobra.Command {
	opts := providesOptions{format: formatText}

	cmd := &cobra.Command{
		Use:   "provides [paths...]",
		Short: "List the Python modules provided by files",
		Long: `List every dotted name under which the given files can be imported.

Paths are read from stdin, separated by whitespace, when none are given.`,
		Example: `  py3dephell provides --prefixes /usr/lib/python3/site-packages \
      /usr/lib/python3/site-packages/requests/__init__.py
  find /usr/lib/python3/site-packages/yaml | py3dephell provides --only-prefix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inputPaths(cmd, args, readFields)
			if err != nil {
				return err
			}
			return c.runProvides(cmd, paths, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.prefixes, "prefixes", nil, "search prefixes, comma separated (default: from config)")
	f.BoolVar(&opts.absMode, "abs-mode", false, "emit only fully-qualified names")
	f.BoolVar(&opts.onlyPrefix, "only-prefix", false, "ignore files outside every prefix")
	f.BoolVar(&opts.skipPth, "skip-pth", false, "do not extend prefixes from .pth files")
	f.BoolVar(&opts.deepSearch, "deep-search", false, "report whole packages instead of single files")
	f.BoolVar(&opts.keepWrongNames, "keep-wrong-names", false, "keep names that are not valid identifiers")
	f.BoolVar(&opts.namespacePkgs, "namespace-pkgs", false, "also provide enclosing namespace packages")
	f.StringVar(&opts.format, "format", opts.format, "output format: text or json")

	return cmd
}

func (c *CLI) runProvides(cmd *cobra.Command, paths []string, opts providesOptions) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatText, formatJSON)
	}

	prefixes := opts.prefixes
	if len(prefixes) == 0 {
		prefixes = c.cfg.SearchPrefixes()
	}

	b := &provides.Builder{
		Prefixes:   prefixes,
		SkipPth:    opts.skipPth,
		OnlyPrefix: opts.onlyPrefix,
		DeepSearch: opts.deepSearch,
		Resolve: pymod.ResolveOptions{
			Abs:            opts.absMode,
			KeepWrongNames: opts.keepWrongNames,
			NamespacePkgs:  opts.namespacePkgs,
			Suffixes:       c.cfg.Suffixes(),
			Logger:         c.Logger,
		},
		Logger: c.Logger,
	}

	entries, err := b.Build(paths)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == formatJSON {
		return writeJSON(out, entries)
	}
	return c.writeProvides(out, entries)
}

// writeProvides prints one name per line, or one "path:[names]" line per
// entry in verbose mode.
func (c *CLI) writeProvides(w io.Writer, entries map[string]provides.Entry) error {
	if c.verbose() {
		for _, path := range slices.Sorted(maps.Keys(entries)) {
			if _, err := fmt.Fprintf(w, "%s:[%s]\n", path, strings.Join(entries[path].Provides, " ")); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range provides.Names(entries) {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
