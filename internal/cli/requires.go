package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/altlinux/py3dephell/pkg/buildinfo"
	"github.com/altlinux/py3dephell/pkg/cache"
	"github.com/altlinux/py3dephell/pkg/depgraph"
	"github.com/altlinux/py3dephell/pkg/requires"
)

// requiresOptions holds the flags of the requires command.
type requiresOptions struct {
	prefixes      []string
	addProvPaths  []string
	ignore        []string
	providesFile  string
	onlyExternal  bool
	onlyTopModule bool
	pipFormat     bool
	noSkipSubs    bool
	workers       int
	cache         string
	format        string
	output        string
	trimPrefix    string
	skipEmpty     bool
}

func (c *CLI) requiresCommand() *cobra.Command {
	opts := requiresOptions{cache: cacheMemory, format: formatText}

	cmd := &cobra.Command{
		Use:   "requires [paths...]",
		Short: "List the Python modules required by files",
		Long: `List the modules imported by the given files that they do not provide
themselves, formatted as distribution requirements.

Paths are read from stdin, split like shell words, when none are given.`,
		Example: `  py3dephell requires --add-prov-path /tmp/buildroot/usr/lib/python3 \
      /tmp/buildroot/usr/lib/python3/site-packages/pkg/*.py
  py3dephell requires --format svg -o deps.svg src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inputPaths(cmd, args, readShellWords)
			if err != nil {
				return err
			}
			return c.runRequires(cmd, paths, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.prefixes, "prefixes", nil, "search prefixes, comma separated (default: from config)")
	f.StringSliceVar(&opts.addProvPaths, "add-prov-path", nil, "files or directories whose modules count as provided")
	f.StringSliceVar(&opts.ignore, "ignore", nil, "module names never reported (default: builtin modules)")
	f.StringVar(&opts.providesFile, "provides-file", "", "file listing extra provided names, one per line")
	f.BoolVar(&opts.onlyExternal, "only-external-deps", false, "skip imports inside compound statements")
	f.BoolVar(&opts.onlyTopModule, "only-top-module", false, "report only the top-level module of absolute imports")
	f.BoolVar(&opts.pipFormat, "pip-format", false, "print bare module names")
	f.BoolVar(&opts.noSkipSubs, "no-skip-subs", false, "report \"a.b\" for \"from a import b\"")
	f.IntVar(&opts.workers, "workers", 0, "parallel extraction workers (default: number of CPUs)")
	f.StringVar(&opts.cache, "cache", opts.cache, "extraction cache: none, memory or file")
	f.StringVar(&opts.format, "format", opts.format, "output format: text, json, dot or svg")
	f.StringVarP(&opts.output, "output", "o", "", "write output to file instead of stdout")
	f.StringVar(&opts.trimPrefix, "trim-prefix", "", "strip this prefix from file names in dot and svg output")
	f.BoolVar(&opts.skipEmpty, "skip-empty", false, "leave files without requirements out of dot and svg output")

	return cmd
}

func (c *CLI) runRequires(cmd *cobra.Command, paths []string, opts requiresOptions) error {
	switch opts.format {
	case formatText, formatJSON, formatDOT, formatSVG:
	default:
		return fmt.Errorf("unknown format %q (want %s, %s, %s or %s)", opts.format, formatText, formatJSON, formatDOT, formatSVG)
	}

	store, err := newCache(opts.cache)
	if err != nil {
		return err
	}
	defer store.Close()

	gen := c.newGenerator(opts)
	gen.Cache = store
	gen.Keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version)

	prog := newProgress(c.Logger)
	results, err := gen.Generate(cmd.Context(), paths)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("scanned %d files", len(results)))

	if failed := countFailed(results); failed > 0 {
		printWarning("%d of %d files could not be scanned", failed, len(results))
	}

	w, closeOut, err := openOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	if err := c.writeRequires(cmd, w, results, opts); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if opts.output != "" && opts.output != "-" {
		printSuccess("Wrote %s output", opts.format)
		printFile(opts.output)
	}
	return nil
}

// newGenerator merges flags over the loaded configuration.
func (c *CLI) newGenerator(opts requiresOptions) *requires.Generator {
	cfg := c.cfg

	prefixes := opts.prefixes
	if len(prefixes) == 0 {
		prefixes = cfg.SearchPrefixes()
	}

	var ignore requires.Set
	switch {
	case len(opts.ignore) > 0:
		ignore = requires.NewSet(opts.ignore...)
	case len(cfg.Ignore) > 0:
		ignore = requires.NewSet(cfg.Ignore...)
	}

	workers := opts.workers
	if workers == 0 {
		workers = cfg.Workers
	}

	return &requires.Generator{
		Prefixes:      prefixes,
		AddProvPaths:  opts.addProvPaths,
		ProvidesFile:  opts.providesFile,
		Ignore:        ignore,
		OnlyExternal:  opts.onlyExternal || cfg.OnlyExternalDeps,
		OnlyTopModule: opts.onlyTopModule || cfg.OnlyTopModule,
		SkipSubs:      !opts.noSkipSubs,
		PipFormat:     opts.pipFormat || cfg.PipFormat,
		PythonVersion: cfg.PythonVersion,
		PythonMajor:   cfg.PythonMajor,
		Suffixes:      cfg.Suffixes(),
		Workers:       workers,
		Logger:        c.Logger,
	}
}

func (c *CLI) writeRequires(cmd *cobra.Command, w io.Writer, results []requires.FileRequirements, opts requiresOptions) error {
	graph := depgraph.Options{TrimPrefix: opts.trimPrefix, SkipEmpty: opts.skipEmpty}
	switch opts.format {
	case formatJSON:
		return writeJSON(w, results)
	case formatDOT:
		_, err := io.WriteString(w, depgraph.ToDOT(results, graph))
		return err
	case formatSVG:
		svg, err := depgraph.RenderSVG(cmd.Context(), depgraph.ToDOT(results, graph))
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	}

	if c.verbose() {
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s:[%s]\n", r.Path, strings.Join(r.All(), " ")); err != nil {
				return err
			}
		}
		return nil
	}

	var all []string
	for _, r := range results {
		all = append(all, r.All()...)
	}
	slices.Sort(all)
	for _, name := range slices.Compact(all) {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func countFailed(results []requires.FileRequirements) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
