package requires

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/altlinux/py3dephell/pkg/cache"
	"github.com/altlinux/py3dephell/pkg/errors"
	"github.com/altlinux/py3dephell/pkg/imports"
	"github.com/altlinux/py3dephell/pkg/observability"
	"github.com/altlinux/py3dephell/pkg/provides"
	"github.com/altlinux/py3dephell/pkg/pymod"
)

// VersionEnv overrides the ABI version of extension-module requirements.
const VersionEnv = "RPM_PYTHON3_VERSION"

const keyTypeImports = "imports"

// FileRequirements holds the requirements of one input file, per kind.
type FileRequirements struct {
	Path     string   `json:"path"`
	Absolute []string `json:"absolute,omitempty"`
	Relative []string `json:"relative,omitempty"`
	Dynamic  []string `json:"dynamic,omitempty"`
	Binary   []string `json:"binary,omitempty"`
	// Err is the per-file failure, if any. The other fields are then empty.
	Err error `json:"-"`
}

// All returns the sorted, deduplicated union of every kind.
func (r FileRequirements) All() []string {
	all := slices.Concat(r.Absolute, r.Relative, r.Dynamic, r.Binary)
	slices.Sort(all)
	return slices.Compact(all)
}

// Empty reports whether the file has no requirements.
func (r FileRequirements) Empty() bool {
	return len(r.Absolute)+len(r.Relative)+len(r.Dynamic)+len(r.Binary) == 0
}

// Generator computes requirements for a batch of files.
type Generator struct {
	// Prefixes are the interpreter search paths of the build root.
	Prefixes []string
	// AddProvPaths are extra files or directories whose modules count as
	// provided, e.g. other subpackages of the same source package.
	AddProvPaths []string
	// ProvidesFile lists additional provide names, one per line.
	ProvidesFile string
	// Ignore holds names never reported. Nil means DefaultIgnore().
	Ignore Set

	OnlyExternal  bool // report nothing found inside compound statements
	OnlyTopModule bool // report "a" for absolute imports of "a.b"
	SkipSubs      bool // report "a" for "from a import b" instead of "a.b"
	PipFormat     bool // bare names instead of "python3(name)"

	// PythonVersion is the ABI version of extension modules; VersionEnv
	// wins when set. Empty means pymod.DefaultPythonVersion.
	PythonVersion string
	// PythonMajor is the interpreter major version in requirement strings.
	PythonMajor string
	// Suffixes recognizes module files. Nil means pymod.DefaultSuffixes().
	Suffixes *pymod.SuffixTable

	// Workers bounds parallel extraction. Zero means GOMAXPROCS.
	Workers int
	// Cache stores extraction results. Nil disables caching.
	Cache cache.Cache
	// Keyer derives cache keys. Nil means cache.NewDefaultKeyer().
	Keyer cache.Keyer
	// CacheTTL is the lifetime of cache entries; zero never expires.
	CacheTTL time.Duration

	Logger *log.Logger
}

// universe is the set of names the scanned files provide themselves.
type universe struct {
	full   Set               // every resolvable name
	abs    Set               // fully-qualified names only
	owners map[string]string // file -> owning top-level module
}

// Generate returns one result per input file, in input order. Per-file
// problems (missing files, syntax errors, broken ELF objects) are logged and
// recorded in FileRequirements.Err; only context cancellation and invalid
// configuration fail the whole batch.
func (g *Generator) Generate(ctx context.Context, files []string) ([]FileRequirements, error) {
	start := time.Now()
	hooks := observability.Scan()
	hooks.OnScanStart(ctx, len(files))

	results, err := g.generate(ctx, files)
	hooks.OnScanComplete(ctx, len(files), time.Since(start), err)
	return results, err
}

func (g *Generator) generate(ctx context.Context, files []string) ([]FileRequirements, error) {
	u, err := g.buildUniverse(files)
	if err != nil {
		return nil, err
	}

	ignore := g.Ignore
	if ignore == nil {
		ignore = DefaultIgnore()
	}
	format := Formatter(PipFormat)
	if !g.PipFormat {
		format = RPMFormat(g.PythonMajor)
	}
	extractor := &imports.Extractor{
		Prefixes:     g.Prefixes,
		OnlyExternal: g.OnlyExternal,
		SkipSubs:     g.SkipSubs,
		Logger:       g.Logger,
	}

	results := make([]FileRequirements, len(files))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers())

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = g.scanFile(gctx, file, extractor, u, ignore, format)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) scanFile(ctx context.Context, file string, ex *imports.Extractor, u *universe, ignore Set, format Formatter) FileRequirements {
	start := time.Now()
	hooks := observability.Scan()
	hooks.OnFileStart(ctx, file)

	res := FileRequirements{Path: file}
	defer func() {
		hooks.OnFileComplete(ctx, file, len(res.All()), time.Since(start), res.Err)
	}()

	if g.suffixes().IsSharedObject(file) {
		dep, err := ProbeABI(file, g.abiVersion())
		if err != nil {
			g.logger().Warn("cannot detect ABI of extension module", "path", file, "err", err)
			res.Err = err
			return res
		}
		res.Binary = []string{dep}
		return res
	}

	found, err := g.extract(ctx, ex, file)
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			g.logger().Warn("no such file", "path", file)
		}
		res.Err = err
		return res
	}
	g.logger().Debug("extracted imports", "path", file, "names", found.Len())

	absProvides := u.full
	if owner, ok := u.owners[file]; ok && !strings.Contains(owner, "-") {
		absProvides = u.abs
	}
	opts := FilterOptions{Ignore: ignore, Format: format, Logger: g.Logger}

	absOpts := opts
	absOpts.Provides = absProvides
	absOpts.OnlyTopModule = g.OnlyTopModule
	res.Absolute = Filter(file, found.Absolute, absOpts)

	opts.Provides = u.full
	res.Relative = Filter(file, found.Relative, opts)
	res.Dynamic = Filter(file, found.Dynamic, opts)

	skipOpts := opts
	skipOpts.Skip = true
	Filter(file, found.Conditional, skipOpts)

	return res
}

// extract runs the extractor through the cache.
func (g *Generator) extract(ctx context.Context, ex *imports.Extractor, file string) (*imports.Imports, error) {
	if g.Cache == nil {
		return ex.ExtractFile(ctx, file)
	}
	src, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file: %s", file)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read %s", file)
	}

	// Relative imports are qualified from the absolute path, so a relative
	// input path names different modules in different working directories.
	keyPath, err := filepath.Abs(file)
	if err != nil {
		keyPath = file
	}
	keyer := g.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	key := keyer.ImportsKey(cache.Hash(src), cache.ImportsKeyOpts{
		Path:         keyPath,
		Prefixes:     pymod.SortPrefixes(g.Prefixes),
		OnlyExternal: g.OnlyExternal,
		SkipSubs:     g.SkipSubs,
	})

	hooks := observability.Cache()
	if data, ok, err := g.Cache.Get(ctx, key); err == nil && ok {
		var cached imports.Imports
		if err := json.Unmarshal(data, &cached); err == nil {
			hooks.OnCacheHit(ctx, keyTypeImports)
			return cached.Normalize(), nil
		}
	}
	hooks.OnCacheMiss(ctx, keyTypeImports)

	found, err := ex.Extract(ctx, file, src)
	if err != nil {
		return found, err
	}
	if data, err := json.Marshal(found); err == nil {
		if err := g.Cache.Set(ctx, key, data, g.CacheTTL); err != nil {
			g.logger().Debug("cache write failed", "path", file, "err", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeImports, len(data))
		}
	}
	return found, nil
}

// buildUniverse computes what the input files provide, in both naming modes.
func (g *Generator) buildUniverse(files []string) (*universe, error) {
	u := &universe{full: NewSet(), abs: NewSet(), owners: make(map[string]string)}

	if g.ProvidesFile != "" {
		names, err := ReadProvidesFile(g.ProvidesFile)
		if err != nil {
			return nil, err
		}
		u.full.Add(names...)
	}

	resolve := pymod.ResolveOptions{
		KeepWrongNames: true,
		NamespacePkgs:  true,
		Suffixes:       g.suffixes(),
		Logger:         g.Logger,
	}
	for _, abs := range []bool{false, true} {
		opts := resolve
		opts.Abs = abs
		b := provides.Builder{Prefixes: g.Prefixes, SkipPth: true, Resolve: opts, Logger: g.Logger}
		entries, err := b.Build(files)
		if err != nil {
			return nil, err
		}
		for path, owner := range provides.Owners(entries) {
			u.owners[path] = owner
		}
		if abs {
			u.abs.Add(provides.Names(entries)...)
		} else {
			u.full.Add(provides.Names(entries)...)
		}
	}

	extra := NewSet()
	for _, path := range g.AddProvPaths {
		extra.Add(provides.Search(path, g.Prefixes, resolve)...)
	}
	u.full = u.full.Union(extra)
	u.abs = u.abs.Union(extra)
	return u, nil
}

// ReadProvidesFile reads provide names, one per line. Surrounding
// whitespace is trimmed and blank lines are skipped. Names are taken as
// written, since provides generated with wrong names kept are not valid
// identifiers.
func ReadProvidesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "provides file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open provides file %s", path)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read provides file %s", path)
	}
	return names, nil
}

func (g *Generator) workers() int {
	if g.Workers > 0 {
		return g.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (g *Generator) suffixes() *pymod.SuffixTable {
	if g.Suffixes != nil {
		return g.Suffixes
	}
	return pymod.DefaultSuffixes()
}

func (g *Generator) abiVersion() string {
	if v := os.Getenv(VersionEnv); v != "" {
		return v
	}
	if g.PythonVersion != "" {
		return g.PythonVersion
	}
	return pymod.DefaultPythonVersion
}

func (g *Generator) logger() *log.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return discardLogger
}
