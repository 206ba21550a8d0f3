// Package cli implements the py3dephell command-line interface.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"

	"github.com/altlinux/py3dephell/pkg/buildinfo"
	"github.com/altlinux/py3dephell/pkg/cache"
	"github.com/altlinux/py3dephell/pkg/config"
	"github.com/altlinux/py3dephell/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "py3dephell"

	cacheNone   = "none"
	cacheMemory = "memory"
	cacheFile   = "file"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Generate Python provides and requires for packages",
		Long: `py3dephell computes which Python modules a set of files provides and which
modules they require, in the form distribution build tooling expects.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./py3dephell.toml or [tool.py3dephell] in ./pyproject.toml)")

	root.AddCommand(c.providesCommand())
	root.AddCommand(c.requiresCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := config.Load(c.configPath, wd)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	if c.verbose() {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetScanHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
	return nil
}

// =============================================================================
// Cache Factory
// =============================================================================

func newCache(kind string) (cache.Cache, error) {
	switch kind {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheMemory:
		return cache.NewMemoryCache(cache.DefaultMemoryEntries)
	case cacheFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return nil, fmt.Errorf("unknown cache %q (want %s, %s or %s)", kind, cacheNone, cacheMemory, cacheFile)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/py3dephell/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// readFields splits r on whitespace.
func readFields(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		out = append(out, strings.Fields(scanner.Text())...)
	}
	return out, scanner.Err()
}

// readShellWords splits r the way a shell splits words, so quoted paths
// with spaces survive. Variables are left as written.
func readShellWords(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return shell.Fields(string(data), func(name string) string { return "$" + name })
}

// inputPaths returns args, or the paths read from stdin when there are none.
func inputPaths(cmd *cobra.Command, args []string, split func(io.Reader) ([]string, error)) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	paths, err := split(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read paths from stdin: %w", err)
	}
	return paths, nil
}

// openOutput returns the writer for --output, or stdout when it is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
