// Package config loads py3dephell settings from TOML files and the
// environment.
//
// Settings are looked up in this order, the first hit winning:
//
//  1. the file given with --config
//  2. py3dephell.toml in the working directory
//  3. the [tool.py3dephell] table of pyproject.toml in the working directory
//
// Environment variables are applied on top, and command-line flags on top of
// those. A missing file just means defaults.
//
//	# py3dephell.toml
//	prefixes = ["/usr/lib/python3/site-packages", "/usr/lib64/python3/site-packages"]
//	ignore = ["sys", "builtins"]
//	python_version = "3.12"
//	only_top_module = true
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/altlinux/py3dephell/pkg/errors"
	"github.com/altlinux/py3dephell/pkg/pymod"
)

const (
	// FileName is the dedicated configuration file.
	FileName = "py3dephell.toml"
	// PyprojectName is the project file whose [tool.py3dephell] table is read.
	PyprojectName = "pyproject.toml"

	// EnvVersion overrides PythonVersion.
	EnvVersion = "RPM_PYTHON3_VERSION"
	// EnvPrefixes overrides Prefixes with a comma-separated list.
	EnvPrefixes = "PY3DEPHELL_PREFIXES"
)

// Config holds the settings shared by all commands.
type Config struct {
	Prefixes         []string `toml:"prefixes"`
	Ignore           []string `toml:"ignore"`
	PythonVersion    string   `toml:"python_version"`
	PythonMajor      string   `toml:"python_major"`
	Platform         string   `toml:"platform"`
	Workers          int      `toml:"workers"`
	OnlyTopModule    bool     `toml:"only_top_module"`
	OnlyExternalDeps bool     `toml:"only_external_deps"`
	PipFormat        bool     `toml:"pip_format"`

	// Source is the file the settings came from, "" for defaults.
	Source string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PythonVersion: pymod.DefaultPythonVersion,
		PythonMajor:   "3",
	}
}

// Load reads the configuration. explicit, when set, must name an existing
// file; otherwise dir is searched for py3dephell.toml and pyproject.toml.
// Environment overrides are applied to the result.
func Load(explicit, dir string) (Config, error) {
	cfg := Default()

	switch {
	case explicit != "":
		if err := decodeFile(explicit, &cfg); err != nil {
			return cfg, err
		}
	case exists(filepath.Join(dir, FileName)):
		if err := decodeFile(filepath.Join(dir, FileName), &cfg); err != nil {
			return cfg, err
		}
	case exists(filepath.Join(dir, PyprojectName)):
		if err := decodePyproject(filepath.Join(dir, PyprojectName), &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Source = path
	return nil
}

func decodePyproject(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	var pyproject struct {
		Tool struct {
			Py3dephell toml.Primitive `toml:"py3dephell"`
		} `toml:"tool"`
	}
	md, err := toml.Decode(string(data), &pyproject)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if !md.IsDefined("tool", "py3dephell") {
		return nil
	}
	if err := md.PrimitiveDecode(pyproject.Tool.Py3dephell, cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: [tool.py3dephell]", path)
	}
	cfg.Source = path
	return nil
}

// ApplyEnv applies environment overrides using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvVersion); ok && v != "" {
		c.PythonVersion = v
	}
	if v, ok := lookup(EnvPrefixes); ok && v != "" {
		c.Prefixes = SplitList(v)
	}
}

var versionRE = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	if !versionRE.MatchString(c.PythonVersion) {
		return errors.New(errors.ErrCodeInvalidConfig, "python_version must look like 3.12, got %q", c.PythonVersion)
	}
	for _, p := range c.Prefixes {
		if err := errors.ValidateInputPath(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid prefix")
		}
	}
	for _, name := range c.Ignore {
		if err := errors.ValidateModuleName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid ignore entry")
		}
	}
	return nil
}

// Suffixes returns the module suffix table for the configured interpreter.
func (c Config) Suffixes() *pymod.SuffixTable {
	return pymod.NewSuffixTable(c.PythonVersion, c.Platform)
}

// SearchPrefixes returns the configured prefixes, or the interpreter's
// standard library and site-packages directories when none are set.
func (c Config) SearchPrefixes() []string {
	if len(c.Prefixes) > 0 {
		return c.Prefixes
	}
	stdlib := "python" + c.PythonVersion
	return []string{
		"/usr/lib/" + stdlib,
		"/usr/lib64/" + stdlib,
		"/usr/lib64/" + stdlib + "/lib-dynload",
		"/usr/lib/python" + c.PythonMajor + "/site-packages",
		"/usr/lib64/python" + c.PythonMajor + "/site-packages",
	}
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
