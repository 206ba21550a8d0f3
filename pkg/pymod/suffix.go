package pymod

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

const (
	// SourceSuffix is the suffix of Python source modules.
	SourceSuffix = ".py"

	// SharedLibSuffix is the generic suffix of compiled extension modules.
	SharedLibSuffix = ".so"

	// InitName is the package-initializer sentinel name.
	InitName = "__init__"

	// DefaultPythonVersion is the interpreter version used for ABI-tagged
	// suffixes when nothing else is configured.
	DefaultPythonVersion = "3.12"
)

// SuffixTable knows which filename suffixes denote an importable module.
type SuffixTable struct {
	// ExtSuffix is the ABI-tagged extension suffix, e.g. ".cpython-312-x86_64-linux-gnu.so".
	ExtSuffix string
	// Abi3Suffix is the stable-ABI suffix, e.g. ".abi3.so".
	Abi3Suffix string

	candidates []string
}

// NewSuffixTable builds the suffix table for a Python version ("3.12") and a
// platform triple ("x86_64-linux-gnu"). An empty platform is derived from the
// running architecture.
func NewSuffixTable(version, platform string) *SuffixTable {
	if version == "" {
		version = DefaultPythonVersion
	}
	if platform == "" {
		platform = HostPlatform()
	}
	t := &SuffixTable{
		ExtSuffix:  fmt.Sprintf(".cpython-%s-%s%s", strings.ReplaceAll(version, ".", ""), platform, SharedLibSuffix),
		Abi3Suffix: ".abi3" + SharedLibSuffix,
	}
	t.candidates = sortSuffixes([]string{SourceSuffix, SharedLibSuffix, t.ExtSuffix, t.Abi3Suffix})
	return t
}

// DefaultSuffixes returns the suffix table of the default Python version on
// the host platform.
func DefaultSuffixes() *SuffixTable {
	return NewSuffixTable(DefaultPythonVersion, "")
}

// Candidates returns the known suffixes, longest first, so that an ABI-tagged
// suffix wins over the generic ".so".
func (t *SuffixTable) Candidates() []string {
	return t.candidates
}

// Strip removes the most specific module suffix from name.
// It reports false when name carries no module suffix.
func (t *SuffixTable) Strip(name string) (string, bool) {
	for _, s := range t.candidates {
		if strings.HasSuffix(name, s) {
			return strings.TrimSuffix(name, s), true
		}
	}
	return name, false
}

// IsSharedObject reports whether path names a compiled extension module.
func (t *SuffixTable) IsSharedObject(path string) bool {
	return strings.HasSuffix(path, SharedLibSuffix)
}

func sortSuffixes(s []string) []string {
	out := make([]string, 0, len(s))
	seen := make(map[string]bool, len(s))
	for _, v := range s {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// HostPlatform returns the multiarch triple CPython uses in extension suffixes
// for the running architecture.
func HostPlatform() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64-linux-gnu"
	case "386":
		return "i386-linux-gnu"
	case "arm64":
		return "aarch64-linux-gnu"
	case "arm":
		return "arm-linux-gnueabihf"
	case "ppc64le":
		return "powerpc64le-linux-gnu"
	case "riscv64":
		return "riscv64-linux-gnu"
	case "s390x":
		return "s390x-linux-gnu"
	case "loong64":
		return "loongarch64-linux-gnu"
	default:
		return runtime.GOARCH + "-linux-gnu"
	}
}
