package pymod

import (
	"slices"
	"strings"
	"testing"

	"github.com/altlinux/py3dephell/pkg/errors"
)

func TestResolve_Module(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		prefixes []string
		opts     ResolveOptions
		want     []string
	}{
		{
			name:     "top module under prefix",
			path:     "/sys_path/bad-symbol/module.py",
			prefixes: []string{"/sys_path/bad-symbol"},
			want:     []string{"module"},
		},
		{
			name: "bad symbol stops outward names",
			path: "/sys_path/bad-symbol/module.py",
			want: []string{"module"},
		},
		{
			name: "abs mode with bad symbol yields nothing",
			path: "/sys_path/bad-symbol/module.py",
			opts: ResolveOptions{Abs: true},
			want: nil,
		},
		{
			name: "wrong names kept",
			path: "/sys_path/bad-symbol/module.py",
			opts: ResolveOptions{KeepWrongNames: true},
			want: []string{"module", "bad-symbol.module", "sys_path.bad-symbol.module"},
		},
		{
			name: "wrong names kept in abs mode",
			path: "/sys_path/bad-symbol/module.py",
			opts: ResolveOptions{KeepWrongNames: true, Abs: true},
			want: []string{"sys_path.bad-symbol.module"},
		},
		{
			name:     "not a module",
			path:     "/root/pkg/README.txt",
			prefixes: []string{"/root"},
			want:     nil,
		},
		{
			name:     "abi tagged extension",
			path:     "/root/pkg/_speedups" + NewSuffixTable("3.12", "x86_64-linux-gnu").ExtSuffix,
			prefixes: []string{"/root"},
			opts:     ResolveOptions{Suffixes: NewSuffixTable("3.12", "x86_64-linux-gnu")},
			want:     []string{"_speedups", "pkg._speedups"},
		},
		{
			name:     "stable abi extension",
			path:     "/root/pkg/_speedups.abi3.so",
			prefixes: []string{"/root"},
			want:     []string{"_speedups", "pkg._speedups"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.path, tt.prefixes, tt.opts)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolve_Package(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		prefixes []string
		opts     ResolveOptions
		want     []string
	}{
		{
			name:     "regular package init",
			path:     "/sys_path/bad-symbol/pkg/__init__.py",
			prefixes: []string{"/sys_path/bad-symbol"},
			want:     []string{"__init__", "pkg.__init__", "pkg"},
		},
		{
			name:     "prefix inside the package",
			path:     "/sys_path/bad-symbol/pkg/__init__.py",
			prefixes: []string{"/sys_path/bad-symbol/pkg/"},
			want:     []string{"__init__"},
		},
		{
			name: "package directory",
			path: "/sys_path/bad-symbol/pkg/",
			opts: ResolveOptions{Package: true},
			want: []string{"pkg"},
		},
		{
			name: "namespace package skipped",
			path: "/sys_path/bad-symbol/pkg/mod1.py",
			want: []string{"mod1", "pkg.mod1"},
		},
		{
			name: "namespace package propagated",
			path: "/sys_path/bad-symbol/pkg/mod1.py",
			opts: ResolveOptions{NamespacePkgs: true},
			want: []string{"mod1", "pkg.mod1", "pkg"},
		},
		{
			name:     "init under single prefix",
			path:     "/root/pkg/__init__.py",
			prefixes: []string{"/root"},
			want:     []string{"__init__", "pkg.__init__", "pkg"},
		},
		{
			name:     "namespace under single prefix",
			path:     "/root/pkg/mod.py",
			prefixes: []string{"/root"},
			opts:     ResolveOptions{NamespacePkgs: true},
			want:     []string{"mod", "pkg.mod", "pkg"},
		},
		{
			name:     "abs mode init",
			path:     "/root/pkg/__init__.py",
			prefixes: []string{"/root"},
			opts:     ResolveOptions{Abs: true},
			want:     []string{"pkg.__init__", "pkg"},
		},
		{
			name:     "deepest prefix wins",
			path:     "/usr/lib/python3/site-packages/pkg/mod.py",
			prefixes: []string{"/usr/lib/python3", "/usr/lib/python3/site-packages", "/usr"},
			opts:     ResolveOptions{Abs: true},
			want:     []string{"pkg.mod"},
		},
		{
			name: "top-level file without prefixes",
			path: "/mod.py",
			opts: ResolveOptions{NamespacePkgs: true},
			want: []string{"mod"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.path, tt.prefixes, tt.opts)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolve_EmptyPath(t *testing.T) {
	_, err := Resolve(".", nil, ResolveOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidPrefix) {
		t.Errorf("Resolve(\".\") error = %v, want %s", err, errors.ErrCodeInvalidPrefix)
	}
}

func TestResolve_NeverContainsPrefix(t *testing.T) {
	prefix := "/opt/site"
	paths := []string{
		"/opt/site/a/b/c.py",
		"/opt/site/a/__init__.py",
		"/opt/site/top.py",
	}
	for _, p := range paths {
		got, err := Resolve(p, []string{prefix}, ResolveOptions{NamespacePkgs: true})
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", p, err)
		}
		for _, name := range got {
			if strings.Contains(name, "opt") || strings.Contains(name, "site") {
				t.Errorf("Resolve(%q) produced %q containing prefix segments", p, name)
			}
		}
	}
}

func TestResolve_NameShape(t *testing.T) {
	path := "/a/b/c/d.py"

	abs, err := Resolve(path, nil, ResolveOptions{Abs: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(abs) > 1 {
		t.Errorf("abs mode returned %d names, want at most 1", len(abs))
	}

	rel, err := Resolve(path, nil, ResolveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(rel); i++ {
		if len(rel[i]) < len(rel[i-1]) {
			t.Errorf("names not non-decreasing: %v", rel)
		}
		if !strings.HasSuffix(rel[i], "."+rel[i-1]) {
			t.Errorf("%q is not an extension of %q", rel[i], rel[i-1])
		}
	}

	for _, name := range abs {
		if !slices.Contains(rel, name) {
			t.Errorf("abs name %q missing from %v", name, rel)
		}
	}
}

func TestResolve_InitAndDirectoryAgree(t *testing.T) {
	fromInit, err := Resolve("/root/pkg/__init__.py", []string{"/root"}, ResolveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	fromDir, err := Resolve("/root/pkg", []string{"/root"}, ResolveOptions{Package: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(fromDir) != 1 || fromDir[0] != "pkg" {
		t.Fatalf("directory names = %v, want [pkg]", fromDir)
	}
	if fromInit[len(fromInit)-1] != fromDir[0] {
		t.Errorf("init resolves to %v, directory to %v", fromInit, fromDir)
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"os", true},
		{"_thread", true},
		{"__init__", true},
		{"class", true},
		{"py3", true},
		{"модуль", true},
		{"", false},
		{"3d", false},
		{"bad-symbol", false},
		{"a.b", false},
		{"site packages", false},
	}
	for _, tt := range tests {
		if got := IsIdentifier(tt.in); got != tt.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsModuleName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"os.path", true},
		{"модуль", true},
		{"données.modèle", true},
		{"", false},
		{"a..b", false},
		{".a", false},
		{"site-packages.foo", false},
		{"a/b", false},
	}
	for _, tt := range tests {
		if got := IsModuleName(tt.in); got != tt.want {
			t.Errorf("IsModuleName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
