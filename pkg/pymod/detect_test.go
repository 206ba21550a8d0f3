package pymod

import (
	"maps"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		prefixes   []string
		wantPrefix string
		wantModule string
		wantOK     bool
	}{
		{
			name:       "package below prefix",
			path:       "/sys_path/pkg/mod1.py",
			prefixes:   []string{"/sys_path/", "/", ""},
			wantPrefix: "/sys_path",
			wantModule: "pkg",
			wantOK:     true,
		},
		{
			name:     "no matching prefix",
			path:     "/sys_path/pkg/mod1.py",
			prefixes: []string{"/bad_prefix/", "/bad_prefix2", ""},
		},
		{
			name:       "top-level module",
			path:       "/sys_path/mod1.py",
			prefixes:   []string{"/sys_path"},
			wantPrefix: "/sys_path",
			wantModule: "mod1.py",
			wantOK:     true,
		},
		{
			name:     "path equal to prefix",
			path:     "/sys_path/",
			prefixes: []string{"/sys_path"},
		},
		{
			name:     "sibling directory sharing a name prefix",
			path:     "/sys_path2/pkg/mod.py",
			prefixes: []string{"/sys_path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref, mod, ok := Detect(tt.path, tt.prefixes)
			if ok != tt.wantOK || pref != tt.wantPrefix || mod != tt.wantModule {
				t.Errorf("Detect(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.path, pref, mod, ok, tt.wantPrefix, tt.wantModule, tt.wantOK)
			}
		})
	}
}

var classifyFiles = []string{
	"/libs_pref/top_module.py",
	"/libs_pref/top_pkg",
	"/libs_pref/top_pkg/__init__.py",
	"/pkgs_pref/package/",
	"/pkgs_pref/package/module.py",
	"/somewhere/else.py",
}

func TestClassify_OnlyPrefix(t *testing.T) {
	got := Classify(classifyFiles, []string{"/libs_pref", "/pkgs_pref/"}, ClassifyOptions{OnlyPrefix: true})
	want := map[string]string{
		"/libs_pref/top_module.py":       "top_module.py",
		"/libs_pref/top_pkg":             "top_pkg",
		"/libs_pref/top_pkg/__init__.py": "top_pkg",
		"/pkgs_pref/package/":            "package",
		"/pkgs_pref/package/module.py":   "package",
	}
	if !maps.Equal(got, want) {
		t.Errorf("Classify() = %v, want %v", got, want)
	}
}

func TestClassify_NoPrefixes(t *testing.T) {
	got := Classify(classifyFiles, nil, ClassifyOptions{})
	if len(got) != len(classifyFiles) {
		t.Fatalf("Classify() returned %d entries, want %d", len(got), len(classifyFiles))
	}
	for _, f := range classifyFiles {
		if mod, ok := got[f]; !ok || mod != "" {
			t.Errorf("Classify()[%q] = (%q, %v), want (\"\", true)", f, mod, ok)
		}
	}

	if got := Classify(classifyFiles, nil, ClassifyOptions{OnlyPrefix: true}); len(got) != 0 {
		t.Errorf("Classify(OnlyPrefix) = %v, want empty", got)
	}
}

func TestClassify_DeepSearch(t *testing.T) {
	files := []string{
		"/libs_pref/top_module.py",
		"/libs_pref/top_pkg/__init__.py",
		"/libs_pref/top_pkg/sub/mod.py",
		"/libs_pref/top_pkg_other.py",
	}
	got := Classify(files, []string{"/libs_pref"}, ClassifyOptions{OnlyPrefix: true, DeepSearch: true})
	want := map[string]string{
		"/libs_pref/top_module.py":    "top_module.py",
		"/libs_pref/top_pkg/":         "top_pkg",
		"/libs_pref/top_pkg_other.py": "top_pkg_other.py",
	}
	if !maps.Equal(got, want) {
		t.Errorf("Classify() = %v, want %v", got, want)
	}
}

func TestClassify_DoesNotModifyInput(t *testing.T) {
	files := []string{"/p/a.py", "/p/b.py", "/p/c.py"}
	Classify(files, []string{"/p"}, ClassifyOptions{})
	if files[0] != "/p/a.py" || files[2] != "/p/c.py" {
		t.Errorf("input reordered: %v", files)
	}
}
