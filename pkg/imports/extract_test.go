package imports

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/altlinux/py3dephell/pkg/errors"
)

type refs = map[string][]int

func equalRefs(a, b refs) bool {
	return maps.EqualFunc(a, b, func(x, y []int) bool { return slices.Equal(x, y) })
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		code      string
		extractor Extractor
		want      Imports
	}{
		{
			name: "all kinds",
			path: "/pkg/module.py",
			code: "__import__(\"os\")\n__import__(\"ast\")\nfrom . import requests\nfrom os import path\n",
			want: Imports{
				Absolute: refs{"os.path": {4}},
				Relative: refs{"pkg.requests": {3}},
				Dynamic:  refs{"os": {1}, "ast": {2}},
			},
		},
		{
			name:      "try block with only external",
			path:      "/pkg/module.py",
			code:      "try:\n    import os\nexcept ImportError:\n    import sys\n",
			extractor: Extractor{OnlyExternal: true},
			want: Imports{
				Conditional: refs{"os": {2}, "sys": {4}},
			},
		},
		{
			name: "try block without only external",
			path: "/pkg/module.py",
			code: "try:\n    import os\nexcept ImportError:\n    import sys\n",
			want: Imports{
				Absolute: refs{"os": {2}, "sys": {4}},
			},
		},
		{
			name: "plain imports with aliases",
			path: "/m.py",
			code: "import a.b as c, d\nimport os\nimport os\n",
			want: Imports{
				Absolute: refs{"a.b": {1}, "d": {1}, "os": {2, 3}},
			},
		},
		{
			name:      "skip subs",
			path:      "/m.py",
			code:      "from a.b import c, d\nfrom x import y as z\n",
			extractor: Extractor{SkipSubs: true},
			want: Imports{
				Absolute: refs{"a.b": {1}, "x": {2}},
			},
		},
		{
			name: "wildcard and aliased names",
			path: "/m.py",
			code: "from x import *\nfrom y import z as w\n",
			want: Imports{
				Absolute: refs{"x": {1}, "y.z": {2}},
			},
		},
		{
			name: "parenthesized names keep their lines",
			path: "/m.py",
			code: "from os import (\n    path,\n    sep,\n)\n",
			want: Imports{
				Absolute: refs{"os.path": {2}, "os.sep": {3}},
			},
		},
		{
			name: "future import",
			path: "/m.py",
			code: "from __future__ import annotations\n",
			want: Imports{
				Absolute: refs{"__future__.annotations": {1}},
			},
		},
		{
			name:      "relative import with prefix",
			path:      "/usr/lib/py/pkg/sub/mod.py",
			code:      "from ..util import helper\n",
			extractor: Extractor{Prefixes: []string{"/usr/lib/py"}},
			want: Imports{
				Relative: refs{"pkg.util.helper": {1}},
			},
		},
		{
			name: "dynamic calls",
			path: "/m.py",
			code: `import importlib
importlib.import_module("json")
__import__(f"x{y}")
__import__(f"plain")
__import__("a" + b)
__import__(name)
__import__(b"bytes")
__import__("a" "b")
__import__("")
mod = __import__('yaml')
`,
			want: Imports{
				Absolute: refs{"importlib": {1}},
				Dynamic:  refs{"json": {2}, "yaml": {10}},
			},
		},
		{
			name: "function bodies are searched",
			path: "/m.py",
			code: "def f():\n    import json\n    return json\n\nclass C:\n    from os import sep\n",
			want: Imports{
				Absolute: refs{"json": {2}, "os.sep": {6}},
			},
		},
		{
			name: "non-ascii dynamic names",
			path: "/m.py",
			code: "importlib.import_module(\"модуль\")\n__import__(\"données.modèle\")\n__import__(\"bad-name\")\n",
			want: Imports{
				Dynamic: refs{"модуль": {1}, "données.modèle": {2}},
			},
		},
		{
			name: "relative names share the statement line",
			path: "/pkg/m.py",
			code: "from . import (a,\n    b)\nfrom os import (path,\n    sep)\n",
			want: Imports{
				Absolute: refs{"os.path": {3}, "os.sep": {4}},
				Relative: refs{"pkg.a": {1}, "pkg.b": {1}},
			},
		},
		{
			name:      "simple statements stay unconditional",
			path:      "/m.py",
			code:      "x = __import__(\"os\")\nif x:\n    y = __import__(\"sys\")\n",
			extractor: Extractor{OnlyExternal: true},
			want: Imports{
				Dynamic:     refs{"os": {1}},
				Conditional: refs{"sys": {3}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.extractor.Extract(context.Background(), tt.path, []byte(tt.code))
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			want := tt.want.Normalize()
			for _, k := range Kinds {
				if !equalRefs(got.Of(k), want.Of(k)) {
					t.Errorf("%s = %v, want %v", k, got.Of(k), want.Of(k))
				}
			}
		})
	}
}

func TestExtract_InvalidSyntax(t *testing.T) {
	var e Extractor
	got, err := e.Extract(context.Background(), "/m.py", []byte("import os\ndef (:\n"))
	if !errors.Is(err, errors.ErrCodeInvalidSyntax) {
		t.Fatalf("Extract() error = %v, want %s", err, errors.ErrCodeInvalidSyntax)
	}
	if got == nil || got.Len() != 0 {
		t.Errorf("Extract() = %+v, want empty maps", got)
	}
}

func TestExtract_Python2Syntax(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"print statement", "import os\nprint 'hello'\n"},
		{"print chevron", "import sys\nprint >>sys.stderr, 'x'\n"},
		{"exec statement", "import os\nexec 'x = 1'\n"},
		{"except comma", "import os\ntry:\n    pass\nexcept Exception, e:\n    pass\n"},
		{"backticks", "import os\nx = `1`\n"},
		{"old octal", "import os\nx = 0777\n"},
		{"long integer", "import os\nx = 10L\n"},
		{"not-equal operator", "import os\nx = 1 <> 2\n"},
		{"missing token", "import os\nx = (1,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Extractor
			got, err := e.Extract(context.Background(), "/pkg/m.py", []byte(tt.code))
			if !errors.Is(err, errors.ErrCodeInvalidSyntax) {
				t.Fatalf("Extract() error = %v, want %s", err, errors.ErrCodeInvalidSyntax)
			}
			if got == nil || got.Len() != 0 {
				t.Errorf("Extract() = %+v, want empty maps", got)
			}
		})
	}
}

func TestExtract_Python3SyntaxAccepted(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"print call", "import os\nprint('hello', end='')\n"},
		{"exec call", "import os\nexec('x = 1')\n"},
		{"modern octal", "import os\nx = 0o777 + 0x1F + 0b1 + 00 + 1_000\n"},
		{"except tuple", "import os\ntry:\n    pass\nexcept (OSError, ValueError) as e:\n    pass\n"},
		{"backtick in string and comment", "import os\nx = '`1`'  # `x`\n"},
		{"line continuation", "import os, \\\n    sys\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Extractor
			got, err := e.Extract(context.Background(), "/pkg/m.py", []byte(tt.code))
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if _, ok := got.Absolute["os"]; !ok {
				t.Errorf("Absolute = %v, want os", got.Absolute)
			}
		})
	}
}

func TestExtract_Empty(t *testing.T) {
	var e Extractor
	got, err := e.Extract(context.Background(), "/m.py", nil)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Extract() = %+v, want empty", got)
	}
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	if err := os.WriteFile(path, []byte("import requests\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := Extractor{}
	got, err := e.ExtractFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractFile() error: %v", err)
	}
	if !equalRefs(got.Absolute, refs{"requests": {1}}) {
		t.Errorf("Absolute = %v", got.Absolute)
	}

	_, err = e.ExtractFile(context.Background(), filepath.Join(dir, "missing.py"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ExtractFile(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestImports_Names(t *testing.T) {
	im := New()
	im.Add(Absolute, "b", 2)
	im.Add(Absolute, "a", 1)
	im.Add(Dynamic, "c", 3)

	if got := im.Names(Absolute); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names(Absolute) = %v", got)
	}
	if im.Len() != 3 {
		t.Errorf("Len() = %d, want 3", im.Len())
	}
	if Conditional.String() != "conditional" || Kind(9).String() != "Kind(9)" {
		t.Error("unexpected Kind.String()")
	}
}
