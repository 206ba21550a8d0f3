package provides_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/altlinux/py3dephell/pkg/provides"
)

func ExampleBuilder_Build() {
	root, _ := os.MkdirTemp("", "site")
	defer os.RemoveAll(root)
	initFile := filepath.Join(root, "pkg", "__init__.py")
	_ = os.MkdirAll(filepath.Dir(initFile), 0o755)
	_ = os.WriteFile(initFile, nil, 0o644)

	b := provides.Builder{Prefixes: []string{root}}
	entries, err := b.Build([]string{initFile})
	if err != nil {
		panic(err)
	}
	e := entries[initFile]
	fmt.Println(e.Package, e.Provides)
	// Output: pkg [__init__ pkg.__init__ pkg]
}
