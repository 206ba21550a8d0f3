package pymod_test

import (
	"fmt"

	"github.com/altlinux/py3dephell/pkg/pymod"
)

func ExampleResolve() {
	prefixes := []string{"/usr/lib/python3/site-packages"}

	names, _ := pymod.Resolve("/usr/lib/python3/site-packages/pkg/__init__.py", prefixes, pymod.ResolveOptions{})
	fmt.Println(names)

	names, _ = pymod.Resolve("/usr/lib/python3/site-packages/pkg/mod.py", prefixes, pymod.ResolveOptions{Abs: true})
	fmt.Println(names)
	// Output:
	// [__init__ pkg.__init__ pkg]
	// [pkg.mod]
}

func ExampleDetect() {
	prefix, module, ok := pymod.Detect("/sys_path/pkg/mod1.py", []string{"/sys_path/", "/", ""})
	fmt.Println(prefix, module, ok)
	// Output: /sys_path pkg true
}
