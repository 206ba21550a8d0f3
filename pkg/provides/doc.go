// Package provides computes the module names a set of installed Python
// files makes importable.
//
// A [Builder] groups the input files by their top-level module, walks each
// group with [Search] and returns one [Entry] per group. Unless disabled, it
// then reads .pth files found in the search prefixes and runs a second pass
// with the extended prefix list, so modules installed into directories that
// only a .pth file puts on the path still get their short names.
//
//	b := provides.Builder{Prefixes: []string{"/usr/lib/python3/site-packages"}}
//	entries, err := b.Build(files)
//	for path, e := range entries {
//		fmt.Println(path, e.Package, e.Provides)
//	}
package provides
