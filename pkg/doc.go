// Package pkg holds the py3dephell libraries.
//
// Provides and requires are computed in layers, leaf first:
//
//	[pymod]      file paths to dotted module names, search prefixes, .pth files
//	[provides]   provide sets for a batch of files
//	[imports]    import statements extracted from Python source with tree-sitter
//	[requires]   filtering, formatting and the parallel requires generator
//	[depgraph]   requirement graphs as DOT or SVG
//
// Supporting packages: [cache] stores extraction results, [config] loads
// settings, [errors] carries error codes, [observability] exposes scan and
// cache hooks, and [buildinfo] holds the version.
//
// A typical requires run:
//
//	g := &requires.Generator{
//	    Prefixes: []string{"/usr/lib/python3/site-packages"},
//	    SkipSubs: true,
//	}
//	results, err := g.Generate(ctx, files)
//
// [pymod]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/pymod
// [provides]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/provides
// [imports]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/imports
// [requires]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/requires
// [depgraph]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/depgraph
// [cache]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/cache
// [config]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/config
// [errors]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/errors
// [observability]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/altlinux/py3dephell/pkg/buildinfo
package pkg
