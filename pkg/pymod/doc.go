// Package pymod maps filesystem paths to Python module names.
//
// Python imports a module by a dotted name that depends on where the file
// sits relative to the interpreter's search path. Given a set of search
// prefixes, this package answers the questions a packaging tool asks about
// a file tree:
//
//   - [Resolve] lists every dotted name a file or package directory can be
//     imported under.
//   - [Detect] and [Classify] find which top-level module a file belongs to.
//   - [ReadPth] and [DetectPth] expand the search prefixes with directories
//     listed in .pth files.
//
// Module suffixes (".py", ".so" and the ABI-tagged extension suffixes) are
// described by a [SuffixTable].
package pymod
