// Package requires turns the imports of Python files into package
// requirements.
//
// [Generator] is the entry point. For every input file it collects the
// imports (see package imports), removes the ones satisfied by the files
// themselves (see package provides) or by the interpreter, and renders the
// rest as requirement strings such as "python3(requests)". Compiled extension
// modules are not parsed; they require the interpreter ABI they were built
// for, read from their ELF header by [ProbeABI].
package requires
