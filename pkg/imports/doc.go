// Package imports finds the modules a Python source file imports.
//
// Sources are parsed with tree-sitter's Python grammar, so nothing is
// executed and files for any Python 3 version can be read. Four kinds of
// references are collected, each mapping a dotted module name to the lines
// it appears on:
//
//   - [Absolute]: import M, from M import x
//   - [Relative]: from .M import x, stored in fully-qualified form
//   - [Dynamic]: __import__("M") and importlib.import_module("M") with a
//     plain string literal argument
//   - [Conditional]: any of the above nested in a compound statement, when
//     [Extractor.OnlyExternal] is set
//
// Import targets built at runtime are invisible to a static scan and are
// not reported.
package imports
