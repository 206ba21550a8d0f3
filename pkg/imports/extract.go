package imports

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/altlinux/py3dephell/pkg/errors"
	"github.com/altlinux/py3dephell/pkg/pymod"
)

var discardLogger = log.New(io.Discard)

// Extractor collects module references from Python sources. The zero value
// records every imported name and treats nested imports like top-level ones.
type Extractor struct {
	// Prefixes are stripped when relative imports are made absolute.
	Prefixes []string
	// OnlyExternal moves references found inside compound statements
	// (conditionals, loops, try blocks, function and class bodies) to
	// Conditional.
	OnlyExternal bool
	// SkipSubs records only the source module of "from M import a, b"
	// instead of M.a and M.b.
	SkipSubs bool
	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

func (e *Extractor) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return discardLogger
}

// ExtractFile reads and scans the file at path.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Imports, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return New(), errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file: %s", path)
		case os.IsPermission(err):
			return New(), errors.Wrap(errors.ErrCodeInvalidInput, err, "permission denied: %s", path)
		default:
			return New(), errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read %s", path)
		}
	}
	return e.Extract(ctx, path, src)
}

// Extract scans src, the contents of the file at path. path is used to
// qualify relative imports and in diagnostics.
//
// Sources with syntax errors yield empty results and an INVALID_SYNTAX error.
func (e *Extractor) Extract(ctx context.Context, path string, src []byte) (*Imports, error) {
	if len(src) == 0 {
		return New(), nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return New(), errors.Wrap(errors.ErrCodeInternal, err, "parse %s", path)
	}
	defer tree.Close()
	if err := ctx.Err(); err != nil {
		return New(), err
	}

	root := tree.RootNode()
	if root == nil || root.HasError() {
		e.logger().Warn("invalid syntax", "path", path)
		return New(), errors.New(errors.ErrCodeInvalidSyntax, "invalid syntax: %s", path)
	}
	if c, ok := findLegacy(root, src); ok {
		e.logger().Warn("invalid syntax", "path", path, "line", c.line, "found", c.what)
		return New(), errors.New(errors.ErrCodeInvalidSyntax, "invalid syntax: %s:%d: %s", path, c.line, c.what)
	}

	out := New()
	e.walk(root, src, path, false, out)
	return out, nil
}

// walk visits the children of n. Once nested is true, everything found is
// recorded as Conditional.
func (e *Extractor) walk(n *sitter.Node, src []byte, path string, nested bool, out *Imports) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		r := classify(child, src)

		switch r.kind {
		case kindAbsoluteImport:
			e.recordImport(r, r.module, Absolute, nested, out)
		case kindRelativeImport:
			module := QualifiedName(path, r.level, r.module, e.Prefixes)
			e.recordImport(r, module, Relative, nested, out)
		case kindDynamicCall, kindDynamicModuleCall:
			if !pymod.IsModuleName(r.module) {
				e.logger().Debug("skipping dynamic import", "path", path, "line", r.line, "name", r.module)
				continue
			}
			record(out, Dynamic, nested, r.module, r.line)
		case kindOther:
			e.walk(child, src, path, nested || (e.OnlyExternal && isCompound(child)), out)
		}
	}
}

func (e *Extractor) recordImport(r ref, module string, kind Kind, nested bool, out *Imports) {
	if r.plain {
		for _, n := range r.names {
			record(out, kind, nested, n.name, n.line)
		}
		return
	}
	if e.SkipSubs || r.wildcard {
		record(out, kind, nested, module, r.line)
		return
	}
	for _, n := range r.names {
		name := n.name
		if module != "" {
			name = module + "." + name
		}
		at := n.line
		if kind == Relative {
			at = r.line
		}
		record(out, kind, nested, name, at)
	}
}

func record(out *Imports, kind Kind, nested bool, name string, line int) {
	if nested {
		kind = Conditional
	}
	out.Add(kind, name, line)
}
