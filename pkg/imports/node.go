package imports

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// refKind is the result of classifying one syntax node.
type refKind int

const (
	kindOther refKind = iota
	kindAbsoluteImport
	kindRelativeImport
	kindDynamicCall       // __import__("m")
	kindDynamicModuleCall // importlib.import_module("m")
)

// importedName is one name listed after "import", with its line.
type importedName struct {
	name string
	line int
}

// ref is a classified node. Which fields are set depends on kind.
type ref struct {
	kind     refKind
	line     int
	module   string         // import statements: source module; calls: literal argument
	level    int            // relative imports: number of leading dots
	names    []importedName // from-imports: imported names; plain imports: modules
	wildcard bool           // from M import *
	plain    bool           // import M1, M2
}

// compoundStatements are the statements whose bodies only run on some paths.
var compoundStatements = map[string]bool{
	"if_statement":         true,
	"for_statement":        true,
	"while_statement":      true,
	"try_statement":        true,
	"with_statement":       true,
	"function_definition":  true,
	"class_definition":     true,
	"decorated_definition": true,
	"match_statement":      true,
}

func isCompound(n *sitter.Node) bool {
	return compoundStatements[n.Type()]
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// classify inspects n once and reports what kind of module reference it is.
func classify(n *sitter.Node, src []byte) ref {
	switch n.Type() {
	case "import_statement":
		return classifyImport(n, src)
	case "import_from_statement", "future_import_statement":
		return classifyFromImport(n, src)
	case "call":
		return classifyCall(n, src)
	}
	return ref{kind: kindOther}
}

func classifyImport(n *sitter.Node, src []byte) ref {
	r := ref{kind: kindAbsoluteImport, line: line(n), plain: true}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if name := importTarget(child, src); name != "" {
			r.names = append(r.names, importedName{name: name, line: line(child)})
		}
	}
	return r
}

func classifyFromImport(n *sitter.Node, src []byte) ref {
	r := ref{kind: kindAbsoluteImport, line: line(n)}
	if n.Type() == "future_import_statement" {
		r.module = "__future__"
	}

	sawImport := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "import":
			sawImport = true
		case "relative_import":
			r.kind = kindRelativeImport
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				switch gc.Type() {
				case "import_prefix":
					r.level = strings.Count(gc.Content(src), ".")
				case "dotted_name":
					r.module = dottedName(gc, src)
				}
			}
		case "dotted_name":
			if !sawImport {
				r.module = dottedName(child, src)
				continue
			}
			r.names = append(r.names, importedName{name: dottedName(child, src), line: line(child)})
		case "aliased_import":
			if name := importTarget(child, src); name != "" {
				r.names = append(r.names, importedName{name: name, line: line(child)})
			}
		case "wildcard_import":
			r.wildcard = true
		}
	}
	return r
}

func classifyCall(n *sitter.Node, src []byte) ref {
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")
	if fn == nil || args == nil {
		return ref{kind: kindOther}
	}

	var kind refKind
	switch fn.Type() {
	case "identifier":
		if fn.Content(src) != "__import__" {
			return ref{kind: kindOther}
		}
		kind = kindDynamicCall
	case "attribute":
		obj := fn.ChildByFieldName("object")
		attr := fn.ChildByFieldName("attribute")
		if obj == nil || attr == nil || obj.Type() != "identifier" ||
			obj.Content(src) != "importlib" || attr.Content(src) != "import_module" {
			return ref{kind: kindOther}
		}
		kind = kindDynamicModuleCall
	default:
		return ref{kind: kindOther}
	}

	arg := firstArgument(args)
	if arg == nil {
		return ref{kind: kindOther}
	}
	module, ok := stringLiteral(arg, src)
	if !ok {
		return ref{kind: kindOther}
	}
	return ref{kind: kind, line: line(n), module: module}
}

// importTarget returns the module named by a dotted_name or aliased_import.
func importTarget(n *sitter.Node, src []byte) string {
	switch n.Type() {
	case "dotted_name":
		return dottedName(n, src)
	case "aliased_import":
		if name := n.ChildByFieldName("name"); name != nil {
			return dottedName(name, src)
		}
	}
	return ""
}

// dottedName joins the identifiers of a dotted_name node, dropping any
// whitespace or comments between them.
func dottedName(n *sitter.Node, src []byte) string {
	if n.Type() != "dotted_name" {
		return n.Content(src)
	}
	parts := make([]string, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "identifier" {
			parts = append(parts, child.Content(src))
		}
	}
	return strings.Join(parts, ".")
}

func firstArgument(args *sitter.Node) *sitter.Node {
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() != "comment" {
			return child
		}
	}
	return nil
}

// stringLiteral returns the value of a plain string literal. Byte strings,
// f-strings, concatenations and literals with escapes are rejected.
func stringLiteral(n *sitter.Node, src []byte) (string, bool) {
	if n.Type() != "string" {
		return "", false
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		switch n.NamedChild(i).Type() {
		case "interpolation", "escape_sequence":
			return "", false
		}
	}

	text := n.Content(src)
	q := strings.IndexAny(text, `"'`)
	if q < 0 || strings.ContainsAny(strings.ToLower(text[:q]), "bf") {
		return "", false
	}
	body := text[q:]
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if len(body) >= 2*len(quote) && strings.HasPrefix(body, quote) && strings.HasSuffix(body, quote) {
			value := body[len(quote) : len(body)-len(quote)]
			if strings.Contains(value, `\`) {
				return "", false
			}
			return value, true
		}
	}
	return "", false
}
