package imports

import (
	"bytes"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// legacyIntegerRE matches Python 2 integer literals: octals without the
// "0o" prefix and long integers with an "L" suffix.
var legacyIntegerRE = regexp.MustCompile(`^(0[0-9_]*[1-9][0-9_]*|[0-9][0-9_]*[lL]|0[xXoObB][0-9a-fA-F_]+[lL])$`)

// legacyConstruct is Python 2 syntax the grammar accepts without an error
// node.
type legacyConstruct struct {
	what string
	line int
}

// findLegacy returns the first construct in the tree that Python 3 rejects:
// print and exec statements, "<>", old-style octal and long literals,
// "except E, e:", backticks, missing tokens and any source text no token
// covers.
func findLegacy(root *sitter.Node, src []byte) (legacyConstruct, bool) {
	var (
		pos   uint32
		found legacyConstruct
	)

	var visit func(n *sitter.Node) bool
	visit = func(n *sitter.Node) bool {
		if n.IsMissing() {
			found = legacyConstruct{what: "missing " + n.Type(), line: line(n)}
			return true
		}

		switch n.Type() {
		case "print_statement":
			found = legacyConstruct{what: "print statement", line: line(n)}
			return true
		case "exec_statement":
			found = legacyConstruct{what: "exec statement", line: line(n)}
			return true
		case "<>":
			found = legacyConstruct{what: `"<>" operator`, line: line(n)}
			return true
		case "integer":
			if legacyIntegerRE.MatchString(n.Content(src)) {
				found = legacyConstruct{what: "integer literal " + n.Content(src), line: line(n)}
				return true
			}
		case "except_clause":
			for i := 0; i < int(n.ChildCount()); i++ {
				if t := n.Child(i).Type(); t == "," || t == "expression_list" {
					found = legacyConstruct{what: `"except E, e" clause`, line: line(n)}
					return true
				}
			}
		}

		if n.ChildCount() == 0 || n.Type() == "string" || n.Type() == "comment" {
			if at, ok := strayText(src, pos, n.StartByte()); ok {
				found = legacyConstruct{what: "unexpected text", line: lineAt(src, at)}
				return true
			}
			if n.Type() != "string" && n.Type() != "comment" && strings.Contains(n.Content(src), "`") {
				found = legacyConstruct{what: "backtick repr", line: line(n)}
				return true
			}
			if end := n.EndByte(); end > pos {
				pos = end
			}
			return false
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			if visit(n.Child(i)) {
				return true
			}
		}
		return false
	}

	if visit(root) {
		return found, true
	}
	if at, ok := strayText(src, pos, uint32(len(src))); ok {
		return legacyConstruct{what: "unexpected text", line: lineAt(src, at)}, true
	}
	return legacyConstruct{}, false
}

// strayText reports the offset of the first byte in src[from:to] that is
// neither whitespace nor a line continuation.
func strayText(src []byte, from, to uint32) (int, bool) {
	if to <= from || int(to) > len(src) {
		return 0, false
	}
	gap := src[from:to]
	skip := 0
	if from == 0 {
		skip = len(gap) - len(bytes.TrimPrefix(gap, []byte("\ufeff")))
	}
	for i := skip; i < len(gap); i++ {
		switch gap[i] {
		case ' ', '\t', '\r', '\n', '\f', '\\':
			continue
		}
		return int(from) + i, true
	}
	return 0, false
}

func lineAt(src []byte, offset int) int {
	return bytes.Count(src[:offset], []byte("\n")) + 1
}
