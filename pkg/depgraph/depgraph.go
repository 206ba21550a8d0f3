// Package depgraph exports requirement scan results as a Graphviz graph.
//
// Every scanned file becomes a box and every requirement an ellipse; an
// edge links a file to each requirement it produced, styled by how the
// dependency was found. [ToDOT] produces the DOT source and [RenderSVG]
// lays it out with the embedded Graphviz engine.
package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/altlinux/py3dephell/pkg/requires"
)

// Options configures graph export.
type Options struct {
	// TrimPrefix is removed from file labels, e.g. the build root.
	TrimPrefix string
	// SkipEmpty leaves out files without requirements.
	SkipEmpty bool
}

// edgeStyles maps each requirement kind to its edge attributes.
var edgeStyles = []struct {
	kind  string
	style string
	pick  func(requires.FileRequirements) []string
}{
	{"absolute", "solid", func(r requires.FileRequirements) []string { return r.Absolute }},
	{"relative", "dashed", func(r requires.FileRequirements) []string { return r.Relative }},
	{"dynamic", "dotted", func(r requires.FileRequirements) []string { return r.Dynamic }},
	{"binary", "bold", func(r requires.FileRequirements) []string { return r.Binary }},
}

// ToDOT converts scan results to Graphviz DOT format.
// Requirement nodes are shared, so a module needed by several files appears
// once. Output order follows results, so equal input gives equal output.
func ToDOT(results []requires.FileRequirements, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph requirements {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")

	declared := make(map[string]bool)
	var edges []string

	for _, r := range results {
		if opts.SkipEmpty && r.Empty() {
			continue
		}
		fileID := "file:" + r.Path
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=\"rounded,filled\", fillcolor=%q];\n",
			fileID, fileLabel(r.Path, opts.TrimPrefix), fileColor(r))

		for _, s := range edgeStyles {
			for _, req := range s.pick(r) {
				reqID := "req:" + req
				if !declared[reqID] {
					declared[reqID] = true
					fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", reqID, req)
				}
				edges = append(edges, fmt.Sprintf("  %q -> %q [style=%s, tooltip=%q];\n", fileID, reqID, s.style, s.kind))
			}
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fileLabel(path, trim string) string {
	if trim == "" {
		return path
	}
	rel, err := filepath.Rel(trim, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func fileColor(r requires.FileRequirements) string {
	switch {
	case r.Err != nil:
		return "mistyrose"
	case len(r.Binary) > 0:
		return "lightyellow"
	default:
		return "white"
	}
}

// RenderSVG lays out a DOT graph and returns it as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
