// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package report

import (
	"fmt"
	"io"
)

// WriteDot renders r's minimal cut sets as a Graphviz DOT graph: one
// node per product, fanning out to the literals it contains, following
// the same node-shape conventions as internal/pdag and internal/bdd's
// WriteDot (box for a fixed outcome, ellipse for a combination, circle
// for a leaf literal) so all three diagram families read consistently
// in a report bundle.
func (r Report) WriteDot(w io.Writer) error {
	fmt.Fprintln(w, "digraph CutSets {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintf(w, "  top [shape=box,label=%q];\n", fmt.Sprintf("%s\\nP=%.3g", r.ModelName, r.TopEvent.Probability))

	seen := make(map[string]bool)
	for i, p := range r.Products {
		pname := fmt.Sprintf("p%d", i)
		fmt.Fprintf(w, "  %s [shape=ellipse,label=%q];\n", pname, fmt.Sprintf("P=%.3g", p.Probability))
		fmt.Fprintf(w, "  top -> %s;\n", pname)
		for _, lit := range p.Literals {
			node := "lit_" + sanitize(lit)
			if !seen[node] {
				fmt.Fprintf(w, "  %s [shape=circle,label=%q];\n", node, lit)
				seen[node] = true
			}
			fmt.Fprintf(w, "  %s -> %s;\n", pname, node)
		}
	}
	fmt.Fprintln(w, "}")
	return nil
}

// sanitize turns a literal like "!b" into a valid unquoted DOT
// identifier fragment.
func sanitize(lit string) string {
	out := make([]byte, len(lit))
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			out[i] = c
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
