// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package pdag

import (
	"fmt"
	"io"
)

// WriteDot renders the whole PDAG as a Graphviz DOT graph, following
// the same node/edge conventions as internal/bdd's WriteDot (dashed
// edges for complemented references) so the two diagram families look
// related in a report bundle.
func (p *PDAG) WriteDot(w io.Writer, varNames []string) error {
	fmt.Fprintln(w, "digraph PDAG {")
	fmt.Fprintln(w, "  rankdir=TB;")
	for _, n := range p.Nodes {
		switch n.Kind {
		case KindConstant:
			val := "0"
			if n.Value {
				val = "1"
			}
			fmt.Fprintf(w, "  n%d [shape=box,label=%q];\n", n.Index, val)
		case KindVariable:
			label := fmt.Sprintf("x%d", n.Var)
			if varNames != nil && n.Var < len(varNames) {
				label = varNames[n.Var]
			}
			fmt.Fprintf(w, "  n%d [shape=circle,label=%q];\n", n.Index, label)
		case KindGate:
			label := n.Connective.String()
			if n.K > 0 {
				label = fmt.Sprintf("%s(%d)", label, n.K)
			}
			fmt.Fprintf(w, "  n%d [shape=ellipse,label=%q];\n", n.Index, label)
			for _, a := range n.Args {
				style := "solid"
				if a.Complement {
					style = "dashed"
				}
				fmt.Fprintf(w, "  n%d -> n%d [style=%s];\n", n.Index, a.Index, style)
			}
		}
	}
	fmt.Fprintf(w, "  root -> n%d [style=%s];\n", p.Root.Index, map[bool]string{true: "dashed", false: "solid"}[p.Root.Complement])
	fmt.Fprintln(w, "}")
	return nil
}
