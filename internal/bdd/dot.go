// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package bdd

import (
	"fmt"
	"io"
)

// WriteDot renders the sub-diagram reachable from root as a Graphviz
// DOT graph, following the teacher's printDot/dotlabel
// (dalzilio-rudd/stdio.go), adapted to label nodes with variable indices
// instead of BuDDy's level numbers and to draw dashed edges for
// complemented children.
func (m *Manager) WriteDot(w io.Writer, root Edge, varNames []string) error {
	fmt.Fprintln(w, "digraph BDD {")
	fmt.Fprintln(w, "  rankdir=TB;")
	visited := make(map[int32]bool)
	var walk func(e Edge) error
	walk = func(e Edge) error {
		idx := e.index()
		if idx == terminalIndex {
			fmt.Fprintf(w, "  n1 [shape=box,label=\"1\"];\n")
			return nil
		}
		if visited[idx] {
			return nil
		}
		visited[idx] = true
		n := m.nodes[idx]
		label := fmt.Sprintf("%d", n.level)
		if varNames != nil && int(n.level) < len(varNames) {
			label = varNames[n.level]
		}
		fmt.Fprintf(w, "  n%d [shape=ellipse,label=%q];\n", idx, label)
		if err := walk(n.low.withComplement(false)); err != nil {
			return err
		}
		if err := walk(n.high.withComplement(false)); err != nil {
			return err
		}
		lowStyle := "solid"
		if n.low.Complement() {
			lowStyle = "dashed"
		}
		highStyle := "solid"
		if n.high.Complement() {
			highStyle = "dashed"
		}
		fmt.Fprintf(w, "  n%d -> %s [style=%s,label=\"0\"];\n", idx, dotTarget(n.low), lowStyle)
		fmt.Fprintf(w, "  n%d -> %s [style=%s,label=\"1\"];\n", idx, dotTarget(n.high), highStyle)
		return nil
	}
	if root.IsConst() {
		val := "1"
		if root.IsFalse() {
			val = "0"
		}
		fmt.Fprintf(w, "  n1 [shape=box,label=%q];\n", val)
		fmt.Fprintln(w, "}")
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}
	fmt.Fprintln(w, "}")
	return nil
}

func dotTarget(e Edge) string {
	return fmt.Sprintf("n%d", e.index())
}
