// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package sample

import (
	"fmt"

	"github.com/scram-core/scram/internal/model"
)

// TwoOfTwoAnd builds AND(a,b) with equal basic-event probability p,
// matching SPEC_FULL.md §8 scenario 1.
func TwoOfTwoAnd(p float64) (*model.Model, error) {
	return New("and-ab", "G").
		Gate("G", model.AND, "a", "b").
		BasicEvent("a", p).
		BasicEvent("b", p).
		Build()
}

// TwoOfTwoOr builds OR(a,b) with equal basic-event probability p,
// matching scenarios 2 and 3.
func TwoOfTwoOr(p float64) (*model.Model, error) {
	return New("or-ab", "G").
		Gate("G", model.OR, "a", "b").
		BasicEvent("a", p).
		BasicEvent("b", p).
		Build()
}

// SingleNot builds NOT(a), matching scenario 5.
func SingleNot(p float64) (*model.Model, error) {
	return New("not-a", "G").
		Gate("G", model.NOT, "a").
		BasicEvent("a", p).
		Build()
}

// BetaCCFOfAnd builds AND(a,b,c) over a beta-factor CCF group {a,b,c},
// matching scenario 6.
func BetaCCFOfAnd(q, beta float64) (*model.Model, error) {
	b := New("ccf-and-abc", "G").
		Gate("G", model.AND, "a", "b", "c").
		BasicEvent("a", q).
		BasicEvent("b", q).
		BasicEvent("c", q)
	b.CCFGroup(model.CCFGroup{
		ID:      "abc",
		Model:   model.CCFBeta,
		Members: []string{"a", "b", "c"},
		Factors: []float64{beta},
	})
	return b.Build()
}

// Gen200Event builds a same-sized synthetic stand-in for the
// repository's historical 200_event.xml benchmark (SPEC_FULL.md §8
// scenario 4, original_source/tests/bench_200_event_tests.cc): a deep
// AND/OR alternating tree over 200 basic events, built in-memory since
// the XML loader itself is out of scope here. It does not reproduce
// that benchmark's topology. The generator takes no random input, so
// it builds the same structure every call: a balanced binary tree
// of alternating AND/OR gates over 200 leaves, each leaf probability a
// deterministic function of its index so the benchmark is reproducible
// without an external fixture file.
func Gen200Event(numEvents int) (*model.Model, error) {
	if numEvents < 2 {
		return nil, fmt.Errorf("gen200event: need at least 2 basic events")
	}
	b := New("200-event", "G0")
	leaves := make([]string, numEvents)
	for i := 0; i < numEvents; i++ {
		id := fmt.Sprintf("E%d", i)
		leaves[i] = id
		p := 0.001 + 0.004*float64(i%25)/25.0
		b.BasicEvent(id, p)
	}
	level := leaves
	gateCount := 0
	depth := 0
	for len(level) > 1 {
		var next []string
		connective := model.AND
		if depth%2 == 1 {
			connective = model.OR
		}
		for i := 0; i < len(level); i += 2 {
			if i+1 >= len(level) {
				next = append(next, level[i])
				continue
			}
			id := fmt.Sprintf("G%d", gateCount+1)
			gateCount++
			b.Gate(id, connective, level[i], level[i+1])
			next = append(next, id)
		}
		level = next
		depth++
	}
	// Rename the final gate to the expected root ID "G0" by adding a
	// pass-through NULL-like single-arg AND gate; this keeps the
	// generator simple while still guaranteeing a stable root name.
	b.Gate("G0", model.AND, level[0])
	return b.Build()
}
