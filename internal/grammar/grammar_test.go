package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_New_CNFInvariants checks the postconditions of spec §3/§8 hold for a
// variety of grammars after construction.
func Test_New_CNFInvariants(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{name: "single terminal", text: "S -> a"},
		{name: "nullable start", text: "S -> a | #"},
		{name: "two non-terminals", text: "S -> A B\nA -> a\nB -> b"},
		{name: "nullable non-start", text: "S -> A B\nA -> a | #\nB -> b"},
		{name: "balanced brackets", text: "S -> 0 S 1 | #"},
		{name: "any binary string", text: "S -> 0 S | 1 S | #"},
		{name: "zero star one star", text: "S -> Z O\nZ -> 0 Z | #\nO -> 1 O | #"},
		{name: "long production needs splitting", text: "S -> a b c d"},
		{name: "unit chain", text: "S -> A\nA -> B\nB -> c"},
		{name: "start symbol recurses", text: "S -> S a | a"},
		{name: "already CNF-shaped but with an unreachable production", text: "S -> a\nX -> b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.text)
			require.NoError(t, err)

			for _, p := range g.Productions {
				switch len(p.Value) {
				case 1:
					assert.False(t, g.isVariable(p.Value[0]), "production %s: length-1 RHS must be a terminal", p)
				case 2:
					assert.True(t, g.isVariable(p.Value[0]), "production %s: first symbol of length-2 RHS must be a variable", p)
					assert.True(t, g.isVariable(p.Value[1]), "production %s: second symbol of length-2 RHS must be a variable", p)
				default:
					t.Fatalf("production %s has RHS length %d, want 1 or 2", p, len(p.Value))
				}
			}

			assert.True(t, g.startUnused(), "start symbol %q must not appear on any RHS", g.Start)
			assertAllReachable(t, g)
		})
	}
}

func assertAllReachable(t *testing.T, g *Grammar) {
	t.Helper()

	reachable := map[string]bool{g.Start: true}
	queue := []string{g.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, idx := range g.byLHS[cur] {
			for _, sym := range g.Productions[idx].Value {
				if !g.isVariable(sym) || reachable[sym] {
					continue
				}
				reachable[sym] = true
				queue = append(queue, sym)
			}
		}
	}

	for _, p := range g.Productions {
		assert.True(t, reachable[p.Symbol], "production %s has unreachable LHS %q", p, p.Symbol)
	}
}

// Test_New_Triplets checks triplet completeness per spec §8.
func Test_New_Triplets(t *testing.T) {
	g, err := New("S -> A B\nA -> a\nB -> b")
	require.NoError(t, err)

	want := map[Triplet]bool{}
	for a, p := range g.Productions {
		if len(p.Value) != 2 {
			continue
		}
		for b, pb := range g.Productions {
			if pb.Symbol != p.Value[0] {
				continue
			}
			for c, pc := range g.Productions {
				if pc.Symbol != p.Value[1] {
					continue
				}
				want[Triplet{A: a, B: b, C: c}] = true
			}
		}
	}

	got := map[Triplet]bool{}
	for _, tr := range g.Triplets {
		got[tr] = true
	}

	assert.Equal(t, want, got)
}

// Test_Recognize_EndToEnd runs the scenarios tabulated in spec §8.
func Test_Recognize_EndToEnd(t *testing.T) {
	testCases := []struct {
		name  string
		text  string
		input []string
		want  bool
	}{
		{name: "1: a matches", text: "S -> a", input: []string{"a"}, want: true},
		{name: "1: b does not match", text: "S -> a", input: []string{"b"}, want: false},
		{name: "1: empty input never matches", text: "S -> a", input: []string{}, want: false},
		{name: "2: nullable accepts a", text: "S -> a | #", input: []string{"a"}, want: true},
		{name: "2: nullable rejects empty", text: "S -> a | #", input: []string{}, want: false},
		{name: "3: concatenation in order", text: "S -> A B\nA -> a\nB -> b", input: []string{"a", "b"}, want: true},
		{name: "3: concatenation out of order", text: "S -> A B\nA -> a\nB -> b", input: []string{"b", "a"}, want: false},
		{name: "4: nullable A, just b", text: "S -> A B\nA -> a | #\nB -> b", input: []string{"b"}, want: true},
		{name: "4: nullable A, a then b", text: "S -> A B\nA -> a | #\nB -> b", input: []string{"a", "b"}, want: true},
		{name: "5: balanced 0 1", text: "S -> 0 S 1 | #", input: []string{"0", "1"}, want: true},
		{name: "5: balanced 00 11", text: "S -> 0 S 1 | #", input: []string{"0", "0", "1", "1"}, want: true},
		{name: "5: balanced 000 111", text: "S -> 0 S 1 | #", input: []string{"0", "0", "0", "1", "1", "1"}, want: true},
		{name: "5: unbalanced", text: "S -> 0 S 1 | #", input: []string{"0", "0", "0", "0", "1", "1", "1"}, want: false},
		{name: "6: foreign token rejected", text: "S -> 0 S | 1 S | #", input: []string{"0", "1", "2"}, want: false},
		{name: "6: arbitrary binary string", text: "S -> 0 S | 1 S | #", input: []string{"1", "0", "1", "0", "0", "1", "0", "1", "0", "0", "1"}, want: true},
		{name: "7: zero star one star short", text: "S -> Z O\nZ -> 0 Z | #\nO -> 1 O | #", input: []string{"0", "1"}, want: true},
		{name: "7: zero star one star long", text: "S -> Z O\nZ -> 0 Z | #\nO -> 1 O | #", input: []string{"0", "0", "1", "1", "1", "1", "1", "1"}, want: true},
		{name: "7: zero after one rejected", text: "S -> Z O\nZ -> 0 Z | #\nO -> 1 O | #", input: []string{"0", "0", "0", "0", "1", "1", "1", "0"}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.text)
			require.NoError(t, err)

			got := g.Recognize(tc.input)
			assert.Equal(t, tc.want, got)

			// Recognition is idempotent.
			assert.Equal(t, got, g.Recognize(tc.input))
		})
	}
}

func Test_New_ParseErrorPropagates(t *testing.T) {
	_, err := New("S a")
	require.Error(t, err)
}

// Test_New_FastPathStillPrunesUnreachable guards against the CNF fast path
// (alreadyCNF) skipping pruneUnreachable just because the grammar is
// already CNF-shaped: an unreachable production must still be dropped.
func Test_New_FastPathStillPrunesUnreachable(t *testing.T) {
	g, err := New("S -> a\nX -> b")
	require.NoError(t, err)

	for _, p := range g.Productions {
		assert.NotEqual(t, "X", p.Symbol, "unreachable production %s survived", p)
	}
	assertAllReachable(t, g)
}
