package grammar

import (
	"math/rand"
	"strings"

	"github.com/dekarrin/cfgcyk/internal/cfgerr"
)

// DefaultMaxSampleSteps bounds the number of leftmost-variable expansions a
// single call to Sample will perform before giving up on a derivation that
// isn't terminating. Spec §7 (SampleNonTerminating) leaves this knob to the
// implementation; internal/cfgconfig lets a caller override it.
const DefaultMaxSampleSteps = 10000

// Sample draws one uniform-at-each-choice random derivation from g's
// language, expanding the leftmost variable by choosing uniformly among its
// productions (in the order they appear in g.Productions) until no
// variables remain, per spec §4.6. rng supplies the randomness; maxSteps
// bounds the number of expansions, returning cfgerr.ErrSampleStepLimit if
// exceeded rather than looping forever on an unbounded-expansion grammar.
func (g *Grammar) Sample(rng *rand.Rand, maxSteps int) (string, error) {
	seq := []string{g.Start}

	for steps := 0; ; steps++ {
		idx := leftmostVariable(g, seq)
		if idx < 0 {
			break
		}
		if steps >= maxSteps {
			return "", cfgerr.ErrSampleStepLimit
		}

		choices := g.byLHS[seq[idx]]
		chosen := g.Productions[choices[rng.Intn(len(choices))]].Value

		expanded := make([]string, 0, len(seq)-1+len(chosen))
		expanded = append(expanded, seq[:idx]...)
		expanded = append(expanded, chosen...)
		expanded = append(expanded, seq[idx+1:]...)
		seq = expanded
	}

	return strings.Join(seq, ""), nil
}

// SampleN draws n independent samples via Sample, stopping at the first
// error (most likely cfgerr.ErrSampleStepLimit).
func (g *Grammar) SampleN(rng *rand.Rand, n int, maxSteps int) ([]string, error) {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := g.Sample(rng, maxSteps)
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

func leftmostVariable(g *Grammar, seq []string) int {
	for i, sym := range seq {
		if g.isVariable(sym) {
			return i
		}
	}
	return -1
}
