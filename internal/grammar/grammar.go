// Package grammar implements the core CFG-to-CNF pipeline: parsing grammar
// text, normalizing it into Chomsky Normal Form, indexing it for CYK, and
// recognizing or sampling token sequences against it.
//
// File readers, the CLI, and the pretty-printer are deliberately not part
// of this package; see internal/cfgio and cmd/cfgcyk for those concerns.
package grammar

import (
	"github.com/dekarrin/cfgcyk/internal/cfgerr"
	"github.com/dekarrin/cfgcyk/internal/util"
)

// Triplet is a CYK binary-rule index entry: production A has RHS [LHS(B),
// LHS(C)]. All three are indices into Grammar.Productions.
type Triplet struct {
	A, B, C int
}

// Grammar is a CNF-normalized context-free grammar, built once and then
// queried via Recognize and Sample.
type Grammar struct {
	Start       string
	Productions []Production
	Triplets    []Triplet

	// byLHS maps a variable name to the indices in Productions whose Symbol
	// equals that name, in Productions order. It exists purely to avoid
	// linear scans; Productions remains the canonical, order-preserving
	// representation (load-bearing for sampling, per spec §9).
	byLHS map[string][]int
}

// New parses text as grammar source and normalizes the result into Chomsky
// Normal Form, ready for Recognize and Sample.
func New(text string) (*Grammar, error) {
	start, prods, err := ParseGrammar(text)
	if err != nil {
		return nil, err
	}

	g := &Grammar{Start: start, Productions: prods}
	g.reindex()

	if !g.alreadyCNF() {
		g.isolateStart()
		g.eliminateEpsilon()
		g.eliminateUnitProductions()
		g.pruneUnreachable()
		g.isolateTerminals()
		g.splitLongProductions()
	}

	if err := g.checkInvariants(); err != nil {
		return nil, err
	}

	g.buildTriplets()
	return g, nil
}

// isVariable returns whether sym appears as the left-hand side of at least
// one production, i.e. whether it is a variable as opposed to a terminal.
func (g *Grammar) isVariable(sym string) bool {
	_, ok := g.byLHS[sym]
	return ok
}

// reindex rebuilds byLHS from the current Productions slice.
func (g *Grammar) reindex() {
	g.byLHS = make(map[string][]int, len(g.Productions))
	for i, p := range g.Productions {
		g.byLHS[p.Symbol] = append(g.byLHS[p.Symbol], i)
	}
}

// hasProduction reports whether the exact production (sym, value) is
// already present.
func (g *Grammar) hasProduction(sym string, value []string) bool {
	for _, idx := range g.byLHS[sym] {
		if (Production{Symbol: sym, Value: g.Productions[idx].Value}).Equal(Production{Symbol: sym, Value: value}) {
			return true
		}
	}
	return false
}

// addProduction appends (sym, value) to Productions and updates byLHS,
// suppressing exact duplicates. Returns whether it was actually added.
func (g *Grammar) addProduction(sym string, value []string) bool {
	if g.hasProduction(sym, value) {
		return false
	}
	g.byLHS[sym] = append(g.byLHS[sym], len(g.Productions))
	g.Productions = append(g.Productions, Production{Symbol: sym, Value: value})
	return true
}

// removeProductions drops every production for which keep(p) is false,
// preserving the relative order of the rest, and reindexes.
func (g *Grammar) removeProductions(keep func(Production) bool) {
	filtered := g.Productions[:0:0]
	for _, p := range g.Productions {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	g.Productions = filtered
	g.reindex()
}

// alreadyCNF reports whether every production's right-hand side already has
// CNF shape (length 1 terminal, or length 2 variables), the start symbol is
// unused on any RHS, and every variable is reachable from Start. This is a
// pure optimization (grounded on original_source/src/cfg.rs's is_cnf): when
// it holds we skip the five normalization passes outright, since none of
// them would have anything left to do, including pruneUnreachable.
func (g *Grammar) alreadyCNF() bool {
	for _, p := range g.Productions {
		switch len(p.Value) {
		case 1:
			if g.isVariable(p.Value[0]) || p.IsNull() {
				return false
			}
		case 2:
			if !g.isVariable(p.Value[0]) || !g.isVariable(p.Value[1]) {
				return false
			}
		default:
			return false
		}
	}
	if !g.startUnused() {
		return false
	}
	return g.allReachableFromStart()
}

func (g *Grammar) startUnused() bool {
	for _, p := range g.Productions {
		if contains(p.Value, g.Start) {
			return false
		}
	}
	return true
}

// allReachableFromStart reports whether every production's LHS is reachable
// from Start by repeated RHS expansion, i.e. whether pruneUnreachable would
// remove nothing.
func (g *Grammar) allReachableFromStart() bool {
	reachable := g.reachableFromStart()
	for _, p := range g.Productions {
		if !reachable.Has(p.Symbol) {
			return false
		}
	}
	return true
}

// reachableFromStart computes the set of variables reachable from Start by
// repeated RHS expansion.
func (g *Grammar) reachableFromStart() util.KeySet[string] {
	reachable := util.NewKeySet[string]()
	queue := []string{g.Start}
	reachable.Add(g.Start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, idx := range g.byLHS[cur] {
			for _, sym := range g.Productions[idx].Value {
				if !g.isVariable(sym) {
					continue
				}
				if !reachable.Has(sym) {
					reachable.Add(sym)
					queue = append(queue, sym)
				}
			}
		}
	}

	return reachable
}

// isolateStart implements spec §4.3.1: if the start symbol appears on any
// RHS, introduce a fresh start symbol that simply derives the old one.
func (g *Grammar) isolateStart() {
	if g.startUnused() {
		return
	}

	newStart := freshName(g.Start, g.isVariable)
	g.addProduction(newStart, []string{g.Start})
	g.Start = newStart
}

// eliminateEpsilon implements spec §4.3.2. Only variables nullable in the
// original grammar (N0) are considered; this does not iterate to a fixed
// point over transitively-nullable variables introduced by the rewrite
// itself, matching the open issue recorded in spec §9 and DESIGN.md.
//
// Productions added while processing one member of N0 are visible to the
// processing of later members (so "A -> X Y" with both X and Y in N0 still
// loses both in the end), but a variable that only becomes nullable as a
// side effect of this pass is never added to the working set.
func (g *Grammar) eliminateEpsilon() {
	var n0 []string
	seen := map[string]bool{}
	for _, p := range g.Productions {
		if p.IsNull() && !seen[p.Symbol] {
			seen[p.Symbol] = true
			n0 = append(n0, p.Symbol)
		}
	}

	for _, x := range n0 {
		snapshot := make([]Production, len(g.Productions))
		copy(snapshot, g.Productions)

		for _, p := range snapshot {
			if !contains(p.Value, x) {
				continue
			}
			for _, v := range VariantsRemoving(p, x) {
				g.addProduction(p.Symbol, v)
			}
		}
	}

	g.removeProductions(func(p Production) bool { return !p.IsNull() })
}

// eliminateUnitProductions implements spec §4.3.3, repeating until no unit
// productions (A -> B, B a variable) remain.
func (g *Grammar) eliminateUnitProductions() {
	for {
		type pair struct{ a, b string }
		var pairs []pair

		for _, p := range g.Productions {
			if p.IsUnit() && g.isVariable(p.Value[0]) {
				pairs = append(pairs, pair{p.Symbol, p.Value[0]})
			}
		}

		if len(pairs) == 0 {
			return
		}

		for _, pr := range pairs {
			for _, idx := range g.byLHS[pr.b] {
				g.addProduction(pr.a, g.Productions[idx].Value)
			}
		}

		g.removeProductions(func(p Production) bool {
			for _, pr := range pairs {
				if p.Symbol == pr.a && p.IsUnit() && p.Value[0] == pr.b {
					return false
				}
			}
			return true
		})
	}
}

// pruneUnreachable implements spec §4.3.4: keep only the variables
// reachable from Start by repeated RHS expansion, and the productions whose
// LHS is one of them.
func (g *Grammar) pruneUnreachable() {
	reachable := g.reachableFromStart()
	g.removeProductions(func(p Production) bool { return reachable.Has(p.Symbol) })
}

// isolateTerminals implements spec §4.3.5: in any RHS of length >= 2 that
// mixes in a terminal, replace each terminal occurrence with a fresh
// variable synthesized from it (reused across the whole grammar), adding
// one production for that fresh variable to derive the terminal.
func (g *Grammar) isolateTerminals() {
	isVarBefore := make(map[string]bool, len(g.byLHS))
	for v := range g.byLHS {
		isVarBefore[v] = true
	}

	synthesized := make(map[string]string)
	taken := func(name string) bool { return isVarBefore[name] }

	synthFor := func(t string) string {
		if name, ok := synthesized[t]; ok {
			return name
		}
		name := freshName(t, taken)
		synthesized[t] = name
		isVarBefore[name] = true
		return name
	}

	for i, p := range g.Productions {
		if len(p.Value) < 2 {
			continue
		}
		changed := false
		newValue := make([]string, len(p.Value))
		for j, sym := range p.Value {
			if isVarBefore[sym] {
				newValue[j] = sym
				continue
			}
			newValue[j] = synthFor(sym)
			changed = true
		}
		if changed {
			g.Productions[i].Value = newValue
		}
	}

	for t, v := range synthesized {
		g.addProduction(v, []string{t})
	}
	g.reindex()
}

// splitLongProductions implements spec §4.3.6: repeatedly fold the last two
// RHS symbols of any over-length production into a fresh variable named by
// their concatenation, until every RHS has length <= 2. Identical tails
// share the same synthesized variable, by construction of the name.
func (g *Grammar) splitLongProductions() {
	for i := range g.Productions {
		// Copy first: earlier passes may share one RHS slice between
		// several productions, and the fold below reuses its backing array.
		value := append([]string(nil), g.Productions[i].Value...)
		for len(value) > 2 {
			x, y := value[len(value)-2], value[len(value)-1]
			xy := x + y
			g.addProduction(xy, []string{x, y})
			value = append(value[:len(value)-2], xy)
		}
		g.Productions[i].Value = value
	}
	g.reindex()
}

// checkInvariants verifies the RHS-shape and start-symbol postconditions of
// spec §3 that must hold after normalization; reachability and the absence
// of epsilon productions are not re-checked here. A violation here is a bug in the normalizer, not a
// malformed-input condition (spec §7).
func (g *Grammar) checkInvariants() error {
	for _, p := range g.Productions {
		switch len(p.Value) {
		case 1:
			if g.isVariable(p.Value[0]) {
				return cfgerr.InvariantViolation("production %s has a length-1 RHS that is a variable", p)
			}
		case 2:
			if !g.isVariable(p.Value[0]) || !g.isVariable(p.Value[1]) {
				return cfgerr.InvariantViolation("production %s has a length-2 RHS that is not two variables", p)
			}
		default:
			return cfgerr.InvariantViolation("production %s has RHS length %d after normalization", p, len(p.Value))
		}
	}
	if !g.startUnused() {
		return cfgerr.InvariantViolation("start symbol %q appears on a right-hand side after normalization", g.Start)
	}
	return nil
}

// buildTriplets populates Triplets per spec §4.4: for every production a
// with a length-2 RHS [β, γ], one triplet per pair of productions whose
// LHS is β and γ respectively.
func (g *Grammar) buildTriplets() {
	g.Triplets = g.Triplets[:0]
	for a, p := range g.Productions {
		if len(p.Value) != 2 {
			continue
		}
		for _, b := range g.byLHS[p.Value[0]] {
			for _, c := range g.byLHS[p.Value[1]] {
				g.Triplets = append(g.Triplets, Triplet{A: a, B: b, C: c})
			}
		}
	}
}
