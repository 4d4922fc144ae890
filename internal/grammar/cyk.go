package grammar

// Recognize implements the CYK algorithm of spec §4.5, deciding whether w
// (an ordered sequence of terminal tokens) is in the language generated by
// g. An empty sequence always returns false without further work (spec §7's
// EmptyInput: not an error, just a definite no).
//
// Complexity is O(n^3 * len(g.Triplets)) time and O(n^2 * len(g.Productions))
// space, trading a constant factor for the clarity of driving the inner
// loop off the precomputed triplet index (spec §4.5, §9).
func (g *Grammar) Recognize(w []string) bool {
	n := len(w)
	if n == 0 {
		return false
	}

	r := len(g.Productions)

	// table[length-1][start][production] is true iff that production's LHS
	// derives w[start : start+length].
	table := make([][][]bool, n)
	for l := range table {
		table[l] = make([][]bool, n)
		for s := range table[l] {
			table[l][s] = make([]bool, r)
		}
	}

	for s := 0; s < n; s++ {
		for v, p := range g.Productions {
			if len(p.Value) == 1 && p.Value[0] == w[s] {
				table[0][s][v] = true
			}
		}
	}

	for length := 1; length < n; length++ {
		for s := 0; s <= n-length-1; s++ {
			for split := 0; split < length; split++ {
				leftLen := split
				rightStart := s + split + 1
				rightLen := length - split - 1

				for _, t := range g.Triplets {
					if table[leftLen][s][t.B] && table[rightLen][rightStart][t.C] {
						table[length][s][t.A] = true
					}
				}
			}
		}
	}

	for v, p := range g.Productions {
		if p.Symbol == g.Start && table[n-1][0][v] {
			return true
		}
	}
	return false
}
