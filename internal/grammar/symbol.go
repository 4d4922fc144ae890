package grammar

// freshName synthesizes a variable name derived from base that is not
// already a variable in the grammar, per the rule in spec §9: repeatedly
// extend the suffix until the name is unused. taken reports whether a
// candidate name is already spoken for (by the grammar's variables, or by
// names already handed out earlier in the same pass).
//
// Used by two of the three synthesis sites: start-symbol isolation and
// terminal isolation. Long-production splitting uses its own simpler
// concatenation rule and does not call this helper (see grammar.go).
func freshName(base string, taken func(string) bool) string {
	name := base
	for {
		name += FreshSuffix
		if !taken(name) {
			return name
		}
	}
}
