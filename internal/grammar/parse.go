package grammar

import (
	"strings"

	"github.com/dekarrin/cfgcyk/internal/cfgerr"
)

// ParseGrammar turns grammar text (spec §4.1 / §6) into a start symbol and
// an ordered list of productions, one per alternative, in line-then-
// alternative order.
//
// Blank lines are skipped wherever they appear (grounded on
// original_source/src/cfg.rs's create_var_refs, which iterates
// file_data.lines() without special-casing blanks); a non-blank line
// missing "->" or containing an empty alternative is a GrammarParseError.
func ParseGrammar(text string) (start string, productions []Production, err error) {
	lines := strings.Split(text, "\n")

	var firstLHS string
	seenAnyLine := false

	for lineNo, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		lhs, alts, perr := parseLine(line, lineNo+1)
		if perr != nil {
			return "", nil, perr
		}

		if !seenAnyLine {
			firstLHS = lhs
			seenAnyLine = true
		}

		for _, alt := range alts {
			productions = append(productions, Production{Symbol: lhs, Value: alt})
		}
	}

	if !seenAnyLine {
		return "", nil, cfgerr.ParseError(0, "grammar text contains no productions")
	}

	return firstLHS, productions, nil
}

// parseLine parses a single "LHS -> alt1 | alt2 | ..." line.
func parseLine(line string, lineNo int) (lhs string, alts [][]string, err error) {
	const arrow = " -> "

	idx := strings.Index(line, arrow)
	if idx < 0 {
		return "", nil, cfgerr.ParseError(lineNo, "missing \"->\" separator: %q", line)
	}

	lhs = strings.TrimSpace(line[:idx])
	if lhs == "" {
		return "", nil, cfgerr.ParseError(lineNo, "empty left-hand side")
	}
	if strings.ContainsAny(lhs, " \t") {
		return "", nil, cfgerr.ParseError(lineNo, "left-hand side %q must be a single symbol", lhs)
	}

	rhs := line[idx+len(arrow):]
	rawAlts := strings.Split(rhs, " | ")

	for _, rawAlt := range rawAlts {
		rawAlt = strings.TrimSpace(rawAlt)
		if rawAlt == "" {
			return "", nil, cfgerr.ParseError(lineNo, "empty alternative in %q", line)
		}

		symbols := strings.Fields(rawAlt)
		if len(symbols) == 0 {
			return "", nil, cfgerr.ParseError(lineNo, "empty alternative in %q", line)
		}
		for _, sym := range symbols {
			// A stray "|" means a separator with nothing on one side of it,
			// e.g. a trailing "a |" once the line has been trimmed.
			if sym == "|" {
				return "", nil, cfgerr.ParseError(lineNo, "empty alternative in %q", line)
			}
		}
		if len(symbols) > 1 {
			for _, sym := range symbols {
				if sym == Epsilon {
					return "", nil, cfgerr.ParseError(lineNo, "%q may only appear alone in an alternative", Epsilon)
				}
			}
		}

		alts = append(alts, symbols)
	}

	return lhs, alts, nil
}
