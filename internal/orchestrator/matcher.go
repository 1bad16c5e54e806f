package orchestrator

import "strings"

// Matcher reports whether a deck slide title and a section title refer to
// the same topic. Implementations must be symmetric and must not match an
// empty title.
type Matcher func(a, b string) bool

// LexicalOverlap matches titles that share at least one whitespace
// separated word, compared case-insensitively.
func LexicalOverlap(a, b string) bool {
	wa := words(a)
	if len(wa) == 0 {
		return false
	}
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if _, ok := wa[w]; ok {
			return true
		}
	}
	return false
}

func words(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
