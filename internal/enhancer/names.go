package enhancer

import (
	"regexp"
	"strings"
)

var (
	// Matches "[C] Thomas - ..." and captures the client segment.
	processedNameRe = regexp.MustCompile(`^\[[^\]]*\]\s*([^-]+)-`)

	helperSuffixRe = regexp.MustCompile(`(\s+(?:SOLO|solo)|\?|\*+)$`)
	helperPrefixRe = regexp.MustCompile(`^(\*+\s*)`)
)

// Candidates are the client-name guesses derived from a raw title: the
// primary guess (first two tokens, to catch "Thomas 2" or multi-word
// names) and the single-token fallback.
type Candidates struct {
	Primary  string
	Fallback string
}

// ExtractClientName derives client-name candidates from a raw title.
// The second return is false for non-client titles (office work, errands,
// equipment and truck service, tools); those are internal-operations
// events, not failures. Titles already in canonical bracketed form
// re-extract their client segment unchanged.
func (r *Rules) ExtractClientName(title string) (Candidates, bool) {
	if m := processedNameRe.FindStringSubmatch(title); m != nil {
		name := strings.TrimSpace(m[1])
		return Candidates{Primary: name, Fallback: name}, true
	}

	clean := stripStars(title)

	if containsAny(strings.ToLower(clean), r.NonClientKeywords) {
		return Candidates{}, false
	}

	// Keep only the text before the first separator present, checked in
	// priority order.
	for _, sep := range r.Separators {
		if i := strings.Index(clean, sep); i >= 0 {
			clean = strings.TrimSpace(clean[:i])
			break
		}
	}

	words := strings.Fields(clean)
	switch {
	case len(words) >= 2:
		return Candidates{Primary: words[0] + " " + words[1], Fallback: words[0]}, true
	case len(words) == 1:
		return Candidates{Primary: words[0], Fallback: words[0]}, true
	}
	clean = strings.TrimSpace(clean)
	return Candidates{Primary: clean, Fallback: clean}, true
}

// MapHelperName normalizes an informal helper name to its canonical form
// while preserving any leading star run and trailing modifiers
// (" SOLO", "?", "*"). Modifiers are never lost or duplicated.
func (r *Rules) MapHelperName(name string) string {
	if name == "" {
		return name
	}

	suffix := ""
	if loc := helperSuffixRe.FindStringIndex(name); loc != nil {
		suffix = name[loc[0]:]
		name = name[:loc[0]]
	}

	prefix := ""
	if loc := helperPrefixRe.FindStringIndex(name); loc != nil {
		prefix = name[:loc[1]]
		name = name[loc[1]:]
	}

	core := strings.TrimSpace(name)
	if canonical, ok := r.HelperNames[strings.ToLower(core)]; ok {
		core = canonical
	}
	return prefix + core + suffix
}
