package enhancer

import (
	"regexp"
	"strings"
)

var (
	noteLeadSepRe   = regexp.MustCompile(`^[|\-:\s]+`)
	maintPrefixRe   = regexp.MustCompile(`(?i)^(maintenance|maint)\s*`)
	noteLeadPunctRe = regexp.MustCompile(`^[\-()\s]+`)
	trailingWSRe    = regexp.MustCompile(`\s+$`)
)

// ExtractNotes recovers the freeform remainder of a title once the
// structural tokens are stripped. For non-client titles everything after
// the recognized keyword is the note. For client titles the client's
// leading tokens and a "maintenance"/"maint" marker are consumed from the
// front; trailing parentheses are kept since they often carry real notes.
// Without a client name there is nothing to anchor on and the note is
// empty.
func (r *Rules) ExtractNotes(title, clientName string) string {
	if title == "" {
		return ""
	}

	// Canonical titles carry their notes after the " | " segment; parsing
	// them as raw shorthand would fold the status tag into the notes on a
	// forced reprocess.
	if AlreadyProcessed(title) {
		if i := strings.Index(title, " | "); i >= 0 {
			return strings.TrimSpace(title[i+3:])
		}
		return ""
	}

	clean := stripStars(title)
	lower := strings.ToLower(clean)

	for _, kw := range r.NonClientNoteKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		notes := clean[idx+len(kw):]
		notes = noteLeadSepRe.ReplaceAllString(notes, "")
		return strings.TrimSpace(notes)
	}

	if clientName == "" {
		return ""
	}

	words := strings.Fields(clean)
	clientWords := strings.Fields(clientName)

	// Consume the client's first one or two tokens from the front of the
	// title. Display names may carry extra tokens (a parenthetical code)
	// that never appear in the shorthand, so only the leading pair is
	// tried.
	start := 0
	switch {
	case len(clientWords) >= 2:
		if len(words) >= 2 && strings.EqualFold(words[0], clientWords[0]) && strings.EqualFold(words[1], clientWords[1]) {
			start = 2
		} else if len(words) > 0 && strings.EqualFold(words[0], clientWords[0]) {
			start = 1
		}
	case len(clientWords) == 1:
		if len(words) > 0 && strings.EqualFold(words[0], clientWords[0]) {
			start = 1
		}
	}

	if start >= len(words) {
		return ""
	}

	remaining := strings.Join(words[start:], " ")
	remaining = maintPrefixRe.ReplaceAllString(remaining, "")
	remaining = noteLeadPunctRe.ReplaceAllString(remaining, "")
	remaining = trailingWSRe.ReplaceAllString(remaining, "")
	return strings.TrimSpace(remaining)
}
