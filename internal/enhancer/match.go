package enhancer

import (
	"strings"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

// MatchClient resolves a raw title against the roster. It tries an exact
// key lookup on the primary then fallback candidate, then a
// case-insensitive pass over the roster in insertion order. Returns nil
// for non-client titles and for titles with no roster match. There is no
// fuzzy matching: these records drive billing, so a near-miss must
// surface as a skip rather than a guess.
func (r *Rules) MatchClient(title string, roster *models.Roster) *models.ClientRecord {
	if title == "" {
		return nil
	}

	cands, ok := r.ExtractClientName(title)
	if !ok {
		return nil
	}

	for _, name := range []string{cands.Primary, cands.Fallback} {
		if name == "" {
			continue
		}
		if rec, found := roster.Get(name); found {
			return rec
		}
	}

	for _, name := range []string{cands.Primary, cands.Fallback} {
		if name == "" {
			continue
		}
		for _, key := range roster.Names() {
			if strings.EqualFold(name, key) {
				rec, _ := roster.Get(key)
				return rec
			}
		}
	}

	return nil
}
