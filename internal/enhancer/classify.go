package enhancer

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

var (
	leadingStarsRe = regexp.MustCompile(`^\*+`)
	starPrefixRe   = regexp.MustCompile(`^\*+\s*`)
	processedRe    = regexp.MustCompile(`^\[[^\]]*\]`)
)

// CountLeadingStars counts the run of asterisks at the very start of a
// title. Stars encode planning confidence.
func CountLeadingStars(title string) int {
	return len(leadingStarsRe.FindString(title))
}

// AlreadyProcessed reports whether a title begins with a bracketed status
// tag. This is the single source of truth for idempotency: a processed
// title is never rewritten again unless the caller forces it.
func AlreadyProcessed(title string) bool {
	return processedRe.MatchString(title)
}

// stripStars removes the leading marker run and any following whitespace.
func stripStars(title string) string {
	return starPrefixRe.ReplaceAllString(title, "")
}

// ClassifyWorkType assigns one of the fixed work-type categories from the
// title keywords. Precedence is Design > Office Work > Errands > Ad-hoc,
// first match wins; anything unclassified is Maintenance.
func (r *Rules) ClassifyWorkType(title string) models.WorkType {
	if title == "" {
		return models.WorkTypeMaintenance
	}

	clean := strings.ToLower(stripStars(title))

	if containsAny(clean, r.DesignKeywords) || (r.designWordRe != nil && r.designWordRe.MatchString(clean)) {
		return models.WorkTypeDesign
	}
	if containsAny(clean, r.OfficeKeywords) {
		return models.WorkTypeOffice
	}
	if containsAny(clean, r.ErrandsKeywords) {
		return models.WorkTypeErrands
	}
	if containsAny(clean, r.AdHocKeywords) {
		return models.WorkTypeAdHoc
	}
	return models.WorkTypeMaintenance
}

// ResolveStatus derives the planning status from the leading star count
// and the distance between the event date and the reference date.
// No stars means the visit is confirmed. One star is confirmed when the
// event falls within the near-term window and tentative beyond it. Two or
// more stars always mean planning, regardless of date.
func (r *Rules) ResolveStatus(title string, eventDate, reference time.Time) models.Status {
	switch stars := CountLeadingStars(title); {
	case stars == 0:
		return models.StatusConfirmed
	case stars == 1:
		days := int(math.Abs(eventDate.Sub(reference).Hours()) / 24)
		if days <= r.NearTermDays {
			return models.StatusConfirmed
		}
		return models.StatusTentative
	default:
		return models.StatusPlanning
	}
}
