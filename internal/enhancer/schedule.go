package enhancer

import (
	"strings"
	"time"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

// HelperSchedule maps a calendar date (YYYY-MM-DD) to the helper working
// that day, as recorded by short all-day events.
type HelperSchedule map[string]string

// BuildHelperSchedule scans the run's events for all-day helper-day
// markers. All-day titles that contain an office/admin keyword or run
// longer than a few words are not helper names and are ignored. A later
// entry for the same date overwrites an earlier one.
func (r *Rules) BuildHelperSchedule(events []*models.Event) HelperSchedule {
	schedule := make(HelperSchedule)
	for _, ev := range events {
		if !ev.AllDay {
			continue
		}
		title := strings.TrimSpace(ev.Title)
		if title == "" {
			continue
		}
		if containsAny(strings.ToLower(title), r.HelperSkipKeywords) {
			continue
		}
		if len(strings.Fields(title)) <= r.HelperMaxWords {
			schedule[ev.Date()] = title
		}
	}
	return schedule
}

// HelperFor returns the helper recorded for the given date, or "" when
// none was found.
func (s HelperSchedule) HelperFor(date time.Time) string {
	return s[date.Format("2006-01-02")]
}
