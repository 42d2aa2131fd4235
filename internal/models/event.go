package models

import "time"

// Event represents a calendar event as delivered by the transport.
// This is an internal representation, independent of the Google Calendar
// wire types. It is read-only input; the fields an enhancement rewrites
// travel separately in an EventUpdate.
type Event struct {
	ID          string    // Unique identifier from the source calendar
	Title       string    // Summary or title of the event
	Description string    // Existing description, if any
	Location    string    // Existing location, if any
	ColorID     string    // Existing Google Calendar color id, if any
	Start       time.Time // Start of the event (midnight for all-day events)
	End         time.Time // End of the event
	AllDay      bool      // True for date-only events (helper-day markers)
}

// Date returns the event's start date at day granularity, the key used by
// the helper schedule.
func (e *Event) Date() string {
	return e.Start.Format("2006-01-02")
}

// EventUpdate is the set of field rewrites the engine produces for a
// single event. Location is only replaced for client events, hence the
// pointer.
type EventUpdate struct {
	Title       string
	ColorID     string
	Description string
	Location    *string
}

// RunSummary tallies the mutually exclusive per-event outcomes of an
// enhancement run.
type RunSummary struct {
	TotalFound       int
	SkippedFiltered  int
	SkippedNoMatch   int
	AlreadyProcessed int
	Updated          int
	Failed           int
}
