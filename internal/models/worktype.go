package models

// WorkType is one of the fixed closed set of work categories used for
// color-coding and description templating.
type WorkType string

const (
	WorkTypeMaintenance WorkType = "Maintenance"
	WorkTypeAdHoc       WorkType = "Ad-hoc"
	WorkTypeDesign      WorkType = "Design"
	WorkTypeOffice      WorkType = "Office Work"
	WorkTypeErrands     WorkType = "Errands"
)

// IsClientWork reports whether this work type describes a client visit.
// Client work requires a roster match before the event may be rewritten.
func (w WorkType) IsClientWork() bool {
	switch w {
	case WorkTypeMaintenance, WorkTypeAdHoc, WorkTypeDesign:
		return true
	}
	return false
}

// Status is the planning-certainty state derived from leading title
// markers and date proximity. It is recomputed fresh on every run.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusTentative Status = "tentative"
	StatusPlanning  Status = "planning"
)

// Label returns the single-letter tag encoded into canonical titles.
func (s Status) Label() string {
	switch s {
	case StatusConfirmed:
		return "C"
	case StatusTentative:
		return "T"
	case StatusPlanning:
		return "P"
	}
	return "T"
}
