package models

import (
	"regexp"
	"strings"
)

// ClientRecord is an immutable snapshot of one roster row. All fields are
// kept as the roster delivers them; the engine only reads.
type ClientRecord struct {
	FullName            string // Display name as it appears in the roster, e.g. "Silver (C013)"
	Address             string
	GeoZone             string
	IsRecurring         bool
	MaintenanceInterval string
	MaintenanceHours    string
	MaintenanceRate     string
	LastMaintenance     string
	NextTarget          string
	PriorityLevel       string
	ScheduleFlexibility string
	PreferredDays       string
	PreferredTime       string
	SpecialNotes        string
	ActiveStatus        string
}

var parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)

// BaseName strips the parenthetical client code from a roster name,
// e.g. "Silver (C013)" -> "Silver". Deterministic and total.
func BaseName(name string) string {
	return strings.TrimSpace(parentheticalRe.ReplaceAllString(name, ""))
}

// Roster holds the client records for one run, keyed by base name.
// Insertion order is preserved so case-insensitive matching has a
// deterministic tie-break (first inserted wins).
type Roster struct {
	names   []string
	records map[string]*ClientRecord
}

func NewRoster() *Roster {
	return &Roster{records: make(map[string]*ClientRecord)}
}

// Add registers a record under the base name of its roster name. A
// duplicate base name replaces the record but keeps the original
// position.
func (r *Roster) Add(name string, rec *ClientRecord) {
	key := BaseName(name)
	if _, exists := r.records[key]; !exists {
		r.names = append(r.names, key)
	}
	r.records[key] = rec
}

// Get looks up a record by exact base-name key.
func (r *Roster) Get(key string) (*ClientRecord, bool) {
	rec, ok := r.records[key]
	return rec, ok
}

// Names returns the base-name keys in insertion order.
func (r *Roster) Names() []string {
	return r.names
}

func (r *Roster) Len() int {
	return len(r.names)
}
