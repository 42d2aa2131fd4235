package enhancer

import (
	"strings"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

// FormatTitle renders the canonical title:
//
//	[<C|T|P>] <Client> - <WorkType> (<Helper>) | <Notes>
//
// for client events, and the same without the client segment for internal
// work. Helper and notes segments appear only when non-empty.
func FormatTitle(label, clientName string, workType models.WorkType, helper, notes string) string {
	var parts []string
	if clientName == "" {
		parts = []string{"[" + label + "]", string(workType)}
	} else {
		parts = []string{"[" + label + "]", clientName, "-", string(workType)}
	}
	if helper != "" {
		parts = append(parts, "("+helper+")")
	}
	if notes != "" {
		parts = append(parts, "| "+notes)
	}
	return strings.Join(parts, " ")
}

// ColorFor returns the Google Calendar color id for a work type.
func (r *Rules) ColorFor(workType models.WorkType) string {
	if color, ok := r.Colors[workType]; ok {
		return color
	}
	return r.DefaultColor
}

// colorNames gives the human-readable Google Calendar palette names used
// in log output.
var colorNames = map[string]string{
	"10": "Green/Basil",
	"4":  "Flamingo/Pale Red",
	"3":  "Grape/Mauve",
	"8":  "Graphite/Gray",
	"6":  "Tangerine/Orange",
}

// ColorName returns the palette name for a color id, or the id itself
// when unknown.
func ColorName(colorID string) string {
	if name, ok := colorNames[colorID]; ok {
		return name
	}
	return colorID
}

// BuildClientDescription renders the structured description block for a
// client visit. Lines with an empty source value are omitted; blank lines
// group the sections.
func BuildClientDescription(rec *models.ClientRecord, workType models.WorkType, notes, helper string) string {
	lines := []string{
		"CLIENT: " + rec.FullName,
		"SERVICE: " + string(workType),
		"",
	}

	if helper != "" {
		lines = append(lines, "HELPER: "+helper, "")
	}
	if notes != "" {
		lines = append(lines, "DETAILS: "+strings.ToUpper(notes), "")
	}

	if rec.MaintenanceHours != "" {
		lines = append(lines, "ESTIMATED HOURS: "+rec.MaintenanceHours)
	}
	if rec.PriorityLevel != "" {
		lines = append(lines, "PRIORITY: "+rec.PriorityLevel)
	}
	if rec.ScheduleFlexibility != "" {
		lines = append(lines, "FLEXIBILITY: "+rec.ScheduleFlexibility)
	}
	lines = append(lines, "")

	if rec.GeoZone != "" {
		lines = append(lines, "ZONE: "+rec.GeoZone, "")
	}
	if strings.TrimSpace(rec.SpecialNotes) != "" {
		lines = append(lines, "NOTES: "+rec.SpecialNotes, "")
	}

	if rec.PreferredDays != "" {
		lines = append(lines, "PREFERRED DAYS: "+rec.PreferredDays)
	}
	if rec.PreferredTime != "" {
		lines = append(lines, "PREFERRED TIME: "+rec.PreferredTime)
	}

	return strings.Join(lines, "\n")
}

// BuildNonClientDescription renders the short description block for
// internal work (office, errands).
func BuildNonClientDescription(workType models.WorkType, notes, helper string) string {
	lines := []string{"WORK TYPE: " + string(workType)}
	if helper != "" {
		lines = append(lines, "HELPER: "+helper)
	}
	if notes != "" {
		lines = append(lines, "DETAILS: "+notes)
	}
	return strings.Join(lines, "\n")
}
