package enhancer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

func TestCountLeadingStars(t *testing.T) {
	assert.Equal(t, 0, CountLeadingStars("Thomas"))
	assert.Equal(t, 1, CountLeadingStars("*Thomas"))
	assert.Equal(t, 2, CountLeadingStars("**Thomas"))
	assert.Equal(t, 3, CountLeadingStars("***Thomas"))
	assert.Equal(t, 0, CountLeadingStars(""))
	assert.Equal(t, 0, CountLeadingStars("Thomas *"))
}

func TestAlreadyProcessed(t *testing.T) {
	assert.True(t, AlreadyProcessed("[C] Thomas - Maintenance"))
	assert.True(t, AlreadyProcessed("[P] Office Work"))
	assert.True(t, AlreadyProcessed("[] empty tag still counts"))
	assert.False(t, AlreadyProcessed("Thomas"))
	assert.False(t, AlreadyProcessed("**Thomas"))
	assert.False(t, AlreadyProcessed(""))
	assert.False(t, AlreadyProcessed("no [C] tag at the start"))
}

func TestClassifyWorkType(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		title string
		want  models.WorkType
	}{
		{"Thomas BOXWOODS", models.WorkTypeMaintenance},
		{"**Thomas BOXWOODS + prune", models.WorkTypeMaintenance},
		{"Smith design consultation", models.WorkTypeDesign},
		{"Garden plan review", models.WorkTypeDesign},
		{"Planning session", models.WorkTypeDesign},
		{"Office work | invoices", models.WorkTypeOffice},
		{"Follow-up calls", models.WorkTypeOffice},
		{"Errands + supply pickup", models.WorkTypeErrands},
		{"Truck service", models.WorkTypeErrands},
		{"Equipment maintenance", models.WorkTypeErrands},
		{"Storm cleanup", models.WorkTypeAdHoc},
		{"*urgent branch removal", models.WorkTypeAdHoc},
		{"", models.WorkTypeMaintenance},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.ClassifyWorkType(tt.title), "title %q", tt.title)
	}
}

func TestClassifyWorkTypePrecedence(t *testing.T) {
	rules := DefaultRules()

	// Design wins over Office when both keyword sets match.
	assert.Equal(t, models.WorkTypeDesign, rules.ClassifyWorkType("design work at the office"))
	// Office wins over Errands.
	assert.Equal(t, models.WorkTypeOffice, rules.ClassifyWorkType("office errands"))
}

func TestClassifyWorkTypeWordBoundaries(t *testing.T) {
	rules := DefaultRules()

	// "planting" contains "plan" but must not classify as Design.
	assert.Equal(t, models.WorkTypeMaintenance, rules.ClassifyWorkType("Jones planting beds"))
	assert.Equal(t, models.WorkTypeDesign, rules.ClassifyWorkType("Jones plan beds"))
}

func TestClassifyWorkTypeLiteralKeywordList(t *testing.T) {
	rules := DefaultRules()

	// "debris" is not in the Errands keyword list even though it sounds
	// like an errand; unlisted words fall back to Maintenance.
	assert.Equal(t, models.WorkTypeMaintenance, rules.ClassifyWorkType("**Silver debris"))
}

func TestResolveStatus(t *testing.T) {
	rules := DefaultRules()
	ref := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	nearDate := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	farDate := time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC)
	pastNear := time.Date(2025, 5, 25, 9, 0, 0, 0, time.UTC)

	// No stars: always confirmed.
	assert.Equal(t, models.StatusConfirmed, rules.ResolveStatus("Thomas", nearDate, ref))
	assert.Equal(t, models.StatusConfirmed, rules.ResolveStatus("Thomas", farDate, ref))

	// One star: confirmed inside the 14-day window, tentative outside.
	assert.Equal(t, models.StatusConfirmed, rules.ResolveStatus("*Thomas", nearDate, ref))
	assert.Equal(t, models.StatusConfirmed, rules.ResolveStatus("*Thomas", pastNear, ref))
	assert.Equal(t, models.StatusTentative, rules.ResolveStatus("*Thomas", farDate, ref))

	// Two or more stars: planning, regardless of date.
	assert.Equal(t, models.StatusPlanning, rules.ResolveStatus("**Thomas", nearDate, ref))
	assert.Equal(t, models.StatusPlanning, rules.ResolveStatus("**Thomas", farDate, ref))
	assert.Equal(t, models.StatusPlanning, rules.ResolveStatus("***Thomas", farDate, ref))
}

func TestResolveStatusWindowBoundary(t *testing.T) {
	rules := DefaultRules()
	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// Exactly 14 days out, either direction, is still confirmed; the
	// 15th day tips to tentative.
	assert.Equal(t, models.StatusConfirmed, rules.ResolveStatus("*Thomas", ref.AddDate(0, 0, 14), ref))
	assert.Equal(t, models.StatusConfirmed, rules.ResolveStatus("*Thomas", ref.AddDate(0, 0, -14), ref))
	assert.Equal(t, models.StatusTentative, rules.ResolveStatus("*Thomas", ref.AddDate(0, 0, 15), ref))
	assert.Equal(t, models.StatusTentative, rules.ResolveStatus("*Thomas", ref.AddDate(0, 0, -15), ref))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "C", models.StatusConfirmed.Label())
	assert.Equal(t, "T", models.StatusTentative.Label())
	assert.Equal(t, "P", models.StatusPlanning.Label())
}
