package enhancer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

// fakeUpdater records applied updates; fail makes every call error.
type fakeUpdater struct {
	applied map[string]models.EventUpdate
	fail    bool
}

func newFakeUpdater() *fakeUpdater {
	return &fakeUpdater{applied: make(map[string]models.EventUpdate)}
}

func (f *fakeUpdater) ApplyUpdate(_ context.Context, _, eventID string, update models.EventUpdate) error {
	if f.fail {
		return fmt.Errorf("transport unavailable")
	}
	f.applied[eventID] = update
	return nil
}

func newTestEngine(updater Updater) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := NewEngine(logger, DefaultRules(), updater, "primary")
	eng.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return eng
}

func engineRoster() *models.Roster {
	roster := models.NewRoster()
	roster.Add("Thomas", &models.ClientRecord{
		FullName:         "Thomas",
		Address:          "123 Garden Way",
		GeoZone:          "NE",
		MaintenanceHours: "4",
	})
	roster.Add("Silver (C013)", &models.ClientRecord{FullName: "Silver (C013)"})
	return roster
}

func TestEnhanceRewritesClientEvent(t *testing.T) {
	updater := newFakeUpdater()
	eng := newTestEngine(updater)

	events := []*models.Event{
		{Title: "Anne", Start: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), AllDay: true},
		{ID: "ev1", Title: "**Thomas BOXWOODS + prune", Start: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
	}

	summary := eng.Enhance(context.Background(), events, engineRoster(), Options{})

	assert.Equal(t, 2, summary.TotalFound)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, summary.Failed)

	update, ok := updater.applied["ev1"]
	require.True(t, ok)
	assert.Equal(t, "[P] Thomas - Maintenance (Anne) | BOXWOODS + prune", update.Title)
	assert.Equal(t, "10", update.ColorID)
	require.NotNil(t, update.Location)
	assert.Equal(t, "123 Garden Way", *update.Location)
	assert.Contains(t, update.Description, "CLIENT: Thomas")
	assert.Contains(t, update.Description, "HELPER: Anne")
	assert.Contains(t, update.Description, "DETAILS: BOXWOODS + PRUNE")
}

func TestEnhanceNonClientEvent(t *testing.T) {
	updater := newFakeUpdater()
	eng := newTestEngine(updater)

	events := []*models.Event{
		{ID: "ev1", Title: "Office work | invoices", Start: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)},
	}

	summary := eng.Enhance(context.Background(), events, models.NewRoster(), Options{})

	assert.Equal(t, 1, summary.Updated)
	update := updater.applied["ev1"]
	assert.Equal(t, "[C] Office Work | invoices", update.Title)
	assert.Equal(t, "8", update.ColorID)
	assert.Nil(t, update.Location)
	assert.Equal(t, "WORK TYPE: Office Work\nDETAILS: invoices", update.Description)
}

func TestEnhanceSkipsUnmatchedClientWork(t *testing.T) {
	updater := newFakeUpdater()
	eng := newTestEngine(updater)

	events := []*models.Event{
		{ID: "ev1", Title: "Thomas BOXWOODS", Start: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
	}

	summary := eng.Enhance(context.Background(), events, models.NewRoster(), Options{})

	assert.Equal(t, 1, summary.SkippedNoMatch)
	assert.Equal(t, 0, summary.Updated)
	assert.Empty(t, updater.applied)
}

func TestEnhanceIdempotent(t *testing.T) {
	updater := newFakeUpdater()
	eng := newTestEngine(updater)
	roster := engineRoster()

	events := []*models.Event{
		{ID: "ev1", Title: "Thomas BOXWOODS", Start: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
	}

	first := eng.Enhance(context.Background(), events, roster, Options{})
	require.Equal(t, 1, first.Updated)

	// Feed the engine its own output: no further updates.
	events[0].Title = updater.applied["ev1"].Title
	second := eng.Enhance(context.Background(), events, roster, Options{})

	assert.Equal(t, 1, second.AlreadyProcessed)
	assert.Equal(t, 0, second.Updated)
}

func TestEnhanceForceReprocess(t *testing.T) {
	updater := newFakeUpdater()
	eng := newTestEngine(updater)

	events := []*models.Event{
		{ID: "ev1", Title: "[C] Thomas - Maintenance", Start: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
	}

	summary := eng.Enhance(context.Background(), events, engineRoster(), Options{ForceReprocess: true})

	assert.Equal(t, 1, summary.AlreadyProcessed)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, "[C] Thomas - Maintenance", updater.applied["ev1"].Title)
}

func TestEnhanceDryRunMakesNoCalls(t *testing.T) {
	updater := newFakeUpdater()
	eng := newTestEngine(updater)

	events := []*models.Event{
		{ID: "ev1", Title: "Thomas BOXWOODS", Start: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
	}

	summary := eng.Enhance(context.Background(), events, engineRoster(), Options{DryRun: true})

	assert.Equal(t, 1, summary.Updated)
	assert.Empty(t, updater.applied)
}

func TestEnhanceContinuesAfterTransportFailure(t *testing.T) {
	updater := newFakeUpdater()
	updater.fail = true
	eng := newTestEngine(updater)

	events := []*models.Event{
		{ID: "ev1", Title: "Thomas BOXWOODS", Start: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "ev2", Title: "Silver weeding", Start: time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)},
	}

	summary := eng.Enhance(context.Background(), events, engineRoster(), Options{})

	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 0, summary.Updated)
}

func TestEnhanceSkipsMalformedEvents(t *testing.T) {
	updater := newFakeUpdater()
	eng := newTestEngine(updater)

	events := []*models.Event{
		{ID: "ev1", Title: "", Start: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "ev2", Title: "Anne", Start: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), AllDay: true},
	}

	summary := eng.Enhance(context.Background(), events, engineRoster(), Options{})

	assert.Equal(t, 1, summary.SkippedFiltered)
	assert.Equal(t, 0, summary.Updated)
	assert.Empty(t, updater.applied)
}

func TestEnhanceHelperNameMapping(t *testing.T) {
	updater := newFakeUpdater()
	eng := newTestEngine(updater)

	events := []*models.Event{
		{Title: "Rorick SOLO", Start: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), AllDay: true},
		{ID: "ev1", Title: "Thomas BOXWOODS", Start: time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)},
	}

	summary := eng.Enhance(context.Background(), events, engineRoster(), Options{})

	require.Equal(t, 1, summary.Updated)
	assert.Equal(t, "[C] Thomas - Maintenance (Rebecca SOLO) | BOXWOODS", updater.applied["ev1"].Title)
}
