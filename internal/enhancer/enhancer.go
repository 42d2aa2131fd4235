package enhancer

import (
	"context"
	"log/slog"
	"time"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

// Updater applies a single event rewrite. The Google Calendar client
// satisfies this; tests substitute a fake.
type Updater interface {
	ApplyUpdate(ctx context.Context, calendarID, eventID string, update models.EventUpdate) error
}

// Options control one enhancement run.
type Options struct {
	// DryRun performs the full decision pipeline without mutating calls.
	DryRun bool
	// ForceReprocess rewrites events that already carry a bracketed tag.
	ForceReprocess bool
}

// Engine sequences the classification pipeline per event and emits the
// resulting updates through the Updater.
type Engine struct {
	logger     *slog.Logger
	rules      *Rules
	updater    Updater
	calendarID string

	// Now supplies the reference time for status resolution. Overridable
	// in tests.
	Now func() time.Time
}

// NewEngine creates an Engine. The updater may be nil when every run will
// be a dry run.
func NewEngine(logger *slog.Logger, rules *Rules, updater Updater, calendarID string) *Engine {
	return &Engine{
		logger:     logger,
		rules:      rules,
		updater:    updater,
		calendarID: calendarID,
		Now:        time.Now,
	}
}

// Enhance processes the run's events in delivery order. All-day events
// only feed the helper schedule; timed events flow through classification,
// roster matching, status resolution and formatting, and each produces at
// most one update. A transport failure on one event does not stop the
// run.
func (e *Engine) Enhance(ctx context.Context, events []*models.Event, roster *models.Roster, opts Options) *models.RunSummary {
	summary := &models.RunSummary{TotalFound: len(events)}

	schedule := e.rules.BuildHelperSchedule(events)
	e.logger.Info("Built helper schedule from all-day events.", "days", len(schedule))

	reference := e.Now()

	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		if ev.Title == "" {
			summary.SkippedFiltered++
			e.logger.Debug("Skipping event without a title.", "id", ev.ID)
			continue
		}

		if AlreadyProcessed(ev.Title) {
			summary.AlreadyProcessed++
			if !opts.ForceReprocess {
				e.logger.Info("Already processed, skipping.", "title", ev.Title)
				continue
			}
			e.logger.Info("Re-processing.", "title", ev.Title)
		}

		workType := e.rules.ClassifyWorkType(ev.Title)
		client := e.rules.MatchClient(ev.Title, roster)

		if workType.IsClientWork() && client == nil {
			summary.SkippedNoMatch++
			cands, ok := e.rules.ExtractClientName(ev.Title)
			if !ok {
				e.logger.Warn("No client match, skipping.", "title", ev.Title, "extracted", "none")
			} else {
				e.logger.Warn("No client match, skipping.",
					"title", ev.Title, "primary", cands.Primary, "fallback", cands.Fallback)
			}
			continue
		}

		status := e.rules.ResolveStatus(ev.Title, ev.Start, reference)

		helper := schedule.HelperFor(ev.Start)
		if helper != "" {
			helper = e.rules.MapHelperName(helper)
		}

		clientName := ""
		if client != nil {
			clientName = client.FullName
		}
		notes := e.rules.ExtractNotes(ev.Title, clientName)

		update := models.EventUpdate{
			Title:   FormatTitle(status.Label(), clientName, workType, helper, notes),
			ColorID: e.rules.ColorFor(workType),
		}
		if client != nil {
			update.Description = BuildClientDescription(client, workType, notes, helper)
			update.Location = &client.Address
		} else {
			update.Description = BuildNonClientDescription(workType, notes, helper)
		}

		e.logger.Info("Updating event.",
			"title", ev.Title,
			"newTitle", update.Title,
			"workType", workType,
			"status", status,
			"color", ColorName(update.ColorID),
			"helper", helper,
			"dryRun", opts.DryRun)

		if opts.DryRun {
			summary.Updated++
			continue
		}

		if err := e.updater.ApplyUpdate(ctx, e.calendarID, ev.ID, update); err != nil {
			summary.Failed++
			e.logger.Error("Failed to update event", "title", ev.Title, "error", err)
			continue
		}
		summary.Updated++
	}

	e.logger.Info("Enhancement run finished.",
		"totalFound", summary.TotalFound,
		"skippedFiltered", summary.SkippedFiltered,
		"skippedNoMatch", summary.SkippedNoMatch,
		"alreadyProcessed", summary.AlreadyProcessed,
		"updated", summary.Updated,
		"failed", summary.Failed)

	return summary
}
