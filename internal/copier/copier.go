// Package copier copies events between calendars, used to reset a
// working calendar from a clean template.
package copier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/mynock/blossom-and-bough-assistant/internal/google"
)

// Summary tallies the outcome of one copy run.
type Summary struct {
	Total   int
	Copied  int
	Skipped int
	Failed  int
}

// Copier copies events from a source calendar to a destination calendar.
type Copier struct {
	logger *slog.Logger
	client *google.CalendarClient
	dryRun bool
}

func New(logger *slog.Logger, client *google.CalendarClient, dryRun bool) *Copier {
	return &Copier{logger: logger, client: client, dryRun: dryRun}
}

// Copy copies all events in [start, end) from source to dest. Events with
// missing essential data are skipped; a failed insert logs and continues.
func (c *Copier) Copy(ctx context.Context, source, dest string, start, end time.Time) (*Summary, error) {
	events, err := c.client.ListRawEvents(ctx, source, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source events: %w", err)
	}

	summary := &Summary{Total: len(events)}
	c.logger.Info("Copying events.", "count", len(events), "source", source, "dest", dest, "dryRun", c.dryRun)

	for _, ev := range events {
		cp := prepareForCopy(ev)
		if cp == nil {
			summary.Skipped++
			c.logger.Warn("Skipping event with missing data.", "title", ev.Summary)
			continue
		}

		c.logger.Info("Copying event.", "title", ev.Summary, "dryRun", c.dryRun)
		if c.dryRun {
			summary.Copied++
			continue
		}

		if err := c.client.InsertEvent(ctx, dest, cp); err != nil {
			summary.Failed++
			c.logger.Error("Failed to copy event", "title", ev.Summary, "error", err)
			continue
		}
		summary.Copied++
	}

	c.logger.Info("Copy finished.",
		"total", summary.Total, "copied", summary.Copied,
		"skipped", summary.Skipped, "failed", summary.Failed)
	return summary, nil
}

// prepareForCopy whitelists the fields that travel to the destination.
// Identity fields (id, iCalUID, creator, organizer, htmlLink, timestamps)
// are left for the destination calendar to regenerate. Returns nil when
// the event lacks a title or start.
func prepareForCopy(ev *calendar.Event) *calendar.Event {
	if ev.Summary == "" || ev.Start == nil {
		return nil
	}

	cp := &calendar.Event{
		Summary: ev.Summary,
		Start:   ev.Start,
		End:     ev.End,
	}
	if ev.Description != "" {
		cp.Description = ev.Description
	}
	if ev.Location != "" {
		cp.Location = ev.Location
	}
	if ev.ColorId != "" {
		cp.ColorId = ev.ColorId
	}
	if len(ev.Recurrence) > 0 {
		cp.Recurrence = ev.Recurrence
	}
	// Copied attendees do not receive invitations.
	if len(ev.Attendees) > 0 {
		cp.Attendees = ev.Attendees
	}
	if ev.Reminders != nil {
		cp.Reminders = ev.Reminders
	}
	return cp
}
