// Package google wraps the Google Calendar and Sheets APIs behind the
// collaborator interfaces the engine consumes.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

var scopes = []string{calendar.CalendarScope, sheets.SpreadsheetsReadonlyScope}

const maxResults = 2500

// CalendarClient provides a client for interacting with the Google
// Calendar API using a service account.
type CalendarClient struct {
	service *calendar.Service
	logger  *slog.Logger
}

// NewCalendarClient creates a Calendar client authenticated from the
// service account key file. The calendar must be shared with the service
// account's email address.
func NewCalendarClient(ctx context.Context, logger *slog.Logger, keyFile string) (*CalendarClient, error) {
	httpClient, err := serviceAccountClient(ctx, keyFile)
	if err != nil {
		return nil, err
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &CalendarClient{service: service, logger: logger}, nil
}

// serviceAccountClient builds an authenticated HTTP client from the JSON
// key file using the two-legged JWT flow.
func serviceAccountClient(ctx context.Context, keyFile string) (*http.Client, error) {
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account key file %s: %w", keyFile, err)
	}

	config, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}
	return config.Client(ctx), nil
}

// ListEvents fetches events in [start, end) from the calendar, sorted by
// start time with recurring events expanded to single occurrences.
func (c *CalendarClient) ListEvents(ctx context.Context, calendarID string, start, end time.Time) ([]*models.Event, error) {
	c.logger.Debug("Fetching events", "calendarID", calendarID, "start", start, "end", end)

	result, err := c.service.Events.List(calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		MaxResults(maxResults).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}

	events := toInternalEvents(result.Items)
	c.logger.Info("Fetched events from Google Calendar.", "count", len(events), "calendarID", calendarID)
	return events, nil
}

// toInternalEvents converts Google Calendar events to the internal Event
// model. All-day events are kept: they carry the helper-day schedule.
func toInternalEvents(items []*calendar.Event) []*models.Event {
	var events []*models.Event
	for _, item := range items {
		if item.Start == nil {
			continue
		}

		ev := &models.Event{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
			Location:    item.Location,
			ColorID:     item.ColorId,
		}

		if item.Start.DateTime != "" {
			ev.Start, _ = time.Parse(time.RFC3339, item.Start.DateTime)
			if item.End != nil && item.End.DateTime != "" {
				ev.End, _ = time.Parse(time.RFC3339, item.End.DateTime)
			}
		} else if item.Start.Date != "" {
			ev.AllDay = true
			ev.Start, _ = time.Parse("2006-01-02", item.Start.Date)
			if item.End != nil && item.End.Date != "" {
				ev.End, _ = time.Parse("2006-01-02", item.End.Date)
			}
		} else {
			continue
		}

		events = append(events, ev)
	}
	return events
}

// ApplyUpdate patches a single event with the engine's rewrite. The event
// is fetched first so untouched fields survive the update call.
func (c *CalendarClient) ApplyUpdate(ctx context.Context, calendarID, eventID string, update models.EventUpdate) error {
	event, err := c.service.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	event.Summary = update.Title
	event.ColorId = update.ColorID
	event.Description = update.Description
	if update.Location != nil {
		event.Location = *update.Location
	}

	if _, err := c.service.Events.Update(calendarID, eventID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update event %s: %w", eventID, err)
	}
	return nil
}

// InsertEvent creates a new event on the calendar.
func (c *CalendarClient) InsertEvent(ctx context.Context, calendarID string, event *calendar.Event) error {
	if _, err := c.service.Events.Insert(calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// DeleteEvent removes an event from the calendar.
func (c *CalendarClient) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.service.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}

// CalendarInfo describes one accessible calendar.
type CalendarInfo struct {
	ID         string
	Summary    string
	AccessRole string
}

// ListCalendars returns all calendars the service account can see.
func (c *CalendarClient) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	list, err := c.service.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var infos []CalendarInfo
	for _, item := range list.Items {
		infos = append(infos, CalendarInfo{ID: item.Id, Summary: item.Summary, AccessRole: item.AccessRole})
	}
	return infos, nil
}

// ListRawEvents fetches events without converting them, preserving every
// field for calendar-to-calendar copies.
func (c *CalendarClient) ListRawEvents(ctx context.Context, calendarID string, start, end time.Time) ([]*calendar.Event, error) {
	result, err := c.service.Events.List(calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		MaxResults(maxResults).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}
	return result.Items, nil
}
