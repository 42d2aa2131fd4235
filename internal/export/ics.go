// Package export writes a snapshot of the enhanced schedule to an
// iCalendar file.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

// WriteICS encodes the timed events as a VCALENDAR stream. All-day
// helper markers are internal bookkeeping and are not exported. Events
// without an id get a generated UID.
func WriteICS(w io.Writer, events []*models.Event) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//blossom-and-bough//EN")

	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		cal.Children = append(cal.Children, toICal(ev))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// toICal converts an internal Event to an ical VEVENT component.
func toICal(ev *models.Event) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)

	uid := ev.ID
	if uid == "" {
		uid = uuid.New().String()
	}
	ve.Props.SetText(ical.PropUID, uid)
	ve.Props.SetText(ical.PropSummary, ev.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, ev.Start)

	end := ev.End
	if end.IsZero() {
		end = ev.Start.Add(time.Hour)
	}
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end)

	if ev.Description != "" {
		ve.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		ve.Props.SetText(ical.PropLocation, ev.Location)
	}
	return ve
}
