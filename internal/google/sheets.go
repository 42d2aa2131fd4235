package google

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

// clientRange covers the Clients sheet:
// Client_ID | Name | Address | Geo Zone | Is_Recurring_Maintenance |
// Maintenance_Interval_Weeks | Maintenance_Hours_Per_Visit |
// Maintenance_Rate | Last_Maintenance | Next_Maintenance |
// Priority_Level | Schedule_Flexibility | Preferred_Days |
// Preferred_Time | Special_Notes | Active_Status
const clientRange = "Clients!A2:S100"

// RosterClient reads the client roster from a Google Sheets spreadsheet.
type RosterClient struct {
	service       *sheets.Service
	logger        *slog.Logger
	spreadsheetID string
}

// NewRosterClient creates a Sheets client authenticated from the service
// account key file. The spreadsheet must be shared with the service
// account's email address.
func NewRosterClient(ctx context.Context, logger *slog.Logger, keyFile, spreadsheetID string) (*RosterClient, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id not set")
	}

	httpClient, err := serviceAccountClient(ctx, keyFile)
	if err != nil {
		return nil, err
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &RosterClient{service: service, logger: logger, spreadsheetID: spreadsheetID}, nil
}

// GetRoster reads the Clients sheet into an ordered roster. Rows without
// a name are skipped; sheet order is preserved so matching stays
// deterministic.
func (c *RosterClient) GetRoster(ctx context.Context) (*models.Roster, error) {
	result, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, clientRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read client roster: %w", err)
	}

	roster := models.NewRoster()
	for _, row := range result.Values {
		name := cell(row, 1)
		if name == "" {
			continue
		}

		roster.Add(name, &models.ClientRecord{
			FullName:            name,
			Address:             cell(row, 2),
			GeoZone:             cell(row, 3),
			IsRecurring:         strings.EqualFold(cell(row, 4), "TRUE"),
			MaintenanceInterval: cell(row, 5),
			MaintenanceHours:    cell(row, 6),
			MaintenanceRate:     cell(row, 7),
			LastMaintenance:     cell(row, 8),
			NextTarget:          cell(row, 9),
			PriorityLevel:       cell(row, 10),
			ScheduleFlexibility: cell(row, 11),
			PreferredDays:       cell(row, 12),
			PreferredTime:       cell(row, 13),
			SpecialNotes:        cell(row, 14),
			ActiveStatus:        cell(row, 15),
		})
	}

	c.logger.Info("Loaded client roster from Google Sheets.", "count", roster.Len())
	return roster, nil
}

// cell returns the string value at column i of a sheet row, or "" when
// the row is short.
func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}
