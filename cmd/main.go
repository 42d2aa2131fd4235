package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mynock/blossom-and-bough-assistant/internal/copier"
	"github.com/mynock/blossom-and-bough-assistant/internal/enhancer"
	"github.com/mynock/blossom-and-bough-assistant/internal/export"
	"github.com/mynock/blossom-and-bough-assistant/internal/google"
	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

// Default window matching the working season the calendar covers.
const (
	defaultStartDate = "2025-05-01"
	defaultEndDate   = "2025-08-31"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "bnb-assistant",
		Usage: "Enhance and manage the Blossom & Bough work calendar.",
		Commands: []*cli.Command{
			enhanceCommand(),
			copyCommand(),
			deleteAllCommand(),
			calendarsCommand(),
			exportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func enhanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "enhance",
		Usage: "Rewrite raw event titles into the canonical [Status] Client - WorkType format.",
		Flags: append(dateRangeFlags(),
			&cli.BoolFlag{Name: "dry-run", Usage: "Show what would be updated without making changes."},
			&cli.BoolFlag{Name: "force-reprocess", Usage: "Re-process events that already carry a status tag."},
			&cli.StringFlag{Name: "calendar-id", Usage: "Override GOOGLE_CALENDAR_ID."},
			&cli.StringFlag{Name: "rules", Usage: "YAML rules overlay file."},
		),
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))
			ctx := c.Context

			keyFile, err := serviceAccountKeyFile()
			if err != nil {
				return err
			}
			calendarID := calendarIDFrom(c, "calendar-id")
			sheetsID := os.Getenv("GOOGLE_SHEETS_ID")
			if sheetsID == "" {
				return fmt.Errorf("GOOGLE_SHEETS_ID environment variable not set")
			}

			start, end, err := dateRange(c)
			if err != nil {
				return err
			}

			rules := enhancer.DefaultRules()
			if path := c.String("rules"); path != "" {
				rules, err = enhancer.LoadRules(path)
				if err != nil {
					return err
				}
			}

			if c.Bool("dry-run") {
				logger.Info("Performing a dry run. No changes will be made.")
			}

			calClient, err := google.NewCalendarClient(ctx, logger, keyFile)
			if err != nil {
				return fmt.Errorf("failed to create calendar client: %w", err)
			}
			rosterClient, err := google.NewRosterClient(ctx, logger, keyFile, sheetsID)
			if err != nil {
				return fmt.Errorf("failed to create roster client: %w", err)
			}

			roster, err := rosterClient.GetRoster(ctx)
			if err != nil {
				return fmt.Errorf("failed to load roster: %w", err)
			}
			events, err := calClient.ListEvents(ctx, calendarID, start, end)
			if err != nil {
				return fmt.Errorf("failed to fetch events: %w", err)
			}
			if len(events) == 0 {
				logger.Info("No events found in the specified date range.")
				return nil
			}

			engine := enhancer.NewEngine(logger, rules, calClient, calendarID)
			summary := engine.Enhance(ctx, events, roster, enhancer.Options{
				DryRun:         c.Bool("dry-run"),
				ForceReprocess: c.Bool("force-reprocess"),
			})
			printRunSummary(summary, c.Bool("dry-run"))
			return nil
		},
	}
}

func copyCommand() *cli.Command {
	return &cli.Command{
		Name:  "copy",
		Usage: "Copy events from a source calendar to a destination calendar.",
		Flags: append(dateRangeFlags(),
			&cli.StringFlag{Name: "source", Usage: "Source calendar ID (default: GOOGLE_SOURCE_CALENDAR_ID)."},
			&cli.StringFlag{Name: "dest", Usage: "Destination calendar ID (default: GOOGLE_CALENDAR_ID)."},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show what would be copied without making changes."},
			&cli.BoolFlag{Name: "clear", Usage: "Delete all destination events first."},
			&cli.BoolFlag{Name: "reset", Usage: "Clear destination and copy fresh events (implies --clear)."},
		),
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))
			ctx := c.Context

			keyFile, err := serviceAccountKeyFile()
			if err != nil {
				return err
			}
			source := c.String("source")
			if source == "" {
				source = os.Getenv("GOOGLE_SOURCE_CALENDAR_ID")
			}
			if source == "" {
				return fmt.Errorf("no source calendar: set --source or GOOGLE_SOURCE_CALENDAR_ID")
			}
			dest := calendarIDFrom(c, "dest")

			start, end, err := dateRange(c)
			if err != nil {
				return err
			}

			client, err := google.NewCalendarClient(ctx, logger, keyFile)
			if err != nil {
				return fmt.Errorf("failed to create calendar client: %w", err)
			}

			if c.Bool("clear") || c.Bool("reset") {
				if err := deleteAllEvents(ctx, logger, client, dest, c.Bool("dry-run")); err != nil {
					return fmt.Errorf("failed to clear destination calendar: %w", err)
				}
			}

			summary, err := copier.New(logger, client, c.Bool("dry-run")).Copy(ctx, source, dest, start, end)
			if err != nil {
				return err
			}
			fmt.Printf("Copy summary: total=%d copied=%d skipped=%d failed=%d\n",
				summary.Total, summary.Copied, summary.Skipped, summary.Failed)
			return nil
		},
	}
}

func deleteAllCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete-all",
		Usage: "Delete ALL events from a calendar (asks for confirmation twice).",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "calendar-id", Usage: "Override GOOGLE_CALENDAR_ID."},
			&cli.BoolFlag{Name: "dry-run", Usage: "List what would be deleted without deleting."},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))

			keyFile, err := serviceAccountKeyFile()
			if err != nil {
				return err
			}
			client, err := google.NewCalendarClient(c.Context, logger, keyFile)
			if err != nil {
				return fmt.Errorf("failed to create calendar client: %w", err)
			}
			return deleteAllEvents(c.Context, logger, client, calendarIDFrom(c, "calendar-id"), c.Bool("dry-run"))
		},
	}
}

func calendarsCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendars",
		Usage: "List all calendars accessible to the service account.",
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))

			keyFile, err := serviceAccountKeyFile()
			if err != nil {
				return err
			}
			client, err := google.NewCalendarClient(c.Context, logger, keyFile)
			if err != nil {
				return fmt.Errorf("failed to create calendar client: %w", err)
			}

			infos, err := client.ListCalendars(c.Context)
			if err != nil {
				return err
			}
			for _, info := range infos {
				fmt.Printf("%s (%s) - %s\n", info.Summary, info.ID, info.AccessRole)
			}
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the calendar's timed events to an iCalendar file.",
		Flags: append(dateRangeFlags(),
			&cli.StringFlag{Name: "calendar-id", Usage: "Override GOOGLE_CALENDAR_ID."},
			&cli.StringFlag{Name: "out", Value: "schedule.ics", Usage: "Output file path."},
		),
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))
			ctx := c.Context

			keyFile, err := serviceAccountKeyFile()
			if err != nil {
				return err
			}
			start, end, err := dateRange(c)
			if err != nil {
				return err
			}

			client, err := google.NewCalendarClient(ctx, logger, keyFile)
			if err != nil {
				return fmt.Errorf("failed to create calendar client: %w", err)
			}
			events, err := client.ListEvents(ctx, calendarIDFrom(c, "calendar-id"), start, end)
			if err != nil {
				return fmt.Errorf("failed to fetch events: %w", err)
			}

			f, err := os.Create(c.String("out"))
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()

			if err := export.WriteICS(f, events); err != nil {
				return err
			}
			logger.Info("Exported schedule.", "file", c.String("out"), "events", len(events))
			return nil
		},
	}
}

// deleteAllEvents wipes a calendar over a wide date range. It is guarded
// by two interactive prompts; the second requires a literal phrase.
func deleteAllEvents(ctx context.Context, logger *slog.Logger, client *google.CalendarClient, calendarID string, dryRun bool) error {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)

	events, err := client.ListRawEvents(ctx, calendarID, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No events found in the calendar.")
		return nil
	}

	fmt.Printf("WARNING: this will delete ALL %d events from calendar %s\n", len(events), calendarID)
	fmt.Println("Sample events that will be deleted:")
	for i, ev := range events {
		if i >= 5 {
			fmt.Printf("  ... and %d more events\n", len(events)-5)
			break
		}
		fmt.Printf("  %d. %s\n", i+1, ev.Summary)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Are you sure you want to delete ALL these events? Type 'yes' to continue: ")
	answer, _ := reader.ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
		fmt.Println("Operation cancelled.")
		return nil
	}

	fmt.Print("FINAL CONFIRMATION - type 'DELETE ALL EVENTS' to confirm: ")
	answer, _ = reader.ReadString('\n')
	if strings.TrimSpace(answer) != "DELETE ALL EVENTS" {
		fmt.Println("Operation cancelled.")
		return nil
	}

	deleted, failed := 0, 0
	for _, ev := range events {
		if dryRun {
			logger.Info("[DRY RUN] Would delete event.", "title", ev.Summary)
			deleted++
			continue
		}
		if err := client.DeleteEvent(ctx, calendarID, ev.Id); err != nil {
			logger.Error("Failed to delete event", "title", ev.Summary, "error", err)
			failed++
			continue
		}
		deleted++
	}

	fmt.Printf("Deletion %s: deleted=%d failed=%d\n", map[bool]string{true: "dry run", false: "completed"}[dryRun], deleted, failed)
	return nil
}

func printRunSummary(s *models.RunSummary, dryRun bool) {
	fmt.Println("Summary:")
	fmt.Printf("  Total events found:              %d\n", s.TotalFound)
	fmt.Printf("  Events skipped (filtered):       %d\n", s.SkippedFiltered)
	fmt.Printf("  Events skipped (no client match): %d\n", s.SkippedNoMatch)
	fmt.Printf("  Events already processed:        %d\n", s.AlreadyProcessed)
	if dryRun {
		fmt.Printf("  Events that would be updated:    %d\n", s.Updated)
	} else {
		fmt.Printf("  Events successfully updated:     %d\n", s.Updated)
		fmt.Printf("  Events failed:                   %d\n", s.Failed)
	}
}

// serviceAccountKeyFile resolves the key file path from the environment
// and fails early when it is missing, before any event processing starts.
func serviceAccountKeyFile() (string, error) {
	keyFile := os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY_FILE")
	if keyFile == "" {
		keyFile = "google-account-key.json"
	}
	if _, err := os.Stat(keyFile); err != nil {
		return "", fmt.Errorf("service account key file %s not found: %w", keyFile, err)
	}
	return keyFile, nil
}

func calendarIDFrom(c *cli.Context, flag string) string {
	if id := c.String(flag); id != "" {
		return id
	}
	if id := os.Getenv("GOOGLE_CALENDAR_ID"); id != "" {
		return id
	}
	return "primary"
}

func dateRangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "start", Value: defaultStartDate, Usage: "Start date (YYYY-MM-DD)."},
		&cli.StringFlag{Name: "end", Value: defaultEndDate, Usage: "End date (YYYY-MM-DD)."},
	}
}

func dateRange(c *cli.Context) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.String("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.String("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end must not be before --start")
	}
	return start, end, nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
