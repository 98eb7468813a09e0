package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/slotwise/internal/schedule"
)

func newBriefCmd() *cobra.Command {
	var (
		account    string
		calendarID string
		icsSources []string
		weekOf     string
		timezone   string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Print the weekly analytic brief for a calendar",
		Long: `Summarize one calendar week: per-day event load, total meeting hours,
busiest day, free weekdays, notable events, and overlapping meetings.

The week runs Monday through Sunday in the given timezone and contains
the --week-of date (default: today). With --ics the first given ICS
feed is summarized instead of a Google calendar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if timezone == "" {
				timezone = cfg.Timezone
			}

			weekAnchor, err := parseWeekOf(weekOf, timezone)
			if err != nil {
				return err
			}

			provider, calendarIDs, err := buildProvider(cmd.Context(), account, calendarID, icsSources, cfg)
			if err != nil {
				return err
			}

			engine := schedule.NewEngine(provider, schedule.EngineConfig{
				Policy: enginePolicy(cfg),
			})

			brief, err := engine.WeeklyBrief(cmd.Context(), calendarIDs[0], weekAnchor, timezone)
			if err != nil {
				return err
			}

			printBrief(os.Stdout, brief)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account whose token to use")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID to summarize (default: first config calendar)")
	cmd.Flags().StringSliceVar(&icsSources, "ics", nil, "ICS feed URL or file path to summarize instead of Google Calendar")
	cmd.Flags().StringVar(&weekOf, "week-of", "", "Any date inside the week to summarize (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone defining the week bounds (default: config timezone)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")

	return cmd
}

// parseWeekOf anchors the --week-of date at local midnight in the display
// timezone. The engine frames the week in that zone, so a UTC anchor
// would shift the week for zones west of UTC.
func parseWeekOf(weekOf, timezone string) (time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	if weekOf == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", weekOf, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --week-of value (want YYYY-MM-DD): %w", err)
	}
	return t, nil
}

func printBrief(w io.Writer, brief schedule.Brief) {
	loc, err := time.LoadLocation(brief.Timezone)
	if err != nil {
		loc = time.UTC
	}

	fmt.Fprintf(w, "Weekly brief for %s (%s)\n", brief.Calendar, brief.Timezone)
	fmt.Fprintf(w, "Week: %s to %s\n",
		brief.WeekStart.Format("2006-01-02"),
		brief.WeekEnd.AddDate(0, 0, -1).Format("2006-01-02"))
	fmt.Fprintf(w, "Events: %d, total %.1f hours\n", brief.EventCount, brief.TotalHours)
	if brief.BusiestDay != "" {
		fmt.Fprintf(w, "Busiest day: %s\n", brief.BusiestDay)
	}
	if len(brief.FreeDays) > 0 {
		fmt.Fprintf(w, "Free weekdays: %s\n", strings.Join(brief.FreeDays, ", "))
	}

	for _, day := range brief.Days {
		fmt.Fprintf(w, "\n%s (%.1fh busy)\n", day.Date, day.BusyDuration.Hours())
		for _, ev := range day.Events {
			if ev.AllDay {
				fmt.Fprintf(w, "  (all day)    %s\n", ev.Summary)
				continue
			}
			fmt.Fprintf(w, "  %s-%s  %s\n",
				ev.Interval.Start.In(loc).Format("15:04"),
				ev.Interval.End.In(loc).Format("15:04"),
				ev.Summary)
		}
	}

	if len(brief.Highlights) > 0 {
		fmt.Fprintln(w, "\nHighlights:")
		for _, h := range brief.Highlights {
			fmt.Fprintf(w, "  %s (%s)\n", h.Event.Summary, h.Reason)
		}
	}

	if len(brief.Conflicts) == 0 {
		fmt.Fprintln(w, "\nNo scheduling conflicts this week.")
		return
	}
	fmt.Fprintln(w, "\nConflicts:")
	for _, c := range brief.Conflicts {
		fmt.Fprintf(w, "  %s: %q overlaps %q\n", c.Date, c.First.Summary, c.Second.Summary)
	}
}
