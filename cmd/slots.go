package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/slotwise/internal/calendar"
	"github.com/teemow/slotwise/internal/config"
	"github.com/teemow/slotwise/internal/google"
	"github.com/teemow/slotwise/internal/ics"
	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/schedule"
)

func newSlotsCmd() *cobra.Command {
	var (
		account          string
		calendars        string
		icsSources       []string
		durationMinutes  int
		from             string
		to               string
		timezone         string
		participantZones string
		workStartHour    int
		workEndHour      int
		includeWeekends  bool
		maxResults       int
		configPath       string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Find bookable meeting slots across calendars",
		Long: `Search the given calendars for open slots of the requested duration.

Every returned slot fits inside the working hours of the primary
timezone and of every participant timezone, and overlaps no busy
period on any of the calendars. Slots are ranked earliest first.

By default the Google account's calendars are queried. With --ics the
given ICS feeds (URLs or file paths) are used instead and no Google
authentication is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if timezone == "" {
				timezone = cfg.Timezone
			}
			if workStartHour < 0 {
				workStartHour = cfg.WorkStartHour
			}
			if workEndHour < 0 {
				workEndHour = cfg.WorkEndHour
			}

			rng, err := parseRangeFlags(from, to)
			if err != nil {
				return err
			}

			primary, err := interval.NewWorkingWindow(timezone, workStartHour, workEndHour, !includeWeekends)
			if err != nil {
				return fmt.Errorf("invalid primary timezone: %w", err)
			}

			var participants []interval.WorkingWindow
			for _, tz := range parseCommaSeparatedList(participantZones) {
				w, err := interval.NewWorkingWindow(tz, workStartHour, workEndHour, !includeWeekends)
				if err != nil {
					return fmt.Errorf("invalid participant timezone %q: %w", tz, err)
				}
				participants = append(participants, w)
			}

			provider, calendarIDs, err := buildProvider(cmd.Context(), account, calendars, icsSources, cfg)
			if err != nil {
				return err
			}

			engine := schedule.NewEngine(provider, schedule.EngineConfig{
				Policy: enginePolicy(cfg),
			})

			req := schedule.SlotRequest{
				Duration:           time.Duration(durationMinutes) * time.Minute,
				Range:              rng,
				PrimaryWindow:      primary,
				ParticipantWindows: participants,
				MaxResults:         maxResults,
			}

			slots, err := engine.FindSlots(cmd.Context(), calendarIDs, req)
			if err != nil {
				return err
			}

			printSlots(os.Stdout, slots, req)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account whose token to use")
	cmd.Flags().StringVar(&calendars, "calendars", "", "Comma-separated calendar IDs to check (default: config calendars)")
	cmd.Flags().StringSliceVar(&icsSources, "ics", nil, "ICS feed URLs or file paths to use instead of Google Calendar")
	cmd.Flags().IntVar(&durationMinutes, "duration", 30, "Meeting duration in minutes")
	cmd.Flags().StringVar(&from, "from", "", "Search range start (RFC3339, default: now)")
	cmd.Flags().StringVar(&to, "to", "", "Search range end (RFC3339, default: start plus seven days)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "Primary IANA timezone (default: config timezone)")
	cmd.Flags().StringVar(&participantZones, "participant-timezones", "", "Comma-separated participant IANA timezones")
	cmd.Flags().IntVar(&workStartHour, "work-start", -1, "Working hours start (0-23, default: config)")
	cmd.Flags().IntVar(&workEndHour, "work-end", -1, "Working hours end (0-23, default: config)")
	cmd.Flags().BoolVar(&includeWeekends, "include-weekends", false, "Consider Saturday and Sunday as workdays")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "Maximum slots to return (default: engine default)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")

	return cmd
}

// buildProvider returns the calendar provider and the calendar IDs to
// query. ICS sources take precedence over the Google account.
func buildProvider(ctx context.Context, account, calendars string, icsSources []string, cfg *config.Config) (schedule.CalendarProvider, []string, error) {
	if len(icsSources) > 0 {
		return ics.NewProvider(), icsSources, nil
	}

	ids := parseCommaSeparatedList(calendars)
	if len(ids) == 0 {
		ids = cfg.Calendars
	}

	if !calendar.HasTokenForAccount(account) {
		return nil, nil, errors.New(google.GetAuthenticationErrorMessage(account))
	}
	client, err := calendar.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	return client, ids, nil
}

// parseRangeFlags parses the search range. Unset bounds default to a
// range starting now and covering the next seven days.
func parseRangeFlags(from, to string) (interval.TimeInterval, error) {
	start := time.Now()
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return interval.TimeInterval{}, fmt.Errorf("invalid --from value (want RFC3339): %w", err)
		}
		start = t
	}

	end := start.Add(7 * 24 * time.Hour)
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return interval.TimeInterval{}, fmt.Errorf("invalid --to value (want RFC3339): %w", err)
		}
		end = t
	}

	return interval.New(start, end)
}

func printSlots(w io.Writer, slots []schedule.CandidateSlot, req schedule.SlotRequest) {
	if len(slots) == 0 {
		fmt.Fprintln(w, "No available time slots found in the requested range.")
		return
	}

	primaryLoc := req.PrimaryWindow.Location()
	fmt.Fprintf(w, "Found %d slot(s) for a %d minute meeting:\n", len(slots), int(req.Duration.Minutes()))
	for i, slot := range slots {
		fmt.Fprintf(w, "%2d. %s\n", i+1, slot.Interval.Start.In(primaryLoc).Format("Mon 2006-01-02 15:04 MST"))

		zones := make([]string, 0, len(slot.LocalStarts))
		for zone := range slot.LocalStarts {
			if zone != primaryLoc.String() {
				zones = append(zones, zone)
			}
		}
		sort.Strings(zones)
		for _, zone := range zones {
			fmt.Fprintf(w, "      %-24s %s\n", zone, slot.LocalStarts[zone].Format("Mon 15:04"))
		}
	}
}

// parseCommaSeparatedList parses a comma-separated string into a slice,
// trimming whitespace from each element and filtering out empty strings.
// Returns nil if the input is empty or contains only whitespace/commas.
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
