package scheduling_tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/slotwise/internal/google"
	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/schedule"
	"github.com/teemow/slotwise/internal/server"
	"github.com/teemow/slotwise/internal/tools/common"
)

const (
	defaultWorkStartHour = 9
	defaultWorkEndHour   = 17
)

func registerFindMeetingSlotsTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("calendar_find_meeting_slots",
		mcp.WithDescription("Find ranked meeting slots across participant timezones, respecting everyone's working hours"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendars",
			mcp.Required(),
			mcp.Description("Comma-separated list of calendar IDs or attendee email addresses whose busy time blocks slots"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Required(),
			mcp.Description("Meeting duration in minutes"),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start of the search range (RFC3339, e.g. '2026-03-02T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End of the search range (RFC3339, exclusive)"),
		),
		mcp.WithString("timezone",
			mcp.Required(),
			mcp.Description("Primary IANA timezone the search walks day by day (e.g. 'Europe/Berlin')"),
		),
		mcp.WithString("participantTimezones",
			mcp.Description("Comma-separated IANA timezones of other participants; every returned slot fits their working hours too"),
		),
		mcp.WithNumber("workStartHour",
			mcp.Description("Working hours start (0-23, default 9), applied in every timezone"),
		),
		mcp.WithNumber("workEndHour",
			mcp.Description("Working hours end (0-23, default 17), applied in every timezone"),
		),
		mcp.WithBoolean("includeWeekends",
			mcp.Description("Consider Saturday and Sunday in the primary timezone (default false)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of slots to return (default 10)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandler("calendar_find_meeting_slots", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindMeetingSlots(ctx, request, sc)
		}))
}

func registerWeeklyBriefTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("calendar_weekly_brief",
		mcp.WithDescription("Compute an analytic brief for one week of a calendar: load per day, highlights, overlap conflicts, free days"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendar",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("weekOf",
			mcp.Description("Any date inside the week of interest (YYYY-MM-DD, default: today). The brief covers that week's Monday through Sunday."),
		),
		mcp.WithString("timezone",
			mcp.Required(),
			mcp.Description("IANA timezone the week is framed and grouped in"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandler("calendar_weekly_brief", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleWeeklyBrief(ctx, request, sc)
		}))
}

func registerQueryFreeBusyTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("calendar_query_freebusy",
		mcp.WithDescription("Check availability for one or more calendars/attendees in a time range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start time for the range (RFC3339 format, e.g., '2026-03-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End time for the range (RFC3339 format, e.g., '2026-03-31T23:59:59Z')"),
		),
		mcp.WithString("calendars",
			mcp.Required(),
			mcp.Description("Comma-separated list of calendar IDs or email addresses to check"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandler("calendar_query_freebusy", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryFreeBusy(ctx, request, sc)
		}))
}

func handleFindMeetingSlots(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	calendars, errResult := parseCalendarList(args)
	if errResult != nil {
		return errResult, nil
	}

	durationMinutes, ok := args["durationMinutes"].(float64)
	if !ok || durationMinutes <= 0 {
		return mcp.NewToolResultError("durationMinutes is required and must be positive"), nil
	}
	duration := time.Duration(durationMinutes) * time.Minute

	rng, errResult := parseTimeRange(args)
	if errResult != nil {
		return errResult, nil
	}

	timezone, ok := args["timezone"].(string)
	if !ok || timezone == "" {
		return mcp.NewToolResultError("timezone is required"), nil
	}

	startHour := intArg(args, "workStartHour", defaultWorkStartHour)
	endHour := intArg(args, "workEndHour", defaultWorkEndHour)
	includeWeekends, _ := args["includeWeekends"].(bool)

	primary, err := interval.NewWorkingWindow(timezone, startHour, endHour, !includeWeekends)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid working window: %v", err)), nil
	}

	var participants []interval.WorkingWindow
	if tzList, ok := args["participantTimezones"].(string); ok && tzList != "" {
		for _, tz := range strings.Split(tzList, ",") {
			tz = strings.TrimSpace(tz)
			if tz == "" {
				continue
			}
			w, err := interval.NewWorkingWindow(tz, startHour, endHour, !includeWeekends)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid participant timezone: %v", err)), nil
			}
			participants = append(participants, w)
		}
	}

	maxResults := 0
	if v, ok := args["maxResults"].(float64); ok && v > 0 {
		maxResults = int(v)
	}

	engine, err := getEngine(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := schedule.SlotRequest{
		Duration:           duration,
		Range:              rng,
		PrimaryWindow:      primary,
		ParticipantWindows: participants,
		MaxResults:         maxResults,
	}

	slots, err := engine.FindSlots(ctx, calendars, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to find meeting slots: %v", err)), nil
	}

	return mcp.NewToolResultText(formatSlots(slots, req)), nil
}

func handleWeeklyBrief(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	calendarID := "primary"
	if v, ok := args["calendar"].(string); ok && v != "" {
		calendarID = v
	}

	timezone, ok := args["timezone"].(string)
	if !ok || timezone == "" {
		return mcp.NewToolResultError("timezone is required"), nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown timezone %q: %v", timezone, err)), nil
	}

	weekOf, errResult := parseWeekAnchor(args, loc)
	if errResult != nil {
		return errResult, nil
	}

	engine, err := getEngine(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	brief, err := engine.WeeklyBrief(ctx, calendarID, weekOf, timezone)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute weekly brief: %v", err)), nil
	}

	return mcp.NewToolResultText(formatBrief(brief)), nil
}

func handleQueryFreeBusy(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	calendars, errResult := parseCalendarList(args)
	if errResult != nil {
		return errResult, nil
	}
	rng, errResult := parseTimeRange(args)
	if errResult != nil {
		return errResult, nil
	}

	client := sc.CalendarClientForAccount(account)
	if client == nil {
		return mcp.NewToolResultError(google.GetAuthenticationErrorMessage(account)), nil
	}

	busy, err := client.FetchBusy(ctx, calendars, rng)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query free/busy: %v", err)), nil
	}

	return mcp.NewToolResultText(formatBusy(calendars, busy, rng)), nil
}

// parseCalendarList extracts and splits the required "calendars" argument.
func parseCalendarList(args map[string]interface{}) ([]string, *mcp.CallToolResult) {
	calendarsStr, ok := args["calendars"].(string)
	if !ok || calendarsStr == "" {
		return nil, mcp.NewToolResultError("calendars is required")
	}

	parts := strings.Split(calendarsStr, ",")
	calendars := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			calendars = append(calendars, p)
		}
	}
	if len(calendars) == 0 {
		return nil, mcp.NewToolResultError("calendars is required")
	}
	return calendars, nil
}

// parseTimeRange extracts the required timeMin/timeMax pair.
func parseTimeRange(args map[string]interface{}) (interval.TimeInterval, *mcp.CallToolResult) {
	timeMinStr, ok := args["timeMin"].(string)
	if !ok || timeMinStr == "" {
		return interval.TimeInterval{}, mcp.NewToolResultError("timeMin is required")
	}
	timeMin, err := time.Parse(time.RFC3339, timeMinStr)
	if err != nil {
		return interval.TimeInterval{}, mcp.NewToolResultError(fmt.Sprintf("Invalid timeMin format: %v", err))
	}

	timeMaxStr, ok := args["timeMax"].(string)
	if !ok || timeMaxStr == "" {
		return interval.TimeInterval{}, mcp.NewToolResultError("timeMax is required")
	}
	timeMax, err := time.Parse(time.RFC3339, timeMaxStr)
	if err != nil {
		return interval.TimeInterval{}, mcp.NewToolResultError(fmt.Sprintf("Invalid timeMax format: %v", err))
	}

	if !timeMin.Before(timeMax) {
		return interval.TimeInterval{}, mcp.NewToolResultError("timeMax must be after timeMin")
	}
	return interval.TimeInterval{Start: timeMin, End: timeMax}, nil
}

// parseWeekAnchor extracts the optional "weekOf" date, anchored at local
// midnight in the display timezone so the week is framed in that zone.
// Missing weekOf means the current week.
func parseWeekAnchor(args map[string]interface{}, loc *time.Location) (time.Time, *mcp.CallToolResult) {
	v, ok := args["weekOf"].(string)
	if !ok || v == "" {
		return time.Now().In(loc), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", v, loc)
	if err != nil {
		return time.Time{}, mcp.NewToolResultError(fmt.Sprintf("Invalid weekOf date (want YYYY-MM-DD): %v", err))
	}
	return parsed, nil
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

// formatSlots renders candidate slots with each involved timezone's local
// start time, primary zone first.
func formatSlots(slots []schedule.CandidateSlot, req schedule.SlotRequest) string {
	if len(slots) == 0 {
		return "No available time slots found for the specified criteria"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d available time slot(s) for a %d minute meeting:\n\n",
		len(slots), int(req.Duration.Minutes()))

	for i, slot := range slots {
		fmt.Fprintf(&b, "%d. %s to %s\n",
			i+1,
			slot.Interval.Start.In(req.PrimaryWindow.Location()).Format("Mon, Jan 2 at 15:04 MST"),
			slot.Interval.End.In(req.PrimaryWindow.Location()).Format("15:04 MST"))

		zones := make([]string, 0, len(slot.LocalStarts))
		for tz := range slot.LocalStarts {
			if tz != req.PrimaryWindow.Timezone {
				zones = append(zones, tz)
			}
		}
		sort.Strings(zones)
		for _, tz := range zones {
			fmt.Fprintf(&b, "   %s: %s\n", tz, slot.LocalStarts[tz].Format("Mon 15:04"))
		}
	}

	return b.String()
}

// formatBrief renders the weekly brief as readable text. Event times are
// shown in the brief's display timezone.
func formatBrief(brief schedule.Brief) string {
	loc, err := time.LoadLocation(brief.Timezone)
	if err != nil {
		loc = time.UTC
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly brief for %s (%s)\n", brief.Calendar, brief.Timezone)
	fmt.Fprintf(&b, "Week: %s to %s\n\n",
		brief.WeekStart.Format("2006-01-02"),
		brief.WeekEnd.AddDate(0, 0, -1).Format("2006-01-02"))

	fmt.Fprintf(&b, "Events: %d, total %.1f hours in meetings\n", brief.EventCount, brief.TotalHours)
	if brief.BusiestDay != "" {
		fmt.Fprintf(&b, "Busiest day: %s\n", brief.BusiestDay)
	}
	if len(brief.FreeDays) > 0 {
		fmt.Fprintf(&b, "Free weekdays: %s\n", strings.Join(brief.FreeDays, ", "))
	}

	if len(brief.Days) > 0 {
		b.WriteString("\nBy day:\n")
		for _, day := range brief.Days {
			fmt.Fprintf(&b, "  %s: %d event(s), %.1fh\n",
				day.Date, len(day.Events), day.BusyDuration.Hours())
			for _, ev := range day.Events {
				if ev.AllDay {
					fmt.Fprintf(&b, "    - %s (all day)\n", eventLabel(ev))
				} else {
					fmt.Fprintf(&b, "    - %s %s\n",
						ev.Interval.Start.In(loc).Format("15:04"), eventLabel(ev))
				}
			}
		}
	}

	if len(brief.Highlights) > 0 {
		b.WriteString("\nHighlights:\n")
		for _, h := range brief.Highlights {
			fmt.Fprintf(&b, "  - %s (%s)\n", eventLabel(h.Event), h.Reason)
		}
	}

	if len(brief.Conflicts) > 0 {
		b.WriteString("\nConflicts:\n")
		for _, c := range brief.Conflicts {
			fmt.Fprintf(&b, "  - %s: %q overlaps %q\n",
				c.Date, eventLabel(c.First), eventLabel(c.Second))
		}
	} else {
		b.WriteString("\nNo scheduling conflicts this week.\n")
	}

	return b.String()
}

func eventLabel(ev schedule.Event) string {
	if ev.Summary != "" {
		return ev.Summary
	}
	return ev.ID
}

// formatBusy renders the merged busy timeline for a range.
func formatBusy(calendars []string, busy []schedule.BusyPeriod, rng interval.TimeInterval) string {
	merged := schedule.MergeBusy(busy)

	var b strings.Builder
	fmt.Fprintf(&b, "Merged busy timeline for %d calendar(s), %s to %s:\n\n",
		len(calendars),
		rng.Start.Format("2006-01-02 15:04"),
		rng.End.Format("2006-01-02 15:04"))

	if len(merged) == 0 {
		b.WriteString("FREE for the entire range\n")
		return b.String()
	}

	for i, iv := range merged {
		fmt.Fprintf(&b, "%d. %s to %s\n",
			i+1,
			iv.Start.Format("2006-01-02 15:04"),
			iv.End.Format("2006-01-02 15:04"))
	}
	return b.String()
}
