package scheduling_tools

import (
	"strings"
	"testing"
	"time"

	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/schedule"
)

func TestParseCalendarList(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    []string
		wantErr bool
	}{
		{"single", map[string]interface{}{"calendars": "primary"}, []string{"primary"}, false},
		{"multiple with spaces", map[string]interface{}{"calendars": "a@x.com, b@x.com"}, []string{"a@x.com", "b@x.com"}, false},
		{"missing", map[string]interface{}{}, nil, true},
		{"empty", map[string]interface{}{"calendars": ""}, nil, true},
		{"only commas", map[string]interface{}{"calendars": ",, ,"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errResult := parseCalendarList(tt.args)
			if tt.wantErr {
				if errResult == nil {
					t.Fatal("expected an error result")
				}
				return
			}
			if errResult != nil {
				t.Fatalf("unexpected error result")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	valid := map[string]interface{}{
		"timeMin": "2026-03-02T00:00:00Z",
		"timeMax": "2026-03-09T00:00:00Z",
	}
	rng, errResult := parseTimeRange(valid)
	if errResult != nil {
		t.Fatal("unexpected error result for valid range")
	}
	if rng.Duration() != 7*24*time.Hour {
		t.Errorf("range duration = %v, want one week", rng.Duration())
	}

	bad := []map[string]interface{}{
		{"timeMax": "2026-03-09T00:00:00Z"},
		{"timeMin": "2026-03-02T00:00:00Z"},
		{"timeMin": "not a time", "timeMax": "2026-03-09T00:00:00Z"},
		{"timeMin": "2026-03-09T00:00:00Z", "timeMax": "2026-03-02T00:00:00Z"},
		{"timeMin": "2026-03-02T00:00:00Z", "timeMax": "2026-03-02T00:00:00Z"},
	}
	for i, args := range bad {
		if _, errResult := parseTimeRange(args); errResult == nil {
			t.Errorf("case %d: expected an error result", i)
		}
	}
}

func TestParseWeekAnchor_AnchorsInDisplayZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	// 2026-03-02 is a Monday. Anchored in New York, the week must start
	// on that same Monday; a UTC anchor would land on the previous local
	// Sunday and frame the prior week.
	anchor, errResult := parseWeekAnchor(map[string]interface{}{"weekOf": "2026-03-02"}, ny)
	if errResult != nil {
		t.Fatal("unexpected error result")
	}
	week := schedule.WeekBounds(anchor, ny)
	want := time.Date(2026, time.March, 2, 0, 0, 0, 0, ny)
	if !week.Start.Equal(want) {
		t.Errorf("week start = %v, want %v", week.Start, want)
	}

	if _, errResult := parseWeekAnchor(map[string]interface{}{"weekOf": "03/02/2026"}, ny); errResult == nil {
		t.Error("expected an error result for a malformed date")
	}

	anchor, errResult = parseWeekAnchor(map[string]interface{}{}, ny)
	if errResult != nil {
		t.Fatal("unexpected error result for missing weekOf")
	}
	if anchor.Location() != ny {
		t.Errorf("default anchor location = %v, want %v", anchor.Location(), ny)
	}
}

func TestFormatSlots(t *testing.T) {
	primary, err := interval.NewWorkingWindow("Europe/Berlin", 9, 17, true)
	if err != nil {
		t.Fatalf("NewWorkingWindow() error = %v", err)
	}
	bangkok, err := interval.NewWorkingWindow("Asia/Bangkok", 9, 17, true)
	if err != nil {
		t.Fatalf("NewWorkingWindow() error = %v", err)
	}

	req := schedule.SlotRequest{
		Duration:           time.Hour,
		PrimaryWindow:      primary,
		ParticipantWindows: []interval.WorkingWindow{bangkok},
	}

	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	slots := []schedule.CandidateSlot{{
		Interval: interval.TimeInterval{Start: start, End: start.Add(time.Hour)},
		LocalStarts: map[string]time.Time{
			"Europe/Berlin": start.In(primary.Location()),
			"Asia/Bangkok":  start.In(bangkok.Location()),
		},
	}}

	out := formatSlots(slots, req)
	if !strings.Contains(out, "Found 1 available time slot(s)") {
		t.Errorf("missing header in output:\n%s", out)
	}
	if !strings.Contains(out, "Asia/Bangkok") {
		t.Errorf("participant timezone not rendered:\n%s", out)
	}
	if !strings.Contains(out, "60 minute meeting") {
		t.Errorf("duration not rendered:\n%s", out)
	}
}

func TestFormatSlots_Empty(t *testing.T) {
	out := formatSlots(nil, schedule.SlotRequest{})
	if !strings.Contains(out, "No available time slots") {
		t.Errorf("empty result message missing:\n%s", out)
	}
}

func TestFormatBrief(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	meeting := schedule.Event{
		ID:      "e1",
		Summary: "Planning",
		Interval: interval.TimeInterval{
			Start: time.Date(2026, time.March, 3, 10, 0, 0, 0, berlin),
			End:   time.Date(2026, time.March, 3, 11, 30, 0, 0, berlin),
		},
		AttendeeCount: 6,
	}
	clash := schedule.Event{
		ID:      "e2",
		Summary: "Interview",
		Interval: interval.TimeInterval{
			Start: time.Date(2026, time.March, 3, 11, 0, 0, 0, berlin),
			End:   time.Date(2026, time.March, 3, 12, 0, 0, 0, berlin),
		},
	}

	brief := schedule.Brief{
		Calendar:   "primary",
		Timezone:   "Europe/Berlin",
		WeekStart:  time.Date(2026, time.March, 2, 0, 0, 0, 0, berlin),
		WeekEnd:    time.Date(2026, time.March, 9, 0, 0, 0, 0, berlin),
		EventCount: 2,
		TotalHours: 2.5,
		BusiestDay: "2026-03-03",
		FreeDays:   []string{"2026-03-02", "2026-03-04"},
		Days: []schedule.DayLoad{{
			Date:         "2026-03-03",
			Events:       []schedule.Event{meeting, clash},
			BusyDuration: 150 * time.Minute,
		}},
		Highlights: []schedule.Highlight{{Event: meeting, Reason: schedule.HighlightLargeMeeting}},
		Conflicts:  []schedule.ConflictPair{{Date: "2026-03-03", First: meeting, Second: clash}},
	}

	out := formatBrief(brief)
	for _, want := range []string{
		"Weekly brief for primary (Europe/Berlin)",
		"Week: 2026-03-02 to 2026-03-08",
		"Events: 2, total 2.5 hours",
		"Busiest day: 2026-03-03",
		"Free weekdays: 2026-03-02, 2026-03-04",
		"10:00 Planning",
		"large meeting",
		`"Planning" overlaps "Interview"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatBrief_NoConflicts(t *testing.T) {
	brief := schedule.Brief{
		Calendar:  "primary",
		Timezone:  "UTC",
		WeekStart: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		WeekEnd:   time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
	}
	out := formatBrief(brief)
	if !strings.Contains(out, "No scheduling conflicts this week.") {
		t.Errorf("missing no-conflict line:\n%s", out)
	}
}

func TestFormatBusy(t *testing.T) {
	rng := interval.TimeInterval{
		Start: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
	}

	out := formatBusy([]string{"primary"}, nil, rng)
	if !strings.Contains(out, "FREE for the entire range") {
		t.Errorf("missing free message:\n%s", out)
	}

	busy := []schedule.BusyPeriod{
		{Calendar: "primary", Interval: interval.TimeInterval{
			Start: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
		}},
		{Calendar: "team", Interval: interval.TimeInterval{
			Start: time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC),
			End:   time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC),
		}},
	}
	out = formatBusy([]string{"primary", "team"}, busy, rng)
	if !strings.Contains(out, "1. 2026-03-02 09:00 to 2026-03-02 11:00") {
		t.Errorf("overlapping periods should merge:\n%s", out)
	}
	if strings.Contains(out, "2. ") {
		t.Errorf("expected a single merged period:\n%s", out)
	}
}
