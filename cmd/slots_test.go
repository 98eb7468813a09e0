package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/teemow/slotwise/internal/config"
	"github.com/teemow/slotwise/internal/interval"
	"github.com/teemow/slotwise/internal/schedule"
)

func TestParseCommaSeparatedList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "primary",
			expected: []string{"primary"},
		},
		{
			name:     "multiple values",
			input:    "primary,team@example.com",
			expected: []string{"primary", "team@example.com"},
		},
		{
			name:     "values with spaces around comma",
			input:    "primary, team@example.com",
			expected: []string{"primary", "team@example.com"},
		},
		{
			name:     "trailing comma",
			input:    "primary,team@example.com,",
			expected: []string{"primary", "team@example.com"},
		},
		{
			name:     "multiple consecutive commas",
			input:    "primary,,team@example.com",
			expected: []string{"primary", "team@example.com"},
		},
		{
			name:     "only commas and spaces",
			input:    ",  , , ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseCommaSeparatedList(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("parseCommaSeparatedList(%q) = %v (len %d), want %v (len %d)",
					tt.input, result, len(result), tt.expected, len(tt.expected))
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("parseCommaSeparatedList(%q)[%d] = %q, want %q",
						tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}

func TestParseRangeFlags(t *testing.T) {
	rng, err := parseRangeFlags("2026-03-02T09:00:00Z", "2026-03-06T17:00:00Z")
	if err != nil {
		t.Fatalf("parseRangeFlags() error = %v", err)
	}
	if rng.Duration() != 4*24*time.Hour+8*time.Hour {
		t.Errorf("range duration = %v", rng.Duration())
	}

	rng, err = parseRangeFlags("2026-03-02T09:00:00Z", "")
	if err != nil {
		t.Fatalf("parseRangeFlags() error = %v", err)
	}
	if rng.Duration() != 7*24*time.Hour {
		t.Errorf("default range duration = %v, want one week", rng.Duration())
	}

	if _, err := parseRangeFlags("not a time", ""); err == nil {
		t.Error("parseRangeFlags() should reject a malformed --from")
	}
	if _, err := parseRangeFlags("2026-03-06T17:00:00Z", "2026-03-02T09:00:00Z"); err == nil {
		t.Error("parseRangeFlags() should reject an inverted range")
	}
}

func TestEnginePolicy(t *testing.T) {
	policy := enginePolicy(nil)
	if policy.SlotStep != schedule.DefaultSlotStep {
		t.Errorf("nil config should yield defaults, got step %v", policy.SlotStep)
	}

	cfg := &config.Config{SlotStepMinutes: 15, LargeMeetingThreshold: 8}
	policy = enginePolicy(cfg)
	if policy.SlotStep != 15*time.Minute {
		t.Errorf("SlotStep = %v, want 15m", policy.SlotStep)
	}
	if policy.LargeMeetingThreshold != 8 {
		t.Errorf("LargeMeetingThreshold = %d, want 8", policy.LargeMeetingThreshold)
	}
}

func TestPrintSlots(t *testing.T) {
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

	var sb strings.Builder
	printSlots(&sb, slots, req)
	out := sb.String()

	if !strings.Contains(out, "Found 1 slot(s) for a 60 minute meeting") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Asia/Bangkok") {
		t.Errorf("participant timezone not rendered:\n%s", out)
	}

	sb.Reset()
	printSlots(&sb, nil, req)
	if !strings.Contains(sb.String(), "No available time slots") {
		t.Errorf("empty result message missing:\n%s", sb.String())
	}
}

func TestPrintBrief(t *testing.T) {
	event := schedule.Event{
		ID:      "e1",
		Summary: "Planning",
		Interval: interval.TimeInterval{
			Start: time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.March, 3, 11, 0, 0, 0, time.UTC),
		},
	}
	brief := schedule.Brief{
		Calendar:   "primary",
		Timezone:   "UTC",
		WeekStart:  time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		WeekEnd:    time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		EventCount: 1,
		TotalHours: 1,
		BusiestDay: "2026-03-03",
		Days: []schedule.DayLoad{{
			Date:         "2026-03-03",
			Events:       []schedule.Event{event},
			BusyDuration: time.Hour,
		}},
	}

	var sb strings.Builder
	printBrief(&sb, brief)
	out := sb.String()

	for _, want := range []string{
		"Weekly brief for primary (UTC)",
		"Week: 2026-03-02 to 2026-03-08",
		"10:00-11:00  Planning",
		"No scheduling conflicts this week.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
