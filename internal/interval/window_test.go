package interval

import (
	"errors"
	"testing"
	"time"
)

func TestNewWorkingWindow(t *testing.T) {
	tests := []struct {
		name      string
		timezone  string
		startHour int
		endHour   int
		wantErr   bool
	}{
		{name: "valid", timezone: "Europe/London", startHour: 9, endHour: 17},
		{name: "utc", timezone: "UTC", startHour: 0, endHour: 23},
		{name: "inverted hours", timezone: "UTC", startHour: 17, endHour: 9, wantErr: true},
		{name: "equal hours", timezone: "UTC", startHour: 9, endHour: 9, wantErr: true},
		{name: "hour out of range", timezone: "UTC", startHour: -1, endHour: 9, wantErr: true},
		{name: "hour too large", timezone: "UTC", startHour: 9, endHour: 24, wantErr: true},
		{name: "unknown timezone", timezone: "Mars/Olympus", startHour: 9, endHour: 17, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorkingWindow(tt.timezone, tt.startHour, tt.endHour, true)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWorkingWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("NewWorkingWindow() error = %v, want ErrInvalidWindow", err)
			}
		})
	}
}

func TestDayInterval(t *testing.T) {
	w, err := NewWorkingWindow("America/New_York", 9, 17, true)
	if err != nil {
		t.Fatalf("NewWorkingWindow() error = %v", err)
	}

	// 2026-03-02 is a Monday, EST (UTC-5).
	day := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	got := w.DayInterval(day)

	loc := w.Location()
	wantStart := time.Date(2026, time.March, 2, 9, 0, 0, 0, loc)
	wantEnd := time.Date(2026, time.March, 2, 17, 0, 0, 0, loc)
	if !got.Start.Equal(wantStart) || !got.End.Equal(wantEnd) {
		t.Errorf("DayInterval() = [%v, %v), want [%v, %v)", got.Start, got.End, wantStart, wantEnd)
	}
}

func TestDayIntervalDSTSpringForward(t *testing.T) {
	// US DST starts 2026-03-08: 02:00 EST jumps to 03:00 EDT. The working
	// interval must still run 09:00-17:00 local wall clock, which is one
	// hour shorter in absolute terms than a normal day would suggest from
	// the previous day's offset.
	w, err := NewWorkingWindow("America/New_York", 9, 17, false)
	if err != nil {
		t.Fatalf("NewWorkingWindow() error = %v", err)
	}

	day := time.Date(2026, time.March, 8, 12, 0, 0, 0, w.Location())
	got := w.DayInterval(day)

	if h := got.Start.In(w.Location()).Hour(); h != 9 {
		t.Errorf("start hour = %d, want 9", h)
	}
	if h := got.End.In(w.Location()).Hour(); h != 17 {
		t.Errorf("end hour = %d, want 17", h)
	}
	if d := got.Duration(); d != 8*time.Hour {
		t.Errorf("duration = %v, want 8h", d)
	}
	// Offsets differ across the transition at 02:00 local.
	_, startOff := got.Start.Zone()
	if startOff != -4*3600 {
		t.Errorf("start offset = %d, want EDT (-4h)", startOff)
	}
}

func TestContainsInterval(t *testing.T) {
	london, err := NewWorkingWindow("Europe/London", 9, 17, true)
	if err != nil {
		t.Fatalf("NewWorkingWindow() error = %v", err)
	}
	loc := london.Location()

	tests := []struct {
		name string
		iv   TimeInterval
		want bool
	}{
		{
			name: "fully inside working hours",
			iv: TimeInterval{
				time.Date(2026, time.March, 2, 10, 0, 0, 0, loc),
				time.Date(2026, time.March, 2, 11, 0, 0, 0, loc),
			},
			want: true,
		},
		{
			name: "ends exactly at end hour",
			iv: TimeInterval{
				time.Date(2026, time.March, 2, 16, 0, 0, 0, loc),
				time.Date(2026, time.March, 2, 17, 0, 0, 0, loc),
			},
			want: true,
		},
		{
			name: "starts before working hours",
			iv: TimeInterval{
				time.Date(2026, time.March, 2, 8, 30, 0, 0, loc),
				time.Date(2026, time.March, 2, 9, 30, 0, 0, loc),
			},
			want: false,
		},
		{
			name: "runs past end hour",
			iv: TimeInterval{
				time.Date(2026, time.March, 2, 16, 30, 0, 0, loc),
				time.Date(2026, time.March, 2, 17, 30, 0, 0, loc),
			},
			want: false,
		},
		{
			name: "spans local midnight",
			iv: TimeInterval{
				time.Date(2026, time.March, 2, 23, 0, 0, 0, loc),
				time.Date(2026, time.March, 3, 1, 0, 0, 0, loc),
			},
			want: false,
		},
		{
			name: "saturday rejected when weekends excluded",
			iv: TimeInterval{
				time.Date(2026, time.March, 7, 10, 0, 0, 0, loc),
				time.Date(2026, time.March, 7, 11, 0, 0, 0, loc),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := london.ContainsInterval(tt.iv); got != tt.want {
				t.Errorf("ContainsInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsIntervalWeekendAllowed(t *testing.T) {
	w, err := NewWorkingWindow("Europe/London", 9, 17, false)
	if err != nil {
		t.Fatalf("NewWorkingWindow() error = %v", err)
	}
	loc := w.Location()

	// Saturday, but this window does not exclude weekends.
	iv := TimeInterval{
		time.Date(2026, time.March, 7, 10, 0, 0, 0, loc),
		time.Date(2026, time.March, 7, 11, 0, 0, 0, loc),
	}
	if !w.ContainsInterval(iv) {
		t.Error("ContainsInterval() = false, want true for weekend-allowed window")
	}
}

func TestContainsIntervalCrossZone(t *testing.T) {
	// 09:00-17:00 Bangkok is 02:00-10:00 UTC (no DST in Asia/Bangkok);
	// 09:00-17:00 London (GMT in early March) is 09:00-17:00 UTC. The
	// shared range is 09:00-10:00 UTC, i.e. 16:00-17:00 Bangkok.
	bangkok, err := NewWorkingWindow("Asia/Bangkok", 9, 17, true)
	if err != nil {
		t.Fatalf("NewWorkingWindow() error = %v", err)
	}
	london, err := NewWorkingWindow("Europe/London", 9, 17, true)
	if err != nil {
		t.Fatalf("NewWorkingWindow() error = %v", err)
	}

	inOverlap := TimeInterval{
		time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
	}
	if !bangkok.ContainsInterval(inOverlap) {
		t.Error("Bangkok window should contain 16:00-17:00 local")
	}
	if !london.ContainsInterval(inOverlap) {
		t.Error("London window should contain 09:00-10:00 local")
	}

	beforeOverlap := TimeInterval{
		time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
	}
	if !bangkok.ContainsInterval(beforeOverlap) {
		t.Error("Bangkok window should contain 15:00-16:00 local")
	}
	if london.ContainsInterval(beforeOverlap) {
		t.Error("London window should reject 08:00-09:00 local")
	}
}
