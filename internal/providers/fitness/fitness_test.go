package fitness

import (
	"testing"
	"time"
)

func TestWindow(t *testing.T) {
	// A Saturday afternoon.
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		in           string
		wantStart    time.Time
		wantResolved string
	}{
		{"today", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), "today"},
		{"week", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), "week"}, // most recent Monday
		{"month", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), "month"},
		{"fortnight", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), "today"},
		{"", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), "today"},
	}

	for _, tc := range cases {
		start, resolved := Window(tc.in, now)
		if !start.Equal(tc.wantStart) || resolved != tc.wantResolved {
			t.Errorf("Window(%q) = (%s, %q), want (%s, %q)",
				tc.in, start, resolved, tc.wantStart, tc.wantResolved)
		}
	}
}

func TestWindowOnAMonday(t *testing.T) {
	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC) // Monday
	start, _ := Window("week", now)
	if !start.Equal(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start on a Monday = %s, want same day midnight", start)
	}
}

func TestCalculateGoalProgress(t *testing.T) {
	cases := []struct {
		steps         int64
		timeRange     string
		wantGoal      int64
		wantPct       float64
		wantStatus    string
		wantRemaining int64
	}{
		{10000, "today", 10000, 100, "Goal Achieved", 0},
		{15000, "today", 10000, 100, "Goal Achieved", 0},
		{3000, "today", 10000, 30.0, "Behind Target", 7000},
		{6000, "today", 10000, 60.0, "On Track", 4000},
		{4999, "today", 10000, 50.0, "On Track", 5001}, // rounds up across the 50% line
		{35000, "week", 70000, 50.0, "On Track", 35000},
		{150000, "month", 300000, 50.0, "On Track", 150000},
		{0, "today", 10000, 0, "Behind Target", 10000},
		{2500, "unknown", 10000, 25.0, "Behind Target", 7500},
	}

	for _, tc := range cases {
		got := CalculateGoalProgress(tc.steps, tc.timeRange)
		if got.Goal != tc.wantGoal || got.ProgressPercent != tc.wantPct ||
			got.Status != tc.wantStatus || got.StepsRemaining != tc.wantRemaining {
			t.Errorf("CalculateGoalProgress(%d, %q) = %+v", tc.steps, tc.timeRange, got)
		}
	}
}
