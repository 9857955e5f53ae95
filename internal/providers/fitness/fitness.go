package fitness

import (
	"context"
	"math"
	"time"

	"golang.org/x/oauth2"

	"github.com/healthsync/healthsync/internal/models"
)

// StepSource fetches bucketed daily step counts from the sensor API.
type StepSource interface {
	FetchDailySteps(ctx context.Context, token models.TokenInfo, start, end time.Time) ([]models.DailySteps, error)
}

// TokenExchanger swaps an OAuth authorization code for token material.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// Fixed step goals per time range.
var defaultGoals = map[string]int64{
	"today": 10000,
	"week":  70000,
	"month": 300000,
}

// CalculateGoalProgress compares an accumulated step count to the fixed goal
// for a time range. Progress is rounded to one decimal and capped at 100.
func CalculateGoalProgress(steps int64, timeRange string) models.GoalProgress {
	goal, ok := defaultGoals[timeRange]
	if !ok {
		goal = defaultGoals["today"]
	}

	pct := math.Round(float64(steps)/float64(goal)*1000) / 10
	if pct > 100 {
		pct = 100
	}

	status := "On Track"
	switch {
	case pct < 50:
		status = "Behind Target"
	case pct >= 100:
		status = "Goal Achieved"
	}

	remaining := goal - steps
	if remaining < 0 {
		remaining = 0
	}

	return models.GoalProgress{
		Goal:            goal,
		ProgressPercent: pct,
		Status:          status,
		StepsRemaining:  remaining,
	}
}

// Window resolves a time-range name to its fixed UTC start. Unrecognized
// values fall back to "today".
func Window(timeRange string, now time.Time) (start time.Time, resolved string) {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch timeRange {
	case "week":
		// Most recent Monday, 00:00 UTC.
		offset := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset), "week"
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), "month"
	default:
		return midnight, "today"
	}
}
