package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenInfo carries the Google Fit OAuth token material supplied by the caller.
type TokenInfo struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"` // unix seconds
}

// DailySteps is one daily bucket of aggregated step counts.
type DailySteps struct {
	Date  string `json:"date" bson:"date"` // YYYY-MM-DD
	Steps int64  `json:"steps" bson:"steps"`
}

// GoalProgress compares an accumulated step count to the fixed target for a
// time range.
type GoalProgress struct {
	Goal            int64   `json:"goal" bson:"goal"`
	ProgressPercent float64 `json:"progress_percent" bson:"progress_percent"`
	Status          string  `json:"status" bson:"status"`
	StepsRemaining  int64   `json:"steps_remaining" bson:"steps_remaining"`
}

// StepsSummary is the aggregated activity result for one time range. It is
// derived from fetched sensor data and persisted verbatim on save requests.
type StepsSummary struct {
	TimeRange    string       `json:"time_range" bson:"time_range"`
	TotalSteps   int64        `json:"total_steps" bson:"total_steps"`
	DailyData    []DailySteps `json:"daily_data" bson:"daily_data"`
	GoalProgress GoalProgress `json:"goal_progress" bson:"goal_progress"`
}

// StepsSnapshot is one stored steps_data record.
type StepsSnapshot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	StepsData map[string]any     `bson:"steps_data" json:"steps_data"`
}
