package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseRecord is one stored exercise-tracking entry. No model call is
// involved in recording these.
type ExerciseRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	ExerciseType string  `bson:"exercise_type" json:"exercise_type"`
	Reps         int     `bson:"reps" json:"reps"`
	Accuracy     float64 `bson:"accuracy" json:"accuracy"`
	Feedback     string  `bson:"feedback,omitempty" json:"feedback,omitempty"`
}
