package models

// UserHealthProfile carries the per-request health data used to build diet and
// prediction prompts. It is never persisted as its own entity.
type UserHealthProfile struct {
	UserID string `json:"user_id"`

	Age    int     `json:"age"`
	Sex    string  `json:"sex"`
	Weight float64 `json:"weight"` // kg
	Height float64 `json:"height"` // cm

	HealthIssues       []string          `json:"health_issues"`
	SleepHours         float64           `json:"sleep_hours"`
	ActivityLevel      string            `json:"activity_level"`
	DietaryPreferences []string          `json:"dietary_preferences"`
	Allergies          []string          `json:"allergies"`
	FamilyHistory      map[string]string `json:"family_history"`
	CurrentMedications []string          `json:"current_medications"`
	DailyRoutine       string            `json:"daily_routine"`
}
