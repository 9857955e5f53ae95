package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/providers/llm"
)

const dietHistoryLimit = 3

// DomainResult is the plain status envelope shared by the diet, prediction,
// and report flows.
type DomainResult struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

type DietService interface {
	GenerateDietPlan(ctx context.Context, profile models.UserHealthProfile) *DomainResult
	PredictHealthMetrics(ctx context.Context, profile models.UserHealthProfile) *DomainResult
}

type dietService struct {
	pipe *Pipeline
	log  *logrus.Logger
}

func NewDietService(pipe *Pipeline, log *logrus.Logger) DietService {
	return &dietService{pipe: pipe, log: log}
}

func (s *dietService) GenerateDietPlan(ctx context.Context, profile models.UserHealthProfile) *DomainResult {
	raw, err := s.pipe.Run(ctx, models.DietConversations, profile.UserID, dietHistoryLimit, nil,
		func(h []llm.Message) llm.Request { return DietPrompt(profile, h) })
	if err != nil {
		return &DomainResult{
			Status:  StatusError,
			Message: fmt.Sprintf("Failed to generate diet plan: %v", err),
		}
	}

	if profile.UserID != "" {
		query := fmt.Sprintf("Diet plan request for %d-year-old %s", profile.Age, profile.Sex)
		s.pipe.logPersistFailure(models.DietConversations, profile.UserID,
			s.pipe.Persist(ctx, models.DietConversations, profile.UserID, query, asMap(raw),
				map[string]any{
					"health_issues":       profile.HealthIssues,
					"dietary_preferences": profile.DietaryPreferences,
					"allergies":           profile.Allergies,
				}))
	}

	return &DomainResult{Status: StatusSuccess, Data: raw}
}

func (s *dietService) PredictHealthMetrics(ctx context.Context, profile models.UserHealthProfile) *DomainResult {
	raw, err := s.pipe.Run(ctx, models.DietConversations, profile.UserID, 0, nil,
		func([]llm.Message) llm.Request { return PredictionPrompt(profile) })
	if err != nil {
		return &DomainResult{
			Status:  StatusError,
			Message: fmt.Sprintf("Failed to predict health metrics: %v", err),
		}
	}

	if profile.UserID != "" {
		query := fmt.Sprintf("Health metrics prediction for %d-year-old %s", profile.Age, profile.Sex)
		s.pipe.logPersistFailure(models.DietConversations, profile.UserID,
			s.pipe.Persist(ctx, models.DietConversations, profile.UserID, query, asMap(raw),
				map[string]any{
					"health_issues":  profile.HealthIssues,
					"family_history": profile.FamilyHistory,
				}))
	}

	return &DomainResult{Status: StatusSuccess, Data: raw}
}
