package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/providers/fitness"
	mongorepo "github.com/healthsync/healthsync/internal/repositories/mongo"
	"github.com/healthsync/healthsync/internal/utils"
)

// StepsService is the step-tracking flow: fetch aggregated sensor data, derive
// the summary, and read/write stored snapshots. Independent of the generator.
type StepsService interface {
	GetSteps(ctx context.Context, userID string, token models.TokenInfo, timeRange string) (*models.StepsSummary, error)
	SaveSteps(ctx context.Context, userID string, data map[string]any) (string, error)
	Summary(ctx context.Context, userID string, days int) ([]models.StepsSnapshot, error)
	ExchangeToken(ctx context.Context, code string) (map[string]any, error)
}

type stepsService struct {
	pipe      *Pipeline
	source    fitness.StepSource
	exchanger fitness.TokenExchanger
	repo      mongorepo.StepsRepository
	log       *logrus.Logger
}

func NewStepsService(pipe *Pipeline, source fitness.StepSource, exchanger fitness.TokenExchanger, repo mongorepo.StepsRepository, log *logrus.Logger) StepsService {
	return &stepsService{pipe: pipe, source: source, exchanger: exchanger, repo: repo, log: log}
}

func (s *stepsService) GetSteps(ctx context.Context, userID string, token models.TokenInfo, timeRange string) (*models.StepsSummary, error) {
	const op = "StepsService.GetSteps"

	if userID == "" || token.AccessToken == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and access_token are required", nil)
	}

	now := time.Now().UTC()
	start, resolved := fitness.Window(timeRange, now)

	daily, err := s.source.FetchDailySteps(ctx, token, start, now)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, d := range daily {
		total += d.Steps
	}

	summary := &models.StepsSummary{
		TimeRange:    resolved,
		TotalSteps:   total,
		DailyData:    daily,
		GoalProgress: fitness.CalculateGoalProgress(total, resolved),
	}

	s.pipe.logPersistFailure(models.StepsConversations, userID,
		s.pipe.Persist(ctx, models.StepsConversations, userID,
			fmt.Sprintf("Steps count for %s", resolved), asMap(summary),
			map[string]any{
				"time_range":  resolved,
				"total_steps": total,
			}))

	return summary, nil
}

func (s *stepsService) SaveSteps(ctx context.Context, userID string, data map[string]any) (string, error) {
	const op = "StepsService.SaveSteps"

	if userID == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	id, err := s.repo.SaveSnapshot(ctx, &models.StepsSnapshot{
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		StepsData: data,
	})
	if err != nil {
		return "", utils.E(utils.CodeStoreUnavailable, op, "failed to save steps data", err)
	}
	return id, nil
}

func (s *stepsService) Summary(ctx context.Context, userID string, days int) ([]models.StepsSnapshot, error) {
	const op = "StepsService.Summary"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if days <= 0 {
		days = 7
	}

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := midnight.AddDate(0, 0, -days)

	out, err := s.repo.History(ctx, userID, since, now)
	if err != nil {
		return nil, utils.E(utils.CodeStoreUnavailable, op, "failed to fetch steps summary", err)
	}
	return out, nil
}

func (s *stepsService) ExchangeToken(ctx context.Context, code string) (map[string]any, error) {
	tok, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"access_token": tok.AccessToken,
		"token_type":   tok.TokenType,
	}
	if tok.RefreshToken != "" {
		data["refresh_token"] = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		data["expires_at"] = tok.Expiry.Unix()
	}
	return data, nil
}
