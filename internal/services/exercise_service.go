package services

import (
	"context"
	"time"

	"github.com/healthsync/healthsync/internal/models"
	mongorepo "github.com/healthsync/healthsync/internal/repositories/mongo"
	"github.com/healthsync/healthsync/internal/utils"
)

type ExerciseService interface {
	Record(ctx context.Context, rec *models.ExerciseRecord) (string, error)
	History(ctx context.Context, userID string, limit int64) ([]models.ExerciseRecord, error)
}

type exerciseService struct {
	repo mongorepo.ExerciseRepository
}

func NewExerciseService(repo mongorepo.ExerciseRepository) ExerciseService {
	return &exerciseService{repo: repo}
}

func (s *exerciseService) Record(ctx context.Context, rec *models.ExerciseRecord) (string, error) {
	const op = "ExerciseService.Record"

	if rec.UserID == "" || rec.ExerciseType == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "user_id and exercise_type are required", nil)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	id, err := s.repo.Save(ctx, rec)
	if err != nil {
		return "", utils.E(utils.CodeStoreUnavailable, op, "failed to save exercise record", err)
	}
	return id, nil
}

func (s *exerciseService) History(ctx context.Context, userID string, limit int64) ([]models.ExerciseRecord, error) {
	const op = "ExerciseService.History"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	out, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeStoreUnavailable, op, "failed to list exercise history", err)
	}
	return out, nil
}
