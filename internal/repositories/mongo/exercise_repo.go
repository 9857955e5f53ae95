package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthsync/healthsync/internal/models"
)

type ExerciseRepository interface {
	Save(ctx context.Context, rec *models.ExerciseRecord) (string, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.ExerciseRecord, error)
}

type exerciseRepo struct {
	col *mongo.Collection
}

func NewExerciseRepo(db *mongo.Database) ExerciseRepository {
	return &exerciseRepo{col: db.Collection("exercise_records")}
}

func (r *exerciseRepo) Save(ctx context.Context, rec *models.ExerciseRecord) (string, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (r *exerciseRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.ExerciseRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ExerciseRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
