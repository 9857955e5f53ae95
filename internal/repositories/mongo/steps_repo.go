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

type StepsRepository interface {
	SaveSnapshot(ctx context.Context, snap *models.StepsSnapshot) (string, error)
	History(ctx context.Context, userID string, since, until time.Time) ([]models.StepsSnapshot, error)
}

type stepsRepo struct {
	col *mongo.Collection
}

func NewStepsRepo(db *mongo.Database) StepsRepository {
	return &stepsRepo{col: db.Collection("steps_data")}
}

func (r *stepsRepo) SaveSnapshot(ctx context.Context, snap *models.StepsSnapshot) (string, error) {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, snap)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (r *stepsRepo) History(ctx context.Context, userID string, since, until time.Time) ([]models.StepsSnapshot, error) {
	cur, err := r.col.Find(ctx,
		bson.M{
			"user_id":   userID,
			"timestamp": bson.M{"$gte": since, "$lte": until},
		},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.StepsSnapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
