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

// ConversationRepository is the generic turn store shared by every assistant
// domain. Turns are appended, never mutated.
type ConversationRepository interface {
	Append(ctx context.Context, collection string, turn *models.ConversationTurn) (string, error)
	ListByUser(ctx context.Context, collection, userID string, limit int64) ([]models.ConversationTurn, error)
}

type conversationRepo struct {
	db *mongo.Database
}

func NewConversationRepo(db *mongo.Database) ConversationRepository {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Append(ctx context.Context, collection string, turn *models.ConversationTurn) (string, error) {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}

	res, err := r.db.Collection(collection).InsertOne(ctx, turn)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

// ListByUser returns the user's turns newest first, at most limit of them.
func (r *conversationRepo) ListByUser(ctx context.Context, collection, userID string, limit int64) ([]models.ConversationTurn, error) {
	if limit <= 0 {
		limit = 10
	}

	cur, err := r.db.Collection(collection).Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ConversationTurn
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
