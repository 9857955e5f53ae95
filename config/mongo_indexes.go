package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var recordCollections = []string{
	"patient_records",
	"exercise_records",
	"medical_queries",
	"diet_plans",
	"medical_reports",
	"steps_data",
}

var conversationCollections = []string{
	"medical_conversations",
	"diet_conversations",
	"compounder_conversations",
	"steps_conversations",
}

// EnsureCollections creates the record and conversation collections if absent
// and indexes every user-keyed collection for the newest-first history reads.
func EnsureCollections(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	all := append(append([]string{}, recordCollections...), conversationCollections...)
	for _, name := range all {
		if !have[name] {
			if err := db.CreateCollection(ctx, name); err != nil {
				return err
			}
		}
	}

	for _, name := range append(conversationCollections, "steps_data", "exercise_records") {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("by_user_ts"),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
