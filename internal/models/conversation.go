package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationTurn is one query/response pair exchanged between a user and an
// assistant domain. Turns are append-only; identity is (collection, user_id,
// timestamp).
type ConversationTurn struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	Query    string         `bson:"query" json:"query"`
	Response map[string]any `bson:"response" json:"response"`
	Metadata map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Conversation collections, one per assistant domain.
const (
	MedicalConversations    = "medical_conversations"
	DietConversations       = "diet_conversations"
	CompounderConversations = "compounder_conversations"
	StepsConversations      = "steps_conversations"
)
