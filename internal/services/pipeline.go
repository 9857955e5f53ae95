package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/providers/llm"
	mongorepo "github.com/healthsync/healthsync/internal/repositories/mongo"
)

// Pipeline is the conversation-history-augmented query flow shared by every
// assistant domain: gather prior turns, build a prompt, call the generator,
// and persist the new turn. Gathering degrades to empty context and
// persistence is best-effort; only the generation call itself can fail a
// request.
type Pipeline struct {
	repo mongorepo.ConversationRepository
	gen  llm.Generator
	log  *logrus.Logger
}

func NewPipeline(repo mongorepo.ConversationRepository, gen llm.Generator, log *logrus.Logger) *Pipeline {
	return &Pipeline{repo: repo, gen: gen, log: log}
}

// History assembles the user's most recent turns as role-tagged messages.
// Storage returns turns newest first; replay order is oldest first, two
// messages per turn. A store failure degrades to an empty history.
func (p *Pipeline) History(ctx context.Context, collection, userID string, limit int64) []llm.Message {
	turns, err := p.repo.ListByUser(ctx, collection, userID, limit)
	if err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"collection": collection,
			"user_id":    userID,
		}).Warn("history read failed; proceeding without context")
		return nil
	}

	msgs := make([]llm.Message, 0, 2*len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		resp, err := json.Marshal(t.Response)
		if err != nil {
			resp = []byte("{}")
		}
		msgs = append(msgs,
			llm.Message{Role: "user", Text: t.Query},
			llm.Message{Role: "assistant", Text: string(resp)},
		)
	}
	return msgs
}

// Run executes the gather and call states. Caller-supplied history wins over
// stored history; historyLimit <= 0 disables gathering entirely.
func (p *Pipeline) Run(ctx context.Context, collection, userID string, historyLimit int64, supplied []llm.Message, build func(history []llm.Message) llm.Request) (json.RawMessage, error) {
	history := supplied
	if len(history) == 0 && historyLimit > 0 {
		history = p.History(ctx, collection, userID, historyLimit)
	}
	return p.gen.Generate(ctx, build(history))
}

// Persist appends the turn to the domain's collection. The returned error is
// for the orchestrator to log and discard; it must never affect the response.
func (p *Pipeline) Persist(ctx context.Context, collection, userID, query string, response map[string]any, metadata map[string]any) error {
	_, err := p.repo.Append(ctx, collection, &models.ConversationTurn{
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Query:     query,
		Response:  response,
		Metadata:  metadata,
	})
	return err
}

// logPersistFailure is the single place swallowed persistence errors go.
func (p *Pipeline) logPersistFailure(collection, userID string, err error) {
	if err == nil {
		return
	}
	p.log.WithError(err).WithFields(logrus.Fields{
		"collection": collection,
		"user_id":    userID,
	}).Warn("conversation persist failed; response unaffected")
}

// asMap round-trips a value through JSON into a generic map for storage.
func asMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return m
}
