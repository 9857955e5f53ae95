package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthsync/healthsync/internal/models"
)

// fakeConvRepo stores turns per collection, newest first, the way the real
// repository returns them.
type fakeConvRepo struct {
	turns     map[string][]models.ConversationTurn
	appendErr error
	listErr   error
	appended  []appendedTurn
}

type appendedTurn struct {
	Collection string
	Turn       models.ConversationTurn
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{turns: map[string][]models.ConversationTurn{}}
}

func (f *fakeConvRepo) Append(_ context.Context, collection string, turn *models.ConversationTurn) (string, error) {
	if f.appendErr != nil {
		return "", f.appendErr
	}
	if turn.ID.IsZero() {
		turn.ID = primitive.NewObjectID()
	}
	f.appended = append(f.appended, appendedTurn{Collection: collection, Turn: *turn})
	f.turns[collection] = append([]models.ConversationTurn{*turn}, f.turns[collection]...)
	return turn.ID.Hex(), nil
}

func (f *fakeConvRepo) ListByUser(_ context.Context, collection, userID string, limit int64) ([]models.ConversationTurn, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.ConversationTurn
	for _, t := range f.turns[collection] {
		if t.UserID == userID {
			out = append(out, t)
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// fakeDirectory serves a fixed list or a fixed error.
type fakeDirectory struct {
	doctors []models.Doctor
	err     error
}

func (f *fakeDirectory) GetDoctorList(context.Context) ([]models.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doctors, nil
}

// fakeCache is an in-memory Cache used by directory tests.
type fakeCache struct {
	data   map[string][]byte
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

// fakeStepSource returns canned daily buckets.
type fakeStepSource struct {
	daily []models.DailySteps
	err   error

	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeStepSource) FetchDailySteps(_ context.Context, _ models.TokenInfo, start, end time.Time) ([]models.DailySteps, error) {
	f.gotStart, f.gotEnd = start, end
	if f.err != nil {
		return nil, f.err
	}
	return f.daily, nil
}

// fakeStepsRepo records snapshots in memory.
type fakeStepsRepo struct {
	snaps   []models.StepsSnapshot
	saveErr error
}

func (f *fakeStepsRepo) SaveSnapshot(_ context.Context, snap *models.StepsSnapshot) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if snap.ID.IsZero() {
		snap.ID = primitive.NewObjectID()
	}
	f.snaps = append(f.snaps, *snap)
	return snap.ID.Hex(), nil
}

func (f *fakeStepsRepo) History(_ context.Context, userID string, since, until time.Time) ([]models.StepsSnapshot, error) {
	var out []models.StepsSnapshot
	for i := len(f.snaps) - 1; i >= 0; i-- {
		s := f.snaps[i]
		if s.UserID == userID && !s.Timestamp.Before(since) && !s.Timestamp.After(until) {
			out = append(out, s)
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store unreachable")
