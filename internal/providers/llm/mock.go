package llm

import (
	"context"
	"encoding/json"
)

// Mock is a canned Generator for tests and local development.
type Mock struct {
	Reply json.RawMessage
	Err   error

	// Replies, when set, is consumed one call at a time before falling back
	// to Reply/Err.
	Replies []json.RawMessage
	Errs    []error

	Calls []Request
}

func (m *Mock) Generate(_ context.Context, req Request) (json.RawMessage, error) {
	m.Calls = append(m.Calls, req)

	n := len(m.Calls) - 1
	if n < len(m.Errs) && m.Errs[n] != nil {
		return nil, m.Errs[n]
	}
	if n < len(m.Replies) {
		return m.Replies[n], nil
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Reply, nil
}

func (m *Mock) Close() error { return nil }
