package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Message is one role-tagged entry of model context.
type Message struct {
	Role string // "user" | "assistant"
	Text string
}

// Request is a schema-constrained generation request: system instructions, the
// replayed conversation (oldest first, ending with the new user input), and
// optionally one inline image.
type Request struct {
	System    string
	Messages  []Message
	Image     []byte
	ImageMIME string // ex: "image/jpeg"
}

// Generator sends a Request to the generation API and returns the reply as raw
// JSON. Transport/API failures carry code MODEL_CALL_FAILED; replies that are
// not valid JSON carry SCHEMA_PARSE_FAILED.
type Generator interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
	Close() error
}

var errNotJSON = errors.New("reply is not valid JSON")

// ExtractJSON strips markdown code fences the model sometimes wraps replies in
// and validates that what remains is JSON.
func ExtractJSON(text string) (json.RawMessage, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	if s == "" || !json.Valid([]byte(s)) {
		return nil, errNotJSON
	}
	return json.RawMessage(s), nil
}
