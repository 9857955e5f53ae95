package llm

import (
	"context"
	"encoding/json"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"

	"github.com/healthsync/healthsync/internal/utils"
)

type VertexGemini struct {
	client    *vertexgenai.Client
	modelName string
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &VertexGemini{client: c, modelName: modelName}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	const op = "VertexGemini.Generate"

	if len(req.Messages) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "request has no messages", nil)
	}

	m := v.client.GenerativeModel(v.modelName)
	m.GenerationConfig.ResponseMIMEType = "application/json"
	if req.System != "" {
		m.SystemInstruction = &vertexgenai.Content{
			Parts: []vertexgenai.Part{vertexgenai.Text(req.System)},
		}
	}

	// All but the last message replay as chat history; the last one is sent.
	cs := m.StartChat()
	for _, msg := range req.Messages[:len(req.Messages)-1] {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &vertexgenai.Content{
			Role:  role,
			Parts: []vertexgenai.Part{vertexgenai.Text(msg.Text)},
		})
	}

	last := req.Messages[len(req.Messages)-1]
	parts := []vertexgenai.Part{vertexgenai.Text(last.Text)}
	if len(req.Image) > 0 {
		format := strings.TrimPrefix(req.ImageMIME, "image/")
		if format == "" {
			format = "jpeg"
		}
		parts = append(parts, vertexgenai.ImageData(format, req.Image))
	}

	resp, err := cs.SendMessage(ctx, parts...)
	if err != nil {
		return nil, utils.E(utils.CodeModelCall, op, "generation call failed", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	if sb.Len() == 0 {
		return nil, utils.E(utils.CodeModelCall, op, "empty model reply", nil)
	}

	raw, err := ExtractJSON(sb.String())
	if err != nil {
		return nil, utils.E(utils.CodeSchemaParse, op, "model reply did not match the declared schema", err)
	}
	return raw, nil
}
