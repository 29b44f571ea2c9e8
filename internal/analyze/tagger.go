package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kinoworks/prepro/internal/llm"
)

// LabelPerson marks a span denoting a person's name.
const LabelPerson = "PER"

// Span is one tagged mention in scene text.
type Span struct {
	Text  string
	Label string
}

// PersonTagger is the injectable person-recognition capability. A nil tagger
// is valid: the pipeline then relies on the dialogue-cue heuristic alone,
// with reduced recall.
type PersonTagger interface {
	TagPersons(ctx context.Context, text string) ([]Span, error)
}

const taggerSystemMessage = "You are a named-entity tagger for screenplay text. Respond with strict JSON only, no narration. The JSON schema is {\"persons\": string[]}. List every person name mentioned in the text exactly as written, one entry per distinct person, without honorifics."

// LLMTagger implements PersonTagger over an OpenAI-compatible chat endpoint
// with a JSON-only contract. Non-JSON replies are an error so the caller can
// degrade to the heuristic.
type LLMTagger struct {
	Client llm.Client
	Model  string
}

func (t *LLMTagger) TagPersons(ctx context.Context, text string) ([]Span, error) {
	if t.Client == nil || t.Model == "" {
		return nil, errors.New("tagger not configured")
	}
	resp, err := t.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: taggerSystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
		N:           1,
	})
	if err != nil {
		return nil, fmt.Errorf("tagger call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices")
	}
	var payload struct {
		Persons []string `json:"persons"`
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("parse tagger json: %w", err)
	}
	spans := make([]Span, 0, len(payload.Persons))
	for _, p := range payload.Persons {
		if p = strings.TrimSpace(p); p != "" {
			spans = append(spans, Span{Text: p, Label: LabelPerson})
		}
	}
	return spans, nil
}
