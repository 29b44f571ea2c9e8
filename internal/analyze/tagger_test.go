package analyze

import (
	"context"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// fakeChat returns a canned chat completion.
type fakeChat struct {
	content string
	err     error
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestLLMTaggerParsesPersons(t *testing.T) {
	tagger := &LLMTagger{
		Client: &fakeChat{content: `{"persons": ["Иван", " Мария ", ""]}`},
		Model:  "test-model",
	}
	spans, err := tagger.TagPersons(context.Background(), "Иван и Мария разговаривают.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2: %v", len(spans), spans)
	}
	if spans[0].Text != "Иван" || spans[0].Label != LabelPerson {
		t.Fatalf("span 0 = %+v", spans[0])
	}
	if spans[1].Text != "Мария" {
		t.Fatalf("span 1 = %+v, want trimmed Мария", spans[1])
	}
}

func TestLLMTaggerRejectsNonJSON(t *testing.T) {
	tagger := &LLMTagger{
		Client: &fakeChat{content: "Конечно! Вот список персонажей: Иван."},
		Model:  "test-model",
	}
	if _, err := tagger.TagPersons(context.Background(), "текст"); err == nil {
		t.Fatalf("expected an error for a non-JSON reply")
	}
}

func TestLLMTaggerUnconfigured(t *testing.T) {
	tagger := &LLMTagger{}
	if _, err := tagger.TagPersons(context.Background(), "текст"); err == nil {
		t.Fatalf("expected an error when client and model are unset")
	}
}
