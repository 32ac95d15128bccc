package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/echolens/echolens/internal/model"
)

// maxNERInput bounds how much article text is sent per request.
const maxNERInput = 8000

// OpenAIExtractor implements Extractor on top of OpenAI chat
// completions. It asks for a strict JSON object keyed by category so
// the response can be decoded straight into an EntitySet.
type OpenAIExtractor struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIExtractor creates an OpenAI-backed extractor.
func NewOpenAIExtractor(cfg model.NERConfig) (*OpenAIExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	m := cfg.Model
	if m == "" {
		m = openai.GPT4oMini
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIExtractor{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   m,
		timeout: timeout,
	}, nil
}

const nerSystemPrompt = `You are a named entity recognizer. Given text, respond with ONLY a JSON object mapping entity categories to arrays of surface forms exactly as they appear in the text. Use the categories PERSON, ORG, GPE, DATE, EVENT, LAW. Omit empty categories. No prose, no code fences.`

// Extract sends the text to the chat API and decodes the JSON reply.
func (e *OpenAIExtractor) Extract(ctx context.Context, text string) (EntitySet, error) {
	set := NewEntitySet()
	if strings.TrimSpace(text) == "" {
		return set, nil
	}
	if len(text) > maxNERInput {
		text = text[:maxNERInput]
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: nerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0, // deterministic extraction
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	payload := stripCodeFences(resp.Choices[0].Message.Content)

	var decoded map[string][]string
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, fmt.Errorf("decode entity response: %w", err)
	}

	for cat, forms := range decoded {
		for _, form := range forms {
			set.Add(Category(strings.ToUpper(strings.TrimSpace(cat))), form)
		}
	}
	return set, nil
}

// stripCodeFences removes a markdown fence if the model added one
// despite the prompt.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
