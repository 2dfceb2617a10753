package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const providerNameGemini = "gemini"

// GeminiProvider implements Provider via Google's Gemini API. Adapted from
// internal/llm/gemini_provider.go, narrowed the same way OpenAIProvider was:
// one system+user prompt in, plain text out — callers run ExtractJSON
// themselves rather than the teacher's fixed MusicalOutput unmarshal.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider constructs a GeminiProvider bound to a specific model
// name.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return providerNameGemini }

func (p *GeminiProvider) Invoke(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	startTime := time.Now()
	log.Printf("🎵 GEMINI INVOKE STARTED (Model: %s)", p.model)

	transaction := sentry.StartTransaction(ctx, "gemini.invoke")
	defer transaction.Finish()
	transaction.SetTag("model", p.model)
	transaction.SetTag("provider", providerNameGemini)

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: userPrompt}}},
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		MaxOutputTokens: int32(maxTokens),
	}

	span := transaction.StartChild("gemini.api_call")
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI INVOKE FAILED after %v: %v", time.Since(startTime), err)
		transaction.Status = sentry.SpanStatusInternalError
		return "", fmt.Errorf("gemini invoke failed: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contained no output text")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	log.Printf("✅ GEMINI INVOKE COMPLETE in %v (output_length=%d)", time.Since(startTime), len(text))
	return text, nil
}
