package llm

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const providerNameOpenAI = "openai"

// OpenAIProvider implements Provider via OpenAI's Responses API. Adapted
// from internal/llm/openai_provider.go: same Sentry-transaction-wrapped
// call shape and log.Printf instrumentation, narrowed from the teacher's
// REAPER-action JSON-schema/CFG-grammar generation down to a plain
// system-prompt + user-prompt -> text call, since every caller in this
// domain (narrative planner, borderline reviewer, sequence reviewer)
// extracts its own JSON from the returned text via ExtractJSON.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider constructs an OpenAIProvider bound to a specific model
// name (e.g. "gpt-5-mini" for the mechanical tier, "gpt-5" for creative).
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client, model: model}
}

func (p *OpenAIProvider) Name() string { return providerNameOpenAI }

func (p *OpenAIProvider) Invoke(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	startTime := time.Now()
	log.Printf("🎵 OPENAI INVOKE STARTED (Model: %s)", p.model)

	transaction := sentry.StartTransaction(ctx, "openai.invoke")
	defer transaction.Finish()
	transaction.SetTag("model", p.model)
	transaction.SetTag("provider", providerNameOpenAI)

	span := transaction.StartChild("openai.api_call")
	resp, err := p.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        p.model,
		Instructions: openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(userPrompt),
		},
		MaxOutputTokens: openai.Int(int64(maxTokens)),
	})
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI INVOKE FAILED after %s: %v", time.Since(startTime), err)
		transaction.Status = sentry.SpanStatusInternalError
		return "", err
	}

	log.Printf("✅ OPENAI INVOKE COMPLETE in %s", time.Since(startTime))
	return resp.OutputText(), nil
}
