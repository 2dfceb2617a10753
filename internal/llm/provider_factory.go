package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderFactory dispatches a model name to a concrete Provider. Generalized
// from internal/llm/provider_factory.go's GPT-prefix dispatch to also cover
// Gemini model names, giving the tiered model table (Capability) a second
// real backend the way the teacher's own factory supports multiple
// providers.
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
}

// NewProviderFactory creates a provider factory. Either key may be empty if
// that provider's models are never requested.
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{openaiAPIKey: openaiAPIKey, geminiAPIKey: geminiAPIKey}
}

// GetProvider returns the appropriate provider for the given model name.
func (f *ProviderFactory) GetProvider(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)

	if strings.HasPrefix(modelLower, "gemini-") {
		if f.geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini API key not configured")
		}
		return NewGeminiProvider(ctx, f.geminiAPIKey, model)
	}

	if f.openaiAPIKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}
	return NewOpenAIProvider(f.openaiAPIKey, model), nil
}

// BuildCapability resolves the creative/mechanical tier models to their
// concrete providers, producing the Capability the orchestrator consumes
// (spec.md §6).
func (f *ProviderFactory) BuildCapability(ctx context.Context, creativeModel, mechanicalModel string) (Capability, error) {
	creative, err := f.GetProvider(ctx, creativeModel)
	if err != nil {
		return Capability{}, fmt.Errorf("resolving creative tier provider: %w", err)
	}
	mechanical, err := f.GetProvider(ctx, mechanicalModel)
	if err != nil {
		return Capability{}, fmt.Errorf("resolving mechanical tier provider: %w", err)
	}
	return Capability{
		Creative:   Model{Tier: TierCreative, Provider: creative, Name: creativeModel},
		Mechanical: Model{Tier: TierMechanical, Provider: mechanical, Name: mechanicalModel},
	}, nil
}
