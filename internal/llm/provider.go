// Package llm provides the abstract LLM capability the engine consumes
// (spec.md §6): two tiers — creative and mechanical — each exposing a single
// Invoke(system, user, maxTokens) -> text method, tolerant JSON extraction
// from the returned text, and bounded-retry-with-backoff around every call.
//
// Generalized from internal/llm/provider.go's Provider interface (the
// teacher's REAPER-action-generation abstraction) down to the narrower
// system/user-prompt-in, text-out shape this domain actually needs.
package llm

import "context"

// Tier selects which model class a call should use. The narrative planner
// and sequence reviewer use Creative; the borderline-assignment adjudicator
// uses Mechanical (spec.md §4.E/.F/.G).
type Tier string

const (
	TierCreative   Tier = "creative"
	TierMechanical Tier = "mechanical"
)

// Provider is a single LLM backend (OpenAI, Gemini, ...). Name identifies it
// for logging/observability tagging.
type Provider interface {
	Invoke(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
	Name() string
}

// Model pairs a tier with the concrete provider + model name that serves it.
// Mirrors internal/llm/provider_factory.go's model-name-prefix dispatch,
// generalized to an explicit per-tier table rather than string-prefix
// sniffing, since this domain only ever has two call sites (not an open set
// of REAPER action generators).
type Model struct {
	Tier     Tier
	Provider Provider
	Name     string
}

// Capability is the engine's view of the two required tiers, satisfying
// spec.md §6's "llm: LLM capability ... exposes two tiers: creative ...
// mechanical".
type Capability struct {
	Creative   Model
	Mechanical Model
}

// Invoke calls the given tier's provider with retry (see Retry in
// internal/llm/retry.go).
func (c Capability) Invoke(ctx context.Context, tier Tier, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	m := c.Creative
	if tier == TierMechanical {
		m = c.Mechanical
	}
	return Retry(ctx, func(ctx context.Context) (string, error) {
		return m.Provider.Invoke(ctx, systemPrompt, userPrompt, maxTokens)
	})
}
