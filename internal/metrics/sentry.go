package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// Sentry is the package-wide instance the orchestrator records pipeline
// outcomes and LLM soft failures through, alongside the CloudWatch-backed
// Client's equivalent counters.
var Sentry = NewSentryMetrics()

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for API request tracking using the request context
	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	// Set span tags
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	// Set span status based on response
	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	// Set span description
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordPipelineOutcome records a completed orchestrator run (spec.md §6's
// complete/error/stopped/conflict outcomes) as a Sentry performance span,
// the Sentry-side counterpart to metrics.Client.RecordRunOutcome's CloudWatch
// metric — the same outcome reaches both backends from the same call site in
// internal/orchestrator.
func (m *SentryMetrics) RecordPipelineOutcome(ctx context.Context, phaseProfileID, outcome string, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "pipeline.run")
	defer span.Finish()

	span.SetTag("phase_profile_id", phaseProfileID)
	span.SetTag("outcome", outcome)

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("phase_profile_id", phaseProfileID)
	span.SetData("outcome", outcome)

	if outcome == "complete" {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Pipeline run (%s): %s", phaseProfileID, outcome)
}

// RecordLLMSoftFailure records a borderline-review or sequence-review LLM
// soft failure (spec.md §7: a downgrade, not a hard error — the pipeline
// continues on the pre-LLM result) as a Sentry breadcrumb-level span.
func (m *SentryMetrics) RecordLLMSoftFailure(step string) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	span := sentry.StartSpan(ctx, "pipeline.llm_soft_failure")
	defer span.Finish()

	span.SetTag("step", step)
	span.SetData("step", step)
	span.Status = sentry.SpanStatusInternalError
	span.Description = "LLM soft failure: " + step
}
