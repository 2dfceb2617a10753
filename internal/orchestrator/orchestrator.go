// Package orchestrator implements component I: the strict phase sequence
// (pool_analysis -> narrative_arc -> track_assignment -> track_ordering ->
// assembly -> complete), cooperative cancellation, and progress broadcast
// (spec.md §6). Grounded on original_source/app/autoset.py's build_autoset
// (the should_stop()/progress() closures and per-phase percentages) and the
// teacher's internal/agents/core/coordination/orchestrator.go for its
// log.Printf timing-instrumentation style, CloudWatch phase metrics, Sentry
// pipeline-outcome spans, and Langfuse generation tracing.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jasonfurnell/narrative-set-engine/internal/assembler"
	"github.com/jasonfurnell/narrative-set-engine/internal/assigner"
	"github.com/jasonfurnell/narrative-set-engine/internal/engineerr"
	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
	"github.com/jasonfurnell/narrative-set-engine/internal/logger"
	"github.com/jasonfurnell/narrative-set-engine/internal/metrics"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/jasonfurnell/narrative-set-engine/internal/narrative"
	"github.com/jasonfurnell/narrative-set-engine/internal/observability"
	"github.com/jasonfurnell/narrative-set-engine/internal/pool"
	"github.com/jasonfurnell/narrative-set-engine/internal/sequencer"
)

// Phase names, in pipeline order (spec.md §6).
const (
	PhasePoolAnalysis    = "pool_analysis"
	PhaseNarrativeArc    = "narrative_arc"
	PhaseTrackAssignment = "track_assignment"
	PhaseTrackOrdering   = "track_ordering"
	PhaseAssembly        = "assembly"
	PhaseComplete        = "complete"
)

// ProgressEvent is one broadcast update. Channel consumers that fall behind
// lose events rather than block the pipeline (spec.md §6: bounded broadcast,
// drop-on-overflow).
type ProgressEvent struct {
	Phase  string
	Detail string
	Pct    float64
}

const progressBufferSize = 64

// Result is the full pipeline output, mirroring build_autoset's return dict.
type Result struct {
	Narrative   string
	Acts        []models.Act
	PoolProfile *models.PoolProfile
	Ordered     []models.OrderedTrack
	Set         models.Set
}

// PhaseProfileLookup resolves a phase profile id to its definition
// (spec.md §6: "phase_profile_lookup(id) -> phase_profile | null"). A nil
// profile with a nil error means "not found".
type PhaseProfileLookup interface {
	Lookup(ctx context.Context, id string) (*models.PhaseProfile, error)
}

// errStopped is the internal marker run() uses to signal cooperative
// cancellation distinctly from any other failure; Run() translates it into
// RunResult.Stopped rather than RunResult.Err (spec.md §7's Cancelled row:
// "N/A — returned as {stopped:true}, no exception").
var errStopped = errors.New("stopped")

// Pipeline runs the 5-phase Auto Set pipeline at most once per key
// concurrently: a second Run call for a key that already has one in flight
// is rejected immediately with engineerr.ErrPipelineConflict (spec.md §6:
// "the orchestrator rejects a second concurrent start with a conflict
// signal") rather than coalesced onto the first call's result.
type Pipeline struct {
	capability    llm.Capability
	trees         *pool.Trees
	phaseProfiles PhaseProfileLookup
	metrics       *metrics.Client

	mu     sync.Mutex
	active map[string]struct{}
}

// New builds a Pipeline bound to a capability, an optional tree set for
// pool-analysis context lookups, and the phase-profile lookup capability.
// metricsClient may be nil, in which case phase/outcome metrics are skipped.
func New(capability llm.Capability, trees *pool.Trees, phaseProfiles PhaseProfileLookup, metricsClient *metrics.Client) *Pipeline {
	return &Pipeline{capability: capability, trees: trees, phaseProfiles: phaseProfiles, metrics: metricsClient, active: map[string]struct{}{}}
}

// Run executes the pipeline for the given pool of tracks under the phase
// profile resolved from phaseProfileID, emitting ProgressEvents on the
// returned channel (closed when the run finishes, whether by success,
// error, conflict, or cancellation).
func (p *Pipeline) Run(ctx context.Context, key string, tracksByID map[int]*models.Track, trackIDs []int, phaseProfileID string, setName string) (<-chan ProgressEvent, <-chan RunResult) {
	events := make(chan ProgressEvent, progressBufferSize)
	done := make(chan RunResult, 1)

	p.mu.Lock()
	if _, busy := p.active[key]; busy {
		p.mu.Unlock()
		close(events)
		done <- RunResult{Err: engineerr.ErrPipelineConflict}
		close(done)
		p.metrics.RecordRunOutcome(phaseProfileID, "conflict")
		metrics.Sentry.RecordPipelineOutcome(ctx, phaseProfileID, "conflict", 0)
		return events, done
	}
	p.active[key] = struct{}{}
	p.mu.Unlock()

	go func() {
		defer close(events)
		defer close(done)
		defer func() {
			p.mu.Lock()
			delete(p.active, key)
			p.mu.Unlock()
		}()

		emit := func(phase, detail string, pct float64) {
			log.Printf("[orchestrator] %s (%d%%) — %s", phase, int(pct), detail)
			logger.LogPhaseEvent(ctx, key, phase, detail, pct)
			select {
			case events <- ProgressEvent{Phase: phase, Detail: detail, Pct: pct}:
			default:
				log.Printf("[orchestrator] progress channel full, dropping event for phase %s", phase)
			}
		}

		runStart := time.Now()
		result, err := p.run(ctx, tracksByID, trackIDs, phaseProfileID, setName, emit)
		outcome := "complete"
		switch {
		case errors.Is(err, errStopped):
			outcome = "stopped"
			done <- RunResult{Stopped: true}
		case errors.Is(err, engineerr.ErrInsufficientPool):
			outcome = "insufficient_pool"
			done <- RunResult{Err: err}
		case err != nil:
			outcome = "error"
			done <- RunResult{Err: err}
		default:
			done <- RunResult{Value: result}
		}
		p.metrics.RecordRunOutcome(phaseProfileID, outcome)
		metrics.Sentry.RecordPipelineOutcome(ctx, phaseProfileID, outcome, time.Since(runStart))
	}()

	return events, done
}

// RunResult carries a completed Result, the error that ended the run early,
// or Stopped=true if the run was cancelled at a phase boundary.
type RunResult struct {
	Value   Result
	Err     error
	Stopped bool
}

func (p *Pipeline) run(ctx context.Context, tracksByID map[int]*models.Track, trackIDs []int, phaseProfileID string, setName string, emit func(phase, detail string, pct float64)) (Result, error) {
	stopped := func() bool {
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	}

	phaseProfile, err := p.phaseProfiles.Lookup(ctx, phaseProfileID)
	if err != nil {
		return Result{}, &engineerr.ErrCapabilityFailure{Capability: "phase_profile_lookup", Err: err}
	}
	if phaseProfile == nil {
		return Result{}, engineerr.ErrPhaseProfileNotFound
	}
	phases := *phaseProfile
	p.metrics.RecordPoolSize(len(trackIDs))

	trace := observability.GetClient().StartTrace(ctx, "build_set_pipeline", map[string]interface{}{
		"phase_profile_id": phaseProfileID,
		"pool_size":        len(trackIDs),
	})
	defer trace.Finish()

	// --- Phase 1: Pool Analysis ---
	phase1Start := time.Now()
	emit(PhasePoolAnalysis, fmt.Sprintf("Analyzing %d tracks...", len(trackIDs)), 2)
	profile, err := pool.Analyze(tracksByID, trackIDs, p.trees)
	p.metrics.RecordPhaseDuration(PhasePoolAnalysis, time.Since(phase1Start))
	if err != nil {
		return Result{}, err
	}
	emit(PhasePoolAnalysis, fmt.Sprintf("Pool: %d tracks, BPM %.0f-%.0f", profile.TrackCount, profile.BPM.Min, profile.BPM.Max), 8)
	if stopped() {
		return Result{}, errStopped
	}

	// --- Phase 2: Narrative Arc Generation ---
	phase2Start := time.Now()
	emit(PhaseNarrativeArc, "Generating narrative arc...", 10)
	narrativeGen := trace.Generation(PhaseNarrativeArc, map[string]interface{}{"phase_profile_id": phaseProfileID})
	narrativeText, acts, err := narrative.Generate(ctx, p.capability, profile, phases, models.TargetSetSlots, func(phase, detail string, pct float64) { emit(phase, detail, pct) })
	p.metrics.RecordPhaseDuration(PhaseNarrativeArc, time.Since(phase2Start))
	if err != nil {
		narrativeGen.SetLevel("ERROR")
		narrativeGen.Finish()
		return Result{}, err
	}
	narrativeGen.LogLLMCall(p.capability.Creative.Name, string(llm.TierCreative), phases.Name, narrativeText)
	narrativeGen.Metadata(map[string]interface{}{"act_count": len(acts)})
	narrativeGen.Finish()
	emit(PhaseNarrativeArc, fmt.Sprintf("Narrative generated — %d acts defined", len(acts)), 28)
	if stopped() {
		return Result{}, errStopped
	}

	// --- Phase 3: Track-to-Act Assignment ---
	phase3Start := time.Now()
	emit(PhaseTrackAssignment, fmt.Sprintf("Scoring %d tracks against %d acts...", len(trackIDs), len(acts)), 32)
	tracks := make([]*models.Track, 0, len(trackIDs))
	for _, id := range trackIDs {
		if t, ok := tracksByID[id]; ok {
			tracks = append(tracks, t)
		}
	}
	assignment, scores := assigner.Assign(tracks, acts)
	emit(PhaseTrackAssignment, "Initial assignment complete", 38)

	emit(PhaseTrackAssignment, "Reviewing borderline assignments...", 42)
	borderline := assigner.FindBorderlines(assignment, scores)
	if len(borderline) > 0 {
		reviewed, err := assigner.ReviewBorderlines(ctx, p.capability, tracksByID, borderline, acts, assignment, scores)
		if err != nil {
			log.Printf("[orchestrator] %v", &engineerr.LLMSoftFailure{Step: "borderline_review", Err: err})
			p.metrics.RecordLLMSoftFailure("borderline_review")
			metrics.Sentry.RecordLLMSoftFailure("borderline_review")
		} else {
			assignment = reviewed
		}
	}
	emit(PhaseTrackAssignment, "Final assignment complete", 52)
	p.metrics.RecordPhaseDuration(PhaseTrackAssignment, time.Since(phase3Start))
	if stopped() {
		return Result{}, errStopped
	}

	// --- Phase 4: Track Ordering & Selection ---
	phase4Start := time.Now()
	emit(PhaseTrackOrdering, "Selecting and ordering tracks...", 58)
	ordered := sequencer.BuildSequence(tracksByID, assignment, acts)
	emit(PhaseTrackOrdering, fmt.Sprintf("Selected %d tracks, reviewing sequence...", len(ordered)), 65)

	reviewed, err := sequencer.ReviewSequence(ctx, p.capability, ordered, acts)
	if err != nil {
		log.Printf("[orchestrator] %v", &engineerr.LLMSoftFailure{Step: "sequence_review", Err: err})
		p.metrics.RecordLLMSoftFailure("sequence_review")
		metrics.Sentry.RecordLLMSoftFailure("sequence_review")
	} else {
		ordered = reviewed
	}
	emit(PhaseTrackOrdering, fmt.Sprintf("Final tracklist: %d tracks", len(ordered)), 78)
	p.metrics.RecordPhaseDuration(PhaseTrackOrdering, time.Since(phase4Start))
	if stopped() {
		return Result{}, errStopped
	}

	// --- Phase 5: Workshop Assembly ---
	phase5Start := time.Now()
	emit(PhaseAssembly, "Assembling workshop set...", 80)
	set := assembler.Assemble(tracksByID, ordered, assignment, setName, phases.ID)
	emit(PhaseAssembly, fmt.Sprintf("Set '%s' assembled with %d slots", setName, len(set.Slots)), 98)
	p.metrics.RecordPhaseDuration(PhaseAssembly, time.Since(phase5Start))

	emit(PhaseComplete, "Pipeline complete", 100)

	return Result{
		Narrative:   narrativeText,
		Acts:        acts,
		PoolProfile: profile,
		Ordered:     ordered,
		Set:         set,
	}, nil
}
