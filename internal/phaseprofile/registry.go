// Package phaseprofile implements the phase-profile lookup capability
// (spec.md §6: "phase_profile_lookup(id) -> phase_profile | null") the
// orchestrator calls through rather than owning phase profile storage
// itself.
package phaseprofile

import (
	"context"
	"sync"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

// Registry is an in-memory phase-profile lookup. It's the simplest
// implementation of the capability interface the orchestrator consumes;
// a production deployment would back this with whatever store holds the
// caller's named phase profiles ("classic_arc", "slow_burn", ...).
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]models.PhaseProfile
}

// NewRegistry builds a Registry seeded with the given profiles, keyed by
// their own ID field.
func NewRegistry(profiles ...models.PhaseProfile) *Registry {
	r := &Registry{profiles: make(map[string]models.PhaseProfile, len(profiles))}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

// Lookup resolves a phase profile by id. A nil profile with a nil error
// means "not found"; the orchestrator turns that into
// engineerr.ErrPhaseProfileNotFound.
func (r *Registry) Lookup(_ context.Context, id string) (*models.PhaseProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Put registers or replaces a phase profile under its own ID.
func (r *Registry) Put(p models.PhaseProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}
