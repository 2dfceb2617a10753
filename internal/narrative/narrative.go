// Package narrative implements component E: the single creative-tier LLM
// call that turns a pool profile and a phase skeleton into a narrative arc
// and one Act per phase (spec.md §6, grounded on
// original_source/app/autoset.py's generate_narrative_arc).
package narrative

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jasonfurnell/narrative-set-engine/internal/engineerr"
	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

const systemPrompt = "You are a world-class DJ and music programmer with deep understanding of " +
	"set dramaturgy — how DJ sets tell stories through energy, mood, and genre " +
	"progression. You understand the four layers of set construction:\n" +
	"1. Technical compatibility (BPM, key)\n" +
	"2. Emotional semantics (mood, energy, groove feel)\n" +
	"3. Temporal dramaturgy (tension, release, pacing over time)\n" +
	"4. Cultural narrative (genre journeys, scene references)\n\n" +
	"You must respond with valid JSON only. No markdown, no code fences, no " +
	"additional text before or after the JSON."

const instructions = "You are programming a DJ set from the track pool described below. " +
	"The set follows the given phase structure. Your job is to:\n" +
	"1. Write a 'narrative' — a 2-3 paragraph story describing the emotional " +
	"and musical journey this set will take, specific to the music available.\n" +
	"2. For each phase, define an 'act' with specific criteria calibrated to " +
	"THIS pool's actual data ranges (not generic advice).\n\n" +
	"IMPORTANT: BPM targets, mood targets, and genre guidance must be drawn " +
	"from the actual pool statistics provided. Don't invent moods or genres " +
	"that aren't in the pool."

const maxTokens = 4096

// ProgressFunc reports pipeline progress to the orchestrator (component I).
type ProgressFunc func(step, detail string, pct float64)

type phaseSkeletonEntry struct {
	Name             string     `json:"name"`
	Pct              [2]float64 `json:"pct"`
	Description      string     `json:"description"`
	TargetTrackCount int        `json:"target_track_count"`
}

type tierContextEntry struct {
	Title        string `json:"title"`
	Overlap      int    `json:"overlap"`
	GenreContext string `json:"genre_context,omitempty"`
	SceneContext string `json:"scene_context,omitempty"`
	Lineage      string `json:"lineage,omitempty"`
	Category     string `json:"category,omitempty"`
}

type promptPoolProfile struct {
	TrackCount  int                            `json:"track_count"`
	BPM         models.BPMStats                `json:"bpm"`
	Genres      []models.ValueCount            `json:"genres"`
	Moods       []models.ValueCount            `json:"moods"`
	Descriptors []models.ValueCount            `json:"descriptors"`
	Locations   []models.ValueCount            `json:"locations"`
	Eras        []models.ValueCount             `json:"eras"`
	TreeContext map[models.TreeKind][]tierContextEntry `json:"tree_context,omitempty"`
}

type promptBody struct {
	Task           string              `json:"task"`
	Instructions   string              `json:"instructions"`
	PoolProfile    promptPoolProfile   `json:"pool_profile"`
	PhaseStructure []phaseSkeletonEntry `json:"phase_structure"`
	ResponseFormat json.RawMessage     `json:"response_format"`
}

var responseFormat = json.RawMessage(`{
  "narrative": "string — 2-3 paragraphs describing the set's journey",
  "acts": [
    {
      "name": "phase name (must match phase_structure)",
      "pct": [0, 15],
      "target_track_count": 6,
      "bpm_range": [90, 105],
      "energy_level": "1-10 integer",
      "mood_targets": ["list of mood keywords from pool"],
      "genre_guidance": ["list of genres to favor"],
      "descriptor_guidance": ["list of descriptors to favor"],
      "direction": "ascending|descending|steady|varied",
      "transition_note": "how to transition INTO this act"
    }
  ]
}`)

type llmResult struct {
	Narrative string       `json:"narrative"`
	Acts      []models.Act `json:"acts"`
}

func truncate[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func summarizeTreeContext(tc map[models.TreeKind][]models.TreeContextHit) map[models.TreeKind][]tierContextEntry {
	if len(tc) == 0 {
		return nil
	}
	out := make(map[models.TreeKind][]tierContextEntry, len(tc))
	for kind, hits := range tc {
		if len(hits) == 0 {
			continue
		}
		entries := make([]tierContextEntry, 0, min(5, len(hits)))
		for _, h := range truncate(hits, 5) {
			entries = append(entries, tierContextEntry{
				Title:        h.LeafTitle,
				Overlap:      h.OverlapCount,
				GenreContext: h.GenreContext,
				SceneContext: h.SceneContext,
				Lineage:      h.Lineage,
				Category:     h.Category,
			})
		}
		out[kind] = entries
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Generate runs the narrative-arc LLM call and validates its structure,
// overwriting each returned act's Pct/Color from the phase skeleton so the
// LLM cannot drift the set's structural shape (spec.md §6).
func Generate(ctx context.Context, cap llm.Capability, profile *models.PoolProfile, phases models.PhaseProfile, totalSlots int, progress ProgressFunc) (string, []models.Act, error) {
	skeleton := make([]phaseSkeletonEntry, len(phases.Phases))
	for i, p := range phases.Phases {
		skeleton[i] = phaseSkeletonEntry{
			Name:             p.Name,
			Pct:              p.Pct,
			Description:      p.Desc,
			TargetTrackCount: p.TargetTrackCount(totalSlots),
		}
	}

	body := promptBody{
		Task:         "generate_narrative_arc",
		Instructions: instructions,
		PoolProfile: promptPoolProfile{
			TrackCount:  profile.TrackCount,
			BPM:         profile.BPM,
			Genres:      truncate(profile.Genres, 15),
			Moods:       truncate(profile.Moods, 15),
			Descriptors: truncate(profile.Descriptors, 15),
			Locations:   truncate(profile.Locations, 10),
			Eras:        truncate(profile.Eras, 10),
			TreeContext: summarizeTreeContext(profile.TreeContext),
		},
		PhaseStructure: skeleton,
		ResponseFormat: responseFormat,
	}

	userPrompt, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("narrative: marshaling prompt: %w", err)
	}

	if progress != nil {
		progress("narrative_arc", "Generating narrative arc...", 12)
	}

	raw, err := cap.Invoke(ctx, llm.TierCreative, systemPrompt, string(userPrompt), maxTokens)
	if err != nil {
		return "", nil, &engineerr.LLMContractError{Reason: "narrative arc generation call failed", Err: err}
	}

	if progress != nil {
		progress("narrative_arc", "Parsing narrative response...", 25)
	}

	var result llmResult
	if err := llm.ExtractJSON(raw, &result); err != nil {
		return "", nil, &engineerr.LLMContractError{Reason: "narrative response was not valid JSON", Err: err}
	}
	if result.Narrative == "" || result.Acts == nil {
		return "", nil, &engineerr.LLMContractError{Reason: "narrative response missing 'narrative' or 'acts' fields"}
	}
	if len(result.Acts) != len(phases.Phases) {
		return "", nil, &engineerr.LLMContractError{
			Reason: fmt.Sprintf("narrative response returned %d acts, expected %d phases", len(result.Acts), len(phases.Phases)),
		}
	}

	for i := range result.Acts {
		result.Acts[i].Pct = phases.Phases[i].Pct
		result.Acts[i].Color = phases.Phases[i].Color
		if result.Acts[i].Color == "" {
			result.Acts[i].Color = "#888888"
		}
	}

	return result.Narrative, result.Acts, nil
}
