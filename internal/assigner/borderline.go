package assigner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

const borderlineThreshold = 0.10
const maxBorderlineTracks = 30
const borderlineMaxTokens = 2048

const systemPrompt = "You are a world-class DJ and music programmer with deep understanding of " +
	"set dramaturgy — how DJ sets tell stories through energy, mood, and genre " +
	"progression. You understand the four layers of set construction:\n" +
	"1. Technical compatibility (BPM, key)\n" +
	"2. Emotional semantics (mood, energy, groove feel)\n" +
	"3. Temporal dramaturgy (tension, release, pacing over time)\n" +
	"4. Cultural narrative (genre journeys, scene references)\n\n" +
	"You must respond with valid JSON only. No markdown, no code fences, no " +
	"additional text before or after the JSON."

type topAct struct {
	ActIdx int     `json:"act_idx"`
	Score  float64 `json:"score"`
}

type borderlineTrack struct {
	TrackID       int      `json:"track_id"`
	AssignedAct   int      `json:"assigned_act"`
	TopActs       []topAct `json:"top_acts"`
}

// FindBorderlines returns tracks whose top-two act scores are within 10% of
// each other, capped at 30 — these are ambiguous enough to warrant LLM
// adjudication rather than a pure greedy pick (spec.md §6).
func FindBorderlines(assignment models.Assignment, scores trackScores) []borderlineTrack {
	assignedAct := make(map[int]int, len(scores))
	for actIdx, tracks := range assignment {
		for _, st := range tracks {
			assignedAct[st.TrackID] = actIdx
		}
	}

	var out []borderlineTrack
	for tid, perAct := range scores {
		sorted := append([]models.ScoredTrack(nil), perAct...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
		if len(sorted) < 2 {
			continue
		}
		top, second := sorted[0].Score, sorted[1].Score
		if top <= 0 || (top-second)/top >= borderlineThreshold {
			continue
		}
		topActs := make([]topAct, 0, 3)
		for i := 0; i < len(sorted) && i < 3; i++ {
			topActs = append(topActs, topAct{ActIdx: findActIdx(perAct, sorted[i].Score), Score: round3(sorted[i].Score)})
		}
		out = append(out, borderlineTrack{TrackID: tid, AssignedAct: assignedAct[tid], TopActs: topActs})
		if len(out) >= maxBorderlineTracks {
			break
		}
	}
	return out
}

func findActIdx(perAct []models.ScoredTrack, score float64) int {
	for i, s := range perAct {
		if s.Score == score {
			return i
		}
	}
	return 0
}

func round3(f float64) float64 {
	const scale = 1000.0
	return float64(int(f*scale+0.5)) / scale
}

type trackInfo struct {
	TrackID             int      `json:"track_id"`
	Title               string   `json:"title"`
	Artist              string   `json:"artist"`
	BPM                 *float64 `json:"bpm,omitempty"`
	Mood                string   `json:"mood,omitempty"`
	Genre1              string   `json:"genre1,omitempty"`
	Genre2              string   `json:"genre2,omitempty"`
	CurrentlyAssignedAct int     `json:"currently_assigned_act"`
	CandidateActs       []topAct `json:"candidate_acts"`
}

type actSummary struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	MoodTargets []string `json:"mood_targets"`
	BPMRange    [2]float64 `json:"bpm_range"`
	EnergyLevel int      `json:"energy_level"`
}

type reassignment struct {
	TrackID   int `json:"track_id"`
	NewActIdx int `json:"new_act_idx"`
}

type borderlineResponse struct {
	Reassignments []reassignment `json:"reassignments"`
}

// ReviewBorderlines asks the mechanical-tier model to adjudicate borderline
// tracks and moves reassigned tracks to their new act. A reassigned track
// keeps the score it already held for its new act (the second-best
// candidate score) rather than a flat placeholder — spec.md leaves the
// placeholder value as an open question; this resolution avoids distorting
// downstream diverse-selection ordering (component G), which consumes these
// scores directly.
//
// Failure here is non-fatal: on any error the prior assignment is returned
// unchanged and the caller is expected to log an engineerr.LLMSoftFailure.
func ReviewBorderlines(ctx context.Context, cap llm.Capability, tracksByID map[int]*models.Track, borderline []borderlineTrack, acts []models.Act, assignment models.Assignment, scores trackScores) (models.Assignment, error) {
	if len(borderline) == 0 {
		return assignment, nil
	}

	infos := make([]trackInfo, 0, len(borderline))
	for _, b := range borderline {
		t, ok := tracksByID[b.TrackID]
		if !ok {
			continue
		}
		var bpm *float64
		if v, ok := t.BPMValue(); ok {
			bpm = &v
		}
		infos = append(infos, trackInfo{
			TrackID:              b.TrackID,
			Title:                t.Title,
			Artist:               t.Artist,
			BPM:                  bpm,
			Mood:                 t.Mood,
			Genre1:               t.Genre1,
			Genre2:               t.Genre2,
			CurrentlyAssignedAct: b.AssignedAct,
			CandidateActs:        b.TopActs,
		})
	}

	summaries := make([]actSummary, len(acts))
	for i, a := range acts {
		summaries[i] = actSummary{Index: i, Name: a.Name, MoodTargets: a.MoodTargets, BPMRange: a.BPMRange, EnergyLevel: a.EnergyLevel}
		if summaries[i].EnergyLevel == 0 {
			summaries[i].EnergyLevel = 5
		}
	}

	body := map[string]any{
		"task": "review_borderline_assignments",
		"instructions": "These tracks scored nearly equally across multiple acts. " +
			"For each track, decide which act is the BEST fit based on the " +
			"track's mood, genre, and BPM relative to the act's targets. " +
			"Consider the overall set narrative — where would this track " +
			"serve the story best?",
		"acts":               summaries,
		"borderline_tracks":  infos,
		"response_format": map[string]any{
			"reassignments": []map[string]any{{"track_id": 123, "new_act_idx": 2}},
		},
	}
	userPrompt, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return assignment, fmt.Errorf("assigner: marshaling borderline prompt: %w", err)
	}

	raw, err := cap.Invoke(ctx, llm.TierMechanical, systemPrompt, string(userPrompt), borderlineMaxTokens)
	if err != nil {
		return assignment, fmt.Errorf("assigner: borderline review call failed: %w", err)
	}

	var result borderlineResponse
	if err := llm.ExtractJSON(raw, &result); err != nil {
		return assignment, fmt.Errorf("assigner: borderline response was not valid JSON: %w", err)
	}

	for _, r := range result.Reassignments {
		if r.NewActIdx < 0 || r.NewActIdx >= len(acts) {
			continue
		}
		secondBest := scoreForAct(scores, r.TrackID, r.NewActIdx)
		removeFromAllActs(assignment, r.TrackID)
		assignment[r.NewActIdx] = append(assignment[r.NewActIdx], models.ScoredTrack{TrackID: r.TrackID, Score: secondBest})
		log.Printf("[assigner] borderline reassignment: track %d -> act %d", r.TrackID, r.NewActIdx)
	}
	sortDesc(assignment)

	return assignment, nil
}

func scoreForAct(scores trackScores, trackID, actIdx int) float64 {
	perAct, ok := scores[trackID]
	if !ok || actIdx >= len(perAct) {
		return 0.5
	}
	return perAct[actIdx].Score
}

func removeFromAllActs(assignment models.Assignment, trackID int) {
	for actIdx, tracks := range assignment {
		filtered := tracks[:0]
		for _, st := range tracks {
			if st.TrackID != trackID {
				filtered = append(filtered, st)
			}
		}
		assignment[actIdx] = filtered
	}
}
