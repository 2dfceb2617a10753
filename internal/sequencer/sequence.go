package sequencer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

const sequenceReviewMaxTokens = 2048
const maxSwaps = 3

const systemPrompt = "You are a world-class DJ and music programmer with deep understanding of " +
	"set dramaturgy — how DJ sets tell stories through energy, mood, and genre " +
	"progression. You understand the four layers of set construction:\n" +
	"1. Technical compatibility (BPM, key)\n" +
	"2. Emotional semantics (mood, energy, groove feel)\n" +
	"3. Temporal dramaturgy (tension, release, pacing over time)\n" +
	"4. Cultural narrative (genre journeys, scene references)\n\n" +
	"You must respond with valid JSON only. No markdown, no code fences, no " +
	"additional text before or after the JSON."

// BuildSequence selects a diverse subset of each act's candidates and orders
// them for flow, producing the act-by-act concatenated sequence (without the
// LLM review pass — see ReviewSequence for that).
func BuildSequence(tracksByID map[int]*models.Track, assignment models.Assignment, acts []models.Act) []models.OrderedTrack {
	var out []models.OrderedTrack
	for actIdx, act := range acts {
		target := act.TargetTrackCount
		if target <= 0 {
			target = 8
		}
		candidates := assignment[actIdx]
		selected := SelectDiverse(tracksByID, candidates, target)
		ordered := OrderWithinAct(tracksByID, selected, act.Direction)

		for _, id := range ordered {
			t := tracksByID[id]
			if t == nil {
				continue
			}
			var bpm float64
			if v, ok := t.BPMValue(); ok {
				bpm = v
			}
			out = append(out, models.OrderedTrack{
				TrackID: id, ActIdx: actIdx, ActName: act.Name,
				Title: t.Title, Artist: t.Artist, BPM: bpm, Key: t.Key,
				Mood: t.Mood, Genre1: t.Genre1,
			})
		}
	}
	return out
}

type tracklistEntry struct {
	Position int     `json:"position"`
	TrackID  int     `json:"track_id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	BPM      float64 `json:"bpm"`
	Key      string  `json:"key"`
	Mood     string  `json:"mood"`
	Act      string  `json:"act"`
}

type actSummary struct {
	Name string     `json:"name"`
	Pct  [2]float64 `json:"pct"`
}

type swap struct {
	FromPosition int    `json:"from_position"`
	ToPosition   int    `json:"to_position"`
	Reason       string `json:"reason"`
}

type sequenceReviewResponse struct {
	Assessment string `json:"assessment"`
	Swaps      []swap `json:"swaps"`
}

// ReviewSequence asks the creative-tier model to review the full tracklist
// for BPM jumps, act-transition mismatches, and key clashes, applying up to
// 3 suggested swaps. Failure here is non-fatal: the unmodified sequence is
// returned and the caller is expected to log an engineerr.LLMSoftFailure.
func ReviewSequence(ctx context.Context, cap llm.Capability, ordered []models.OrderedTrack, acts []models.Act) ([]models.OrderedTrack, error) {
	tracklist := make([]tracklistEntry, len(ordered))
	for i, t := range ordered {
		tracklist[i] = tracklistEntry{
			Position: i + 1, TrackID: t.TrackID, Title: t.Title, Artist: t.Artist,
			BPM: t.BPM, Key: t.Key, Mood: t.Mood, Act: t.ActName,
		}
	}
	summaries := make([]actSummary, len(acts))
	for i, a := range acts {
		summaries[i] = actSummary{Name: a.Name, Pct: a.Pct}
	}

	body := map[string]any{
		"task": "review_track_sequence",
		"instructions": "Review this DJ set tracklist for flow and narrative coherence. " +
			"Check for:\n" +
			"1. Jarring BPM jumps between consecutive tracks (>5 BPM = flag)\n" +
			"2. Poor transitions between acts (mood/energy mismatch)\n" +
			"3. Key clashes between consecutive tracks\n\n" +
			"Suggest up to 3 swaps to improve flow. Each swap moves a track " +
			"to a different position. Only suggest swaps that meaningfully " +
			"improve the set — if the sequence is already good, return empty swaps.",
		"acts":      summaries,
		"tracklist": tracklist,
		"response_format": map[string]any{
			"assessment": "string — brief assessment of the sequence quality",
			"swaps": []map[string]any{
				{"from_position": 5, "to_position": 8, "reason": "why this swap improves the set"},
			},
		},
	}
	userPrompt, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return ordered, fmt.Errorf("sequencer: marshaling review prompt: %w", err)
	}

	raw, err := cap.Invoke(ctx, llm.TierCreative, systemPrompt, string(userPrompt), sequenceReviewMaxTokens)
	if err != nil {
		return ordered, fmt.Errorf("sequencer: sequence review call failed: %w", err)
	}

	var result sequenceReviewResponse
	if err := llm.ExtractJSON(raw, &result); err != nil {
		return ordered, fmt.Errorf("sequencer: sequence review response was not valid JSON: %w", err)
	}

	out := append([]models.OrderedTrack(nil), ordered...)
	swaps := result.Swaps
	if len(swaps) > maxSwaps {
		swaps = swaps[:maxSwaps]
	}
	for _, s := range swaps {
		from, to := s.FromPosition-1, s.ToPosition-1
		if from < 0 || from >= len(out) || to < 0 || to >= len(out) {
			continue
		}
		out[from], out[to] = out[to], out[from]
		log.Printf("[sequencer] swap: pos %d <-> %d: %s", from+1, to+1, s.Reason)
	}
	return out, nil
}
