// Package assigner implements component F: scoring every pool track against
// every act, greedy assignment, over/under-subscription rebalancing, and
// mechanical-tier LLM adjudication of borderline cases (spec.md §6, grounded
// on original_source/app/autoset.py's assign_tracks_to_acts and friends).
package assigner

import (
	"github.com/jasonfurnell/narrative-set-engine/internal/facets"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

const (
	weightBPM        = 0.30
	weightMood       = 0.30
	weightGenre      = 0.25
	weightDescriptor = 0.15
)

// ScoreTrackForAct returns a composite 0.0-1.0 fit score, normalized by the
// weight of the components that actually applied (an act with no mood
// targets doesn't penalize tracks for lacking mood data).
func ScoreTrackForAct(t *models.Track, act models.Act) float64 {
	var score, weightsTotal float64

	if bpm, ok := t.BPMValue(); ok && act.BPMRange != [2]float64{} {
		lo, hi := act.BPMRange[0], act.BPMRange[1]
		mid := (lo + hi) / 2
		spread := (hi - lo) / 2
		if spread < 5 {
			spread = 5
		}
		dist := bpm - mid
		if dist < 0 {
			dist = -dist
		}
		ratio := dist / (spread * 2)
		bpmScore := 1.0 - ratio*ratio
		if bpmScore < 0 {
			bpmScore = 0
		}
		score += bpmScore * weightBPM
		weightsTotal += weightBPM
	}

	moodTargets := lowerSet(act.MoodTargets)
	trackMoods := facets.TokenSet(t.Mood)
	if len(moodTargets) > 0 {
		weightsTotal += weightMood
		if len(trackMoods) > 0 {
			score += jaccard(moodTargets, trackMoods) * weightMood
		}
	}

	genreGuidance := lowerSet(act.GenreGuidance)
	trackGenres := map[string]struct{}{}
	if g := lowerTrim(t.Genre1); g != "" {
		trackGenres[g] = struct{}{}
	}
	if g := lowerTrim(t.Genre2); g != "" {
		trackGenres[g] = struct{}{}
	}
	if len(genreGuidance) > 0 {
		weightsTotal += weightGenre
		if len(trackGenres) > 0 {
			overlap := intersectionCount(genreGuidance, trackGenres)
			score += (float64(overlap) / float64(len(genreGuidance))) * weightGenre
		}
	}

	descGuidance := lowerSet(act.DescriptorGuidance)
	trackDescs := facets.TokenSet(t.Descriptors)
	if len(descGuidance) > 0 {
		weightsTotal += weightDescriptor
		if len(trackDescs) > 0 {
			overlap := intersectionCount(descGuidance, trackDescs)
			score += (float64(overlap) / float64(len(descGuidance))) * weightDescriptor
		}
	}

	if weightsTotal > 0 {
		return score / weightsTotal
	}
	return 0.0
}

func lowerTrim(s string) string {
	return facets.NormalizeWord(s)
}

func lowerSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if lv := lowerTrim(v); lv != "" {
			out[lv] = struct{}{}
		}
	}
	return out
}

func intersectionCount(a, b map[string]struct{}) int {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	count := 0
	for k := range small {
		if _, ok := big[k]; ok {
			count++
		}
	}
	return count
}

func jaccard(a, b map[string]struct{}) float64 {
	overlap := intersectionCount(a, b)
	union := len(a) + len(b) - overlap
	if union == 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}
