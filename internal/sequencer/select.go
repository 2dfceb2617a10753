// Package sequencer implements component G: selecting a diverse subset of
// each act's assigned tracks down to its target count, ordering them for
// flow within the act, and a whole-sequence creative-tier LLM review pass
// that may swap up to three track positions (spec.md §6, grounded on
// original_source/app/autoset.py's order_and_select_tracks and helpers).
package sequencer

import (
	"github.com/jasonfurnell/narrative-set-engine/internal/geometry"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

const bpmBucketSize = 3
const maxSameKeyRepeats = 2

// SelectDiverse trims candidates (already sorted score-descending) down to
// targetCount, skipping tracks whose BPM bucket is already used or whose key
// is already used twice once more than half the target is filled, then
// backfills from whatever is left over if still short.
func SelectDiverse(tracksByID map[int]*models.Track, candidates []models.ScoredTrack, targetCount int) []int {
	if len(candidates) <= targetCount {
		out := make([]int, len(candidates))
		for i, c := range candidates {
			out[i] = c.TrackID
		}
		return out
	}

	selected := make([]int, 0, targetCount)
	usedBuckets := map[int]struct{}{}
	usedKeys := map[string]int{}
	taken := map[int]struct{}{}

	halfFull := func() bool { return len(selected) > int(float64(targetCount)*0.5) }

	for _, c := range candidates {
		if len(selected) >= targetCount {
			break
		}
		t := tracksByID[c.TrackID]
		if t == nil {
			continue
		}
		var bucket int
		hasBPM := false
		if bpm, ok := t.BPMValue(); ok {
			bucket = geometry.BPMBucket(bpm, bpmBucketSize)
			hasBPM = true
		}
		key := geometry.Normalize(t.Key)

		if hasBPM && halfFull() {
			if _, seen := usedBuckets[bucket]; seen {
				continue
			}
		}
		if key != "" && halfFull() && usedKeys[key] >= maxSameKeyRepeats {
			continue
		}

		selected = append(selected, c.TrackID)
		taken[c.TrackID] = struct{}{}
		if hasBPM {
			usedBuckets[bucket] = struct{}{}
		}
		if key != "" {
			usedKeys[key]++
		}
	}

	if len(selected) < targetCount {
		for _, c := range candidates {
			if len(selected) >= targetCount {
				break
			}
			if _, ok := taken[c.TrackID]; ok {
				continue
			}
			selected = append(selected, c.TrackID)
		}
	}

	return selected
}
