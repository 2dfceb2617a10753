package sequencer

import (
	"sort"

	"github.com/jasonfurnell/narrative-set-engine/internal/geometry"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

type orderEntry struct {
	id  int
	bpm float64
	key string
}

// OrderWithinAct sorts selected track ids by the act's direction (ascending
// BPM for ascending/varied, descending for descending, ascending for steady
// — the teacher treats steady the same as ascending, it just doesn't expect
// a strong gradient), then greedily refines for Camelot-key adjacency while
// biasing toward the existing BPM order.
func OrderWithinAct(tracksByID map[int]*models.Track, trackIDs []int, direction models.Direction) []int {
	if len(trackIDs) <= 1 {
		return trackIDs
	}

	entries := make([]orderEntry, len(trackIDs))
	for i, id := range trackIDs {
		var bpm float64
		if t := tracksByID[id]; t != nil {
			if v, ok := t.BPMValue(); ok {
				bpm = v
			}
			entries[i] = orderEntry{id: id, bpm: bpm, key: geometry.Normalize(t.Key)}
		} else {
			entries[i] = orderEntry{id: id}
		}
	}

	if direction == models.DirectionDescending {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].bpm > entries[j].bpm })
	} else {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].bpm < entries[j].bpm })
	}

	ordered := []orderEntry{entries[0]}
	remaining := entries[1:]

	for len(remaining) > 0 {
		lastKey := ordered[len(ordered)-1].key
		bestIdx, bestDist := 0, 999.0
		for i, e := range remaining {
			dist := 6.0
			if lastKey != "" && e.key != "" {
				dist = float64(geometry.Distance(lastKey, e.key))
			}
			bpmPenalty := float64(i) * 0.5
			total := dist + bpmPenalty
			if total < bestDist {
				bestDist, bestIdx = total, i
			}
		}
		ordered = append(ordered, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	out := make([]int, len(ordered))
	for i, e := range ordered {
		out[i] = e.id
	}
	return out
}
