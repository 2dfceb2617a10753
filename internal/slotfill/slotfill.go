// Package slotfill implements the BPM-ladder progressive-tolerance slot
// filling used by component H's set assembler: given a pool of candidate
// tracks, pick one best track per fixed BPM level, optionally anchoring a
// specific track at its natural level first (spec.md §6, grounded on
// original_source/app/setbuilder.py's select_tracks_for_source).
package slotfill

import (
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

var tolerances = [3]float64{5, 10, 15}

type candidate struct {
	id  int
	bpm float64
}

// SelectTracksForSource picks one best track per BPM level out of
// sourceTrackIDs, returning a slice aligned 1:1 with bpmLevels (nil entries
// where no suitable track was found). usedTrackIDs are skipped unless they
// equal anchorTrackID (0 means "no anchor" since track ids are >0).
func SelectTracksForSource(tracksByID map[int]*models.Track, sourceTrackIDs []int, bpmLevels [10]int, usedTrackIDs map[int]struct{}, anchorTrackID int) [10]*models.TrackOption {
	pool := make([]candidate, 0, len(sourceTrackIDs))
	for _, id := range sourceTrackIDs {
		if _, used := usedTrackIDs[id]; used && id != anchorTrackID {
			continue
		}
		t := tracksByID[id]
		if t == nil {
			continue
		}
		if bpm, ok := t.BPMValue(); ok {
			pool = append(pool, candidate{id: id, bpm: bpm})
		}
	}

	assigned := make(map[int]int, len(bpmLevels)) // level -> track id
	usedInSlot := map[int]struct{}{}

	if anchorTrackID != 0 {
		anchorBPM, found := 0.0, false
		for _, c := range pool {
			if c.id == anchorTrackID {
				anchorBPM, found = c.bpm, true
				break
			}
		}
		if found {
			bestLevel, bestDist := bpmLevels[0], absF(float64(bpmLevels[0])-anchorBPM)
			for _, lv := range bpmLevels {
				d := absF(float64(lv) - anchorBPM)
				if d < bestDist {
					bestDist, bestLevel = d, lv
				}
			}
			assigned[bestLevel] = anchorTrackID
			usedInSlot[anchorTrackID] = struct{}{}
		}
	}

	for _, level := range bpmLevels {
		if _, ok := assigned[level]; ok {
			continue
		}
		bestID, bestDist := 0, -1.0
		for _, tol := range tolerances {
			for _, c := range pool {
				if _, used := usedInSlot[c.id]; used {
					continue
				}
				dist := absF(c.bpm - float64(level))
				if dist <= tol && (bestID == 0 || dist < bestDist) {
					bestDist, bestID = dist, c.id
				}
			}
			if bestID != 0 {
				break
			}
		}
		if bestID != 0 {
			assigned[level] = bestID
			usedInSlot[bestID] = struct{}{}
		}
	}

	var result [10]*models.TrackOption
	for i, level := range bpmLevels {
		tid, ok := assigned[level]
		if !ok {
			continue
		}
		t := tracksByID[tid]
		if t == nil {
			continue
		}
		opt := trackOption(t)
		lv := level
		opt.BPMLevel = &lv
		result[i] = opt
	}
	return result
}

func trackOption(t *models.Track) *models.TrackOption {
	opt := &models.TrackOption{ID: t.ID, Title: t.Title, Artist: t.Artist, Key: t.Key}
	if bpm, ok := t.BPMValue(); ok {
		opt.BPM = &bpm
	}
	opt.Year = t.Year
	return opt
}

func absF(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
