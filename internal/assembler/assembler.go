// Package assembler implements component H: converting the sequencer's
// ordered tracklist into a Set of fixed-width Slots, each with up to ten
// BPM-bucket alternative candidates drawn from the track's act (spec.md §6,
// grounded on original_source/app/autoset.py's assemble_workshop_set).
package assembler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/jasonfurnell/narrative-set-engine/internal/slotfill"
)

// Assemble builds a Set from the ordered tracklist. assignment supplies,
// per act index, the pool of candidate track ids eligible to fill BPM-ladder
// alternatives for slots in that act.
func Assemble(tracksByID map[int]*models.Track, ordered []models.OrderedTrack, assignment models.Assignment, setName, phaseProfileID string) models.Set {
	slots := make([]models.Slot, 0, len(ordered))
	used := map[int]struct{}{}

	for i, track := range ordered {
		used[track.TrackID] = struct{}{}

		actTrackIDs := make([]int, 0, len(assignment[track.ActIdx]))
		for _, st := range assignment[track.ActIdx] {
			actTrackIDs = append(actTrackIDs, st.TrackID)
		}

		usedExceptAnchor := map[int]struct{}{}
		for id := range used {
			if id != track.TrackID {
				usedExceptAnchor[id] = struct{}{}
			}
		}

		options := slotfill.SelectTracksForSource(tracksByID, actTrackIDs, models.DefaultBPMLevels, usedExceptAnchor, track.TrackID)

		selectedIdx := 0
		for j, opt := range options {
			if opt != nil && opt.ID == track.TrackID {
				selectedIdx = j
				break
			}
		}

		slots = append(slots, models.Slot{
			ID: fmt.Sprintf("autoset-slot-%d", i),
			Source: models.SlotSource{
				Type: models.SourceAutoset,
				ID:   fmt.Sprintf("act-%d", track.ActIdx),
				Name: track.ActName,
			},
			Tracks:             options,
			SelectedTrackIndex: selectedIdx,
		})
	}

	return models.Set{
		ID:             uuid.NewString(),
		Name:           setName,
		CreatedAt:      time.Now().UTC(),
		Slots:          slots,
		PhaseProfileID: phaseProfileID,
	}
}
