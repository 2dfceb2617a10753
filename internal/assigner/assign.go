package assigner

import (
	"sort"

	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

// trackScores holds, per track id, its score against every act in order.
type trackScores map[int][]models.ScoredTrack

// Assign scores every pool track against every act and greedily assigns each
// to its highest-scoring act, then rebalances over/under-subscribed acts.
// Borderline adjudication (the optional LLM step) is a separate function
// (ReviewBorderlines) so callers can skip it when no capability is wired.
func Assign(tracks []*models.Track, acts []models.Act) (models.Assignment, trackScores) {
	scores := make(trackScores, len(tracks))
	for _, t := range tracks {
		perAct := make([]models.ScoredTrack, len(acts))
		for i, act := range acts {
			perAct[i] = models.ScoredTrack{TrackID: t.ID, Score: ScoreTrackForAct(t, act)}
		}
		scores[t.ID] = perAct
	}

	assignment := make(models.Assignment, len(acts))
	for i := range acts {
		assignment[i] = nil
	}
	for tid, perAct := range scores {
		bestIdx, bestScore := 0, -1.0
		for i, s := range perAct {
			if s.Score > bestScore {
				bestIdx, bestScore = i, s.Score
			}
		}
		assignment[bestIdx] = append(assignment[bestIdx], models.ScoredTrack{TrackID: tid, Score: bestScore})
	}
	sortDesc(assignment)

	balance(assignment, acts, scores)
	return assignment, scores
}

func sortDesc(assignment models.Assignment) {
	for idx := range assignment {
		list := assignment[idx]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	}
}

// balance redistributes excess tracks from acts with more than 2x their
// target count to acts with fewer than 0.5x their target count, up to 3
// passes, moving each excess track to its best-scoring under-subscribed act.
func balance(assignment models.Assignment, acts []models.Act, scores trackScores) {
	for pass := 0; pass < 3; pass++ {
		moved := 0
		for actIdx, act := range acts {
			target := act.TargetTrackCount
			if target <= 0 {
				target = 8
			}
			tracks := assignment[actIdx]
			if len(tracks) <= target*2 {
				continue
			}

			under := map[int]struct{}{}
			for i, a := range acts {
				t := a.TargetTrackCount
				if t <= 0 {
					t = 8
				}
				if i != actIdx && float64(len(assignment[i])) < float64(t)*0.5 {
					under[i] = struct{}{}
				}
			}
			if len(under) == 0 {
				continue
			}

			keep := tracks[:target*2]
			excess := tracks[target*2:]
			var stillHere []models.ScoredTrack
			for _, st := range excess {
				bestAlt, bestAltScore := -1, -1.0
				for altIdx, altScore := range scores[st.TrackID] {
					if _, ok := under[altIdx]; ok && altScore.Score > bestAltScore {
						bestAlt, bestAltScore = altIdx, altScore.Score
					}
				}
				if bestAlt >= 0 {
					assignment[bestAlt] = append(assignment[bestAlt], models.ScoredTrack{TrackID: st.TrackID, Score: bestAltScore})
					moved++
				} else {
					stillHere = append(stillHere, st)
				}
			}
			assignment[actIdx] = append(keep, stillHere...)
		}
		if moved == 0 {
			break
		}
	}
	sortDesc(assignment)
}
