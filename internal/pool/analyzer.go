// Package pool implements the pool analyzer (component D): statistical
// profiling of an input track pool plus cross-tree context lookup.
package pool

import (
	"fmt"
	"math"
	"sort"

	"github.com/jasonfurnell/narrative-set-engine/internal/engineerr"
	"github.com/jasonfurnell/narrative-set-engine/internal/facets"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
)

// ErrEmptyPool is returned when none of the requested track ids are present
// in the table.
var ErrEmptyPool = fmt.Errorf("no valid tracks in pool")

// minPoolSize is the spec's floor (§6/§7/§8-E1): fewer valid tracks than
// this and the run must fail before any LLM call is made.
const minPoolSize = 10

// Trees optionally supplies the three tree handles the pool analyzer
// consults for cross-tree context (spec.md §6: "engine never parses tree
// files itself").
type Trees struct {
	Genre      Tree
	Scene      Tree
	Collection Tree
}

// Analyze is the pool analyzer's single entry point (component D). table
// indexes every known track by id; ids is the subset forming this run's
// pool. Ids absent from table are silently dropped; if none remain,
// ErrEmptyPool is returned.
func Analyze(table map[int]*models.Track, ids []int, trees *Trees) (*models.PoolProfile, error) {
	pool := make([]*models.Track, 0, len(ids))
	poolSet := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if t, ok := table[id]; ok {
			pool = append(pool, t)
			poolSet[id] = struct{}{}
		}
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if len(pool) < minPoolSize {
		return nil, engineerr.ErrInsufficientPool
	}

	facets.ApplyAll(pool)

	profile := &models.PoolProfile{
		TrackCount: len(pool),
	}

	bpms := make([]float64, 0, len(pool))
	for _, t := range pool {
		if bpm, ok := t.BPMValue(); ok {
			bpms = append(bpms, bpm)
		}
	}
	profile.TracksWithBPM = len(bpms)
	profile.BPM = bpmStats(bpms)

	keyCounts := map[string]int{}
	genreCounts := map[string]int{}
	moodCounts := map[string]int{}
	descCounts := map[string]int{}
	locCounts := map[string]int{}
	eraCounts := map[string]int{}

	for _, t := range pool {
		if t.Key != "" {
			keyCounts[t.Key]++
		}
		if t.Genre1 != "" {
			genreCounts[t.Genre1]++
		}
		if t.Genre2 != "" {
			genreCounts[t.Genre2]++
		}
		for _, tok := range facets.Tokenize(t.Mood) {
			moodCounts[tok]++
		}
		for _, tok := range facets.Tokenize(t.Descriptors) {
			descCounts[tok]++
		}
		if t.ParsedLocation != "" {
			locCounts[t.ParsedLocation]++
		}
		if t.Era != "" {
			eraCounts[t.Era]++
		}
	}

	profile.Keys = topKeys(keyCounts, 24)
	profile.Genres = topValues(genreCounts, 20)
	profile.Moods = topValues(moodCounts, 20)
	profile.Descriptors = topValues(descCounts, 20)
	profile.Locations = topValues(locCounts, 10)
	profile.Eras = topValues(eraCounts, 10)

	if trees != nil {
		ctx := map[models.TreeKind][]models.TreeContextHit{}
		if trees.Genre != nil {
			if hits := treeContext(trees.Genre, poolSet); len(hits) > 0 {
				ctx[models.TreeKindGenre] = hits
			}
		}
		if trees.Scene != nil {
			if hits := treeContext(trees.Scene, poolSet); len(hits) > 0 {
				ctx[models.TreeKindScene] = hits
			}
		}
		if trees.Collection != nil {
			if hits := treeContext(trees.Collection, poolSet); len(hits) > 0 {
				ctx[models.TreeKindCollection] = hits
			}
		}
		if len(ctx) > 0 {
			profile.TreeContext = ctx
		}
	}

	return profile, nil
}

func bpmStats(bpms []float64) models.BPMStats {
	if len(bpms) == 0 {
		return models.BPMStats{}
	}
	sorted := append([]float64(nil), bpms...)
	sort.Float64s(sorted)

	min, max, sum := sorted[0], sorted[len(sorted)-1], 0.0
	for _, b := range sorted {
		sum += b
	}
	mean := sum / float64(len(sorted))

	var median float64
	n := len(sorted)
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return models.BPMStats{
		Min:       round1(min),
		Max:       round1(max),
		Median:    round1(median),
		Mean:      round1(mean),
		Histogram: bpmHistogram(sorted, 5),
	}
}

// bpmHistogram buckets pre-sorted BPMs into fixed-width buckets spanning
// floor(min) to ceil(max), grounded on original_source/app/autoset.py's
// _bpm_histogram.
func bpmHistogram(sortedBPMs []float64, bucketSize int) []models.BPMBucket {
	if len(sortedBPMs) == 0 {
		return nil
	}
	lo := int(math.Floor(sortedBPMs[0]/float64(bucketSize))) * bucketSize
	hi := int(math.Ceil(sortedBPMs[len(sortedBPMs)-1]/float64(bucketSize))) * bucketSize

	var buckets []models.BPMBucket
	counts := map[int]int{}
	for start := lo; start < hi; start += bucketSize {
		counts[start] = 0
	}
	for _, b := range sortedBPMs {
		bucketStart := int(b/float64(bucketSize)) * bucketSize
		counts[bucketStart]++
	}
	starts := make([]int, 0, len(counts))
	for s := range counts {
		starts = append(starts, s)
	}
	sort.Ints(starts)
	for _, s := range starts {
		buckets = append(buckets, models.BPMBucket{
			Range: fmt.Sprintf("%d-%d", s, s+bucketSize),
			Count: counts[s],
		})
	}
	return buckets
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func topValues(counts map[string]int, n int) []models.ValueCount {
	entries := make([]models.ValueCount, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, models.ValueCount{Value: v, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func topKeys(counts map[string]int, n int) []models.KeyCount {
	entries := make([]models.KeyCount, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, models.KeyCount{Key: v, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// treeContext walks tree and returns leaves with non-zero overlap with
// poolIDs, sorted by overlap descending, truncated to the top 10.
func treeContext(tree Tree, poolIDs map[int]struct{}) []models.TreeContextHit {
	var hits []models.TreeContextHit
	for _, leaf := range tree.WalkLeaves() {
		overlap := 0
		for _, id := range leaf.TrackIDs {
			if _, ok := poolIDs[id]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		hits = append(hits, models.TreeContextHit{
			LeafID:       leaf.ID,
			LeafTitle:    leaf.Title,
			OverlapCount: overlap,
			TotalInLeaf:  len(leaf.TrackIDs),
			Lineage:      leaf.Lineage,
			Category:     leaf.Category,
		})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].OverlapCount != hits[j].OverlapCount {
			return hits[i].OverlapCount > hits[j].OverlapCount
		}
		return hits[i].LeafID < hits[j].LeafID
	})
	if len(hits) > 10 {
		hits = hits[:10]
	}
	return hits
}
