package models

// ValueCount is a generic {value,count} facet tally entry.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// KeyCount is a {key,count} Camelot key distribution entry.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// BPMBucket is one histogram bar.
type BPMBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// BPMStats summarizes the pool's BPM distribution.
type BPMStats struct {
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	Median    float64     `json:"median"`
	Mean      float64     `json:"mean"`
	Histogram []BPMBucket `json:"histogram"`
}

// TreeContextHit is one leaf's overlap with the pool, emitted by the pool
// analyzer's tree-context walk (component D step 5).
type TreeContextHit struct {
	LeafID        string `json:"leaf_id"`
	LeafTitle     string `json:"leaf_title"`
	OverlapCount  int    `json:"overlap_count"`
	TotalInLeaf   int    `json:"total_in_leaf"`
	GenreContext  string `json:"genre_context,omitempty"`
	SceneContext  string `json:"scene_context,omitempty"`
	Lineage       string `json:"lineage,omitempty"`
	Category      string `json:"category,omitempty"`
}

// TreeKind identifies which handle a TreeContextHit set came from.
type TreeKind string

const (
	TreeKindGenre      TreeKind = "genre"
	TreeKindScene      TreeKind = "scene"
	TreeKindCollection TreeKind = "collection"
)

// PoolProfile is the pool analyzer's (component D) output.
type PoolProfile struct {
	TrackCount    int                        `json:"track_count"`
	TracksWithBPM int                        `json:"tracks_with_bpm"`
	BPM           BPMStats                   `json:"bpm"`
	Keys          []KeyCount                 `json:"keys"`
	Genres        []ValueCount               `json:"genres"`
	Moods         []ValueCount               `json:"moods"`
	Descriptors   []ValueCount               `json:"descriptors"`
	Locations     []ValueCount               `json:"locations"`
	Eras          []ValueCount               `json:"eras"`
	TreeContext   map[TreeKind][]TreeContextHit `json:"tree_context,omitempty"`
}
