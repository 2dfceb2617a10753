package models

import "time"

// SourceType tags how a Slot's track options were sourced. Sum-typed rather
// than an open map, per spec.md §9 ("Tagged variants over dictionaries").
type SourceType string

const (
	SourcePlaylist SourceType = "playlist"
	SourceTreeNode SourceType = "tree_node"
	SourceAutoset  SourceType = "autoset"
	SourceAdhoc    SourceType = "adhoc"
)

// SlotSource identifies where a slot's candidate tracks were pulled from.
type SlotSource struct {
	Type SourceType `json:"type"`
	ID   string     `json:"id"`
	Name string     `json:"name"`
}

// TrackOption is one BPM-bucket candidate within a Slot.
type TrackOption struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	BPM      *float64 `json:"bpm,omitempty"`
	Key      string   `json:"key,omitempty"`
	Year     *int     `json:"year,omitempty"`
	BPMLevel *int     `json:"bpm_level,omitempty"`
}

// Slot is a fixed 3-minute position in the assembled set: ten BPM-bucket
// candidates (60,70,...,150 — empty buckets are nil) plus which one is selected.
type Slot struct {
	ID                string         `json:"id"`
	Source            SlotSource     `json:"source"`
	Tracks            [10]*TrackOption `json:"tracks"`
	SelectedTrackIndex int           `json:"selectedTrackIndex"`
}

// Set is the assembled output of component H, handed to the storage collaborator.
type Set struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	Slots          []Slot    `json:"slots"`
	PhaseProfileID string    `json:"phase_profile_id,omitempty"`
}

// TargetSetSlots and SlotMinutes define the nominal set length: 40 slots of
// 3 minutes each = 120 minutes. Grounded on original_source/app/autoset.py's
// module constants TARGET_SET_SLOTS / SLOT_MINUTES.
const (
	TargetSetSlots = 40
	SlotMinutes    = 3
)

// DefaultBPMLevels is the fixed BPM ladder every Slot's Tracks array aligns to.
var DefaultBPMLevels = [10]int{60, 70, 80, 90, 100, 110, 120, 130, 140, 150}
