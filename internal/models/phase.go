package models

import "math"

// Phase is one entry of a PhaseProfile — the structural skeleton the
// narrative planner (component E) fills with musical targets to produce an Act.
type Phase struct {
	Name  string     `json:"name"`
	Pct   [2]float64 `json:"pct"`
	Desc  string     `json:"desc"`
	Color string     `json:"color"`
}

// PhaseProfile is an ordered list of phases whose Pct intervals must tile
// [0,100] contiguously: first phase starts at 0, last ends at 100, and every
// boundary joins the next phase's start.
type PhaseProfile struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Phases []Phase `json:"phases"`
}

// TargetTrackCount computes round(totalSlots * (end-start)/100), floored at 1.
func (p Phase) TargetTrackCount(totalSlots int) int {
	n := float64(totalSlots) * (p.Pct[1] - p.Pct[0]) / 100.0
	count := int(math.Round(n))
	if count < 1 {
		count = 1
	}
	return count
}
