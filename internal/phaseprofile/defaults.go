package phaseprofile

import "github.com/jasonfurnell/narrative-set-engine/internal/models"

// DefaultProfiles returns the built-in named phase profiles, ported from
// original_source/app/phases.py's DEFAULT_PROFILES. Callers seed a Registry
// with these; custom profiles are added on top via Registry.Put.
func DefaultProfiles() []models.PhaseProfile {
	return []models.PhaseProfile{
		{
			ID:   "classic_arc",
			Name: "Classic Arc",
			Phases: []models.Phase{
				{Name: "Warm-Up", Pct: [2]float64{0, 15}, Desc: "Slower BPM, spacious tracks, clearer grooves. Build curiosity rather than intensity.", Color: "#777777"},
				{Name: "Build", Pct: [2]float64{15, 40}, Desc: "Gradually layer in bigger basslines, more recognizable hooks, tighter percussion.", Color: "#999999"},
				{Name: "Peak", Pct: [2]float64{40, 75}, Desc: "Full throttle — your biggest, most powerful tunes.", Color: "#CCCCCC"},
				{Name: "Wind-Down", Pct: [2]float64{75, 90}, Desc: "Ease off the intensity without losing the thread.", Color: "#999999"},
				{Name: "Outro", Pct: [2]float64{90, 100}, Desc: "Cool the room with deeper, mellower selections.", Color: "#777777"},
			},
		},
		{
			ID:   "double_peak",
			Name: "Double Peak",
			Phases: []models.Phase{
				{Name: "Opening Build", Pct: [2]float64{0, 15}, Desc: "Quick but tasteful ramp-up. Establish groove and intent.", Color: "#888888"},
				{Name: "First Peak", Pct: [2]float64{15, 35}, Desc: "First high-energy plateau, but hold something back.", Color: "#BBBBBB"},
				{Name: "Valley", Pct: [2]float64{35, 50}, Desc: "Deliberate pull-back into deeper, more hypnotic territory.", Color: "#777777"},
				{Name: "Second Build", Pct: [2]float64{50, 65}, Desc: "Rebuild from the valley; the crowd knows what's coming.", Color: "#AAAAAA"},
				{Name: "Main Peak", Pct: [2]float64{65, 85}, Desc: "The real climax — exceed the first peak in every way.", Color: "#CCCCCC"},
				{Name: "Cool-Down", Pct: [2]float64{85, 100}, Desc: "Relatively rapid but smooth descent.", Color: "#888888"},
			},
		},
		{
			ID:   "slow_burn",
			Name: "Slow Burn",
			Phases: []models.Phase{
				{Name: "Foundation", Pct: [2]float64{0, 25}, Desc: "Minimal and atmospheric. Establish a deep groove and sense of space.", Color: "#777777"},
				{Name: "Development", Pct: [2]float64{25, 50}, Desc: "Introduce more defined rhythmic elements; each track adds one layer.", Color: "#999999"},
				{Name: "Deepening", Pct: [2]float64{50, 75}, Desc: "The groove is now undeniable — driving but still deep.", Color: "#BBBBBB"},
				{Name: "Culmination", Pct: [2]float64{75, 100}, Desc: "The full realisation of everything built before.", Color: "#CCCCCC"},
			},
		},
		{
			ID:   "opening_set",
			Name: "Opening Set",
			Phases: []models.Phase{
				{Name: "Ambient Welcome", Pct: [2]float64{0, 20}, Desc: "People are arriving. Atmospheric textures, no heavy bass yet.", Color: "#666666"},
				{Name: "Groove Establish", Pct: [2]float64{20, 45}, Desc: "Introduce a clear pulse; the empty floor should start to feel inviting.", Color: "#888888"},
				{Name: "Gentle Build", Pct: [2]float64{45, 75}, Desc: "People are starting to sway. Never peak — always suggest.", Color: "#AAAAAA"},
				{Name: "Handoff", Pct: [2]float64{75, 100}, Desc: "Sustained warm plateau where you pass the baton.", Color: "#999999"},
			},
		},
		{
			ID:   "closing_set",
			Name: "Closing Set",
			Phases: []models.Phase{
				{Name: "Takeover", Pct: [2]float64{0, 10}, Desc: "Match the outgoing DJ's energy seamlessly.", Color: "#CCCCCC"},
				{Name: "Sustained Heat", Pct: [2]float64{10, 30}, Desc: "Maintain high energy but begin subtle shifts.", Color: "#BBBBBB"},
				{Name: "Graceful Descent", Pct: [2]float64{30, 60}, Desc: "Move from peak-time bangers to deeper, more emotive selections.", Color: "#999999"},
				{Name: "Afterglow", Pct: [2]float64{60, 85}, Desc: "Deep, warm, reflective — the kind of music that sounds perfect at 4am.", Color: "#777777"},
				{Name: "Wind-Down", Pct: [2]float64{85, 100}, Desc: "Near-ambient, beautiful closure.", Color: "#666666"},
			},
		},
		{
			ID:   "marathon",
			Name: "Marathon",
			Phases: []models.Phase{
				{Name: "Settling In", Pct: [2]float64{0, 10}, Desc: "Set the tone for a long journey. Show your range and earn trust early.", Color: "#777777"},
				{Name: "Wave 1", Pct: [2]float64{10, 30}, Desc: "First full build-and-release cycle.", Color: "#999999"},
				{Name: "Wave 2", Pct: [2]float64{30, 55}, Desc: "Second cycle goes higher than the first.", Color: "#AAAAAA"},
				{Name: "Wave 3", Pct: [2]float64{55, 75}, Desc: "The biggest wave — maximum energy reached here.", Color: "#CCCCCC"},
				{Name: "Wave 4", Pct: [2]float64{75, 90}, Desc: "One more push, but the ceiling is lower than wave 3.", Color: "#BBBBBB"},
				{Name: "Resolution", Pct: [2]float64{90, 100}, Desc: "Bring it home with feeling and resolution.", Color: "#888888"},
			},
		},
	}
}
