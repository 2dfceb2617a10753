package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONPrefix = regexp.MustCompile(`(?s)^\s*` + "```" + `(?:json)?\s*\n?`)
	fencedJSONSuffix = regexp.MustCompile("(?s)\n?```\\s*$")
	braceBlock       = regexp.MustCompile(`(?s)\{.*\}`)
	bracketBlock     = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSON tolerates raw JSON, fenced ```json code blocks, and JSON
// embedded in surrounding prose (spec.md §6: "JSON extraction tolerates raw
// JSON, fenced JSON blocks, and JSON embedded in prose"). Grounded on
// original_source/app/tree.py's _extract_json, extended with a prose-scan
// fallback since the teacher's internal/llm/openai_provider.go already
// demonstrates scanning multiple response-shape fields for the first
// plausible payload.
func ExtractJSON(text string, out any) error {
	cleaned := strings.TrimSpace(text)
	cleaned = fencedJSONPrefix.ReplaceAllString(cleaned, "")
	cleaned = fencedJSONSuffix.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	// Fall back to scanning for the first {...} or [...] block in prose.
	if m := braceBlock.FindString(cleaned); m != "" {
		if err := json.Unmarshal([]byte(m), out); err == nil {
			return nil
		}
	}
	if m := bracketBlock.FindString(cleaned); m != "" {
		if err := json.Unmarshal([]byte(m), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("llm: could not extract JSON from response: %.200s", cleaned)
}
