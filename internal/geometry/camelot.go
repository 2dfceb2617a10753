// Package geometry implements Camelot-wheel key normalization, distance, and
// compatibility (component C) plus BPM bucketing used by the pool analyzer
// and sequencer.
package geometry

import (
	"regexp"
	"strconv"
	"strings"
)

var camelotRe = regexp.MustCompile(`^(\d{1,2})([MmABab])$`)

// Normalize accepts "{N}[A|B|M|m]" with N in 1..12. Trailing M/B/b maps to
// "B" (major); A/a maps to "A" (minor). Returns "" if the string doesn't
// parse to a valid Camelot position.
func Normalize(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	m := camelotRe.FindStringSubmatch(key)
	if m == nil {
		return ""
	}
	num, err := strconv.Atoi(m[1])
	if err != nil || num < 1 || num > 12 {
		return ""
	}
	letter := m[2]
	if letter == "M" || letter == "B" || letter == "b" {
		return strconv.Itoa(num) + "B"
	}
	return strconv.Itoa(num) + "A"
}

func parse(normalized string) (num int, letter byte, ok bool) {
	if len(normalized) < 2 {
		return 0, 0, false
	}
	letter = normalized[len(normalized)-1]
	n, err := strconv.Atoi(normalized[:len(normalized)-1])
	if err != nil {
		return 0, 0, false
	}
	return n, letter, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Distance computes min(|n1-n2|, 12-|n1-n2|) + (l1==l2 ? 0 : 1) between two
// (already-or-not) Camelot key strings. Invalid keys contribute a distance
// of 0, matching original_source/app/setbuilder.py's camelot_distance
// (unparseable keys are treated as "no opinion" rather than maximally bad).
func Distance(key1, key2 string) int {
	k1, k2 := Normalize(key1), Normalize(key2)
	if k1 == "" || k2 == "" {
		return 0
	}
	if k1 == k2 {
		return 0
	}
	n1, l1, _ := parse(k1)
	n2, l2, _ := parse(k2)
	numDiff := min(abs(n1-n2), 12-abs(n1-n2))
	letterDiff := 0
	if l1 != l2 {
		letterDiff = 1
	}
	return numDiff + letterDiff
}

// Compatible reports whether two keys are mix-compatible: identical, adjacent
// with the same letter (circular diff 1), or relative (same number, different
// letter).
func Compatible(key1, key2 string) bool {
	k1, k2 := Normalize(key1), Normalize(key2)
	if k1 == "" || k2 == "" {
		return true
	}
	if k1 == k2 {
		return true
	}
	n1, l1, _ := parse(k1)
	n2, l2, _ := parse(k2)
	if l1 == l2 {
		diff := abs(n1 - n2)
		if diff <= 1 || diff == 11 {
			return true
		}
	}
	if n1 == n2 && l1 != l2 {
		return true
	}
	return false
}

// BPMBucket buckets a BPM into a fixed-width bucket, e.g. bucket(124, 3) = 123.
func BPMBucket(bpm float64, size int) int {
	return int(bpm) / size * size
}
