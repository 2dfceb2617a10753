package geometry

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"8A":  "8A",
		"8B":  "8B",
		"10M": "10B",
		"9m":  "9A",
		"1b":  "1B",
		"":    "",
		"13A": "",
		"0A":  "",
		"xyz": "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDistanceLaws(t *testing.T) {
	// distance(k,k) = 0
	for _, k := range []string{"1A", "8B", "12A"} {
		if d := Distance(k, k); d != 0 {
			t.Errorf("Distance(%s,%s) = %d, want 0", k, k, d)
		}
	}
	// symmetric
	pairs := [][2]string{{"1A", "5B"}, {"3A", "9B"}, {"12A", "1A"}}
	for _, p := range pairs {
		a := Distance(p[0], p[1])
		b := Distance(p[1], p[0])
		if a != b {
			t.Errorf("Distance not symmetric for %v: %d vs %d", p, a, b)
		}
	}
	// wraparound: 12A <-> 1A should be distance 1 (circular adjacency), not 11
	if d := Distance("12A", "1A"); d != 1 {
		t.Errorf("Distance(12A,1A) = %d, want 1 (circular adjacency)", d)
	}
	// relative major/minor: same number, different letter = distance 1
	if d := Distance("8A", "8B"); d != 1 {
		t.Errorf("Distance(8A,8B) = %d, want 1", d)
	}
	// invalid key contributes 0
	if d := Distance("8A", "nope"); d != 0 {
		t.Errorf("Distance with invalid key = %d, want 0", d)
	}
}

func TestCompatibleImpliesDistanceAtMostOne(t *testing.T) {
	keys := []string{"1A", "2A", "3B", "8A", "8B", "12A", "1B"}
	for _, k1 := range keys {
		for _, k2 := range keys {
			if Compatible(k1, k2) {
				if d := Distance(k1, k2); d > 1 {
					t.Errorf("Compatible(%s,%s) but Distance=%d > 1", k1, k2, d)
				}
			}
		}
	}
}

func TestBPMBucket(t *testing.T) {
	if got := BPMBucket(124, 3); got != 123 {
		t.Errorf("BPMBucket(124,3) = %d, want 123", got)
	}
	if got := BPMBucket(120, 3); got != 120 {
		t.Errorf("BPMBucket(120,3) = %d, want 120", got)
	}
}
