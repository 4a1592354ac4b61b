package booking

import (
	"regexp"
	"testing"
	"time"
)

var trackingIDRe = regexp.MustCompile(`^TSD-\d{8}-[0-9A-F]{8}$`)

func TestNewTrackingID_Format(t *testing.T) {
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.FixedZone("UTC+6", 6*3600))

	id, err := NewTrackingID(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trackingIDRe.MatchString(id) {
		t.Fatalf("bad format: %q", id)
	}
	// Date segment must be UTC, not local.
	if id[4:12] != "20260901" {
		t.Fatalf("expected UTC date 20260901, got %q", id[4:12])
	}
}

func TestNewTrackingID_SuffixVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		id, err := NewTrackingID(now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[id] = true
	}
	// 64 draws from a 32-bit space colliding down to a handful would mean the
	// random source is broken.
	if len(seen) < 60 {
		t.Fatalf("suspiciously many collisions: %d unique of 64", len(seen))
	}
}
