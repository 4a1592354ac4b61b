package booking

import (
	"crypto/rand"
	"fmt"
	"time"
)

// NewTrackingID generates a customer-shareable tracking identifier:
//
//	TSD-YYYYMMDD-XXXXXXXX
//
// where the suffix is 8 uppercase hex characters from 4 cryptographically random
// bytes. The date is UTC. Assigned exactly once, at booking creation, and the format
// is a public contract (customers paste it into the track-by-id lookup).
func NewTrackingID(now time.Time) (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("TSD-%s-%02X%02X%02X%02X", now.UTC().Format("20060102"), b[0], b[1], b[2], b[3]), nil
}
