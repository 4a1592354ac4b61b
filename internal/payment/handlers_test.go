package payment

import (
	"testing"

	"styledecor/internal/booking"
	"styledecor/pkg/checkout"
)

// A booking confirmed through one checkout session must not be re-reconciled
// by a second session carrying a different transaction id: once paid, or once
// the lifecycle has moved past pending-assign, a late confirmation answers
// with the stored result instead of writing anything.
func TestAlreadyReconciled(t *testing.T) {
	cases := []struct {
		name    string
		payment string
		service booking.Status
		want    bool
	}{
		{"unpaid pending booking", booking.PaymentPending, booking.StatusPending, false},
		{"paid, awaiting assignment", booking.PaymentPaid, booking.StatusPendingAssign, true},
		{"paid, decorator assigned", booking.PaymentPaid, booking.StatusDecoratorAssigned, true},
		{"paid, work underway", booking.PaymentPaid, booking.StatusWorking, true},
		{"paid, completed", booking.PaymentPaid, booking.StatusCompleted, true},
		{"lifecycle advanced without payment flag", booking.PaymentPending, booking.StatusDecoratorAccepted, true},
	}
	for _, tc := range cases {
		b := &booking.Booking{PaymentStatus: tc.payment, ServiceStatus: tc.service}
		if got := alreadyReconciled(b); got != tc.want {
			t.Fatalf("%s: alreadyReconciled = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSessionRefs(t *testing.T) {
	s := &checkout.Session{Metadata: map[string]string{
		"bookingId":  "b-1",
		"trackingId": "TSD-20260101-00C0FFEE",
	}}
	bookingID, trackingID, err := sessionRefs(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookingID != "b-1" || trackingID != "TSD-20260101-00C0FFEE" {
		t.Fatalf("unexpected refs: %q %q", bookingID, trackingID)
	}
}

func TestSessionRefs_MissingMetadata(t *testing.T) {
	cases := []map[string]string{
		nil,
		{},
		{"bookingId": "b-1"},
		{"trackingId": "TSD-20260101-00C0FFEE"},
		{"bookingId": "  ", "trackingId": "TSD-20260101-00C0FFEE"},
	}
	for _, md := range cases {
		if _, _, err := sessionRefs(&checkout.Session{Metadata: md}); err == nil {
			t.Fatalf("expected error for metadata %v", md)
		}
	}
}

func TestCurrencyOrDefault(t *testing.T) {
	if got := currencyOrDefault(""); got != "USD" {
		t.Fatalf("expected USD, got %q", got)
	}
	if got := currencyOrDefault(" eur "); got != "EUR" {
		t.Fatalf("expected EUR, got %q", got)
	}
}
