package tracking

import "testing"

func TestDefaultDetails(t *testing.T) {
	cases := []struct{ status, want string }{
		{"booking-paid", "booking paid"},
		{"booking-Placed", "booking Placed"},
		{"Decorator_Assigned", "Decorator Assigned"},
		{"Decorator_Accepted", "Decorator Accepted"},
		{"pending-assign", "pending assign"},
		{"Working", "Working"},
		{"Completed", "Completed"},
	}
	for _, c := range cases {
		if got := defaultDetails(c.status); got != c.want {
			t.Fatalf("defaultDetails(%q) = %q, want %q", c.status, got, c.want)
		}
	}
}
