package booking

import "testing"

func TestCanTransition_HappyPath(t *testing.T) {
	path := []Status{
		StatusPending,
		StatusPendingAssign,
		StatusDecoratorAssigned,
		StatusDecoratorAccepted,
		StatusWorking,
		StatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		if !CanTransition(path[i], path[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", path[i], path[i+1])
		}
	}
}

func TestCanTransition_RejectsSkipsAndReversals(t *testing.T) {
	cases := []struct{ from, to Status }{
		{StatusPending, StatusDecoratorAssigned},    // skip payment
		{StatusPending, StatusCompleted},            // skip everything
		{StatusPendingAssign, StatusWorking},        // skip accept
		{StatusDecoratorAssigned, StatusPending},    // reversal
		{StatusWorking, StatusDecoratorAccepted},    // reversal
		{StatusCompleted, StatusWorking},            // terminal
		{StatusCompleted, StatusPending},            // terminal
		{StatusDecoratorAccepted, StatusCompleted},  // skip working
	}
	for _, c := range cases {
		if CanTransition(c.from, c.to) {
			t.Fatalf("expected %s -> %s to be rejected", c.from, c.to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "pending-assign", "Decorator_Assigned", "Decorator_Accepted", "Working", "Completed"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	for _, s := range []string{"", "Pending", "decorator_assigned", "done", "booking-paid"} {
		if _, err := ParseStatus(s); err == nil {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}
