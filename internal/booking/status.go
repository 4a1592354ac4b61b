package booking

import "fmt"

type Status string

// Status labels are a public contract: customers see them in tracking history and
// the frontend filters on them, so the mixed naming is kept as-is.
const (
	StatusPending           Status = "pending"
	StatusPendingAssign     Status = "pending-assign"
	StatusDecoratorAssigned Status = "Decorator_Assigned"
	StatusDecoratorAccepted Status = "Decorator_Accepted"
	StatusWorking           Status = "Working"
	StatusCompleted         Status = "Completed"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPendingAssign, StatusDecoratorAssigned, StatusDecoratorAccepted, StatusWorking, StatusCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:           {StatusPendingAssign: true},     // payment confirmed
	StatusPendingAssign:     {StatusDecoratorAssigned: true}, // admin assigns
	StatusDecoratorAssigned: {StatusDecoratorAccepted: true}, // decorator accepts
	StatusDecoratorAccepted: {StatusWorking: true},
	StatusWorking:           {StatusCompleted: true},
	StatusCompleted:         {}, // terminal
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}
