package appointment

import "github.com/BruksfildServices01/barberin/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusScheduled, StatusCancelled, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

// ===============================
// Transitions
// ===============================

// Only scheduled appointments can move, and only once.
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
