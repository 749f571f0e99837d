package domain

import "fmt"

// Typed errors returned by the core services. Handlers map them to
// HTTP statuses with errors.As; nothing here is retried automatically.

// ValidationError reports malformed or semantically invalid input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an absent referenced resource.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// CapacityExceededError reports a full schedule.
type CapacityExceededError struct {
	ScheduleID int64
	Capacity   int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("schedule %d is full (capacity %d)", e.ScheduleID, e.Capacity)
}

// InvalidStateError reports an illegal lifecycle transition.
type InvalidStateError struct {
	From EnrollmentStatus
	To   EnrollmentStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// ConflictError reports a uniqueness violation (duplicate email, slug).
type ConflictError struct {
	Resource string
	Field    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Resource, e.Field)
}
