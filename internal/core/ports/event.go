package ports

import (
	"context"
	"time"
)

// Event types written to the outbox and published by the relay.
const (
	EventEnrollmentCreated  = "enrollment.created"
	EventEnrollmentApproved = "enrollment.approved"
)

type EnrollmentEvent struct {
	EnrollmentID int64     `json:"enrollment_id"`
	UserID       int64     `json:"user_id"`
	CourseID     int64     `json:"course_id"`
	ScheduleID   *int64    `json:"schedule_id,omitempty"`
	Status       string    `json:"status"`
	Source       string    `json:"source"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type EnrollmentEventPublisher interface {
	PublishEnrollmentEvent(ctx context.Context, eventType string, evt EnrollmentEvent) error
}
