package domain

import "time"

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentApproved, EnrollmentActive, EnrollmentCompleted, EnrollmentCancelled:
		return true
	}
	return false
}

// Terminal statuses admit no further transitions.
func (s EnrollmentStatus) Terminal() bool {
	return s == EnrollmentCompleted || s == EnrollmentCancelled
}

// statusTransitions is the allowed enrollment lifecycle. Cancellation is
// reachable from every non-terminal status; everything else moves
// strictly forward.
var statusTransitions = map[EnrollmentStatus][]EnrollmentStatus{
	EnrollmentPending:   {EnrollmentApproved, EnrollmentCancelled},
	EnrollmentApproved:  {EnrollmentActive, EnrollmentCancelled},
	EnrollmentActive:    {EnrollmentCompleted, EnrollmentCancelled},
	EnrollmentCompleted: {},
	EnrollmentCancelled: {},
}

// CanTransitionTo reports whether the lifecycle permits moving from s
// to next.
func (s EnrollmentStatus) CanTransitionTo(next EnrollmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentUnpaid || p == PaymentPaid || p == PaymentRefunded
}

type EnrollmentSource string

const (
	SourceAdmin    EnrollmentSource = "admin"
	SourceWebsite  EnrollmentSource = "website"
	SourceForm     EnrollmentSource = "form"
	SourceReferral EnrollmentSource = "referral"
	SourceOffline  EnrollmentSource = "offline"
)

func (s EnrollmentSource) Valid() bool {
	switch s {
	case SourceAdmin, SourceWebsite, SourceForm, SourceReferral, SourceOffline:
		return true
	}
	return false
}

// Enrollment binds a student to a course and optionally to a specific
// schedule occurrence. Status and payment status are independent axes.
type Enrollment struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id"`
	CourseID      int64            `json:"course_id"`
	ScheduleID    *int64           `json:"schedule_id,omitempty"`
	Status        EnrollmentStatus `json:"status"`
	PaymentStatus PaymentStatus    `json:"payment_status"`
	Source        EnrollmentSource `json:"source"`
	Notes         string           `json:"notes,omitempty"`
	EnrolledAt    time.Time        `json:"enrolled_at"`
}
