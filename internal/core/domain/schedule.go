package domain

import "time"

type ScheduleStatus string

const (
	ScheduleScheduled ScheduleStatus = "scheduled"
	ScheduleCancelled ScheduleStatus = "cancelled"
	ScheduleCompleted ScheduleStatus = "completed"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleScheduled, ScheduleCancelled, ScheduleCompleted:
		return true
	}
	return false
}

type Schedule struct {
	ID        int64          `json:"id"`
	CourseID  int64          `json:"course_id"`
	TeacherID *int64         `json:"teacher_id,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Location  string         `json:"location"`
	Capacity  *int           `json:"capacity,omitempty"`
	Status    ScheduleStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// EffectiveCapacity is the schedule's own capacity when set, otherwise
// the capacity of the parent course.
func (s *Schedule) EffectiveCapacity(course *Course) int {
	if s.Capacity != nil {
		return *s.Capacity
	}
	return course.Capacity
}
