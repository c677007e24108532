package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is unique per (student, course); its existence is the
// precondition for every progress operation on that course.
type Enrollment struct {
	ID         uuid.UUID `json:"id"`
	StudentID  uuid.UUID `json:"student_id"`
	CourseID   uuid.UUID `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
