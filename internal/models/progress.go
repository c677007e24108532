package models

import (
	"time"

	"github.com/google/uuid"
)

// Progress is a student's completion ledger for one course. There is exactly
// one ledger per (student, course) pair and at most one CompletionEntry per
// lecture; both are enforced by keys at the storage layer.
type Progress struct {
	ID                uuid.UUID         `json:"id"`
	StudentID         uuid.UUID         `json:"student_id"`
	CourseID          uuid.UUID         `json:"course_id"`
	TotalLectures     int               `json:"total_lectures"`
	CompletedLectures []CompletionEntry `json:"completed_lectures"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type CompletionEntry struct {
	LectureID   uuid.UUID `json:"lecture_id"`
	CompletedAt time.Time `json:"completed_at"`
	Score       int       `json:"score"`
}

// Completion looks up the entry for a lecture, if one exists.
func (p *Progress) Completion(lectureID uuid.UUID) (CompletionEntry, bool) {
	for _, e := range p.CompletedLectures {
		if e.LectureID == lectureID {
			return e, true
		}
	}
	return CompletionEntry{}, false
}

// CompletedSet maps completed lecture ids for constant-time membership checks.
func (p *Progress) CompletedSet() map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(p.CompletedLectures))
	for _, e := range p.CompletedLectures {
		set[e.LectureID] = struct{}{}
	}
	return set
}
