package progress

import (
	"context"
	"errors"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
)

type progressRepo interface {
	ByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Progress, error)
	Create(ctx context.Context, progress models.Progress) (*models.Progress, error)
	UpsertCompletion(ctx context.Context, progressID, lectureID uuid.UUID, score *int) error
}

type courseRepo interface {
	LectureCount(ctx context.Context, courseID uuid.UUID) (int, error)
}

type enrollmentRepo interface {
	EnrollmentByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
}

// Service owns every mutation of the completion ledger. All call sites share
// one overwrite rule: completing a lecture again refreshes the timestamp and
// replaces the score only when the caller supplied one.
type Service struct {
	log            logger.Log
	progressRepo   progressRepo
	courseRepo     courseRepo
	enrollmentRepo enrollmentRepo
}

func NewService(log logger.Log, p progressRepo, c courseRepo, e enrollmentRepo) *Service {
	return &Service{
		log:            log,
		progressRepo:   p,
		courseRepo:     c,
		enrollmentRepo: e,
	}
}

// GetOrCreate loads the ledger for (student, course), creating an empty one
// on first use. TotalLectures is snapshotted from the course at creation
// time. A losing racer re-reads the winner's row instead of failing.
func (s *Service) GetOrCreate(ctx context.Context, studentID, courseID uuid.UUID) (*models.Progress, error) {
	p, err := s.progressRepo.ByStudentAndCourse(ctx, studentID, courseID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, app_errors.ErrProgressNotFound) {
		return nil, err
	}

	count, err := s.courseRepo.LectureCount(ctx, courseID)
	if err != nil {
		return nil, err
	}

	created, err := s.progressRepo.Create(ctx, models.Progress{
		StudentID:     studentID,
		CourseID:      courseID,
		TotalLectures: count,
	})
	if err != nil {
		if errors.Is(err, app_errors.ErrProgressExists) {
			return s.progressRepo.ByStudentAndCourse(ctx, studentID, courseID)
		}
		return nil, err
	}
	return created, nil
}

// MarkComplete upserts a single lecture completion. Score semantics: nil
// keeps whatever score the entry already has (0 for a new entry); non-nil
// overwrites, so a later passing quiz attempt replaces an earlier score.
func (s *Service) MarkComplete(ctx context.Context, studentID, courseID, lectureID uuid.UUID, score *int) (*models.Progress, error) {
	if _, err := s.enrollmentRepo.EnrollmentByStudentAndCourse(ctx, studentID, courseID); err != nil {
		if errors.Is(err, app_errors.ErrEnrollmentNotFound) {
			return nil, app_errors.ErrNotEnrolled
		}
		return nil, err
	}

	p, err := s.GetOrCreate(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.progressRepo.UpsertCompletion(ctx, p.ID, lectureID, score); err != nil {
		return nil, err
	}

	return s.progressRepo.ByStudentAndCourse(ctx, studentID, courseID)
}
