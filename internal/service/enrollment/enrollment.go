package enrollment

import (
	"context"
	"errors"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
)

type enrollmentRepo interface {
	Enroll(ctx context.Context, enrollment models.Enrollment, totalLectures int) (*models.Enrollment, *models.Progress, error)
	Unenroll(ctx context.Context, enrollment models.Enrollment) error
	EnrollmentByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error)
	EnrollmentByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	EnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error)
	EnrollmentsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Enrollment, error)
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	LectureCount(ctx context.Context, courseID uuid.UUID) (int, error)
}

type Service struct {
	log            logger.Log
	enrollmentRepo enrollmentRepo
	courseRepo     courseRepo
}

func NewService(log logger.Log, e enrollmentRepo, c courseRepo) *Service {
	return &Service{
		log:            log,
		enrollmentRepo: e,
		courseRepo:     c,
	}
}

// Enroll admits a student to a course, creating the enrollment and an empty
// progress ledger as one unit. The storage layer's unique keys make two
// concurrent attempts resolve to one success and one ErrAlreadyEnrolled.
func (s *Service) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, *models.Progress, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}

	count, err := s.courseRepo.LectureCount(ctx, course.ID)
	if err != nil {
		return nil, nil, err
	}

	return s.enrollmentRepo.Enroll(ctx, models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}, count)
}

// Unenroll removes the enrollment and its ledger; only the owning student
// may do it. Re-enrolling afterwards starts from a fresh, empty ledger.
func (s *Service) Unenroll(ctx context.Context, enrollmentID, requesterID uuid.UUID) error {
	e, err := s.enrollmentRepo.EnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if e.StudentID != requesterID {
		return app_errors.ErrForbidden
	}
	return s.enrollmentRepo.Unenroll(ctx, *e)
}

func (s *Service) EnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error) {
	return s.enrollmentRepo.EnrollmentsByStudent(ctx, studentID)
}

// EnrollmentsByCourse lists a course's roster for its owning instructor.
func (s *Service) EnrollmentsByCourse(ctx context.Context, courseID, instructorID uuid.UUID) ([]models.Enrollment, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, app_errors.ErrForbidden
	}
	return s.enrollmentRepo.EnrollmentsByCourse(ctx, courseID)
}

func (s *Service) CheckEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, bool, error) {
	e, err := s.enrollmentRepo.EnrollmentByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, app_errors.ErrEnrollmentNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return e, true, nil
}
