package access

import (
	"context"
	"errors"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
)

const (
	ReasonInstructor           = "instructor"
	ReasonAuthorized           = "authorized"
	ReasonNotEnrolled          = "not_enrolled"
	ReasonPreviousNotCompleted = "previous_lecture_not_completed"
)

type Decision struct {
	CanAccess    bool   `json:"canAccess"`
	Reason       string `json:"reason"`
	LectureOrder int    `json:"lectureOrder,omitempty"`
}

type lectureRepo interface {
	LectureByID(ctx context.Context, id uuid.UUID) (*models.Lecture, error)
	LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error)
}

type enrollmentRepo interface {
	EnrollmentByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
}

type ledger interface {
	GetOrCreate(ctx context.Context, studentID, courseID uuid.UUID) (*models.Progress, error)
	MarkComplete(ctx context.Context, studentID, courseID, lectureID uuid.UUID, score *int) (*models.Progress, error)
}

type Service struct {
	log            logger.Log
	lectureRepo    lectureRepo
	enrollmentRepo enrollmentRepo
	ledger         ledger
}

func NewService(log logger.Log, l lectureRepo, e enrollmentRepo, ld ledger) *Service {
	return &Service{
		log:            log,
		lectureRepo:    l,
		enrollmentRepo: e,
		ledger:         ld,
	}
}

// CheckAccess decides whether a principal may view a lecture. Instructors
// bypass gating. A student needs an enrollment and, for order n > 1, a
// completion of the lecture with order n-1. The ledger is lazily created on
// first access, and the gate is then evaluated against the fresh empty
// ledger, so a student's first access only opens lecture 1.
//
// Side effect: a student's successful access to a reading lecture records it
// as completed with score 100. The write is best-effort; a failure is logged
// and never blocks the view.
func (s *Service) CheckAccess(ctx context.Context, userID uuid.UUID, isInstructor bool, lectureID uuid.UUID) (Decision, error) {
	lecture, err := s.lectureRepo.LectureByID(ctx, lectureID)
	if err != nil {
		return Decision{}, err
	}

	if isInstructor {
		return Decision{CanAccess: true, Reason: ReasonInstructor, LectureOrder: lecture.Order}, nil
	}

	if _, err := s.enrollmentRepo.EnrollmentByStudentAndCourse(ctx, userID, lecture.CourseID); err != nil {
		if errors.Is(err, app_errors.ErrEnrollmentNotFound) {
			return Decision{CanAccess: false, Reason: ReasonNotEnrolled, LectureOrder: lecture.Order}, nil
		}
		return Decision{}, err
	}

	p, err := s.ledger.GetOrCreate(ctx, userID, lecture.CourseID)
	if err != nil {
		return Decision{}, err
	}

	completedOrders, err := s.completedOrders(ctx, lecture.CourseID, p)
	if err != nil {
		return Decision{}, err
	}

	if !CanAccessOrder(lecture.Order, completedOrders) {
		return Decision{CanAccess: false, Reason: ReasonPreviousNotCompleted, LectureOrder: lecture.Order}, nil
	}

	if lecture.IsReading() {
		score := models.ReadingCompleteScore
		if _, err := s.ledger.MarkComplete(ctx, userID, lecture.CourseID, lecture.ID, &score); err != nil {
			s.log.ErrorErr("failed to auto-complete reading lecture", err,
				"lecture_id", lecture.ID.String(),
				"user_id", userID.String(),
			)
		}
	}

	return Decision{CanAccess: true, Reason: ReasonAuthorized, LectureOrder: lecture.Order}, nil
}

// CanAccessOrder is the pure sequential gate: order 1 is always open, order
// n needs a completion of order n-1.
func CanAccessOrder(targetOrder int, completedOrders map[int]struct{}) bool {
	if targetOrder <= 1 {
		return true
	}
	_, ok := completedOrders[targetOrder-1]
	return ok
}

func (s *Service) completedOrders(ctx context.Context, courseID uuid.UUID, p *models.Progress) (map[int]struct{}, error) {
	lectures, err := s.lectureRepo.LecturesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	orderByID := make(map[uuid.UUID]int, len(lectures))
	for _, l := range lectures {
		orderByID[l.ID] = l.Order
	}

	orders := make(map[int]struct{}, len(p.CompletedLectures))
	for _, e := range p.CompletedLectures {
		if order, ok := orderByID[e.LectureID]; ok {
			orders[order] = struct{}{}
		}
	}
	return orders, nil
}
