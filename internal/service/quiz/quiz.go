package quiz

import (
	"context"
	"errors"
	"math"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
)

// PassThreshold is the fixed passing percentage for quizzes.
const PassThreshold = 70

type Result struct {
	Score            int              `json:"score"`
	TotalQuestions   int              `json:"totalQuestions"`
	Percentage       int              `json:"percentage"`
	Passed           bool             `json:"passed"`
	Results          []QuestionResult `json:"results"`
	LectureCompleted bool             `json:"lectureCompleted"`
}

// QuestionResult carries everything the client needs to render a review row.
type QuestionResult struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	UserAnswer    int      `json:"userAnswer"`
	CorrectAnswer int      `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
}

// Grade scores a submitted answer set. It is a pure function: the same
// questions and answers always produce the same result. Every question must
// have a non-nil answer.
func Grade(questions []models.Question, answers []*int) (*Result, error) {
	if len(answers) != len(questions) {
		return nil, app_errors.ErrAnswersMismatch
	}
	for _, a := range answers {
		if a == nil {
			return nil, app_errors.ErrAnswersMismatch
		}
	}

	result := &Result{
		TotalQuestions: len(questions),
		Results:        make([]QuestionResult, 0, len(questions)),
	}

	for i, q := range questions {
		userAnswer := *answers[i]
		isCorrect := userAnswer == q.CorrectAnswer
		if isCorrect {
			result.Score++
		}
		result.Results = append(result.Results, QuestionResult{
			Question:      q.Question,
			Options:       q.Options,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
		})
	}

	result.Percentage = int(math.Round(float64(result.Score) / float64(result.TotalQuestions) * 100))
	result.Passed = result.Percentage >= PassThreshold
	return result, nil
}

type lectureRepo interface {
	LectureByID(ctx context.Context, id uuid.UUID) (*models.Lecture, error)
}

type enrollmentRepo interface {
	EnrollmentByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
}

type ledger interface {
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

// Submit grades a student's answers against a quiz lecture. A passing attempt
// is written to the ledger with the percentage as its score; a failing one
// leaves the ledger untouched, so retakes are unlimited.
func (s *Service) Submit(ctx context.Context, lectureID, studentID uuid.UUID, answers []*int) (*Result, error) {
	lecture, err := s.lectureRepo.LectureByID(ctx, lectureID)
	if err != nil {
		if errors.Is(err, app_errors.ErrLectureNotFound) {
			return nil, app_errors.ErrNotQuiz
		}
		return nil, err
	}
	if !lecture.IsQuiz() {
		return nil, app_errors.ErrNotQuiz
	}

	if _, err := s.enrollmentRepo.EnrollmentByStudentAndCourse(ctx, studentID, lecture.CourseID); err != nil {
		if errors.Is(err, app_errors.ErrEnrollmentNotFound) {
			return nil, app_errors.ErrNotEnrolled
		}
		return nil, err
	}

	result, err := Grade(lecture.Questions, answers)
	if err != nil {
		return nil, err
	}

	if result.Passed {
		score := result.Percentage
		if _, err := s.ledger.MarkComplete(ctx, studentID, lecture.CourseID, lecture.ID, &score); err != nil {
			return nil, err
		}
		result.LectureCompleted = true
	}

	return result, nil
}
