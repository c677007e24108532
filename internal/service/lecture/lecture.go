package lecture

import (
	"context"
	"io"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
)

type lectureRepo interface {
	CreateLecture(ctx context.Context, lecture models.Lecture) (*models.Lecture, error)
	LectureByID(ctx context.Context, id uuid.UUID) (*models.Lecture, error)
	LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error)
	GetMaxLectureOrder(ctx context.Context, courseID uuid.UUID) (int, error)
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type fileStorage interface {
	UploadAttachment(ctx context.Context, lectureID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	AttachmentURL(ctx context.Context, objectKey string) (string, error)
}

// UploadedFile is what the delivery layer hands over for an attachment.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Service struct {
	log         logger.Log
	lectureRepo lectureRepo
	courseRepo  courseRepo
	fileStorage fileStorage
}

func NewService(log logger.Log, l lectureRepo, c courseRepo, f fileStorage) *Service {
	return &Service{
		log:         log,
		lectureRepo: l,
		courseRepo:  c,
		fileStorage: f,
	}
}

// CreateLecture appends a lecture to a course owned by the instructor. A
// missing or invalid order gets the next free slot. Quiz lectures must carry
// a valid question set.
func (s *Service) CreateLecture(ctx context.Context, lecture models.Lecture, instructorID uuid.UUID, file *UploadedFile) (*models.Lecture, error) {
	course, err := s.courseRepo.CourseByID(ctx, lecture.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, app_errors.ErrNotCourseInstructor
	}

	if lecture.IsQuiz() {
		if err := ValidateQuestions(lecture.Questions); err != nil {
			return nil, err
		}
	} else {
		lecture.Questions = nil
	}

	if lecture.Order < 1 {
		max, err := s.lectureRepo.GetMaxLectureOrder(ctx, lecture.CourseID)
		if err != nil {
			return nil, err
		}
		lecture.Order = max + 1
	}

	if file != nil {
		if lecture.ID == uuid.Nil {
			lecture.ID = uuid.New()
		}
		objectKey, err := s.fileStorage.UploadAttachment(ctx, lecture.ID, file.Name, file.Reader, file.Size, file.ContentType)
		if err != nil {
			return nil, err
		}
		url, err := s.fileStorage.AttachmentURL(ctx, objectKey)
		if err != nil {
			return nil, err
		}
		lecture.File = &models.FileAttach{
			URL:  url,
			Name: file.Name,
			Type: file.ContentType,
			Size: file.Size,
		}
	}

	return s.lectureRepo.CreateLecture(ctx, lecture)
}

func (s *Service) LectureByID(ctx context.Context, id uuid.UUID) (*models.Lecture, error) {
	return s.lectureRepo.LectureByID(ctx, id)
}

func (s *Service) LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error) {
	return s.lectureRepo.LecturesByCourse(ctx, courseID)
}

// ValidateQuestions enforces the quiz shape: at least one question, each with
// two or more options and a correct-answer index inside the option list.
func ValidateQuestions(questions []models.Question) error {
	if len(questions) == 0 {
		return app_errors.ErrInvalidQuestions
	}
	for _, q := range questions {
		if q.Question == "" || len(q.Options) < 2 {
			return app_errors.ErrInvalidQuestions
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return app_errors.ErrInvalidQuestions
		}
	}
	return nil
}
