package course

import (
	"context"

	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
)

type courseRepo interface {
	NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context, limit, offset int) ([]models.CoursePreview, int, error)
	CoursesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CoursePreview, error)
}

type searchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

type Service struct {
	log        logger.Log
	courseRepo courseRepo
	searchRepo searchRepo
}

func NewService(log logger.Log, c courseRepo, s searchRepo) *Service {
	return &Service{
		log:        log,
		courseRepo: c,
		searchRepo: s,
	}
}

func (s *Service) CreateCourse(ctx context.Context, course models.Course) (uuid.UUID, error) {
	id, err := s.courseRepo.NewCourse(ctx, &course)
	if err != nil {
		return uuid.Nil, err
	}

	// Indexing is best-effort; a search outage must not block authoring.
	if err := s.searchRepo.Index(ctx, course); err != nil {
		s.log.ErrorErr("failed to index course", err, "course_id", id.String())
	}
	return id, nil
}

func (s *Service) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courseRepo.CourseByID(ctx, id)
}

func (s *Service) ListCourses(ctx context.Context, limit, offset int) ([]models.CoursePreview, int, error) {
	return s.courseRepo.ListCourses(ctx, limit, offset)
}

func (s *Service) SearchCourses(ctx context.Context, query string, limit int) ([]models.CoursePreview, error) {
	ids, err := s.searchRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.CoursesByIDs(ctx, ids)
}
