package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

func (r *CoursePostgres) NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error) {
	now := time.Now().UTC()
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.CreatedAt = now
	course.UpdatedAt = now

	query := `
        INSERT INTO courses (id, title, description, instructor_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query,
		course.ID, course.Title, course.Description, course.InstructorID,
		course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert course: %w", err)
	}
	return course.ID, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	query := `
        SELECT id, title, description, instructor_id, created_at, updated_at
          FROM courses
         WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CoursePostgres) ListCourses(ctx context.Context, limit, offset int) ([]models.CoursePreview, int, error) {
	query := `
        SELECT c.id, c.title, c.description, u.username,
               (SELECT COUNT(*) FROM lectures l WHERE l.course_id = c.id)
          FROM courses c
          JOIN users u ON u.id = c.instructor_id
         ORDER BY c.created_at DESC
         LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var previews []models.CoursePreview
	for rows.Next() {
		var p models.CoursePreview
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.InstructorName, &p.LectureCount); err != nil {
			return nil, 0, err
		}
		previews = append(previews, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return previews, total, nil
}

func (r *CoursePostgres) CoursesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CoursePreview, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
        SELECT c.id, c.title, c.description, u.username,
               (SELECT COUNT(*) FROM lectures l WHERE l.course_id = c.id)
          FROM courses c
          JOIN users u ON u.id = c.instructor_id
         WHERE c.id = ANY($1)
    `
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]models.CoursePreview, len(ids))
	for rows.Next() {
		var p models.CoursePreview
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.InstructorName, &p.LectureCount); err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the ranking of the incoming id list.
	previews := make([]models.CoursePreview, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			previews = append(previews, p)
		}
	}
	return previews, nil
}

// LectureCount is the snapshot source for Progress.TotalLectures.
func (r *CoursePostgres) LectureCount(ctx context.Context, courseID uuid.UUID) (int, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, app_errors.ErrCourseNotFound
	}

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lectures WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lectures: %w", err)
	}
	return count, nil
}
