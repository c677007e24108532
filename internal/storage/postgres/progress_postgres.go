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

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

func (r *ProgressPostgres) ByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Progress, error) {
	query := `
        SELECT id, student_id, course_id, total_lectures, created_at, updated_at
          FROM progress
         WHERE student_id = $1 AND course_id = $2
    `
	var p models.Progress
	err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(
		&p.ID, &p.StudentID, &p.CourseID, &p.TotalLectures, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	completionsQuery := `
        SELECT lecture_id, completed_at, score
          FROM progress_completions
         WHERE progress_id = $1
         ORDER BY completed_at
    `
	rows, err := r.db.Query(ctx, completionsQuery, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.CompletionEntry
		if err := rows.Scan(&e.LectureID, &e.CompletedAt, &e.Score); err != nil {
			return nil, err
		}
		p.CompletedLectures = append(p.CompletedLectures, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts an empty ledger. A duplicate-key error means another request
// created it first; callers treat ErrProgressExists as "re-read, do not fail".
func (r *ProgressPostgres) Create(ctx context.Context, progress models.Progress) (*models.Progress, error) {
	now := time.Now().UTC()
	if progress.ID == uuid.Nil {
		progress.ID = uuid.New()
	}
	progress.CreatedAt = now
	progress.UpdatedAt = now

	query := `
        INSERT INTO progress (id, student_id, course_id, total_lectures, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query,
		progress.ID, progress.StudentID, progress.CourseID, progress.TotalLectures,
		progress.CreatedAt, progress.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, app_errors.ErrProgressExists
		}
		return nil, fmt.Errorf("failed to insert progress: %w", err)
	}
	return &progress, nil
}

// UpsertCompletion records one lecture completion as a single statement, so
// two concurrent completions of the same lecture can never produce two rows.
// CompletedAt always moves forward; the score is overwritten only when the
// caller supplied one.
func (r *ProgressPostgres) UpsertCompletion(ctx context.Context, progressID, lectureID uuid.UUID, score *int) error {
	now := time.Now().UTC()
	query := `
        INSERT INTO progress_completions (progress_id, lecture_id, completed_at, score)
        VALUES ($1, $2, $3, COALESCE($4, 0))
        ON CONFLICT (progress_id, lecture_id)
        DO UPDATE SET completed_at = EXCLUDED.completed_at,
                      score = COALESCE($4, progress_completions.score)
    `
	if _, err := r.db.Exec(ctx, query, progressID, lectureID, now, score); err != nil {
		// The lecture_id foreign key rejects completions for lectures that
		// do not exist.
		if isForeignKeyViolation(err) {
			return app_errors.ErrLectureNotFound
		}
		return fmt.Errorf("failed to upsert completion: %w", err)
	}

	touch := `UPDATE progress SET updated_at = $2 WHERE id = $1`
	if _, err := r.db.Exec(ctx, touch, progressID, now); err != nil {
		return fmt.Errorf("failed to touch progress: %w", err)
	}
	return nil
}
