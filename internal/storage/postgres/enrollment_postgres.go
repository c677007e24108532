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

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

// Enroll creates the enrollment and its empty progress ledger in one
// transaction; either both rows persist or neither does. The unique key on
// (student_id, course_id) makes exactly one of two concurrent attempts win.
func (r *EnrollmentPostgres) Enroll(ctx context.Context, enrollment models.Enrollment, totalLectures int) (*models.Enrollment, *models.Progress, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	enrollment.EnrolledAt = now

	insertEnrollment := `
        INSERT INTO enrollments (id, student_id, course_id, enrolled_at)
        VALUES ($1, $2, $3, $4)
    `
	_, err = tx.Exec(ctx, insertEnrollment,
		enrollment.ID, enrollment.StudentID, enrollment.CourseID, enrollment.EnrolledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, app_errors.ErrAlreadyEnrolled
		}
		return nil, nil, fmt.Errorf("failed to insert enrollment: %w", err)
	}

	progress := models.Progress{
		ID:            uuid.New(),
		StudentID:     enrollment.StudentID,
		CourseID:      enrollment.CourseID,
		TotalLectures: totalLectures,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	insertProgress := `
        INSERT INTO progress (id, student_id, course_id, total_lectures, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (student_id, course_id) DO NOTHING
    `
	tag, err := tx.Exec(ctx, insertProgress,
		progress.ID, progress.StudentID, progress.CourseID, progress.TotalLectures,
		progress.CreatedAt, progress.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// A ledger can predate the enrollment: a progress read lazily creates
		// one without requiring membership. Adopt it instead of failing the
		// enrollment, otherwise the student could never enroll at all.
		existing := `
            SELECT id, total_lectures, created_at, updated_at
              FROM progress
             WHERE student_id = $1 AND course_id = $2
        `
		err = tx.QueryRow(ctx, existing, enrollment.StudentID, enrollment.CourseID).Scan(
			&progress.ID, &progress.TotalLectures, &progress.CreatedAt, &progress.UpdatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read existing progress: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &enrollment, &progress, nil
}

// Unenroll removes the enrollment together with its progress ledger.
func (r *EnrollmentPostgres) Unenroll(ctx context.Context, enrollment models.Enrollment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, enrollment.ID); err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	deleteProgress := `DELETE FROM progress WHERE student_id = $1 AND course_id = $2`
	if _, err = tx.Exec(ctx, deleteProgress, enrollment.StudentID, enrollment.CourseID); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *EnrollmentPostgres) EnrollmentByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	query := `
        SELECT id, student_id, course_id, enrolled_at
          FROM enrollments
         WHERE id = $1
    `
	var e models.Enrollment
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentPostgres) EnrollmentByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	query := `
        SELECT id, student_id, course_id, enrolled_at
          FROM enrollments
         WHERE student_id = $1 AND course_id = $2
    `
	var e models.Enrollment
	err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentPostgres) EnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error) {
	query := `
        SELECT id, student_id, course_id, enrolled_at
          FROM enrollments
         WHERE student_id = $1
         ORDER BY enrolled_at DESC
    `
	return r.queryEnrollments(ctx, query, studentID)
}

func (r *EnrollmentPostgres) EnrollmentsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Enrollment, error) {
	query := `
        SELECT id, student_id, course_id, enrolled_at
          FROM enrollments
         WHERE course_id = $1
         ORDER BY enrolled_at DESC
    `
	return r.queryEnrollments(ctx, query, courseID)
}

func (r *EnrollmentPostgres) queryEnrollments(ctx context.Context, query string, arg any) ([]models.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}
