package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LecturePostgres struct {
	db *pgxpool.Pool
}

func NewLecturePostgres(db *pgxpool.Pool) *LecturePostgres {
	return &LecturePostgres{db: db}
}

func (r *LecturePostgres) CreateLecture(ctx context.Context, lecture models.Lecture) (*models.Lecture, error) {
	now := time.Now().UTC()
	if lecture.ID == uuid.Nil {
		lecture.ID = uuid.New()
	}
	lecture.CreatedAt = now
	lecture.UpdatedAt = now

	var questionsJSON []byte
	if lecture.Questions != nil {
		var err error
		questionsJSON, err = json.Marshal(lecture.Questions)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal questions: %w", err)
		}
	}

	var fileURL, fileName, fileType *string
	var fileSize *int64
	if lecture.File != nil {
		fileURL, fileName, fileType = &lecture.File.URL, &lecture.File.Name, &lecture.File.Type
		fileSize = &lecture.File.Size
	}

	query := `
    INSERT INTO lectures (
        id, course_id, title, type, lecture_order, content,
        file_url, file_name, file_type, file_size, questions,
        created_at, updated_at
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.db.Exec(ctx, query,
		lecture.ID, lecture.CourseID, lecture.Title, lecture.Type, lecture.Order, lecture.Content,
		fileURL, fileName, fileType, fileSize, questionsJSON,
		lecture.CreatedAt, lecture.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert lecture: %w", err)
	}
	return &lecture, nil
}

func (r *LecturePostgres) LectureByID(ctx context.Context, id uuid.UUID) (*models.Lecture, error) {
	query := `
    SELECT id, course_id, title, type, lecture_order, content,
           file_url, file_name, file_type, file_size, questions,
           created_at, updated_at
      FROM lectures
     WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	lecture, err := scanLecture(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrLectureNotFound
		}
		return nil, fmt.Errorf("failed to get lecture: %w", err)
	}
	return lecture, nil
}

func (r *LecturePostgres) LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error) {
	query := `
    SELECT id, course_id, title, type, lecture_order, content,
           file_url, file_name, file_type, file_size, questions,
           created_at, updated_at
      FROM lectures
     WHERE course_id = $1
     ORDER BY lecture_order
    `
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lectures by course: %w", err)
	}
	defer rows.Close()

	var lectures []models.Lecture
	for rows.Next() {
		lecture, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, *lecture)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lectures, nil
}

func (r *LecturePostgres) GetMaxLectureOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(lecture_order), 0) FROM lectures WHERE course_id = $1`
	err := r.db.QueryRow(ctx, query, courseID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max lecture order: %w", err)
	}
	return max, nil
}

func scanLecture(row pgx.Row) (*models.Lecture, error) {
	var lecture models.Lecture
	var fileURL, fileName, fileType *string
	var fileSize *int64
	var questionsJSON []byte

	err := row.Scan(
		&lecture.ID, &lecture.CourseID, &lecture.Title, &lecture.Type, &lecture.Order, &lecture.Content,
		&fileURL, &fileName, &fileType, &fileSize, &questionsJSON,
		&lecture.CreatedAt, &lecture.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fileURL != nil {
		lecture.File = &models.FileAttach{URL: *fileURL}
		if fileName != nil {
			lecture.File.Name = *fileName
		}
		if fileType != nil {
			lecture.File.Type = *fileType
		}
		if fileSize != nil {
			lecture.File.Size = *fileSize
		}
	}
	if len(questionsJSON) > 0 {
		if err := json.Unmarshal(questionsJSON, &lecture.Questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
		}
	}
	return &lecture, nil
}
