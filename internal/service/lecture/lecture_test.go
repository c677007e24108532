package lecture

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestValidateQuestions(t *testing.T) {
	valid := models.Question{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 1}

	cases := []struct {
		name      string
		questions []models.Question
		wantErr   bool
	}{
		{"single valid question", []models.Question{valid}, false},
		{"empty set", nil, true},
		{"missing text", []models.Question{{Options: []string{"a", "b"}, CorrectAnswer: 0}}, true},
		{"one option", []models.Question{{Question: "q", Options: []string{"a"}, CorrectAnswer: 0}}, true},
		{"answer out of range", []models.Question{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 2}}, true},
		{"negative answer", []models.Question{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: -1}}, true},
		{"one bad among good", []models.Question{valid, {Question: "q", Options: []string{"a"}, CorrectAnswer: 0}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuestions(tc.questions)
			if tc.wantErr {
				require.ErrorIs(t, err, app_errors.ErrInvalidQuestions)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

type memLectureRepo struct {
	lectures map[uuid.UUID]*models.Lecture
	maxOrder map[uuid.UUID]int
}

func newMemLectureRepo() *memLectureRepo {
	return &memLectureRepo{
		lectures: make(map[uuid.UUID]*models.Lecture),
		maxOrder: make(map[uuid.UUID]int),
	}
}

func (m *memLectureRepo) CreateLecture(_ context.Context, l models.Lecture) (*models.Lecture, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	m.lectures[l.ID] = &l
	if l.Order > m.maxOrder[l.CourseID] {
		m.maxOrder[l.CourseID] = l.Order
	}
	cp := l
	return &cp, nil
}

func (m *memLectureRepo) LectureByID(_ context.Context, id uuid.UUID) (*models.Lecture, error) {
	l, ok := m.lectures[id]
	if !ok {
		return nil, app_errors.ErrLectureNotFound
	}
	return l, nil
}

func (m *memLectureRepo) LecturesByCourse(_ context.Context, courseID uuid.UUID) ([]models.Lecture, error) {
	var out []models.Lecture
	for _, l := range m.lectures {
		if l.CourseID == courseID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLectureRepo) GetMaxLectureOrder(_ context.Context, courseID uuid.UUID) (int, error) {
	return m.maxOrder[courseID], nil
}

type stubCourseRepo struct {
	courses map[uuid.UUID]*models.Course
}

func (s *stubCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return c, nil
}

type stubFileStorage struct {
	uploads int
}

func (s *stubFileStorage) UploadAttachment(_ context.Context, lectureID uuid.UUID, filename string, _ io.Reader, _ int64, _ string) (string, error) {
	s.uploads++
	return "lectures/" + lectureID.String() + "/" + filename, nil
}

func (s *stubFileStorage) AttachmentURL(_ context.Context, objectKey string) (string, error) {
	return "https://files.local/" + objectKey, nil
}

func newCreateFixture() (*Service, *memLectureRepo, *stubFileStorage, uuid.UUID, uuid.UUID) {
	courseID := uuid.New()
	instructorID := uuid.New()

	repo := newMemLectureRepo()
	files := &stubFileStorage{}
	svc := NewService(
		logger.NewDiscard(),
		repo,
		&stubCourseRepo{courses: map[uuid.UUID]*models.Course{
			courseID: {ID: courseID, InstructorID: instructorID},
		}},
		files,
	)
	return svc, repo, files, courseID, instructorID
}

func TestCreateLecture_OwnershipRequired(t *testing.T) {
	svc, _, _, courseID, _ := newCreateFixture()

	_, err := svc.CreateLecture(context.Background(), models.Lecture{
		CourseID: courseID,
		Title:    "intro",
		Type:     models.LectureTypeReading,
		Content:  "text",
	}, uuid.New(), nil)
	require.ErrorIs(t, err, app_errors.ErrNotCourseInstructor)
}

func TestCreateLecture_AutoOrder(t *testing.T) {
	svc, _, _, courseID, instructorID := newCreateFixture()
	ctx := context.Background()

	first, err := svc.CreateLecture(ctx, models.Lecture{
		CourseID: courseID, Title: "one", Type: models.LectureTypeReading, Content: "a",
	}, instructorID, nil)
	require.NoError(t, err)
	require.Equal(t, 1, first.Order)

	second, err := svc.CreateLecture(ctx, models.Lecture{
		CourseID: courseID, Title: "two", Type: models.LectureTypeReading, Content: "b",
	}, instructorID, nil)
	require.NoError(t, err)
	require.Equal(t, 2, second.Order)

	// An explicit order is kept as given.
	pinned, err := svc.CreateLecture(ctx, models.Lecture{
		CourseID: courseID, Title: "five", Type: models.LectureTypeReading, Content: "c", Order: 5,
	}, instructorID, nil)
	require.NoError(t, err)
	require.Equal(t, 5, pinned.Order)
}

func TestCreateLecture_QuizValidation(t *testing.T) {
	svc, _, _, courseID, instructorID := newCreateFixture()

	_, err := svc.CreateLecture(context.Background(), models.Lecture{
		CourseID: courseID,
		Title:    "quiz",
		Type:     models.LectureTypeQuiz,
		Content:  "check yourself",
	}, instructorID, nil)
	require.ErrorIs(t, err, app_errors.ErrInvalidQuestions)
}

func TestCreateLecture_ReadingDropsQuestions(t *testing.T) {
	svc, _, _, courseID, instructorID := newCreateFixture()

	created, err := svc.CreateLecture(context.Background(), models.Lecture{
		CourseID:  courseID,
		Title:     "reading",
		Type:      models.LectureTypeReading,
		Content:   "text",
		Questions: []models.Question{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0}},
	}, instructorID, nil)
	require.NoError(t, err)
	require.Empty(t, created.Questions)
}

func TestCreateLecture_WithAttachment(t *testing.T) {
	svc, _, files, courseID, instructorID := newCreateFixture()

	created, err := svc.CreateLecture(context.Background(), models.Lecture{
		CourseID: courseID,
		Title:    "with file",
		Type:     models.LectureTypeReading,
		Content:  "text",
	}, instructorID, &UploadedFile{
		Name:        "notes.pdf",
		ContentType: "application/pdf",
		Size:        12,
		Reader:      strings.NewReader("pdf contents"),
	})
	require.NoError(t, err)

	require.Equal(t, 1, files.uploads)
	require.NotNil(t, created.File)
	require.Equal(t, "notes.pdf", created.File.Name)
	require.Contains(t, created.File.URL, created.ID.String())
}
