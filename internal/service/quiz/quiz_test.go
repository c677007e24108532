package quiz

import (
	"context"
	"testing"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func threeQuestions() []models.Question {
	return []models.Question{
		{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0},
		{Question: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Question: "q3", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
	}
}

func TestGrade_AllCorrect(t *testing.T) {
	result, err := Grade(threeQuestions(), []*int{intp(0), intp(1), intp(2)})
	require.NoError(t, err)

	require.Equal(t, 3, result.Score)
	require.Equal(t, 3, result.TotalQuestions)
	require.Equal(t, 100, result.Percentage)
	require.True(t, result.Passed)
	require.Len(t, result.Results, 3)
	for _, r := range result.Results {
		require.True(t, r.IsCorrect)
	}
}

func TestGrade_TwoOfThreeFails(t *testing.T) {
	result, err := Grade(threeQuestions(), []*int{intp(0), intp(1), intp(0)})
	require.NoError(t, err)

	require.Equal(t, 2, result.Score)
	require.Equal(t, 67, result.Percentage)
	require.False(t, result.Passed)
	require.False(t, result.Results[2].IsCorrect)
	require.Equal(t, 0, result.Results[2].UserAnswer)
	require.Equal(t, 2, result.Results[2].CorrectAnswer)
}

func TestGrade_ThresholdBoundary(t *testing.T) {
	questions := make([]models.Question, 10)
	for i := range questions {
		questions[i] = models.Question{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0}
	}

	answers := func(correct int) []*int {
		out := make([]*int, 10)
		for i := range out {
			if i < correct {
				out[i] = intp(0)
			} else {
				out[i] = intp(1)
			}
		}
		return out
	}

	passed, err := Grade(questions, answers(7))
	require.NoError(t, err)
	require.Equal(t, 70, passed.Percentage)
	require.True(t, passed.Passed)

	failed, err := Grade(questions, answers(6))
	require.NoError(t, err)
	require.Equal(t, 60, failed.Percentage)
	require.False(t, failed.Passed)
}

func TestGrade_Deterministic(t *testing.T) {
	questions := threeQuestions()
	answers := []*int{intp(0), intp(0), intp(2)}

	first, err := Grade(questions, answers)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Grade(questions, answers)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestGrade_AnswerMismatch(t *testing.T) {
	questions := threeQuestions()

	cases := []struct {
		name    string
		answers []*int
	}{
		{"too few", []*int{intp(0), intp(1)}},
		{"too many", []*int{intp(0), intp(1), intp(2), intp(0)}},
		{"nil answer", []*int{intp(0), nil, intp(2)}},
		{"nil slice", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Grade(questions, tc.answers)
			require.ErrorIs(t, err, app_errors.ErrAnswersMismatch)
		})
	}
}

type fakeLectureRepo struct {
	lectures map[uuid.UUID]*models.Lecture
}

func (f *fakeLectureRepo) LectureByID(_ context.Context, id uuid.UUID) (*models.Lecture, error) {
	l, ok := f.lectures[id]
	if !ok {
		return nil, app_errors.ErrLectureNotFound
	}
	return l, nil
}

type fakeEnrollmentRepo struct {
	enrolled map[uuid.UUID]map[uuid.UUID]struct{}
}

func (f *fakeEnrollmentRepo) EnrollmentByStudentAndCourse(_ context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	if _, ok := f.enrolled[studentID][courseID]; !ok {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	return &models.Enrollment{StudentID: studentID, CourseID: courseID}, nil
}

type recordingLedger struct {
	calls []recordedCompletion
}

type recordedCompletion struct {
	studentID uuid.UUID
	courseID  uuid.UUID
	lectureID uuid.UUID
	score     *int
}

func (f *recordingLedger) MarkComplete(_ context.Context, studentID, courseID, lectureID uuid.UUID, score *int) (*models.Progress, error) {
	f.calls = append(f.calls, recordedCompletion{studentID, courseID, lectureID, score})
	return &models.Progress{StudentID: studentID, CourseID: courseID}, nil
}

func newSubmitFixture(t *testing.T) (*Service, *models.Lecture, uuid.UUID, *recordingLedger) {
	t.Helper()

	studentID := uuid.New()
	courseID := uuid.New()
	quizLecture := &models.Lecture{
		ID:        uuid.New(),
		CourseID:  courseID,
		Type:      models.LectureTypeQuiz,
		Order:     2,
		Questions: threeQuestions(),
	}

	ledger := &recordingLedger{}
	svc := NewService(
		logger.NewDiscard(),
		&fakeLectureRepo{lectures: map[uuid.UUID]*models.Lecture{quizLecture.ID: quizLecture}},
		&fakeEnrollmentRepo{enrolled: map[uuid.UUID]map[uuid.UUID]struct{}{
			studentID: {courseID: {}},
		}},
		ledger,
	)
	return svc, quizLecture, studentID, ledger
}

func TestSubmit_PassWritesCompletion(t *testing.T) {
	svc, lecture, studentID, ledger := newSubmitFixture(t)

	result, err := svc.Submit(context.Background(), lecture.ID, studentID, []*int{intp(0), intp(1), intp(2)})
	require.NoError(t, err)

	require.True(t, result.Passed)
	require.True(t, result.LectureCompleted)
	require.Len(t, ledger.calls, 1)
	require.Equal(t, lecture.ID, ledger.calls[0].lectureID)
	require.NotNil(t, ledger.calls[0].score)
	require.Equal(t, 100, *ledger.calls[0].score)
}

func TestSubmit_FailLeavesLedgerAlone(t *testing.T) {
	svc, lecture, studentID, ledger := newSubmitFixture(t)

	result, err := svc.Submit(context.Background(), lecture.ID, studentID, []*int{intp(1), intp(0), intp(0)})
	require.NoError(t, err)

	require.False(t, result.Passed)
	require.False(t, result.LectureCompleted)
	require.Empty(t, ledger.calls)
}

func TestSubmit_NotAQuiz(t *testing.T) {
	svc, _, studentID, _ := newSubmitFixture(t)

	_, err := svc.Submit(context.Background(), uuid.New(), studentID, []*int{intp(0)})
	require.ErrorIs(t, err, app_errors.ErrNotQuiz)
}

func TestSubmit_ReadingLectureRejected(t *testing.T) {
	svc, lecture, studentID, _ := newSubmitFixture(t)
	lecture.Type = models.LectureTypeReading

	_, err := svc.Submit(context.Background(), lecture.ID, studentID, []*int{intp(0), intp(1), intp(2)})
	require.ErrorIs(t, err, app_errors.ErrNotQuiz)
}

func TestSubmit_NotEnrolled(t *testing.T) {
	svc, lecture, _, ledger := newSubmitFixture(t)

	_, err := svc.Submit(context.Background(), lecture.ID, uuid.New(), []*int{intp(0), intp(1), intp(2)})
	require.ErrorIs(t, err, app_errors.ErrNotEnrolled)
	require.Empty(t, ledger.calls)
}

func TestSubmit_MismatchedAnswers(t *testing.T) {
	svc, lecture, studentID, ledger := newSubmitFixture(t)

	_, err := svc.Submit(context.Background(), lecture.ID, studentID, []*int{intp(0)})
	require.ErrorIs(t, err, app_errors.ErrAnswersMismatch)
	require.Empty(t, ledger.calls)
}
