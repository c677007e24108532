package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memProgressRepo mirrors the storage semantics: one ledger per
// (student, course), one completion entry per lecture, upsert refreshing
// the timestamp and overwriting the score only when one is supplied.
type memProgressRepo struct {
	mu      sync.Mutex
	ledgers map[uuid.UUID]*models.Progress

	// When set, completions for other lectures are rejected the way the
	// lecture_id foreign key rejects them.
	knownLectures map[uuid.UUID]struct{}
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{ledgers: make(map[uuid.UUID]*models.Progress)}
}

func (m *memProgressRepo) ByStudentAndCourse(_ context.Context, studentID, courseID uuid.UUID) (*models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.ledgers {
		if p.StudentID == studentID && p.CourseID == courseID {
			cp := *p
			cp.CompletedLectures = append([]models.CompletionEntry(nil), p.CompletedLectures...)
			return &cp, nil
		}
	}
	return nil, app_errors.ErrProgressNotFound
}

func (m *memProgressRepo) Create(_ context.Context, progress models.Progress) (*models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.ledgers {
		if p.StudentID == progress.StudentID && p.CourseID == progress.CourseID {
			return nil, app_errors.ErrProgressExists
		}
	}
	progress.ID = uuid.New()
	progress.CreatedAt = time.Now()
	progress.UpdatedAt = progress.CreatedAt
	m.ledgers[progress.ID] = &progress
	cp := progress
	return &cp, nil
}

func (m *memProgressRepo) UpsertCompletion(_ context.Context, progressID, lectureID uuid.UUID, score *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.ledgers[progressID]
	if !ok {
		return app_errors.ErrProgressNotFound
	}
	if m.knownLectures != nil {
		if _, ok := m.knownLectures[lectureID]; !ok {
			return app_errors.ErrLectureNotFound
		}
	}
	now := time.Now()
	for i := range p.CompletedLectures {
		if p.CompletedLectures[i].LectureID == lectureID {
			p.CompletedLectures[i].CompletedAt = now
			if score != nil {
				p.CompletedLectures[i].Score = *score
			}
			p.UpdatedAt = now
			return nil
		}
	}
	entry := models.CompletionEntry{LectureID: lectureID, CompletedAt: now}
	if score != nil {
		entry.Score = *score
	}
	p.CompletedLectures = append(p.CompletedLectures, entry)
	p.UpdatedAt = now
	return nil
}

type memCourseRepo struct {
	counts map[uuid.UUID]int
}

func (m *memCourseRepo) LectureCount(_ context.Context, courseID uuid.UUID) (int, error) {
	count, ok := m.counts[courseID]
	if !ok {
		return 0, app_errors.ErrCourseNotFound
	}
	return count, nil
}

type memEnrollmentRepo struct {
	mu       sync.Mutex
	enrolled map[uuid.UUID]map[uuid.UUID]struct{}
}

func (m *memEnrollmentRepo) EnrollmentByStudentAndCourse(_ context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.enrolled[studentID][courseID]; !ok {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	return &models.Enrollment{StudentID: studentID, CourseID: courseID}, nil
}

func (m *memEnrollmentRepo) enroll(studentID, courseID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enrolled == nil {
		m.enrolled = make(map[uuid.UUID]map[uuid.UUID]struct{})
	}
	if m.enrolled[studentID] == nil {
		m.enrolled[studentID] = make(map[uuid.UUID]struct{})
	}
	m.enrolled[studentID][courseID] = struct{}{}
}

func newFixture(totalLectures int) (*Service, *memProgressRepo, *memEnrollmentRepo, uuid.UUID, uuid.UUID) {
	studentID := uuid.New()
	courseID := uuid.New()

	progressRepo := newMemProgressRepo()
	enrollmentRepo := &memEnrollmentRepo{}
	enrollmentRepo.enroll(studentID, courseID)

	svc := NewService(
		logger.NewDiscard(),
		progressRepo,
		&memCourseRepo{counts: map[uuid.UUID]int{courseID: totalLectures}},
		enrollmentRepo,
	)
	return svc, progressRepo, enrollmentRepo, studentID, courseID
}

func TestGetOrCreate_LazyCreation(t *testing.T) {
	svc, _, _, studentID, courseID := newFixture(5)
	ctx := context.Background()

	p, err := svc.GetOrCreate(ctx, studentID, courseID)
	require.NoError(t, err)
	require.Equal(t, 5, p.TotalLectures)
	require.Empty(t, p.CompletedLectures)

	again, err := svc.GetOrCreate(ctx, studentID, courseID)
	require.NoError(t, err)
	require.Equal(t, p.ID, again.ID)
}

func TestGetOrCreate_UnknownCourse(t *testing.T) {
	svc, _, _, studentID, _ := newFixture(5)

	_, err := svc.GetOrCreate(context.Background(), studentID, uuid.New())
	require.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestGetOrCreate_ConcurrentConvergesToOneLedger(t *testing.T) {
	svc, repo, _, studentID, courseID := newFixture(3)
	ctx := context.Background()

	const callers = 8
	results := make([]*models.Progress, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.GetOrCreate(ctx, studentID, courseID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, results[0].ID, results[i].ID)
	}
	require.Len(t, repo.ledgers, 1)
}

func TestMarkComplete_RequiresEnrollment(t *testing.T) {
	svc, _, _, _, courseID := newFixture(3)

	_, err := svc.MarkComplete(context.Background(), uuid.New(), courseID, uuid.New(), nil)
	require.ErrorIs(t, err, app_errors.ErrNotEnrolled)
}

func TestMarkComplete_Idempotent(t *testing.T) {
	svc, _, _, studentID, courseID := newFixture(3)
	ctx := context.Background()
	lectureID := uuid.New()

	first, err := svc.MarkComplete(ctx, studentID, courseID, lectureID, nil)
	require.NoError(t, err)
	require.Len(t, first.CompletedLectures, 1)

	firstAt := first.CompletedLectures[0].CompletedAt

	second, err := svc.MarkComplete(ctx, studentID, courseID, lectureID, nil)
	require.NoError(t, err)
	require.Len(t, second.CompletedLectures, 1)
	require.False(t, second.CompletedLectures[0].CompletedAt.Before(firstAt))
}

func TestMarkComplete_ScoreOverwriteRule(t *testing.T) {
	svc, _, _, studentID, courseID := newFixture(3)
	ctx := context.Background()
	lectureID := uuid.New()

	score := 80
	p, err := svc.MarkComplete(ctx, studentID, courseID, lectureID, &score)
	require.NoError(t, err)
	entry, ok := p.Completion(lectureID)
	require.True(t, ok)
	require.Equal(t, 80, entry.Score)

	// Without a score the previous one survives.
	p, err = svc.MarkComplete(ctx, studentID, courseID, lectureID, nil)
	require.NoError(t, err)
	entry, ok = p.Completion(lectureID)
	require.True(t, ok)
	require.Equal(t, 80, entry.Score)

	// A supplied score replaces it.
	better := 90
	p, err = svc.MarkComplete(ctx, studentID, courseID, lectureID, &better)
	require.NoError(t, err)
	entry, ok = p.Completion(lectureID)
	require.True(t, ok)
	require.Equal(t, 90, entry.Score)
}

func TestMarkComplete_UnknownLecture(t *testing.T) {
	svc, repo, _, studentID, courseID := newFixture(3)
	ctx := context.Background()

	known := uuid.New()
	repo.knownLectures = map[uuid.UUID]struct{}{known: {}}

	_, err := svc.MarkComplete(ctx, studentID, courseID, uuid.New(), nil)
	require.ErrorIs(t, err, app_errors.ErrLectureNotFound)

	p, err := svc.MarkComplete(ctx, studentID, courseID, known, nil)
	require.NoError(t, err)
	require.Len(t, p.CompletedLectures, 1)
}

func TestMarkComplete_CreatesLedgerOnFirstUse(t *testing.T) {
	svc, repo, _, studentID, courseID := newFixture(4)
	ctx := context.Background()

	require.Empty(t, repo.ledgers)

	score := models.ReadingCompleteScore
	p, err := svc.MarkComplete(ctx, studentID, courseID, uuid.New(), &score)
	require.NoError(t, err)
	require.Equal(t, 4, p.TotalLectures)
	require.Len(t, p.CompletedLectures, 1)
	require.Equal(t, 100, p.CompletedLectures[0].Score)
}
