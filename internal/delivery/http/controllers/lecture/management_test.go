package lecture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/middleware"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/internal/service/lecture"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubLectureService struct {
	created *models.Lecture
}

func (s *stubLectureService) CreateLecture(_ context.Context, l models.Lecture, _ uuid.UUID, _ *lecture.UploadedFile) (*models.Lecture, error) {
	s.created = &l
	return &l, nil
}

func (s *stubLectureService) LectureByID(context.Context, uuid.UUID) (*models.Lecture, error) {
	return nil, nil
}

func postLectureForm(t *testing.T, svc *stubLectureService, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewLectureHandler(logger.NewDiscard(), svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ClientIDCtx, uuid.New())
	c.Set(middleware.ClientRolesCtx, []string{models.InstructorRole})
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	h.CreateLecture(c)
	return w
}

func TestCreateLecture_RejectsNonIntegerOrder(t *testing.T) {
	svc := &stubLectureService{}
	w := postLectureForm(t, svc, url.Values{
		"course":  {uuid.NewString()},
		"title":   {"Intro"},
		"type":    {models.LectureTypeReading},
		"content": {"Welcome"},
		"order":   {"first"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "order must be an integer")
	require.Nil(t, svc.created)
}

func TestCreateLecture_OmittedOrderLeftToService(t *testing.T) {
	svc := &stubLectureService{}
	w := postLectureForm(t, svc, url.Values{
		"course":  {uuid.NewString()},
		"title":   {"Intro"},
		"type":    {models.LectureTypeReading},
		"content": {"Welcome"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	require.Equal(t, 0, svc.created.Order)
}
