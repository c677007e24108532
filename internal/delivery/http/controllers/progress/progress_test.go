package progress

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/middleware"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubProgressService struct {
	err error
}

func (s *stubProgressService) GetOrCreate(context.Context, uuid.UUID, uuid.UUID) (*models.Progress, error) {
	return nil, s.err
}

func (s *stubProgressService) MarkComplete(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, *int) (*models.Progress, error) {
	return nil, s.err
}

func newTestContext(t *testing.T, userID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ClientIDCtx, userID)
	c.Set(middleware.ClientRolesCtx, []string{models.StudentRole})
	return c, w
}

func TestGet_UnexpectedErrorHidesDetail(t *testing.T) {
	h := NewProgressHandler(logger.NewDiscard(), &stubProgressService{
		err: errors.New("pq: connection reset by peer"),
	})

	userID := uuid.New()
	c, w := newTestContext(t, userID)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{
		{Key: "user_id", Value: userID.String()},
		{Key: "course_id", Value: uuid.New().String()},
	}

	h.Get(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	require.NotContains(t, w.Body.String(), "connection reset")
}

func TestRecordCompletion_UnexpectedErrorHidesDetail(t *testing.T) {
	h := NewProgressHandler(logger.NewDiscard(), &stubProgressService{
		err: errors.New("dial tcp 10.0.0.3:5432: i/o timeout"),
	})

	c, w := newTestContext(t, uuid.New())
	body := `{"courseId":"` + uuid.NewString() + `","lectureId":"` + uuid.NewString() + `"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RecordCompletion(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRecordCompletion_SentinelsKeepTheirMessages(t *testing.T) {
	h := NewProgressHandler(logger.NewDiscard(), &stubProgressService{
		err: app_errors.ErrNotEnrolled,
	})

	c, w := newTestContext(t, uuid.New())
	body := `{"courseId":"` + uuid.NewString() + `","lectureId":"` + uuid.NewString() + `"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RecordCompletion(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), app_errors.ErrNotEnrolled.Error())
}
