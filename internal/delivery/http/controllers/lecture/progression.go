package lecture

import (
	"context"
	"errors"
	"net/http"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/middleware"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/internal/service/access"
	"github.com/Sahil8130/E-Learning/internal/service/quiz"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccessService interface {
	CheckAccess(ctx context.Context, userID uuid.UUID, isInstructor bool, lectureID uuid.UUID) (access.Decision, error)
}

type QuizService interface {
	Submit(ctx context.Context, lectureID, studentID uuid.UUID, answers []*int) (*quiz.Result, error)
}

type ProgressService interface {
	MarkComplete(ctx context.Context, studentID, courseID, lectureID uuid.UUID, score *int) (*models.Progress, error)
}

type ProgressionHandler struct {
	log      logger.Log
	access   AccessService
	quiz     QuizService
	progress ProgressService
	lectures LectureService
}

func NewProgressionHandler(log logger.Log, a AccessService, q QuizService, p ProgressService, l LectureService) *ProgressionHandler {
	return &ProgressionHandler{
		log:      log,
		access:   a,
		quiz:     q,
		progress: p,
		lectures: l,
	}
}

func (h *ProgressionHandler) CheckAccess(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	lectureID, err := uuid.Parse(c.Param("lecture_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lecture_id"})
		return
	}

	decision, err := h.access.CheckAccess(c.Request.Context(), userID, middleware.IsInstructor(c), lectureID)
	if err != nil {
		if errors.Is(err, app_errors.ErrLectureNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error checking lecture access", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, decision)
}

type submitQuizInput struct {
	Answers []*int `json:"answers"`
}

func (h *ProgressionHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	lectureID, err := uuid.Parse(c.Param("lecture_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lecture_id"})
		return
	}

	var input submitQuizInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Answers == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answers array is required"})
		return
	}

	result, err := h.quiz.Submit(c.Request.Context(), lectureID, userID, input.Answers)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrNotQuiz):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrNotEnrolled):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrAnswersMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("error grading quiz submission", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkComplete records a reading lecture as finished for the caller. Quizzes
// are completed through SubmitQuiz only.
func (h *ProgressionHandler) MarkComplete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	lectureID, err := uuid.Parse(c.Param("lecture_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lecture_id"})
		return
	}

	l, err := h.lectures.LectureByID(c.Request.Context(), lectureID)
	if err != nil {
		if errors.Is(err, app_errors.ErrLectureNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error retrieving lecture", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !l.IsReading() {
		c.JSON(http.StatusBadRequest, gin.H{"error": app_errors.ErrNotReading.Error()})
		return
	}

	score := models.ReadingCompleteScore
	p, err := h.progress.MarkComplete(c.Request.Context(), userID, l.CourseID, lectureID, &score)
	if err != nil {
		if errors.Is(err, app_errors.ErrNotEnrolled) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error marking lecture complete", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, p)
}
