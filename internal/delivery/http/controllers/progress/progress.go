package progress

import (
	"context"
	"errors"
	"net/http"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/middleware"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressService interface {
	GetOrCreate(ctx context.Context, studentID, courseID uuid.UUID) (*models.Progress, error)
	MarkComplete(ctx context.Context, studentID, courseID, lectureID uuid.UUID, score *int) (*models.Progress, error)
}

type ProgressHandler struct {
	log     logger.Log
	service ProgressService
}

func NewProgressHandler(log logger.Log, s ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:     log,
		service: s,
	}
}

// Get returns the caller's ledger for a course, creating an empty one on
// first read. Instructors may read any student's ledger.
func (h *ProgressHandler) Get(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	studentID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	if studentID != callerID && !middleware.IsInstructor(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": app_errors.ErrForbidden.Error()})
		return
	}

	p, err := h.service.GetOrCreate(c.Request.Context(), studentID, courseID)
	if err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error loading progress", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, p)
}

type completionInput struct {
	CourseID  uuid.UUID `json:"courseId" binding:"required"`
	LectureID uuid.UUID `json:"lectureId" binding:"required"`
	Score     *int      `json:"score"`
}

// RecordCompletion writes a completion entry for the caller. A repeated call
// for the same lecture refreshes the timestamp without duplicating the entry.
func (h *ProgressHandler) RecordCompletion(c *gin.Context) {
	studentID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input completionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId and lectureId are required"})
		return
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be between 0 and 100"})
		return
	}

	p, err := h.service.MarkComplete(c.Request.Context(), studentID, input.CourseID, input.LectureID, input.Score)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrNotEnrolled):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrCourseNotFound), errors.Is(err, app_errors.ErrLectureNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("error recording completion", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}
