package enrollment

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

type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, *models.Progress, error)
	Unenroll(ctx context.Context, enrollmentID, requesterID uuid.UUID) error
	EnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error)
	EnrollmentsByCourse(ctx context.Context, courseID, instructorID uuid.UUID) ([]models.Enrollment, error)
	CheckEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, bool, error)
}

type EnrollmentHandler struct {
	log     logger.Log
	service EnrollmentService
}

func NewEnrollmentHandler(log logger.Log, s EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:     log,
		service: s,
	}
}

type enrollInput struct {
	CourseID uuid.UUID `json:"courseId" binding:"required"`
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	studentID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input enrollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required"})
		return
	}

	e, p, err := h.service.Enroll(c.Request.Context(), studentID, input.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrAlreadyEnrolled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("error enrolling student", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"enrollment": e, "progress": p})
}

func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	enrollmentID, err := uuid.Parse(c.Param("enrollment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enrollment_id"})
		return
	}

	if err := h.service.Unenroll(c.Request.Context(), enrollmentID, userID); err != nil {
		switch {
		case errors.Is(err, app_errors.ErrEnrollmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("error removing enrollment", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "enrollment removed"})
}

// ByStudent is restricted to the student themselves or an instructor.
func (h *EnrollmentHandler) ByStudent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	studentID, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student_id"})
		return
	}

	if studentID != userID && !middleware.IsInstructor(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": app_errors.ErrForbidden.Error()})
		return
	}

	enrollments, err := h.service.EnrollmentsByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.log.ErrorErr("error listing student enrollments", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) ByCourse(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	enrollments, err := h.service.EnrollmentsByCourse(c.Request.Context(), courseID, userID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("error listing course enrollments", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) Check(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	e, found, err := h.service.CheckEnrollment(c.Request.Context(), userID, courseID)
	if err != nil {
		h.log.ErrorErr("error checking enrollment", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if !found {
		c.JSON(http.StatusOK, gin.H{"enrolled": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrolled": true, "enrollment": e})
}
