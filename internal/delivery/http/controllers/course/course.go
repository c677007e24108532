package course

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/middleware"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseService interface {
	CreateCourse(ctx context.Context, course models.Course) (uuid.UUID, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context, limit, offset int) ([]models.CoursePreview, int, error)
	SearchCourses(ctx context.Context, query string, limit int) ([]models.CoursePreview, error)
}

type LectureService interface {
	LecturesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error)
}

type CourseHandler struct {
	log            logger.Log
	service        CourseService
	lectureService LectureService
}

func NewCourseHandler(log logger.Log, s CourseService, ls LectureService) *CourseHandler {
	return &CourseHandler{
		log:            log,
		service:        s,
		lectureService: ls,
	}
}

type createCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var input createCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instructorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := h.service.CreateCourse(c.Request.Context(), models.Course{
		Title:        input.Title,
		Description:  input.Description,
		InstructorID: instructorID,
	})
	if err != nil {
		h.log.ErrorErr("error creating course", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *CourseHandler) CourseByID(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	course, err := h.service.CourseByID(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error retrieving course", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = v
	}

	offset := 0
	if s := c.Query("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		offset = v
	}

	previews, total, err := h.service.ListCourses(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.ErrorErr("error listing courses", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": previews, "total": total})
}

func (h *CourseHandler) SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := 10
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = v
	}

	previews, err := h.service.SearchCourses(c.Request.Context(), query, limit)
	if err != nil {
		h.log.ErrorErr("error searching courses", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": previews})
}

func (h *CourseHandler) CourseLectures(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	lectures, err := h.lectureService.LecturesByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.log.ErrorErr("error listing course lectures", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lectures": lectures})
}
