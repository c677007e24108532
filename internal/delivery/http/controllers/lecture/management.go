package lecture

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Sahil8130/E-Learning/internal/app_errors"
	"github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/middleware"
	"github.com/Sahil8130/E-Learning/internal/models"
	"github.com/Sahil8130/E-Learning/internal/service/lecture"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LectureService interface {
	CreateLecture(ctx context.Context, l models.Lecture, instructorID uuid.UUID, file *lecture.UploadedFile) (*models.Lecture, error)
	LectureByID(ctx context.Context, id uuid.UUID) (*models.Lecture, error)
}

type LectureHandler struct {
	log     logger.Log
	service LectureService
}

func NewLectureHandler(log logger.Log, s LectureService) *LectureHandler {
	return &LectureHandler{
		log:     log,
		service: s,
	}
}

// CreateLecture accepts a multipart form so an attachment can ride along with
// the lecture fields. Quiz questions arrive as a JSON-encoded form value.
func (h *LectureHandler) CreateLecture(c *gin.Context) {
	instructorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	courseID, err := uuid.Parse(c.PostForm("course"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid course id is required"})
		return
	}

	title := c.PostForm("title")
	lectureType := c.PostForm("type")
	content := c.PostForm("content")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if lectureType != models.LectureTypeReading && lectureType != models.LectureTypeQuiz {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be reading or quiz"})
		return
	}
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	// order is optional. Zero means the service assigns the next free slot.
	order := 0
	if s := c.PostForm("order"); s != "" {
		var err error
		order, err = strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order must be an integer"})
			return
		}
	}

	var questions []models.Question
	if lectureType == models.LectureTypeQuiz {
		raw := c.PostForm("questions")
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quiz lectures must have questions"})
			return
		}
		if err := json.Unmarshal([]byte(raw), &questions); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid questions format"})
			return
		}
	}

	var upload *lecture.UploadedFile
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			h.log.ErrorErr("error opening uploaded file", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		defer f.Close()
		upload = &lecture.UploadedFile{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      f,
		}
	}

	created, err := h.service.CreateLecture(c.Request.Context(), models.Lecture{
		CourseID:  courseID,
		Title:     title,
		Type:      lectureType,
		Order:     order,
		Content:   content,
		Questions: questions,
	}, instructorID, upload)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrNotCourseInstructor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrInvalidQuestions):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("error creating lecture", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *LectureHandler) LectureByID(c *gin.Context) {
	lectureID, err := uuid.Parse(c.Param("lecture_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lecture_id"})
		return
	}

	l, err := h.service.LectureByID(c.Request.Context(), lectureID)
	if err != nil {
		if errors.Is(err, app_errors.ErrLectureNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error retrieving lecture", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, l)
}
