package service

import (
	"github.com/Sahil8130/E-Learning/internal/service/access"
	"github.com/Sahil8130/E-Learning/internal/service/auth"
	"github.com/Sahil8130/E-Learning/internal/service/course"
	"github.com/Sahil8130/E-Learning/internal/service/enrollment"
	"github.com/Sahil8130/E-Learning/internal/service/lecture"
	"github.com/Sahil8130/E-Learning/internal/service/progress"
	"github.com/Sahil8130/E-Learning/internal/service/quiz"
)

type Collection struct {
	AuthService       *auth.AuthService
	CourseService     *course.Service
	LectureService    *lecture.Service
	EnrollmentService *enrollment.Service
	ProgressService   *progress.Service
	AccessService     *access.Service
	QuizService       *quiz.Service
}
