package http

import (
	"time"

	"github.com/Sahil8130/E-Learning/internal/delivery/http/controllers"
	authcontroller "github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/auth"
	coursecontroller "github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/course"
	enrollmentcontroller "github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/enrollment"
	lecturecontroller "github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/lecture"
	"github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/middleware"
	progresscontroller "github.com/Sahil8130/E-Learning/internal/delivery/http/controllers/progress"
	"github.com/Sahil8130/E-Learning/internal/models"
	service "github.com/Sahil8130/E-Learning/internal/service"
	"github.com/Sahil8130/E-Learning/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := authcontroller.NewAuthHandler(l, u.AuthService)
	courseController := coursecontroller.NewCourseHandler(l, u.CourseService, u.LectureService)
	lectureController := lecturecontroller.NewLectureHandler(l, u.LectureService)
	progressionController := lecturecontroller.NewProgressionHandler(l, u.AccessService, u.QuizService, u.ProgressService, u.LectureService)
	enrollmentController := enrollmentcontroller.NewEnrollmentHandler(l, u.EnrollmentService)
	progressController := progresscontroller.NewProgressHandler(l, u.ProgressService)

	authProvider := middleware.NewAuthMiddlewareProvider(l, u.AuthService)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authProvider.AuthMiddleware, authController.Me)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh", authController.Refresh)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/search", courseController.SearchCourses)
			courses.GET("/:course_id", courseController.CourseByID)
			courses.GET("/:course_id/lectures", courseController.CourseLectures)

			instructor := courses.Group("", authProvider.AuthMiddleware, middleware.RequireRoles(models.InstructorRole))
			{
				instructor.POST("", courseController.CreateCourse)
			}
		}

		lectures := v1.Group("/lectures", authProvider.AuthMiddleware)
		{
			lectures.GET("/:lecture_id", lectureController.LectureByID)
			lectures.GET("/:lecture_id/access", progressionController.CheckAccess)

			instructor := lectures.Group("", middleware.RequireRoles(models.InstructorRole))
			{
				instructor.POST("", lectureController.CreateLecture)
			}

			student := lectures.Group("", middleware.RequireRoles(models.StudentRole))
			{
				student.POST("/:lecture_id/submit-quiz", progressionController.SubmitQuiz)
				student.POST("/:lecture_id/mark-complete", progressionController.MarkComplete)
			}
		}

		enrollments := v1.Group("/enrollments", authProvider.AuthMiddleware)
		{
			enrollments.GET("/student/:student_id", enrollmentController.ByStudent)
			enrollments.GET("/check/:course_id", enrollmentController.Check)
			enrollments.DELETE("/:enrollment_id", enrollmentController.Unenroll)

			student := enrollments.Group("", middleware.RequireRoles(models.StudentRole))
			{
				student.POST("", enrollmentController.Enroll)
			}

			instructor := enrollments.Group("", middleware.RequireRoles(models.InstructorRole))
			{
				instructor.GET("/course/:course_id", enrollmentController.ByCourse)
			}
		}

		progress := v1.Group("/progress", authProvider.AuthMiddleware)
		{
			progress.GET("/:user_id/:course_id", progressController.Get)

			student := progress.Group("", middleware.RequireRoles(models.StudentRole))
			{
				student.POST("", progressController.RecordCompletion)
				student.POST("/complete-lecture", progressController.RecordCompletion)
			}
		}
	}
	return r
}
