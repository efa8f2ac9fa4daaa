package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maktabhq/maktab-backend/internal/config"
	"github.com/maktabhq/maktab-backend/internal/handler"
	"github.com/maktabhq/maktab-backend/internal/middleware"
	"github.com/maktabhq/maktab-backend/internal/response"
	"github.com/maktabhq/maktab-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth           *handler.AuthHandler
	RolePermission *handler.RolePermissionHandler
	Student        *handler.StudentHandler
	Course         *handler.CourseHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response carries one.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// ─── 1. Public Auth Routes ─────────────────────────────────────────
	{
		api.POST("/register", handlers.Auth.Register)
		api.POST("/login", handlers.Auth.Login)
	}

	// ─── 2. Authenticated Routes (Bearer Token) ────────────────────────
	authAPI := api.Group("")
	authAPI.Use(middleware.RequireAuth(authService))
	{
		authAPI.POST("/logout", handlers.Auth.Logout)

		// Role management
		authAPI.POST("/roles", handlers.RolePermission.CreateRole)
		authAPI.GET("/roles", handlers.RolePermission.GetRoles)
		authAPI.POST("/roles/assign-permission", handlers.RolePermission.AssignPermissionToRole)

		// Permission management
		authAPI.POST("/permissions", handlers.RolePermission.CreatePermission)
		authAPI.GET("/permissions", handlers.RolePermission.GetPermissions)

		// User bindings
		authAPI.POST("/users/assign-role", handlers.RolePermission.AssignRoleToUser)
		authAPI.GET("/users/:user_id/roles", handlers.RolePermission.GetUserRoles)
		authAPI.POST("/users/assign-permission", handlers.RolePermission.AssignPermissionToUser)
		authAPI.GET("/users/:user_id/permissions", handlers.RolePermission.GetUserPermissions)

		// Student registry
		authAPI.GET("/students", handlers.Student.GetStudents)
		authAPI.POST("/students", handlers.Student.CreateStudent)
		authAPI.GET("/students/:student_id", handlers.Student.GetStudent)
		authAPI.PUT("/students/:student_id", handlers.Student.UpdateStudent)
		authAPI.DELETE("/students/:student_id", handlers.Student.DeleteStudent)

		// Enrollment management
		authAPI.GET("/students/:student_id/courses", handlers.Student.GetStudentCourses)
		authAPI.POST("/students/:student_id/courses", handlers.Student.EnrollStudentInCourse)
		authAPI.DELETE("/students/:student_id/courses/:course_id", handlers.Student.RemoveCourseFromStudent)

		// Payment management
		authAPI.GET("/students/:student_id/payments", handlers.Student.GetStudentPayments)
		authAPI.POST("/students/:student_id/payments", handlers.Student.AddPaymentForStudent)
		authAPI.DELETE("/students/:student_id/payments/:payment_id", handlers.Student.DeletePaymentForStudent)

		// Course catalog
		authAPI.GET("/courses", handlers.Course.GetCourses)
		authAPI.POST("/courses", handlers.Course.CreateCourse)
	}

	return router
}
