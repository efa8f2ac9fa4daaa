package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/maktabhq/maktab-backend/internal/response"
	"github.com/maktabhq/maktab-backend/internal/service"
)

// CourseHandler handles course catalog endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourse godoc
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course := &model.Course{Name: req.Name, Description: req.Description}
	if err := h.courseService.Create(c.Request.Context(), course); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Course created", "course": course})
}

// GetCourses godoc
// GET /api/v1/courses
func (h *CourseHandler) GetCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, courses)
}
