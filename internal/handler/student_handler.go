package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/maktabhq/maktab-backend/internal/response"
	"github.com/maktabhq/maktab-backend/internal/service"
)

// dateLayout is the wire format for birthdate and payment_date fields.
const dateLayout = "2006-01-02"

// StudentHandler handles the student registry endpoints: CRUD, course
// enrollment, and payment history.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// CreateStudent godoc
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student := studentFromRequest(&req)
	if err := h.studentService.Create(c.Request.Context(), student); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Student created", "student": student})
}

// GetStudents godoc
// GET /api/v1/students
func (h *StudentHandler) GetStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, students)
}

// GetStudent godoc
// GET /api/v1/students/:student_id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), studentID)
	if err != nil {
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, student)
}

// UpdateStudent godoc
// PUT /api/v1/students/:student_id
// Full replace: every field is re-validated and overwritten.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student := studentFromRequest(&req)
	student.ID = studentID
	if err := h.studentService.Update(c.Request.Context(), student); err != nil {
		failStudentError(c, err)
		return
	}

	updated, err := h.studentService.GetByID(c.Request.Context(), studentID)
	if err != nil {
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Student updated", "student": updated})
}

// DeleteStudent godoc
// DELETE /api/v1/students/:student_id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), studentID); err != nil {
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Student deleted"})
}

// GetStudentCourses godoc
// GET /api/v1/students/:student_id/courses
func (h *StudentHandler) GetStudentCourses(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	courses, err := h.studentService.ListCourses(c.Request.Context(), studentID)
	if err != nil {
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, courses)
}

// EnrollStudentInCourse godoc
// POST /api/v1/students/:student_id/courses
// Re-enrolling an already-enrolled pair overwrites the pivot status.
func (h *StudentHandler) EnrollStudentInCourse(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.studentService.Enroll(c.Request.Context(), studentID, req.CourseID, req.Status); err != nil {
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Student enrolled in course"})
}

// RemoveCourseFromStudent godoc
// DELETE /api/v1/students/:student_id/courses/:course_id
func (h *StudentHandler) RemoveCourseFromStudent(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}

	if err := h.studentService.Unenroll(c.Request.Context(), studentID, courseID); err != nil {
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Course removed from student"})
}

// GetStudentPayments godoc
// GET /api/v1/students/:student_id/payments
func (h *StudentHandler) GetStudentPayments(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	payments, err := h.studentService.ListPayments(c.Request.Context(), studentID)
	if err != nil {
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}

// AddPaymentForStudent godoc
// POST /api/v1/students/:student_id/payments
func (h *StudentHandler) AddPaymentForStudent(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req model.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	// Layout is enforced by binding, so the parse cannot fail here.
	date, _ := time.Parse(dateLayout, req.PaymentDate)

	payment, err := h.studentService.AddPayment(c.Request.Context(), studentID, req.Amount, date)
	if err != nil {
		if errors.Is(err, service.ErrNegativeAmount) {
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation,
				map[string]string{"amount": err.Error()})
			return
		}
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Payment added for student", "payment": payment})
}

// DeletePaymentForStudent godoc
// DELETE /api/v1/students/:student_id/payments/:payment_id
func (h *StudentHandler) DeletePaymentForStudent(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	paymentID, ok := pathID(c, "payment_id")
	if !ok {
		return
	}

	if err := h.studentService.DeletePayment(c.Request.Context(), studentID, paymentID); err != nil {
		failStudentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Payment deleted for student"})
}

// studentFromRequest converts a validated request into a model. The binding
// layer guarantees the birthdate layout, so parsing cannot fail.
func studentFromRequest(req *model.StudentRequest) *model.Student {
	birthdate, _ := time.Parse(dateLayout, req.Birthdate)
	return &model.Student{
		FIO:       req.FIO,
		Birthdate: birthdate,
		Contact:   req.Contact,
		Status:    req.Status,
	}
}

// pathID parses a numeric path parameter, failing the request on bad input.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// failStudentError maps student-registry service errors onto HTTP responses.
func failStudentError(c *gin.Context, err error) {
	if service.IsNotFound(err) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
