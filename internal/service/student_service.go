package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/shopspring/decimal"
)

// StudentStore is the student persistence surface.
// *repository.StudentRepository satisfies it.
type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Update(ctx context.Context, s *model.Student) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CourseStore is the course and enrollment persistence surface.
// *repository.CourseRepository satisfies it.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.EnrolledCourse, error)
	UpsertEnrollment(ctx context.Context, courseID, studentID int64, status model.EnrollmentStatus) error
	DeleteEnrollment(ctx context.Context, courseID, studentID int64) error
}

// PaymentStore is the payment persistence surface.
// *repository.PaymentRepository satisfies it.
type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	ListByStudent(ctx context.Context, studentID int64) ([]model.Payment, error)
	DeleteOwned(ctx context.Context, studentID, paymentID int64) (int64, error)
}

// StudentService handles the student registry: CRUD, course enrollment, and
// payment history.
type StudentService struct {
	students StudentStore
	courses  CourseStore
	payments PaymentStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore, courses CourseStore, payments PaymentStore) *StudentService {
	return &StudentService{students: students, courses: courses, payments: payments}
}

// Create inserts a new student.
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	return s.students.Create(ctx, student)
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("lookup student: %w", err)
	}
	return student, nil
}

// List retrieves all students.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// Update fully replaces a student's fields.
func (s *StudentService) Update(ctx context.Context, student *model.Student) error {
	affected, err := s.students.Update(ctx, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if affected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// Delete removes a student. Payments cascade; enrollment pivot rows are
// detached; courses themselves are untouched.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	affected, err := s.students.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// ─── Enrollment ─────────────────────────────────────────────────────────────

// ListCourses retrieves a student's enrolled courses with pivot status.
func (s *StudentService) ListCourses(ctx context.Context, studentID int64) ([]model.EnrolledCourse, error) {
	if _, err := s.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	courses, err := s.courses.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrolled courses: %w", err)
	}
	if courses == nil {
		courses = []model.EnrolledCourse{}
	}
	return courses, nil
}

// Enroll enrolls a student in a course with the given pivot status.
// Re-enrolling an existing pair overwrites the status; there is never more
// than one pivot row per (student, course).
func (s *StudentService) Enroll(ctx context.Context, studentID, courseID int64, status model.EnrollmentStatus) error {
	if _, err := s.GetByID(ctx, studentID); err != nil {
		return err
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("lookup course: %w", err)
	}

	return s.courses.UpsertEnrollment(ctx, courseID, studentID, status)
}

// Unenroll removes a student's enrollment in a course. Removing an absent
// enrollment succeeds as a no-op.
func (s *StudentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if _, err := s.GetByID(ctx, studentID); err != nil {
		return err
	}
	return s.courses.DeleteEnrollment(ctx, courseID, studentID)
}

// ─── Payments ───────────────────────────────────────────────────────────────

// ListPayments retrieves a student's payment history.
func (s *StudentService) ListPayments(ctx context.Context, studentID int64) ([]model.Payment, error) {
	if _, err := s.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return payments, nil
}

// AddPayment records a payment for a student. Negative amounts are rejected.
func (s *StudentService) AddPayment(ctx context.Context, studentID int64, amount decimal.Decimal, date time.Time) (*model.Payment, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	if _, err := s.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	payment := &model.Payment{
		StudentID:   studentID,
		Amount:      amount,
		PaymentDate: date,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

// DeletePayment removes a payment that belongs to the student. A payment
// owned by another student reads as not found.
func (s *StudentService) DeletePayment(ctx context.Context, studentID, paymentID int64) error {
	if _, err := s.GetByID(ctx, studentID); err != nil {
		return err
	}

	affected, err := s.payments.DeleteOwned(ctx, studentID, paymentID)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
