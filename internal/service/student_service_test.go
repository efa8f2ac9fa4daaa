package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maktabhq/maktab-backend/internal/model"
)

// MockStudentStore is a mock implementation of StudentStore.
type MockStudentStore struct {
	mock.Mock
}

func (m *MockStudentStore) Create(ctx context.Context, s *model.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentStore) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentStore) List(ctx context.Context) ([]model.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockStudentStore) Update(ctx context.Context, s *model.Student) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentStore) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockCourseStore is a mock implementation of CourseStore.
type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) Create(ctx context.Context, c *model.Course) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourseStore) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseStore) List(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseStore) ListByStudent(ctx context.Context, studentID int64) ([]model.EnrolledCourse, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EnrolledCourse), args.Error(1)
}

func (m *MockCourseStore) UpsertEnrollment(ctx context.Context, courseID, studentID int64, status model.EnrollmentStatus) error {
	args := m.Called(ctx, courseID, studentID, status)
	return args.Error(0)
}

func (m *MockCourseStore) DeleteEnrollment(ctx context.Context, courseID, studentID int64) error {
	args := m.Called(ctx, courseID, studentID)
	return args.Error(0)
}

// MockPaymentStore is a mock implementation of PaymentStore.
type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) Create(ctx context.Context, p *model.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentStore) ListByStudent(ctx context.Context, studentID int64) ([]model.Payment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentStore) DeleteOwned(ctx context.Context, studentID, paymentID int64) (int64, error) {
	args := m.Called(ctx, studentID, paymentID)
	return args.Get(0).(int64), args.Error(1)
}

func newStudentServiceMocks() (*StudentService, *MockStudentStore, *MockCourseStore, *MockPaymentStore) {
	students := new(MockStudentStore)
	courses := new(MockCourseStore)
	payments := new(MockPaymentStore)
	return NewStudentService(students, courses, payments), students, courses, payments
}

func existingStudent(id int64) *model.Student {
	return &model.Student{ID: id, FIO: "Test Student", Status: model.StudentActive}
}

func TestStudentService_GetByID_NotFound(t *testing.T) {
	svc, students, _, _ := newStudentServiceMocks()
	students.On("GetByID", mock.Anything, int64(5)).Return(nil, pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentService_Update_NotFound(t *testing.T) {
	svc, students, _, _ := newStudentServiceMocks()
	students.On("Update", mock.Anything, mock.Anything).Return(int64(0), nil)

	err := svc.Update(context.Background(), existingStudent(5))

	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentService_Delete(t *testing.T) {
	t.Run("missing student", func(t *testing.T) {
		svc, students, _, _ := newStudentServiceMocks()
		students.On("Delete", mock.Anything, int64(5)).Return(int64(0), nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrStudentNotFound)
	})

	t.Run("existing student", func(t *testing.T) {
		svc, students, _, _ := newStudentServiceMocks()
		students.On("Delete", mock.Anything, int64(5)).Return(int64(1), nil)

		assert.NoError(t, svc.Delete(context.Background(), 5))
	})
}

func TestStudentService_Enroll(t *testing.T) {
	ctx := context.Background()

	t.Run("student not found", func(t *testing.T) {
		svc, students, _, _ := newStudentServiceMocks()
		students.On("GetByID", ctx, int64(1)).Return(nil, pgx.ErrNoRows)

		err := svc.Enroll(ctx, 1, 2, model.EnrollmentEnrolled)

		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("course not found", func(t *testing.T) {
		svc, students, courses, _ := newStudentServiceMocks()
		students.On("GetByID", ctx, int64(1)).Return(existingStudent(1), nil)
		courses.On("GetByID", ctx, int64(2)).Return(nil, pgx.ErrNoRows)

		err := svc.Enroll(ctx, 1, 2, model.EnrollmentEnrolled)

		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("upserts the pivot row", func(t *testing.T) {
		svc, students, courses, _ := newStudentServiceMocks()
		students.On("GetByID", ctx, int64(1)).Return(existingStudent(1), nil)
		courses.On("GetByID", ctx, int64(2)).Return(&model.Course{ID: 2, Name: "Math"}, nil)
		courses.On("UpsertEnrollment", ctx, int64(2), int64(1), model.EnrollmentCompleted).Return(nil)

		err := svc.Enroll(ctx, 1, 2, model.EnrollmentCompleted)

		assert.NoError(t, err)
		courses.AssertExpectations(t)
	})
}

func TestStudentService_Unenroll_Idempotent(t *testing.T) {
	ctx := context.Background()

	svc, students, courses, _ := newStudentServiceMocks()
	students.On("GetByID", ctx, int64(1)).Return(existingStudent(1), nil)
	// The store delete succeeds whether or not the pivot row existed.
	courses.On("DeleteEnrollment", ctx, int64(2), int64(1)).Return(nil)

	assert.NoError(t, svc.Unenroll(ctx, 1, 2))
	assert.NoError(t, svc.Unenroll(ctx, 1, 2))
}

func TestStudentService_AddPayment(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("negative amount rejected before any lookup", func(t *testing.T) {
		svc, _, _, _ := newStudentServiceMocks()

		_, err := svc.AddPayment(ctx, 1, decimal.NewFromInt(-50), date)

		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("student not found", func(t *testing.T) {
		svc, students, _, _ := newStudentServiceMocks()
		students.On("GetByID", ctx, int64(1)).Return(nil, pgx.ErrNoRows)

		_, err := svc.AddPayment(ctx, 1, decimal.NewFromInt(100), date)

		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("records the payment", func(t *testing.T) {
		svc, students, _, payments := newStudentServiceMocks()
		students.On("GetByID", ctx, int64(1)).Return(existingStudent(1), nil)
		payments.On("Create", ctx, mock.MatchedBy(func(p *model.Payment) bool {
			return p.StudentID == 1 && p.Amount.Equal(decimal.NewFromInt(100)) && p.PaymentDate.Equal(date)
		})).Return(nil)

		payment, err := svc.AddPayment(ctx, 1, decimal.NewFromInt(100), date)

		require.NoError(t, err)
		assert.Equal(t, int64(1), payment.StudentID)
	})
}

func TestStudentService_DeletePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("payment owned by another student reads as not found", func(t *testing.T) {
		svc, students, _, payments := newStudentServiceMocks()
		students.On("GetByID", ctx, int64(1)).Return(existingStudent(1), nil)
		payments.On("DeleteOwned", ctx, int64(1), int64(33)).Return(int64(0), nil)

		err := svc.DeletePayment(ctx, 1, 33)

		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("deletes an owned payment", func(t *testing.T) {
		svc, students, _, payments := newStudentServiceMocks()
		students.On("GetByID", ctx, int64(1)).Return(existingStudent(1), nil)
		payments.On("DeleteOwned", ctx, int64(1), int64(33)).Return(int64(1), nil)

		assert.NoError(t, svc.DeletePayment(ctx, 1, 33))
	})
}

func TestStudentService_List_EmptyNotNil(t *testing.T) {
	svc, students, _, _ := newStudentServiceMocks()
	students.On("List", mock.Anything).Return(nil, nil)

	list, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
