package service

import (
	"context"

	"github.com/maktabhq/maktab-backend/internal/model"
)

// CourseService handles the course catalog.
type CourseService struct {
	courses CourseStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// Create inserts a new course.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	return s.courses.Create(ctx, course)
}

// List retrieves all courses.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}
