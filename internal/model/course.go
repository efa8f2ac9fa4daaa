package model

import "time"

// EnrollmentStatus represents a student's progress in a course.
// It lives on the enrollment pivot row, scoped per (student, course) pair.
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Course represents a course offering.
type Course struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EnrolledCourse is a course joined with the student's enrollment status.
type EnrolledCourse struct {
	Course
	EnrollmentStatus EnrollmentStatus `json:"enrollment_status"`
}

// CourseRequest is the payload for creating a course.
type CourseRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}
