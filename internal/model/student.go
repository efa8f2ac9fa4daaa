package model

import "time"

// StudentStatus represents a student's standing in the school.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentGraduated StudentStatus = "graduated"
	StudentSuspended StudentStatus = "suspended"
)

// Student represents an enrolled person tracked by the registry.
// FIO is the full name (surname, first name, patronymic).
type Student struct {
	ID        int64         `json:"id"`
	FIO       string        `json:"fio"`
	Birthdate time.Time     `json:"birthdate"`
	Contact   string        `json:"contact"`
	Status    StudentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// StudentRequest is the payload for creating or fully replacing a student.
// Update uses the same shape: all fields are required every time.
type StudentRequest struct {
	FIO       string        `json:"fio" binding:"required,min=1,max=255"`
	Birthdate string        `json:"birthdate" binding:"required,datetime=2006-01-02"`
	Contact   string        `json:"contact" binding:"required,min=1,max=255"`
	Status    StudentStatus `json:"status" binding:"required,oneof=active graduated suspended"`
}

// EnrollRequest is the payload for enrolling a student in a course.
type EnrollRequest struct {
	CourseID int64            `json:"course_id" binding:"required"`
	Status   EnrollmentStatus `json:"status" binding:"required,oneof=enrolled completed dropped"`
}
