package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maktabhq/maktab-backend/internal/model"
)

// CourseRepository handles course data access and the enrollment pivot table.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all courses in insertion order.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, created_at, updated_at
		 FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListByStudent retrieves all courses a student is enrolled in, joined with
// the pivot status.
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.EnrolledCourse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, c.description, c.created_at, c.updated_at, cs.status
		 FROM courses c
		 JOIN course_student cs ON cs.course_id = c.id
		 WHERE cs.student_id = $1
		 ORDER BY c.id`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.EnrolledCourse
	for rows.Next() {
		var c model.EnrolledCourse
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.EnrollmentStatus); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// UpsertEnrollment inserts the enrollment pivot row for (course, student), or
// overwrites its status if the pair is already enrolled. The composite
// primary key pins the one-row-per-pair invariant under concurrent requests.
func (r *CourseRepository) UpsertEnrollment(ctx context.Context, courseID, studentID int64, status model.EnrollmentStatus) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO course_student (course_id, student_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (course_id, student_id)
		 DO UPDATE SET status = EXCLUDED.status, updated_at = CURRENT_TIMESTAMP`,
		courseID, studentID, status,
	)
	return err
}

// DeleteEnrollment removes the pivot row for (course, student). Deleting an
// absent row is a no-op, which makes the operation idempotent.
func (r *CourseRepository) DeleteEnrollment(ctx context.Context, courseID, studentID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM course_student WHERE course_id = $1 AND student_id = $2`,
		courseID, studentID,
	)
	return err
}
