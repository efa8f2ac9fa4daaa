package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maktabhq/maktab-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (fio, birthdate, contact, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.FIO, s.Birthdate, s.Contact, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, fio, birthdate, contact, status, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.FIO, &s.Birthdate, &s.Contact, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves all students in insertion order.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, fio, birthdate, contact, status, created_at, updated_at
		 FROM students ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FIO, &s.Birthdate, &s.Contact, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Update fully replaces a student's fields. Returns the number of rows
// affected so the caller can distinguish a missing student.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET fio = $1, birthdate = $2, contact = $3, status = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		s.FIO, s.Birthdate, s.Contact, s.Status, s.ID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a student by ID. Payments cascade at the schema level;
// enrollment pivot rows are detached the same way.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
