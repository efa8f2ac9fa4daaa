package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maktabhq/maktab-backend/internal/model"
)

// PaymentRepository handles payment data access.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts a new payment for a student.
func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO payments (student_id, amount, payment_date)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		p.StudentID, p.Amount, p.PaymentDate,
	).Scan(&p.ID, &p.CreatedAt)
}

// ListByStudent retrieves all payments made by a student, oldest first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, amount, payment_date, created_at
		 FROM payments WHERE student_id = $1 ORDER BY id`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// DeleteOwned removes a payment only if it belongs to the given student.
// Returns the number of rows affected; zero means the payment does not exist
// or is owned by someone else.
func (r *PaymentRepository) DeleteOwned(ctx context.Context, studentID, paymentID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM payments WHERE id = $1 AND student_id = $2`,
		paymentID, studentID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
