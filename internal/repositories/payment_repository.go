package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/rentstead/rentals-service/internal/models"
)

type PaymentRepository interface {
	ListByLeaseID(ctx context.Context, leaseID int64) ([]*models.Payment, error)
	Create(ctx context.Context, q Querier, p *models.Payment) error

	// LatestDueDate returns the most recent due date recorded for the
	// lease, or nil when the lease has no payments yet.
	LatestDueDate(ctx context.Context, leaseID int64) (*time.Time, error)

	// MarkOverdue flips unpaid payments whose due date has passed to the
	// overdue status and returns how many rows changed.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func baseSelectPayment() string {
	return `
        SELECT id, amount_due, amount_paid, due_date, payment_date, payment_status, lease_id
        FROM payments
    `
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	var status string
	err := row.Scan(&p.ID, &p.AmountDue, &p.AmountPaid, &p.DueDate, &p.PaymentDate, &status, &p.LeaseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.PaymentStatus = models.PaymentStatus(status)
	return &p, nil
}

func (r *paymentRepo) ListByLeaseID(ctx context.Context, leaseID int64) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, baseSelectPayment()+" WHERE lease_id=$1 ORDER BY due_date", leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) Create(ctx context.Context, q Querier, p *models.Payment) error {
	return q.QueryRow(ctx, `
        INSERT INTO payments (amount_due, amount_paid, due_date, payment_date, payment_status, lease_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`,
		p.AmountDue, p.AmountPaid, p.DueDate, p.PaymentDate, string(p.PaymentStatus), p.LeaseID,
	).Scan(&p.ID)
}

func (r *paymentRepo) LatestDueDate(ctx context.Context, leaseID int64) (*time.Time, error) {
	var due *time.Time
	err := r.db.QueryRow(ctx, `SELECT MAX(due_date) FROM payments WHERE lease_id=$1`, leaseID).Scan(&due)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return due, nil
}

func (r *paymentRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE payments
        SET payment_status=$1
        WHERE payment_status=$2 AND due_date < $3`,
		string(models.PaymentOverdue), string(models.PaymentPending), asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
