package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/rentstead/rentals-service/internal/models"
)

type LeaseRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Lease, error)
	ListAll(ctx context.Context) ([]*models.Lease, error)

	// LatestForPropertyAndTenant returns the most recent lease for the
	// pairing, or nil.
	LatestForPropertyAndTenant(ctx context.Context, propertyID int64, tenantCognitoID string) (*models.Lease, error)

	// ListActive returns leases whose term covers the given instant.
	ListActive(ctx context.Context, asOf time.Time) ([]*models.Lease, error)
}

type leaseRepo struct {
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

func baseSelectLease() string {
	return `
        SELECT id, start_date, end_date, rent, deposit, property_id, tenant_cognito_id
        FROM leases
    `
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	err := row.Scan(&l.ID, &l.StartDate, &l.EndDate, &l.Rent, &l.Deposit, &l.PropertyID, &l.TenantCognitoID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *leaseRepo) GetByID(ctx context.Context, id int64) (*models.Lease, error) {
	return scanLease(r.db.QueryRow(ctx, baseSelectLease()+" WHERE id=$1", id))
}

func (r *leaseRepo) ListAll(ctx context.Context) ([]*models.Lease, error) {
	return r.list(ctx, baseSelectLease()+" ORDER BY id")
}

func (r *leaseRepo) LatestForPropertyAndTenant(ctx context.Context, propertyID int64, tenantCognitoID string) (*models.Lease, error) {
	return scanLease(r.db.QueryRow(ctx, baseSelectLease()+`
        WHERE property_id=$1 AND tenant_cognito_id=$2
        ORDER BY start_date DESC
        LIMIT 1`, propertyID, tenantCognitoID))
}

func (r *leaseRepo) ListActive(ctx context.Context, asOf time.Time) ([]*models.Lease, error) {
	return r.list(ctx, baseSelectLease()+" WHERE start_date <= $1 AND end_date >= $1 ORDER BY id", asOf)
}

func (r *leaseRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
