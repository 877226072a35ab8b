package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/rentstead/rentals-service/internal/constants"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/utils"
)

type ApplicationRepository interface {
	// CreateWithLease inserts a lease carrying the property's current
	// rent/deposit terms and the application referencing it, as one
	// atomic unit. Either both rows exist and are cross-linked, or
	// neither does.
	CreateWithLease(ctx context.Context, app *models.Application) (*models.Lease, error)

	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByTenant(ctx context.Context, tenantCognitoID string) ([]*models.Application, error)
	ListByManager(ctx context.Context, managerCognitoID string) ([]*models.Application, error)

	// Approve transitions a Pending application to Approved, confirms
	// the lease created at application time and links the tenant into
	// the property's resident set, all under one transaction with the
	// application row locked. A non-Pending application yields
	// utils.ErrAlreadyDecided and no mutation.
	Approve(ctx context.Context, id int64) (*models.Application, error)

	// Deny transitions Pending → Denied with no lease side effects.
	Deny(ctx context.Context, id int64) (*models.Application, error)
}

type applicationRepo struct {
	db DB
}

func NewApplicationRepository(db DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func baseSelectApplication() string {
	return `
        SELECT
            id, application_date, status, property_id, tenant_cognito_id,
            name, email, phone_number, message, lease_id
        FROM applications
    `
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var (
		a      models.Application
		status string
	)
	err := row.Scan(
		&a.ID,
		&a.ApplicationDate,
		&status,
		&a.PropertyID,
		&a.TenantCognitoID,
		&a.Name,
		&a.Email,
		&a.PhoneNumber,
		&a.Message,
		&a.LeaseID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	a.Status = models.ApplicationStatus(status)
	return &a, nil
}

func (r *applicationRepo) CreateWithLease(ctx context.Context, app *models.Application) (*models.Lease, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	// Rent and deposit are locked to the property's terms at the
	// moment of application.
	var rent, deposit float64
	err = tx.QueryRow(ctx, `
        SELECT price_per_month, security_deposit FROM properties WHERE id=$1
    `, app.PropertyID).Scan(&rent, &deposit)
	if err != nil {
		if err == pgx.ErrNoRows {
			err = utils.ErrPropertyNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	lease := &models.Lease{
		StartDate:       now,
		EndDate:         now.AddDate(constants.LeaseTermYears, 0, 0),
		Rent:            rent,
		Deposit:         deposit,
		PropertyID:      app.PropertyID,
		TenantCognitoID: app.TenantCognitoID,
	}
	err = tx.QueryRow(ctx, `
        INSERT INTO leases (start_date, end_date, rent, deposit, property_id, tenant_cognito_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id
    `, lease.StartDate, lease.EndDate, lease.Rent, lease.Deposit, lease.PropertyID, lease.TenantCognitoID,
	).Scan(&lease.ID)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO applications (
            application_date, status, property_id, tenant_cognito_id,
            name, email, phone_number, message, lease_id
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id
    `,
		app.ApplicationDate, string(models.ApplicationPending), app.PropertyID, app.TenantCognitoID,
		app.Name, app.Email, app.PhoneNumber, app.Message, lease.ID,
	).Scan(&app.ID)
	if err != nil {
		return nil, err
	}

	app.Status = models.ApplicationPending
	app.LeaseID = &lease.ID
	return lease, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", id))
}

func (r *applicationRepo) ListByTenant(ctx context.Context, tenantCognitoID string) ([]*models.Application, error) {
	return r.list(ctx, baseSelectApplication()+" WHERE tenant_cognito_id=$1 ORDER BY application_date DESC", tenantCognitoID)
}

func (r *applicationRepo) ListByManager(ctx context.Context, managerCognitoID string) ([]*models.Application, error) {
	return r.list(ctx, `
        SELECT
            a.id, a.application_date, a.status, a.property_id, a.tenant_cognito_id,
            a.name, a.email, a.phone_number, a.message, a.lease_id
        FROM applications a
        JOIN properties p ON p.id = a.property_id
        WHERE p.manager_cognito_id=$1
        ORDER BY a.application_date DESC`, managerCognitoID)
}

func (r *applicationRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *applicationRepo) Approve(ctx context.Context, id int64) (*models.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	app, err := r.lockPending(ctx, tx, id)
	if err != nil {
		return app, err
	}

	// Reuse the lease created at application time so the rent/deposit
	// terms stay locked to the moment of application. Older rows may
	// predate the pre-created lease, in which case one is derived from
	// the property's current terms inside the same transaction.
	leaseID := app.LeaseID
	if leaseID == nil {
		var rent, deposit float64
		err = tx.QueryRow(ctx, `
            SELECT price_per_month, security_deposit FROM properties WHERE id=$1
        `, app.PropertyID).Scan(&rent, &deposit)
		if err != nil {
			if err == pgx.ErrNoRows {
				err = utils.ErrMissingPriceFields
			}
			return nil, err
		}

		now := time.Now().UTC()
		var newID int64
		err = tx.QueryRow(ctx, `
            INSERT INTO leases (start_date, end_date, rent, deposit, property_id, tenant_cognito_id)
            VALUES ($1,$2,$3,$4,$5,$6)
            RETURNING id
        `, now, now.AddDate(constants.LeaseTermYears, 0, 0), rent, deposit,
			app.PropertyID, app.TenantCognitoID,
		).Scan(&newID)
		if err != nil {
			return nil, err
		}
		leaseID = &newID
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO property_tenants (property_id, tenant_cognito_id)
        VALUES ($1,$2)
        ON CONFLICT DO NOTHING
    `, app.PropertyID, app.TenantCognitoID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE applications SET status=$1, lease_id=$2 WHERE id=$3
    `, string(models.ApplicationApproved), *leaseID, id)
	if err != nil {
		return nil, err
	}

	app.Status = models.ApplicationApproved
	app.LeaseID = leaseID
	return app, nil
}

func (r *applicationRepo) Deny(ctx context.Context, id int64) (*models.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	app, err := r.lockPending(ctx, tx, id)
	if err != nil {
		return app, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE applications SET status=$1 WHERE id=$2
    `, string(models.ApplicationDenied), id)
	if err != nil {
		return nil, err
	}

	app.Status = models.ApplicationDenied
	return app, nil
}

// lockPending fetches the application FOR UPDATE and verifies it is
// still Pending. Concurrent decisions serialize on the row lock; the
// loser observes the new status and gets ErrAlreadyDecided instead of
// double-creating lease state.
func (r *applicationRepo) lockPending(ctx context.Context, tx pgx.Tx, id int64) (*models.Application, error) {
	app, err := scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1 FOR UPDATE", id))
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, utils.ErrApplicationNotFound
	}
	if app.Status != models.ApplicationPending {
		return app, utils.ErrAlreadyDecided
	}
	return app, nil
}
