package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/utils"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error
	GetByCognitoID(ctx context.Context, cognitoID string) (*models.Tenant, error)
	Update(ctx context.Context, t *models.Tenant) error

	// AddFavorite links a property to the tenant's favorites.
	// Returns utils.ErrAlreadyFavorited if the link already exists.
	AddFavorite(ctx context.Context, cognitoID string, propertyID int64) error

	// RemoveFavorite is idempotent: removing a non-favorited property
	// is a no-op.
	RemoveFavorite(ctx context.Context, cognitoID string, propertyID int64) error

	ListFavoriteIDs(ctx context.Context, cognitoID string) ([]int64, error)
}

type tenantRepo struct {
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func baseSelectTenant() string {
	return `SELECT id, cognito_id, name, email, phone_number FROM tenants`
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(&t.ID, &t.CognitoID, &t.Name, &t.Email, &t.PhoneNumber)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO tenants (cognito_id, name, email, phone_number)
        VALUES ($1,$2,$3,$4)
        RETURNING id
    `, t.CognitoID, t.Name, t.Email, t.PhoneNumber).Scan(&t.ID)
	if IsUniqueViolation(err) {
		return utils.ErrAlreadyExists
	}
	return err
}

func (r *tenantRepo) GetByCognitoID(ctx context.Context, cognitoID string) (*models.Tenant, error) {
	return scanTenant(r.db.QueryRow(ctx, baseSelectTenant()+" WHERE cognito_id=$1", cognitoID))
}

func (r *tenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE tenants SET name=$1, email=$2, phone_number=$3 WHERE cognito_id=$4
    `, t.Name, t.Email, t.PhoneNumber, t.CognitoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrTenantNotFound
	}
	return nil
}

func (r *tenantRepo) AddFavorite(ctx context.Context, cognitoID string, propertyID int64) error {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO tenant_favorites (tenant_cognito_id, property_id)
        VALUES ($1,$2)
        ON CONFLICT DO NOTHING
    `, cognitoID, propertyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrAlreadyFavorited
	}
	return nil
}

func (r *tenantRepo) RemoveFavorite(ctx context.Context, cognitoID string, propertyID int64) error {
	_, err := r.db.Exec(ctx, `
        DELETE FROM tenant_favorites
        WHERE tenant_cognito_id=$1 AND property_id=$2
    `, cognitoID, propertyID)
	return err
}

func (r *tenantRepo) ListFavoriteIDs(ctx context.Context, cognitoID string) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
        SELECT property_id FROM tenant_favorites
        WHERE tenant_cognito_id=$1 ORDER BY property_id
    `, cognitoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
