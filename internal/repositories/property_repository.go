package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/rentstead/rentals-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	// CreateWithLocation inserts the location and the property in one
	// transaction. Geocoding and photo upload have already happened by
	// the time this runs.
	CreateWithLocation(ctx context.Context, loc *models.Location, p *models.Property) error

	GetByID(ctx context.Context, id int64) (*models.Property, error)
	ListByManagerID(ctx context.Context, managerCognitoID string) ([]*models.Property, error)
	ListResidencesByTenant(ctx context.Context, tenantCognitoID string) ([]*models.Property, error)

	Search(ctx context.Context, f PropertyFilters) ([]*models.Property, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) CreateWithLocation(ctx context.Context, loc *models.Location, p *models.Property) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
        INSERT INTO locations (address, city, state, country, postal_code, coordinates)
        VALUES ($1,$2,$3,$4,$5, ST_SetSRID(ST_MakePoint($6,$7), 4326))
        RETURNING id
    `,
		loc.Address, loc.City, loc.State, loc.Country, loc.PostalCode,
		loc.Coordinates.Longitude, loc.Coordinates.Latitude,
	).Scan(&loc.ID)
	if err != nil {
		return err
	}

	p.LocationID = loc.ID
	err = tx.QueryRow(ctx, `
        INSERT INTO properties (
            name, description, price_per_month, security_deposit, application_fee,
            photo_urls, amenities, highlights, is_pets_allowed, is_parking_included,
            beds, baths, square_feet, property_type,
            posted_date, average_rating, number_of_reviews,
            location_id, manager_cognito_id
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14, NOW(), 0, 0, $15,$16)
        RETURNING id, posted_date
    `,
		p.Name, p.Description, p.PricePerMonth, p.SecurityDeposit, p.ApplicationFee,
		p.PhotoURLs, amenitiesToStrings(p.Amenities), highlightsToStrings(p.Highlights),
		p.IsPetsAllowed, p.IsParkingIncluded,
		p.Beds, p.Baths, p.SquareFeet, string(p.PropertyType),
		p.LocationID, p.ManagerCognitoID,
	).Scan(&p.ID, &p.PostedDate)
	if err != nil {
		return err
	}

	p.Location = loc
	return nil
}

func (r *propertyRepo) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE p.id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) ListByManagerID(ctx context.Context, managerCognitoID string) ([]*models.Property, error) {
	return r.list(ctx, baseSelectProperty()+" WHERE p.manager_cognito_id=$1 ORDER BY p.posted_date", managerCognitoID)
}

func (r *propertyRepo) ListResidencesByTenant(ctx context.Context, tenantCognitoID string) ([]*models.Property, error) {
	return r.list(ctx, baseSelectProperty()+`
        WHERE EXISTS (
            SELECT 1 FROM property_tenants pt
            WHERE pt.property_id = p.id AND pt.tenant_cognito_id = $1
        )
        ORDER BY p.id`, tenantCognitoID)
}

func (r *propertyRepo) Search(ctx context.Context, f PropertyFilters) ([]*models.Property, error) {
	sql, args := buildSearchQuery(f)
	return r.list(ctx, sql, args...)
}

func (r *propertyRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var (
		p          models.Property
		loc        models.Location
		amenities  []string
		highlights []string
		propType   string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PricePerMonth,
		&p.SecurityDeposit,
		&p.ApplicationFee,
		&p.PhotoURLs,
		&amenities,
		&highlights,
		&p.IsPetsAllowed,
		&p.IsParkingIncluded,
		&p.Beds,
		&p.Baths,
		&p.SquareFeet,
		&propType,
		&p.PostedDate,
		&p.AverageRating,
		&p.NumberOfReviews,
		&p.LocationID,
		&p.ManagerCognitoID,
		&loc.ID,
		&loc.Address,
		&loc.City,
		&loc.State,
		&loc.Country,
		&loc.PostalCode,
		&loc.Coordinates.Longitude,
		&loc.Coordinates.Latitude,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.PropertyType = models.PropertyType(propType)
	p.Amenities = make([]models.Amenity, len(amenities))
	for i, a := range amenities {
		p.Amenities[i] = models.Amenity(a)
	}
	p.Highlights = make([]models.Highlight, len(highlights))
	for i, h := range highlights {
		p.Highlights[i] = models.Highlight(h)
	}
	p.Location = &loc
	return &p, nil
}

func amenitiesToStrings(in []models.Amenity) []string {
	out := make([]string, len(in))
	for i, a := range in {
		out[i] = string(a)
	}
	return out
}

func highlightsToStrings(in []models.Highlight) []string {
	out := make([]string, len(in))
	for i, h := range in {
		out[i] = string(h)
	}
	return out
}
