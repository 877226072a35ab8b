package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/rentstead/rentals-service/internal/constants"
	"github.com/rentstead/rentals-service/internal/models"
)

// PropertyFilters is the sparse search criteria set. A nil/empty field
// means "do not filter on this dimension"; parsing (including dropping
// malformed values and the "any" sentinel) happens in the controller,
// so everything here is already validated.
type PropertyFilters struct {
	FavoriteIDs []int64

	PriceMin *float64
	PriceMax *float64

	Beds  *int
	Baths *float64

	SquareFeetMin *int
	SquareFeetMax *int

	PropertyType *models.PropertyType
	Amenities    []models.Amenity

	// A lease must exist for the property starting on or before this
	// date.
	AvailableFrom *time.Time

	// Both set or both nil. When set, the property's location must lie
	// within the fixed search radius of this point.
	Latitude  *float64
	Longitude *float64
}

// HasPoint reports whether a geographic point filter is present.
func (f PropertyFilters) HasPoint() bool {
	return f.Latitude != nil && f.Longitude != nil
}

func baseSelectProperty() string {
	return `
        SELECT
            p.id, p.name, p.description,
            p.price_per_month, p.security_deposit, p.application_fee,
            p.photo_urls, p.amenities, p.highlights,
            p.is_pets_allowed, p.is_parking_included,
            p.beds, p.baths, p.square_feet, p.property_type, p.posted_date,
            p.average_rating, p.number_of_reviews,
            p.location_id, p.manager_cognito_id,
            l.id, l.address, l.city, l.state, l.country, l.postal_code,
            ST_X(l.coordinates::geometry), ST_Y(l.coordinates::geometry)
        FROM properties p
        JOIN locations l ON l.id = p.location_id
    `
}

// buildSearchQuery composes the single parameterized search statement.
// Every provided criterion contributes one AND-joined predicate; an
// empty filter set selects all properties. The lease-availability
// predicate uses EXISTS and the radius predicate filters on the
// already-joined location row, so the join never fans out beyond one
// row per property.
func buildSearchQuery(f PropertyFilters) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.FavoriteIDs) > 0 {
		conds = append(conds, fmt.Sprintf("p.id = ANY(%s)", arg(f.FavoriteIDs)))
	}
	if f.PriceMin != nil {
		conds = append(conds, fmt.Sprintf("p.price_per_month >= %s", arg(*f.PriceMin)))
	}
	if f.PriceMax != nil {
		conds = append(conds, fmt.Sprintf("p.price_per_month <= %s", arg(*f.PriceMax)))
	}
	if f.Beds != nil {
		conds = append(conds, fmt.Sprintf("p.beds >= %s", arg(*f.Beds)))
	}
	if f.Baths != nil {
		conds = append(conds, fmt.Sprintf("p.baths >= %s", arg(*f.Baths)))
	}
	if f.SquareFeetMin != nil {
		conds = append(conds, fmt.Sprintf("p.square_feet >= %s", arg(*f.SquareFeetMin)))
	}
	if f.SquareFeetMax != nil {
		conds = append(conds, fmt.Sprintf("p.square_feet <= %s", arg(*f.SquareFeetMax)))
	}
	if f.PropertyType != nil {
		conds = append(conds, fmt.Sprintf("p.property_type = %s", arg(string(*f.PropertyType))))
	}
	if len(f.Amenities) > 0 {
		list := make([]string, len(f.Amenities))
		for i, a := range f.Amenities {
			list[i] = string(a)
		}
		conds = append(conds, fmt.Sprintf("p.amenities @> %s", arg(list)))
	}
	if f.AvailableFrom != nil {
		conds = append(conds, fmt.Sprintf(`EXISTS (
            SELECT 1 FROM leases ls
            WHERE ls.property_id = p.id AND ls.start_date <= %s
        )`, arg(*f.AvailableFrom)))
	}
	if f.HasPoint() {
		lng := arg(*f.Longitude)
		lat := arg(*f.Latitude)
		deg := arg(constants.SearchRadiusInDeg)
		conds = append(conds, fmt.Sprintf(`ST_DWithin(
            l.coordinates::geometry,
            ST_SetSRID(ST_MakePoint(%s, %s), 4326),
            %s
        )`, lng, lat, deg))
	}

	sql := baseSelectProperty()
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY p.id"
	return sql, args
}
