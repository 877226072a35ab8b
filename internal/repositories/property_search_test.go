package repositories

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentstead/rentals-service/internal/constants"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/utils"
)

func TestBuildSearchQueryEmptyFilters(t *testing.T) {
	sql, args := buildSearchQuery(PropertyFilters{})

	require.Empty(t, args)
	require.NotContains(t, sql, "WHERE")
	require.Contains(t, sql, "ORDER BY p.id")
	require.Contains(t, sql, "JOIN locations l ON l.id = p.location_id")
}

func TestBuildSearchQueryAllFilters(t *testing.T) {
	availableFrom := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	pt := models.PropertyTypeVilla

	f := PropertyFilters{
		FavoriteIDs:   []int64{3, 7},
		PriceMin:      utils.Ptr(1000.0),
		PriceMax:      utils.Ptr(2500.0),
		Beds:          utils.Ptr(2),
		Baths:         utils.Ptr(1.5),
		SquareFeetMin: utils.Ptr(500),
		SquareFeetMax: utils.Ptr(1500),
		PropertyType:  &pt,
		Amenities:     []models.Amenity{models.AmenityPool, models.AmenityGym},
		AvailableFrom: &availableFrom,
		Latitude:      utils.Ptr(45.52),
		Longitude:     utils.Ptr(-122.68),
	}

	sql, args := buildSearchQuery(f)

	require.Len(t, args, 13)
	require.Equal(t, []int64{3, 7}, args[0])
	require.Equal(t, 1000.0, args[1])
	require.Equal(t, 2500.0, args[2])
	require.Equal(t, 2, args[3])
	require.Equal(t, 1.5, args[4])
	require.Equal(t, 500, args[5])
	require.Equal(t, 1500, args[6])
	require.Equal(t, "Villa", args[7])
	require.Equal(t, []string{"Pool", "Gym"}, args[8])
	require.Equal(t, availableFrom, args[9])
	require.Equal(t, -122.68, args[10])
	require.Equal(t, 45.52, args[11])
	require.Equal(t, constants.SearchRadiusInDeg, args[12])

	require.Contains(t, sql, "p.id = ANY($1)")
	require.Contains(t, sql, "p.price_per_month >= $2")
	require.Contains(t, sql, "p.price_per_month <= $3")
	require.Contains(t, sql, "p.beds >= $4")
	require.Contains(t, sql, "p.baths >= $5")
	require.Contains(t, sql, "p.square_feet >= $6")
	require.Contains(t, sql, "p.square_feet <= $7")
	require.Contains(t, sql, "p.property_type = $8")
	require.Contains(t, sql, "p.amenities @> $9")
	require.Contains(t, sql, "ls.start_date <= $10")
	require.Contains(t, sql, "ST_MakePoint($11, $12)")
	require.Contains(t, sql, "ST_DWithin")
	require.True(t, strings.HasSuffix(sql, "ORDER BY p.id"))
}

func TestBuildSearchQuerySkipsHalfPoint(t *testing.T) {
	f := PropertyFilters{Latitude: utils.Ptr(45.52)}

	sql, args := buildSearchQuery(f)

	require.Empty(t, args)
	require.NotContains(t, sql, "ST_DWithin")
	require.False(t, f.HasPoint())
}

func TestBuildSearchQueryBedsOnly(t *testing.T) {
	sql, args := buildSearchQuery(PropertyFilters{Beds: utils.Ptr(3)})

	require.Equal(t, []interface{}{3}, args)
	require.Contains(t, sql, "WHERE p.beds >= $1 ORDER BY p.id")
}
