package controllers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentstead/rentals-service/internal/models"
)

func TestParsePropertyFiltersFull(t *testing.T) {
	q := url.Values{}
	q.Set("favoriteIds", "1,2,3")
	q.Set("priceMin", "900")
	q.Set("priceMax", "2200.50")
	q.Set("beds", "2")
	q.Set("baths", "1.5")
	q.Set("squareFeetMin", "600")
	q.Set("squareFeetMax", "1400")
	q.Set("propertyType", "Villa")
	q.Set("amenities", "Pool,Gym")
	q.Set("availableFrom", "2024-06-01")
	q.Set("latitude", "45.52")
	q.Set("longitude", "-122.68")

	f := parsePropertyFilters(q)

	require.Equal(t, []int64{1, 2, 3}, f.FavoriteIDs)
	require.Equal(t, 900.0, *f.PriceMin)
	require.Equal(t, 2200.50, *f.PriceMax)
	require.Equal(t, 2, *f.Beds)
	require.Equal(t, 1.5, *f.Baths)
	require.Equal(t, 600, *f.SquareFeetMin)
	require.Equal(t, 1400, *f.SquareFeetMax)
	require.Equal(t, models.PropertyTypeVilla, *f.PropertyType)
	require.Equal(t, []models.Amenity{models.AmenityPool, models.AmenityGym}, f.Amenities)
	require.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), *f.AvailableFrom)
	require.True(t, f.HasPoint())
	require.Equal(t, 45.52, *f.Latitude)
	require.Equal(t, -122.68, *f.Longitude)
}

func TestParsePropertyFiltersDropsMalformed(t *testing.T) {
	q := url.Values{}
	q.Set("priceMin", "cheap")
	q.Set("beds", "lots")
	q.Set("propertyType", "Castle")
	q.Set("amenities", "Pool,Moat")
	q.Set("favoriteIds", "1,abc,3")
	q.Set("availableFrom", "soon")
	q.Set("latitude", "45.52") // longitude missing

	f := parsePropertyFilters(q)

	require.Nil(t, f.PriceMin)
	require.Nil(t, f.Beds)
	require.Nil(t, f.PropertyType)
	require.Equal(t, []models.Amenity{models.AmenityPool}, f.Amenities)
	require.Equal(t, []int64{1, 3}, f.FavoriteIDs)
	require.Nil(t, f.AvailableFrom)
	require.False(t, f.HasPoint())
	require.Nil(t, f.Latitude)
}

func TestParsePropertyFiltersAnySentinel(t *testing.T) {
	q := url.Values{}
	q.Set("beds", "any")
	q.Set("baths", "Any")
	q.Set("propertyType", "any")

	f := parsePropertyFilters(q)

	require.Nil(t, f.Beds)
	require.Nil(t, f.Baths)
	require.Nil(t, f.PropertyType)
}

func TestParsePropertyFiltersEmpty(t *testing.T) {
	f := parsePropertyFilters(url.Values{})

	require.Nil(t, f.FavoriteIDs)
	require.Nil(t, f.PriceMin)
	require.Nil(t, f.AvailableFrom)
	require.False(t, f.HasPoint())
}

func TestSplitCSV(t *testing.T) {
	require.Nil(t, splitCSV(""))
	require.Equal(t, []string{"a", "b"}, splitCSV("a, b,"))
}
