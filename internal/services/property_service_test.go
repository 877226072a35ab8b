package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

func createRequest() *dtos.CreatePropertyRequest {
	return &dtos.CreatePropertyRequest{
		Name:             "Harbor Loft",
		PricePerMonth:    2100,
		SecurityDeposit:  2100,
		Beds:             2,
		Baths:            2,
		SquareFeet:       1100,
		PropertyType:     "Apartment",
		ManagerCognitoID: "mgr-1",
		Address:          "1 Harbor Way",
		City:             "Seattle",
		Country:          "USA",
		Amenities:        []string{"Pool", "NotARealAmenity"},
	}
}

func managersWith(t *testing.T, cognitoID string) *fakeManagerRepo {
	t.Helper()
	managers := newFakeManagerRepo()
	require.NoError(t, managers.Create(context.Background(), &models.Manager{
		CognitoID: cognitoID,
		Name:      "Morgan Hale",
		Email:     "morgan@rentstead.test",
	}))
	return managers
}

func TestPropertyCreateGeocodes(t *testing.T) {
	props := newFakePropertyRepo()
	store := &fakePhotoStore{}
	svc := NewPropertyService(props, managersWith(t, "mgr-1"), &fakeGeocoder{lng: -122.33, lat: 47.60}, store)

	created, err := svc.Create(context.Background(), createRequest(), []PhotoUpload{
		{Name: "front.jpg", Content: strings.NewReader("jpeg")},
		{Name: "kitchen.jpg", Content: strings.NewReader("jpeg")},
	})
	require.NoError(t, err)

	require.Equal(t, -122.33, created.Location.Coordinates.Longitude)
	require.Equal(t, 47.60, created.Location.Coordinates.Latitude)
	require.Len(t, created.PhotoURLs, 2)
	require.Equal(t, store.saved, created.PhotoURLs)
	require.Equal(t, []models.Amenity{models.AmenityPool}, created.Amenities, "unknown amenities dropped")
}

func TestPropertyCreateGeocodeFailureFallsBackToOrigin(t *testing.T) {
	props := newFakePropertyRepo()
	svc := NewPropertyService(props, managersWith(t, "mgr-1"), &fakeGeocoder{err: errors.New("quota exceeded")}, &fakePhotoStore{})

	created, err := svc.Create(context.Background(), createRequest(), nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, created.Location.Coordinates.Longitude)
	require.Equal(t, 0.0, created.Location.Coordinates.Latitude)
}

func TestPropertyCreateUnknownManager(t *testing.T) {
	props := newFakePropertyRepo()
	svc := NewPropertyService(props, newFakeManagerRepo(), &fakeGeocoder{}, &fakePhotoStore{})

	_, err := svc.Create(context.Background(), createRequest(), nil)
	require.ErrorIs(t, err, utils.ErrManagerNotFound)
	require.Empty(t, props.properties, "no property row on a failed manager check")
}

func TestPropertyCreateInvalidType(t *testing.T) {
	svc := NewPropertyService(newFakePropertyRepo(), managersWith(t, "mgr-1"), &fakeGeocoder{}, &fakePhotoStore{})

	req := createRequest()
	req.PropertyType = "Castle"
	_, err := svc.Create(context.Background(), req, nil)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.StatusCode)
}

func TestPropertyGetNotFound(t *testing.T) {
	svc := NewPropertyService(newFakePropertyRepo(), newFakeManagerRepo(), &fakeGeocoder{}, &fakePhotoStore{})

	_, err := svc.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, utils.ErrPropertyNotFound)
}

func TestPropertySearchAnnotatesAndSortsByDistance(t *testing.T) {
	props := newFakePropertyRepo()
	near := &models.Property{Name: "Near", PropertyType: models.PropertyTypeApartment}
	far := &models.Property{Name: "Far", PropertyType: models.PropertyTypeApartment}
	require.NoError(t, props.CreateWithLocation(context.Background(), &models.Location{
		Coordinates: models.Coordinates{Longitude: -122.68, Latitude: 45.52},
	}, near))
	require.NoError(t, props.CreateWithLocation(context.Background(), &models.Location{
		Coordinates: models.Coordinates{Longitude: -73.97, Latitude: 40.78},
	}, far))
	props.searchFn = func(repositories.PropertyFilters) []*models.Property {
		return []*models.Property{far, near}
	}

	svc := NewPropertyService(props, newFakeManagerRepo(), &fakeGeocoder{}, &fakePhotoStore{})

	// Search point is Portland; the Portland listing must come back first.
	results, err := svc.Search(context.Background(), repositories.PropertyFilters{
		Latitude:  utils.Ptr(45.50),
		Longitude: utils.Ptr(-122.65),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Near", results[0].Name)
	require.NotNil(t, results[0].DistanceKm)
	require.NotNil(t, results[1].DistanceKm)
	require.Less(t, *results[0].DistanceKm, *results[1].DistanceKm)
	require.Less(t, *results[0].DistanceKm, 10.0)
}

func TestPropertySearchWithoutPointSkipsDistance(t *testing.T) {
	props := newFakePropertyRepo()
	p := seedProperty(t, props, "Plain")
	svc := NewPropertyService(props, newFakeManagerRepo(), &fakeGeocoder{}, &fakePhotoStore{})

	results, err := svc.Search(context.Background(), repositories.PropertyFilters{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, p.ID, results[0].ID)
	require.Nil(t, results[0].DistanceKm)
}
