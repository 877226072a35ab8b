package services

import (
	"context"
	"io"
	"sort"

	"github.com/umahmood/haversine"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

// PhotoUpload pairs an uploaded file's original name with its content.
type PhotoUpload struct {
	Name    string
	Content io.Reader
}

type PropertyService interface {
	Create(ctx context.Context, req *dtos.CreatePropertyRequest, photos []PhotoUpload) (*models.Property, error)
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	Search(ctx context.Context, f repositories.PropertyFilters) ([]*models.Property, error)
	ListByManager(ctx context.Context, managerCognitoID string) ([]*models.Property, error)
	ListResidencesByTenant(ctx context.Context, tenantCognitoID string) ([]*models.Property, error)
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	managerRepo  repositories.ManagerRepository
	geocoder     utils.Geocoder
	photoStore   utils.PhotoStore
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	managerRepo repositories.ManagerRepository,
	geocoder utils.Geocoder,
	photoStore utils.PhotoStore,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		managerRepo:  managerRepo,
		geocoder:     geocoder,
		photoStore:   photoStore,
	}
}

func (s *propertyService) Create(ctx context.Context, req *dtos.CreatePropertyRequest, photos []PhotoUpload) (*models.Property, error) {
	manager, err := s.managerRepo.GetByCognitoID(ctx, req.ManagerCognitoID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, utils.ErrManagerNotFound
	}

	property, loc, err := req.ToModel()
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    "Unknown property type",
			Err:        err,
		}
	}

	// Geocoding failure is not fatal; the listing lands at (0,0) and can
	// be re-geocoded later.
	lng, lat, err := s.geocoder.Geocode(ctx, req.StreetAddress())
	if err != nil {
		utils.Logger.WithError(err).Warnf("Geocoding failed for %q, storing (0,0)", req.StreetAddress().String())
		lng, lat = 0, 0
	}
	loc.Coordinates = models.Coordinates{Longitude: lng, Latitude: lat}

	for _, photo := range photos {
		url, err := s.photoStore.Save(photo.Name, photo.Content)
		if err != nil {
			return nil, err
		}
		property.PhotoURLs = append(property.PhotoURLs, url)
	}

	if err := s.propertyRepo.CreateWithLocation(ctx, loc, property); err != nil {
		return nil, err
	}
	property.Location = loc
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrPropertyNotFound
	}
	return p, nil
}

func (s *propertyService) Search(ctx context.Context, f repositories.PropertyFilters) ([]*models.Property, error) {
	properties, err := s.propertyRepo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	if f.HasPoint() {
		annotateDistances(properties, *f.Latitude, *f.Longitude)
	}
	return properties, nil
}

func (s *propertyService) ListByManager(ctx context.Context, managerCognitoID string) ([]*models.Property, error) {
	return s.propertyRepo.ListByManagerID(ctx, managerCognitoID)
}

func (s *propertyService) ListResidencesByTenant(ctx context.Context, tenantCognitoID string) ([]*models.Property, error) {
	return s.propertyRepo.ListResidencesByTenant(ctx, tenantCognitoID)
}

// annotateDistances fills DistanceKm on each property and orders the
// slice nearest first.
func annotateDistances(properties []*models.Property, lat, lng float64) {
	origin := haversine.Coord{Lat: lat, Lon: lng}
	for _, p := range properties {
		if p.Location == nil {
			continue
		}
		_, km := haversine.Distance(origin, haversine.Coord{
			Lat: p.Location.Coordinates.Latitude,
			Lon: p.Location.Coordinates.Longitude,
		})
		p.DistanceKm = utils.Ptr(km)
	}
	sort.SliceStable(properties, func(i, j int) bool {
		di, dj := properties[i].DistanceKm, properties[j].DistanceKm
		if di == nil || dj == nil {
			return dj == nil && di != nil
		}
		return *di < *dj
	})
}
