package services

import (
	"context"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

type TenantService interface {
	Create(ctx context.Context, req *dtos.CreateTenantRequest) (*models.Tenant, error)

	// GetByCognitoID resolves the tenant with favorites populated.
	GetByCognitoID(ctx context.Context, cognitoID string) (*models.Tenant, error)

	Update(ctx context.Context, cognitoID string, req *dtos.UpdateTenantRequest) (*models.Tenant, error)

	AddFavorite(ctx context.Context, cognitoID string, propertyID int64) (*models.Tenant, error)
	RemoveFavorite(ctx context.Context, cognitoID string, propertyID int64) (*models.Tenant, error)
}

type tenantService struct {
	tenantRepo   repositories.TenantRepository
	propertyRepo repositories.PropertyRepository
}

func NewTenantService(
	tenantRepo repositories.TenantRepository,
	propertyRepo repositories.PropertyRepository,
) TenantService {
	return &tenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
	}
}

func (s *tenantService) Create(ctx context.Context, req *dtos.CreateTenantRequest) (*models.Tenant, error) {
	t := &models.Tenant{
		CognitoID:   req.CognitoID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tenantService) GetByCognitoID(ctx context.Context, cognitoID string) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.ErrTenantNotFound
	}
	if err := s.loadFavorites(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tenantService) Update(ctx context.Context, cognitoID string, req *dtos.UpdateTenantRequest) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.ErrTenantNotFound
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Email != nil {
		t.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		t.PhoneNumber = *req.PhoneNumber
	}

	if err := s.tenantRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tenantService) AddFavorite(ctx context.Context, cognitoID string, propertyID int64) (*models.Tenant, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, utils.ErrPropertyNotFound
	}

	if err := s.tenantRepo.AddFavorite(ctx, cognitoID, propertyID); err != nil {
		return nil, err
	}
	return s.GetByCognitoID(ctx, cognitoID)
}

func (s *tenantService) RemoveFavorite(ctx context.Context, cognitoID string, propertyID int64) (*models.Tenant, error) {
	if err := s.tenantRepo.RemoveFavorite(ctx, cognitoID, propertyID); err != nil {
		return nil, err
	}
	return s.GetByCognitoID(ctx, cognitoID)
}

func (s *tenantService) loadFavorites(ctx context.Context, t *models.Tenant) error {
	ids, err := s.tenantRepo.ListFavoriteIDs(ctx, t.CognitoID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	favorites, err := s.propertyRepo.Search(ctx, repositories.PropertyFilters{FavoriteIDs: ids})
	if err != nil {
		return err
	}
	t.Favorites = favorites
	return nil
}
