package services

import (
	"context"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

type ManagerService interface {
	Create(ctx context.Context, req *dtos.CreateManagerRequest) (*models.Manager, error)
	GetByCognitoID(ctx context.Context, cognitoID string) (*models.Manager, error)
	Update(ctx context.Context, cognitoID string, req *dtos.UpdateManagerRequest) (*models.Manager, error)
}

type managerService struct {
	managerRepo repositories.ManagerRepository
}

func NewManagerService(managerRepo repositories.ManagerRepository) ManagerService {
	return &managerService{managerRepo: managerRepo}
}

func (s *managerService) Create(ctx context.Context, req *dtos.CreateManagerRequest) (*models.Manager, error) {
	m := &models.Manager{
		CognitoID:   req.CognitoID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.managerRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *managerService) GetByCognitoID(ctx context.Context, cognitoID string) (*models.Manager, error) {
	m, err := s.managerRepo.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, utils.ErrManagerNotFound
	}
	return m, nil
}

func (s *managerService) Update(ctx context.Context, cognitoID string, req *dtos.UpdateManagerRequest) (*models.Manager, error) {
	m, err := s.managerRepo.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, utils.ErrManagerNotFound
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		m.PhoneNumber = *req.PhoneNumber
	}

	if err := s.managerRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
