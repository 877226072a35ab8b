package services

import (
	"context"

	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

type LeaseService interface {
	ListAll(ctx context.Context) ([]*models.Lease, error)
	ListPayments(ctx context.Context, leaseID int64) ([]*models.Payment, error)
}

type leaseService struct {
	leaseRepo   repositories.LeaseRepository
	paymentRepo repositories.PaymentRepository
}

func NewLeaseService(
	leaseRepo repositories.LeaseRepository,
	paymentRepo repositories.PaymentRepository,
) LeaseService {
	return &leaseService{
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *leaseService) ListAll(ctx context.Context) ([]*models.Lease, error) {
	return s.leaseRepo.ListAll(ctx)
}

func (s *leaseService) ListPayments(ctx context.Context, leaseID int64) ([]*models.Payment, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrLeaseNotFound
	}
	return s.paymentRepo.ListByLeaseID(ctx, leaseID)
}
