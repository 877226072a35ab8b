package services

import (
	"context"
	"time"

	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

// PaymentMaintenanceService runs the nightly payment sweep: flip unpaid
// payments past their due date to Overdue, then make sure every active
// lease has a Pending row for its next due date.
type PaymentMaintenanceService interface {
	Sweep(ctx context.Context) error
}

type paymentMaintenanceService struct {
	leaseRepo   repositories.LeaseRepository
	paymentRepo repositories.PaymentRepository
	db          repositories.DB
}

func NewPaymentMaintenanceService(
	db repositories.DB,
	leaseRepo repositories.LeaseRepository,
	paymentRepo repositories.PaymentRepository,
) PaymentMaintenanceService {
	return &paymentMaintenanceService{
		db:          db,
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *paymentMaintenanceService) Sweep(ctx context.Context) error {
	now := time.Now().UTC()

	flipped, err := s.paymentRepo.MarkOverdue(ctx, now)
	if err != nil {
		return err
	}
	if flipped > 0 {
		utils.Logger.Infof("Payment sweep marked %d payments overdue", flipped)
	}

	leases, err := s.leaseRepo.ListActive(ctx, now)
	if err != nil {
		return err
	}

	created := 0
	for _, lease := range leases {
		latest, err := s.paymentRepo.LatestDueDate(ctx, lease.ID)
		if err != nil {
			return err
		}

		next := NextPaymentDate(lease.StartDate, now)
		if next.After(lease.EndDate) {
			continue
		}
		if latest != nil && !latest.Before(next) {
			continue
		}

		payment := &models.Payment{
			AmountDue:     lease.Rent,
			AmountPaid:    0,
			DueDate:       next,
			PaymentStatus: models.PaymentPending,
			LeaseID:       lease.ID,
		}
		if err := s.paymentRepo.Create(ctx, s.db, payment); err != nil {
			return err
		}
		created++
	}
	if created > 0 {
		utils.Logger.Infof("Payment sweep created %d upcoming payments", created)
	}
	return nil
}
