package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

// Sentinel account IDs; their presence means seeding already ran.
const (
	SeedManagerCognitoID = "seed-manager-0001"
	SeedTenantCognitoID  = "seed-tenant-0001"
)

// SeedTestData loads a small demo data set: one manager, one tenant, two
// listed properties, and an application already approved into a lease
// with a first payment. Idempotent.
func SeedTestData(
	ctx context.Context,
	db repositories.DB,
	managerRepo repositories.ManagerRepository,
	tenantRepo repositories.TenantRepository,
	propertyRepo repositories.PropertyRepository,
	applicationRepo repositories.ApplicationRepository,
	paymentRepo repositories.PaymentRepository,
) error {
	if existing, err := managerRepo.GetByCognitoID(ctx, SeedManagerCognitoID); err != nil {
		return fmt.Errorf("check seed sentinel: %w", err)
	} else if existing != nil {
		utils.Logger.Info("rentals-service: Seed data already present; skipping seeding.")
		return nil
	}

	manager := &models.Manager{
		CognitoID:   SeedManagerCognitoID,
		Name:        "Morgan Hale",
		Email:       "morgan.hale@example.com",
		PhoneNumber: "+15550100001",
	}
	if err := managerRepo.Create(ctx, manager); err != nil && err != utils.ErrAlreadyExists {
		return fmt.Errorf("seed manager: %w", err)
	}

	tenant := &models.Tenant{
		CognitoID:   SeedTenantCognitoID,
		Name:        "Riley Chen",
		Email:       "riley.chen@example.com",
		PhoneNumber: "+15550100002",
	}
	if err := tenantRepo.Create(ctx, tenant); err != nil && err != utils.ErrAlreadyExists {
		return fmt.Errorf("seed tenant: %w", err)
	}

	properties := []struct {
		p   *models.Property
		loc *models.Location
	}{
		{
			p: &models.Property{
				Name:              "Maple Court Apartment",
				Description:       "Bright two-bed apartment near the riverfront.",
				PricePerMonth:     1850,
				SecurityDeposit:   1850,
				ApplicationFee:    50,
				Amenities:         []models.Amenity{models.AmenityWasherDryer, models.AmenityAirConditioning},
				Highlights:        []models.Highlight{models.HighlightGreatView},
				IsPetsAllowed:     true,
				IsParkingIncluded: true,
				Beds:              2,
				Baths:             1.5,
				SquareFeet:        940,
				PropertyType:      models.PropertyTypeApartment,
				ManagerCognitoID:  SeedManagerCognitoID,
			},
			loc: &models.Location{
				Address:     "412 Maple Court",
				City:        "Portland",
				State:       "OR",
				Country:     "USA",
				PostalCode:  "97204",
				Coordinates: models.Coordinates{Longitude: -122.6765, Latitude: 45.5231},
			},
		},
		{
			p: &models.Property{
				Name:              "Cedar Lane Cottage",
				Description:       "Quiet one-bed cottage with a fenced yard.",
				PricePerMonth:     1350,
				SecurityDeposit:   1350,
				ApplicationFee:    50,
				Amenities:         []models.Amenity{models.AmenityHardwoodFloors},
				Highlights:        []models.Highlight{models.HighlightQuietNeighborhood},
				IsPetsAllowed:     false,
				IsParkingIncluded: false,
				Beds:              1,
				Baths:             1,
				SquareFeet:        620,
				PropertyType:      models.PropertyTypeCottage,
				ManagerCognitoID:  SeedManagerCognitoID,
			},
			loc: &models.Location{
				Address:     "88 Cedar Lane",
				City:        "Portland",
				State:       "OR",
				Country:     "USA",
				PostalCode:  "97211",
				Coordinates: models.Coordinates{Longitude: -122.6587, Latitude: 45.5646},
			},
		},
	}
	for _, seed := range properties {
		if err := propertyRepo.CreateWithLocation(ctx, seed.loc, seed.p); err != nil {
			return fmt.Errorf("seed property %q: %w", seed.p.Name, err)
		}
	}

	// One application, approved into a lease with its first payment due.
	app := &models.Application{
		ApplicationDate: time.Now().UTC(),
		Status:          models.ApplicationPending,
		PropertyID:      properties[0].p.ID,
		TenantCognitoID: SeedTenantCognitoID,
		Name:            tenant.Name,
		Email:           tenant.Email,
		PhoneNumber:     tenant.PhoneNumber,
		Message:         "Looking to move in next month.",
	}
	if _, err := applicationRepo.CreateWithLease(ctx, app); err != nil {
		return fmt.Errorf("seed application: %w", err)
	}
	approved, err := applicationRepo.Approve(ctx, app.ID)
	if err != nil {
		return fmt.Errorf("approve seed application: %w", err)
	}

	if approved.LeaseID != nil {
		payment := &models.Payment{
			AmountDue:     properties[0].p.PricePerMonth,
			AmountPaid:    0,
			DueDate:       time.Now().UTC().AddDate(0, 1, 0),
			PaymentStatus: models.PaymentPending,
			LeaseID:       *approved.LeaseID,
		}
		if err := paymentRepo.Create(ctx, db, payment); err != nil {
			return fmt.Errorf("seed payment: %w", err)
		}
	}

	utils.Logger.Info("rentals-service: Seeding completed successfully.")
	return nil
}
