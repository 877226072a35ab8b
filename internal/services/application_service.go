package services

import (
	"context"
	"time"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

type ApplicationService interface {
	Create(ctx context.Context, req *dtos.CreateApplicationRequest) (*dtos.ApplicationResponse, error)

	// List returns applications visible to the caller: a tenant sees
	// their own, a manager sees those against their properties.
	ListByTenant(ctx context.Context, tenantCognitoID string) ([]*dtos.ApplicationResponse, error)
	ListByManager(ctx context.Context, managerCognitoID string) ([]*dtos.ApplicationResponse, error)

	// UpdateStatus approves or denies a pending application. Approval
	// activates the lease and adds the tenant to the property's
	// residents; denial only flips the status.
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*dtos.ApplicationResponse, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	propertyRepo    repositories.PropertyRepository
	tenantRepo      repositories.TenantRepository
	managerRepo     repositories.ManagerRepository
	leaseRepo       repositories.LeaseRepository
	notifier        Notifier
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	propertyRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	managerRepo repositories.ManagerRepository,
	leaseRepo repositories.LeaseRepository,
	notifier Notifier,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		propertyRepo:    propertyRepo,
		tenantRepo:      tenantRepo,
		managerRepo:     managerRepo,
		leaseRepo:       leaseRepo,
		notifier:        notifier,
	}
}

func (s *applicationService) Create(ctx context.Context, req *dtos.CreateApplicationRequest) (*dtos.ApplicationResponse, error) {
	tenant, err := s.tenantRepo.GetByCognitoID(ctx, req.TenantCognitoID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.ErrTenantNotFound
	}

	app := &models.Application{
		ApplicationDate: time.Now().UTC(),
		Status:          models.ApplicationPending,
		PropertyID:      req.PropertyID,
		TenantCognitoID: req.TenantCognitoID,
		Name:            req.Name,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Message:         req.Message,
	}
	if _, err := s.applicationRepo.CreateWithLease(ctx, app); err != nil {
		return nil, err
	}

	return s.enrich(ctx, app)
}

func (s *applicationService) ListByTenant(ctx context.Context, tenantCognitoID string) ([]*dtos.ApplicationResponse, error) {
	apps, err := s.applicationRepo.ListByTenant(ctx, tenantCognitoID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, apps)
}

func (s *applicationService) ListByManager(ctx context.Context, managerCognitoID string) ([]*dtos.ApplicationResponse, error) {
	apps, err := s.applicationRepo.ListByManager(ctx, managerCognitoID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, apps)
}

func (s *applicationService) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*dtos.ApplicationResponse, error) {
	var (
		app *models.Application
		err error
	)
	switch status {
	case models.ApplicationApproved:
		app, err = s.applicationRepo.Approve(ctx, id)
	case models.ApplicationDenied:
		app, err = s.applicationRepo.Deny(ctx, id)
	default:
		return nil, utils.ErrInvalidStatus
	}
	if err != nil {
		return nil, err
	}

	resp, err := s.enrich(ctx, app)
	if err != nil {
		return nil, err
	}

	// Delivery happens after the transaction committed, off the request
	// path, so a slow or failing provider never rolls back a decision.
	go s.notifier.NotifyApplicationDecision(app, resp.Property, status)

	return resp, nil
}

func (s *applicationService) enrichAll(ctx context.Context, apps []*models.Application) ([]*dtos.ApplicationResponse, error) {
	out := make([]*dtos.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp, err := s.enrich(ctx, app)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// enrich resolves the records the application's foreign keys point at.
// Dangling references are logged and left nil rather than failing the
// whole listing.
func (s *applicationService) enrich(ctx context.Context, app *models.Application) (*dtos.ApplicationResponse, error) {
	resp := &dtos.ApplicationResponse{Application: *app}

	property, err := s.propertyRepo.GetByID(ctx, app.PropertyID)
	if err != nil {
		return nil, err
	}
	resp.Property = property
	if property == nil {
		utils.Logger.Warnf("Application %d references missing property %d", app.ID, app.PropertyID)
	} else {
		manager, err := s.managerRepo.GetByCognitoID(ctx, property.ManagerCognitoID)
		if err != nil {
			return nil, err
		}
		resp.Manager = manager
	}

	tenant, err := s.tenantRepo.GetByCognitoID(ctx, app.TenantCognitoID)
	if err != nil {
		return nil, err
	}
	resp.Tenant = tenant

	var lease *models.Lease
	if app.LeaseID != nil {
		lease, err = s.leaseRepo.GetByID(ctx, *app.LeaseID)
	} else {
		// Rows predating lease-at-create carry no lease_id; fall back
		// to the tenant's most recent lease on the property.
		lease, err = s.leaseRepo.LatestForPropertyAndTenant(ctx, app.PropertyID, app.TenantCognitoID)
	}
	if err != nil {
		return nil, err
	}
	resp.Lease = lease
	if lease != nil {
		resp.NextPaymentDate = utils.Ptr(NextPaymentDate(lease.StartDate, time.Now().UTC()))
	}

	return resp, nil
}
