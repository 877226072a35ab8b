package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/utils"
)

type applicationFixture struct {
	svc       ApplicationService
	props     *fakePropertyRepo
	tenants   *fakeTenantRepo
	managers  *fakeManagerRepo
	apps      *fakeApplicationRepo
	leases    *fakeLeaseRepo
	notifier  *recordingNotifier
	property  *models.Property
	tenantKey string
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	props := newFakePropertyRepo()
	tenants := newFakeTenantRepo()
	managers := newFakeManagerRepo()
	leases := newFakeLeaseRepo()
	apps := newFakeApplicationRepo(props, leases)
	notifier := newRecordingNotifier()

	ctx := context.Background()
	require.NoError(t, managers.Create(ctx, &models.Manager{CognitoID: "mgr-1", Name: "Mgr", Email: "mgr@example.com"}))
	require.NoError(t, tenants.Create(ctx, &models.Tenant{CognitoID: "ten-1", Name: "Ten", Email: "ten@example.com"}))

	property := &models.Property{
		Name:             "Test Flat",
		PricePerMonth:    1500,
		SecurityDeposit:  1500,
		PropertyType:     models.PropertyTypeApartment,
		ManagerCognitoID: "mgr-1",
	}
	require.NoError(t, props.CreateWithLocation(ctx, &models.Location{City: "Portland"}, property))

	return &applicationFixture{
		svc:       NewApplicationService(apps, props, tenants, managers, leases, notifier),
		props:     props,
		tenants:   tenants,
		managers:  managers,
		apps:      apps,
		leases:    leases,
		notifier:  notifier,
		property:  property,
		tenantKey: "ten-1",
	}
}

func (f *applicationFixture) apply(t *testing.T) *dtos.ApplicationResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), &dtos.CreateApplicationRequest{
		PropertyID:      f.property.ID,
		TenantCognitoID: f.tenantKey,
		Name:            "Ten",
		Email:           "ten@example.com",
		PhoneNumber:     "+15550100000",
		Message:         "Interested!",
	})
	require.NoError(t, err)
	return resp
}

func TestApplicationCreateLocksLeaseTerms(t *testing.T) {
	f := newApplicationFixture(t)

	resp := f.apply(t)

	require.Equal(t, models.ApplicationPending, resp.Status)
	require.NotNil(t, resp.LeaseID)
	require.NotNil(t, resp.Lease)
	require.Equal(t, 1500.0, resp.Lease.Rent)
	require.Equal(t, 1500.0, resp.Lease.Deposit)
	require.Equal(t, f.property.ID, resp.Lease.PropertyID)
	require.NotNil(t, resp.Property)
	require.NotNil(t, resp.Manager)
	require.Equal(t, "mgr-1", resp.Manager.CognitoID)
	require.NotNil(t, resp.NextPaymentDate, "payment date follows the lease, not the status")

	// Raising the rent after applying must not touch the locked lease.
	f.property.PricePerMonth = 9999
	again, err := f.svc.ListByTenant(context.Background(), f.tenantKey)
	require.NoError(t, err)
	require.Len(t, again, 1)
	require.Equal(t, 1500.0, again[0].Lease.Rent)
}

func TestApplicationCreateUnknownTenant(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Create(context.Background(), &dtos.CreateApplicationRequest{
		PropertyID:      f.property.ID,
		TenantCognitoID: "nobody",
		Name:            "X",
		Email:           "x@example.com",
	})
	require.ErrorIs(t, err, utils.ErrTenantNotFound)
}

func TestApplicationCreateUnknownProperty(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Create(context.Background(), &dtos.CreateApplicationRequest{
		PropertyID:      9999,
		TenantCognitoID: f.tenantKey,
		Name:            "Ten",
		Email:           "ten@example.com",
	})
	require.ErrorIs(t, err, utils.ErrPropertyNotFound)
}

func TestApplicationApprove(t *testing.T) {
	f := newApplicationFixture(t)
	created := f.apply(t)

	resp, err := f.svc.UpdateStatus(context.Background(), created.ID, models.ApplicationApproved)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationApproved, resp.Status)
	require.NotNil(t, resp.Lease)
	require.NotNil(t, resp.NextPaymentDate)
	require.True(t, resp.NextPaymentDate.After(time.Now().UTC()))

	select {
	case <-f.notifier.done:
	case <-time.After(time.Second):
		t.Fatal("expected a decision notification")
	}
	require.Equal(t, []models.ApplicationStatus{models.ApplicationApproved}, f.notifier.decisions)
}

func TestApplicationDeny(t *testing.T) {
	f := newApplicationFixture(t)
	created := f.apply(t)

	resp, err := f.svc.UpdateStatus(context.Background(), created.ID, models.ApplicationDenied)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationDenied, resp.Status)
	require.NotNil(t, resp.NextPaymentDate, "the lease from application time still drives the date")

	select {
	case <-f.notifier.done:
	case <-time.After(time.Second):
		t.Fatal("expected a decision notification")
	}
}

func TestApplicationDecisionIsOneWay(t *testing.T) {
	f := newApplicationFixture(t)
	created := f.apply(t)

	_, err := f.svc.UpdateStatus(context.Background(), created.ID, models.ApplicationApproved)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), created.ID, models.ApplicationDenied)
	require.ErrorIs(t, err, utils.ErrAlreadyDecided)
}

func TestApplicationUpdateStatusRejectsPending(t *testing.T) {
	f := newApplicationFixture(t)
	created := f.apply(t)

	_, err := f.svc.UpdateStatus(context.Background(), created.ID, models.ApplicationPending)
	require.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestApplicationUpdateStatusNotFound(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), 404, models.ApplicationApproved)
	require.ErrorIs(t, err, utils.ErrApplicationNotFound)
}

func TestApplicationListByManager(t *testing.T) {
	f := newApplicationFixture(t)
	f.apply(t)

	byManager, err := f.svc.ListByManager(context.Background(), "mgr-1")
	require.NoError(t, err)
	require.Len(t, byManager, 1)
	require.Equal(t, f.property.ID, byManager[0].PropertyID)

	other, err := f.svc.ListByManager(context.Background(), "mgr-2")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestApplicationEnrichFallsBackToLatestLease(t *testing.T) {
	f := newApplicationFixture(t)

	// A row written before leases were created at application time has
	// no lease link; enrichment must still find the tenant's lease.
	start := time.Now().UTC().AddDate(0, -2, 0)
	f.leases.add(&models.Lease{
		StartDate:       start,
		EndDate:         start.AddDate(1, 0, 0),
		Rent:            1500,
		Deposit:         1500,
		PropertyID:      f.property.ID,
		TenantCognitoID: f.tenantKey,
	})
	f.apps.applications[f.apps.nextID] = &models.Application{
		ID:              f.apps.nextID,
		ApplicationDate: start,
		Status:          models.ApplicationApproved,
		PropertyID:      f.property.ID,
		TenantCognitoID: f.tenantKey,
		Name:            "Ten",
		Email:           "ten@example.com",
	}
	f.apps.nextID++

	resps, err := f.svc.ListByTenant(context.Background(), f.tenantKey)
	require.NoError(t, err)
	require.Len(t, resps, 1)
	require.NotNil(t, resps[0].Lease)
	require.Equal(t, 1500.0, resps[0].Lease.Rent)
	require.NotNil(t, resps[0].NextPaymentDate)
	require.True(t, resps[0].NextPaymentDate.After(time.Now().UTC()))
}
