package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/utils"
)

// In-memory repository fakes. They implement just enough behavior for
// the service tests: keyed maps, sequential IDs, and the same sentinel
// errors the real repositories return.

type fakePropertyRepo struct {
	nextID     int64
	properties map[int64]*models.Property
	searchFn   func(f repositories.PropertyFilters) []*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{nextID: 1, properties: map[int64]*models.Property{}}
}

func (r *fakePropertyRepo) CreateWithLocation(_ context.Context, loc *models.Location, p *models.Property) error {
	loc.ID = r.nextID
	p.ID = r.nextID
	p.LocationID = loc.ID
	p.PostedDate = time.Now().UTC()
	p.Location = loc
	r.properties[p.ID] = p
	r.nextID++
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id int64) (*models.Property, error) {
	return r.properties[id], nil
}

func (r *fakePropertyRepo) ListByManagerID(_ context.Context, managerCognitoID string) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.properties {
		if p.ManagerCognitoID == managerCognitoID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) ListResidencesByTenant(_ context.Context, _ string) ([]*models.Property, error) {
	return nil, nil
}

func (r *fakePropertyRepo) Search(_ context.Context, f repositories.PropertyFilters) ([]*models.Property, error) {
	if r.searchFn != nil {
		return r.searchFn(f), nil
	}
	if len(f.FavoriteIDs) > 0 {
		var out []*models.Property
		for _, id := range f.FavoriteIDs {
			if p, ok := r.properties[id]; ok {
				out = append(out, p)
			}
		}
		return out, nil
	}
	var out []*models.Property
	for _, p := range r.properties {
		out = append(out, p)
	}
	return out, nil
}

type fakeTenantRepo struct {
	tenants   map[string]*models.Tenant
	favorites map[string]map[int64]bool
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		tenants:   map[string]*models.Tenant{},
		favorites: map[string]map[int64]bool{},
	}
}

func (r *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	if _, ok := r.tenants[t.CognitoID]; ok {
		return utils.ErrAlreadyExists
	}
	t.ID = int64(len(r.tenants) + 1)
	r.tenants[t.CognitoID] = t
	return nil
}

func (r *fakeTenantRepo) GetByCognitoID(_ context.Context, cognitoID string) (*models.Tenant, error) {
	return r.tenants[cognitoID], nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *models.Tenant) error {
	if _, ok := r.tenants[t.CognitoID]; !ok {
		return utils.ErrTenantNotFound
	}
	r.tenants[t.CognitoID] = t
	return nil
}

func (r *fakeTenantRepo) AddFavorite(_ context.Context, cognitoID string, propertyID int64) error {
	favs := r.favorites[cognitoID]
	if favs == nil {
		favs = map[int64]bool{}
		r.favorites[cognitoID] = favs
	}
	if favs[propertyID] {
		return utils.ErrAlreadyFavorited
	}
	favs[propertyID] = true
	return nil
}

func (r *fakeTenantRepo) RemoveFavorite(_ context.Context, cognitoID string, propertyID int64) error {
	delete(r.favorites[cognitoID], propertyID)
	return nil
}

func (r *fakeTenantRepo) ListFavoriteIDs(_ context.Context, cognitoID string) ([]int64, error) {
	var out []int64
	for id := range r.favorites[cognitoID] {
		out = append(out, id)
	}
	return out, nil
}

type fakeManagerRepo struct {
	managers map[string]*models.Manager
}

func newFakeManagerRepo() *fakeManagerRepo {
	return &fakeManagerRepo{managers: map[string]*models.Manager{}}
}

func (r *fakeManagerRepo) Create(_ context.Context, m *models.Manager) error {
	if _, ok := r.managers[m.CognitoID]; ok {
		return utils.ErrAlreadyExists
	}
	m.ID = int64(len(r.managers) + 1)
	r.managers[m.CognitoID] = m
	return nil
}

func (r *fakeManagerRepo) GetByCognitoID(_ context.Context, cognitoID string) (*models.Manager, error) {
	return r.managers[cognitoID], nil
}

func (r *fakeManagerRepo) Update(_ context.Context, m *models.Manager) error {
	if _, ok := r.managers[m.CognitoID]; !ok {
		return utils.ErrManagerNotFound
	}
	r.managers[m.CognitoID] = m
	return nil
}

type fakeApplicationRepo struct {
	properties   *fakePropertyRepo
	leases       *fakeLeaseRepo
	nextID       int64
	applications map[int64]*models.Application
}

func newFakeApplicationRepo(properties *fakePropertyRepo, leases *fakeLeaseRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		properties:   properties,
		leases:       leases,
		nextID:       1,
		applications: map[int64]*models.Application{},
	}
}

func (r *fakeApplicationRepo) CreateWithLease(_ context.Context, app *models.Application) (*models.Lease, error) {
	property, ok := r.properties.properties[app.PropertyID]
	if !ok {
		return nil, utils.ErrPropertyNotFound
	}

	now := time.Now().UTC()
	lease := &models.Lease{
		StartDate:       now,
		EndDate:         now.AddDate(1, 0, 0),
		Rent:            property.PricePerMonth,
		Deposit:         property.SecurityDeposit,
		PropertyID:      app.PropertyID,
		TenantCognitoID: app.TenantCognitoID,
	}
	r.leases.add(lease)

	app.ID = r.nextID
	r.nextID++
	app.Status = models.ApplicationPending
	app.LeaseID = &lease.ID
	r.applications[app.ID] = app
	return lease, nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id int64) (*models.Application, error) {
	return r.applications[id], nil
}

func (r *fakeApplicationRepo) ListByTenant(_ context.Context, tenantCognitoID string) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range r.applications {
		if a.TenantCognitoID == tenantCognitoID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByManager(_ context.Context, managerCognitoID string) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range r.applications {
		if p, ok := r.properties.properties[a.PropertyID]; ok && p.ManagerCognitoID == managerCognitoID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) Approve(_ context.Context, id int64) (*models.Application, error) {
	app, ok := r.applications[id]
	if !ok {
		return nil, utils.ErrApplicationNotFound
	}
	if app.Status != models.ApplicationPending {
		return nil, utils.ErrAlreadyDecided
	}
	app.Status = models.ApplicationApproved
	return app, nil
}

func (r *fakeApplicationRepo) Deny(_ context.Context, id int64) (*models.Application, error) {
	app, ok := r.applications[id]
	if !ok {
		return nil, utils.ErrApplicationNotFound
	}
	if app.Status != models.ApplicationPending {
		return nil, utils.ErrAlreadyDecided
	}
	app.Status = models.ApplicationDenied
	return app, nil
}

type fakeLeaseRepo struct {
	nextID int64
	leases map[int64]*models.Lease
}

func newFakeLeaseRepo() *fakeLeaseRepo {
	return &fakeLeaseRepo{nextID: 1, leases: map[int64]*models.Lease{}}
}

func (r *fakeLeaseRepo) add(l *models.Lease) {
	l.ID = r.nextID
	r.nextID++
	r.leases[l.ID] = l
}

func (r *fakeLeaseRepo) GetByID(_ context.Context, id int64) (*models.Lease, error) {
	return r.leases[id], nil
}

func (r *fakeLeaseRepo) ListAll(_ context.Context) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range r.leases {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLeaseRepo) LatestForPropertyAndTenant(_ context.Context, propertyID int64, tenantCognitoID string) (*models.Lease, error) {
	var latest *models.Lease
	for _, l := range r.leases {
		if l.PropertyID == propertyID && l.TenantCognitoID == tenantCognitoID {
			if latest == nil || l.StartDate.After(latest.StartDate) {
				latest = l
			}
		}
	}
	return latest, nil
}

func (r *fakeLeaseRepo) ListActive(_ context.Context, asOf time.Time) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range r.leases {
		if !l.StartDate.After(asOf) && !l.EndDate.Before(asOf) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	nextID   int64
	payments map[int64]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1, payments: map[int64]*models.Payment{}}
}

func (r *fakePaymentRepo) ListByLeaseID(_ context.Context, leaseID int64) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range r.payments {
		if p.LeaseID == leaseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Create(_ context.Context, _ repositories.Querier, p *models.Payment) error {
	p.ID = r.nextID
	r.nextID++
	r.payments[p.ID] = p
	return nil
}

func (r *fakePaymentRepo) LatestDueDate(_ context.Context, leaseID int64) (*time.Time, error) {
	var latest *time.Time
	for _, p := range r.payments {
		if p.LeaseID != leaseID {
			continue
		}
		due := p.DueDate
		if latest == nil || due.After(*latest) {
			latest = &due
		}
	}
	return latest, nil
}

func (r *fakePaymentRepo) MarkOverdue(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.PaymentStatus == models.PaymentPending && p.DueDate.Before(asOf) {
			p.PaymentStatus = models.PaymentOverdue
			n++
		}
	}
	return n, nil
}

// Collaborator fakes.

type fakeGeocoder struct {
	lng, lat float64
	err      error
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ utils.StreetAddress) (float64, float64, error) {
	if g.err != nil {
		return 0, 0, g.err
	}
	return g.lng, g.lat, nil
}

type fakePhotoStore struct {
	saved []string
}

func (s *fakePhotoStore) Save(originalName string, _ io.Reader) (string, error) {
	url := fmt.Sprintf("http://photos.test/%d-%s", len(s.saved), originalName)
	s.saved = append(s.saved, url)
	return url, nil
}

type recordingNotifier struct {
	decisions []models.ApplicationStatus
	done      chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 8)}
}

func (n *recordingNotifier) NotifyApplicationDecision(_ *models.Application, _ *models.Property, status models.ApplicationStatus) {
	n.decisions = append(n.decisions, status)
	n.done <- struct{}{}
}
