package controllers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/middleware"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/services"
	"github.com/rentstead/rentals-service/internal/utils"
)

type stubPropertyService struct {
	listing []*models.Property
	created *models.Property
	err     error
}

func (s *stubPropertyService) Create(context.Context, *dtos.CreatePropertyRequest, []services.PhotoUpload) (*models.Property, error) {
	return s.created, s.err
}

func (s *stubPropertyService) GetByID(context.Context, int64) (*models.Property, error) {
	return s.created, s.err
}

func (s *stubPropertyService) Search(context.Context, repositories.PropertyFilters) ([]*models.Property, error) {
	return s.listing, s.err
}

func (s *stubPropertyService) ListByManager(context.Context, string) ([]*models.Property, error) {
	return s.listing, s.err
}

func (s *stubPropertyService) ListResidencesByTenant(context.Context, string) ([]*models.Property, error) {
	return s.listing, s.err
}

func TestSearchHandlerWrapsProperties(t *testing.T) {
	ctrl := NewPropertyController(&stubPropertyService{
		listing: []*models.Property{{ID: 1, Name: "Harbor Loft"}},
	})

	rec := httptest.NewRecorder()
	ctrl.SearchHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), `{"properties":`), rec.Body.String())

	var body dtos.PropertiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Properties, 1)
	require.Equal(t, "Harbor Loft", body.Properties[0].Name)
}

func TestSearchHandlerWrapsEmptyResult(t *testing.T) {
	ctrl := NewPropertyController(&stubPropertyService{})

	rec := httptest.NewRecorder()
	ctrl.SearchHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"properties":[]}`, rec.Body.String())
}

func TestListResidencesHandlerWrapsProperties(t *testing.T) {
	ctrl := NewTenantController(nil, &stubPropertyService{
		listing: []*models.Property{{ID: 2, Name: "Cedar Lane Cottage"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/ten-1/current-residences", nil)
	req = mux.SetURLVars(req, map[string]string{"cognitoId": "ten-1"})
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUserID, "ten-1"))

	rec := httptest.NewRecorder()
	ctrl.ListResidencesHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body dtos.PropertiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Properties, 1)
	require.Equal(t, "Cedar Lane Cottage", body.Properties[0].Name)
}

func propertyForm(t *testing.T, managerCognitoID string) (*strings.Reader, string) {
	t.Helper()
	var b strings.Builder
	w := multipart.NewWriter(&b)
	fields := map[string]string{
		"name":             "Harbor Loft",
		"pricePerMonth":    "2100",
		"securityDeposit":  "2100",
		"beds":             "2",
		"baths":            "1.5",
		"squareFeet":       "1100",
		"propertyType":     "Apartment",
		"managerCognitoId": managerCognitoID,
		"address":          "1 Harbor Way",
		"city":             "Seattle",
		"country":          "USA",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return strings.NewReader(b.String()), w.FormDataContentType()
}

func TestCreateHandlerRejectsForeignManager(t *testing.T) {
	ctrl := NewPropertyController(&stubPropertyService{})

	body, contentType := propertyForm(t, "mgr-1")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUserID, "mgr-2"))

	rec := httptest.NewRecorder()
	ctrl.CreateHandler(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateHandlerUnknownManager(t *testing.T) {
	ctrl := NewPropertyController(&stubPropertyService{err: utils.ErrManagerNotFound})

	body, contentType := propertyForm(t, "mgr-1")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUserID, "mgr-1"))

	rec := httptest.NewRecorder()
	ctrl.CreateHandler(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
