package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/middleware"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/services"
	"github.com/rentstead/rentals-service/internal/utils"
)

type TenantController struct {
	tenantSvc   services.TenantService
	propertySvc services.PropertyService
}

func NewTenantController(tenantSvc services.TenantService, propertySvc services.PropertyService) *TenantController {
	return &TenantController{tenantSvc: tenantSvc, propertySvc: propertySvc}
}

// -----------------------------------------------------------------------------
// POST /api/v1/tenants
// -----------------------------------------------------------------------------
func (c *TenantController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid tenant payload", err.Error(), err)
		return
	}

	tenant, err := c.tenantSvc.Create(r.Context(), &req)
	if err != nil {
		if err == utils.ErrAlreadyExists {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Tenant already exists", nil)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not create tenant", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// -----------------------------------------------------------------------------
// GET /api/v1/tenants/{cognitoId}
// -----------------------------------------------------------------------------
func (c *TenantController) GetHandler(w http.ResponseWriter, r *http.Request) {
	cognitoID, ok := c.ownCognitoID(w, r)
	if !ok {
		return
	}

	tenant, err := c.tenantSvc.GetByCognitoID(r.Context(), cognitoID)
	if err != nil {
		respondTenantError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// -----------------------------------------------------------------------------
// PUT /api/v1/tenants/{cognitoId}
// -----------------------------------------------------------------------------
func (c *TenantController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	cognitoID, ok := c.ownCognitoID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid tenant payload", err.Error(), err)
		return
	}

	tenant, err := c.tenantSvc.Update(r.Context(), cognitoID, &req)
	if err != nil {
		respondTenantError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// -----------------------------------------------------------------------------
// GET /api/v1/tenants/{cognitoId}/current-residences
// -----------------------------------------------------------------------------
func (c *TenantController) ListResidencesHandler(w http.ResponseWriter, r *http.Request) {
	cognitoID, ok := c.ownCognitoID(w, r)
	if !ok {
		return
	}

	residences, err := c.propertySvc.ListResidencesByTenant(r.Context(), cognitoID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not list residences", nil, err)
		return
	}
	if residences == nil {
		residences = []*models.Property{}
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertiesResponse{Properties: residences})
}

// -----------------------------------------------------------------------------
// POST /api/v1/tenants/{cognitoId}/favorites/{propertyId}
// -----------------------------------------------------------------------------
func (c *TenantController) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	cognitoID, propertyID, ok := c.favoriteParams(w, r)
	if !ok {
		return
	}

	tenant, err := c.tenantSvc.AddFavorite(r.Context(), cognitoID, propertyID)
	if err != nil {
		switch err {
		case utils.ErrAlreadyFavorited:
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Property already favorited", nil)
		case utils.ErrPropertyNotFound:
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Property not found", nil)
		default:
			respondTenantError(w, err)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/tenants/{cognitoId}/favorites/{propertyId}
// -----------------------------------------------------------------------------
func (c *TenantController) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	cognitoID, propertyID, ok := c.favoriteParams(w, r)
	if !ok {
		return
	}

	tenant, err := c.tenantSvc.RemoveFavorite(r.Context(), cognitoID, propertyID)
	if err != nil {
		respondTenantError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// ownCognitoID extracts the path cognitoId and rejects callers acting on
// someone else's account.
func (c *TenantController) ownCognitoID(w http.ResponseWriter, r *http.Request) (string, bool) {
	cognitoID := mux.Vars(r)["cognitoId"]
	if cognitoID == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing cognitoId", nil)
		return "", false
	}
	if caller := middleware.UserIDFromContext(r.Context()); caller != cognitoID {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "Cannot act on another account", nil)
		return "", false
	}
	return cognitoID, true
}

func (c *TenantController) favoriteParams(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	cognitoID, ok := c.ownCognitoID(w, r)
	if !ok {
		return "", 0, false
	}
	propertyID, err := strconv.ParseInt(mux.Vars(r)["propertyId"], 10, 64)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property id", nil, err)
		return "", 0, false
	}
	return cognitoID, propertyID, true
}

func respondTenantError(w http.ResponseWriter, err error) {
	if err == utils.ErrTenantNotFound {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Tenant not found", nil)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Tenant operation failed", nil, err)
}
