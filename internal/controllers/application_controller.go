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

type ApplicationController struct {
	svc services.ApplicationService
}

func NewApplicationController(s services.ApplicationService) *ApplicationController {
	return &ApplicationController{svc: s}
}

// -----------------------------------------------------------------------------
// POST /api/v1/applications  (tenant only)
// -----------------------------------------------------------------------------
func (c *ApplicationController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid application payload", err.Error(), err)
		return
	}
	if caller := middleware.UserIDFromContext(r.Context()); caller != req.TenantCognitoID {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "Cannot apply on behalf of another tenant", nil)
		return
	}

	app, err := c.svc.Create(r.Context(), &req)
	if err != nil {
		respondApplicationError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, app)
}

// -----------------------------------------------------------------------------
// GET /api/v1/applications?userId=...&userType=tenant|manager
// -----------------------------------------------------------------------------
func (c *ApplicationController) ListHandler(w http.ResponseWriter, r *http.Request) {
	caller := middleware.UserIDFromContext(r.Context())
	userID := r.URL.Query().Get("userId")
	userType := r.URL.Query().Get("userType")

	if userID == "" {
		userID = caller
	}
	if userType == "" {
		userType = middleware.RoleFromContext(r.Context())
	}
	if userID != caller {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "Cannot list another user's applications", nil)
		return
	}

	var (
		apps []*dtos.ApplicationResponse
		err  error
	)
	switch userType {
	case middleware.RoleManager:
		apps, err = c.svc.ListByManager(r.Context(), userID)
	case middleware.RoleTenant:
		apps, err = c.svc.ListByTenant(r.Context(), userID)
	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "userType must be tenant or manager", nil)
		return
	}
	if err != nil {
		respondApplicationError(w, err)
		return
	}
	if apps == nil {
		apps = []*dtos.ApplicationResponse{}
	}
	utils.RespondWithJSON(w, http.StatusOK, apps)
}

// -----------------------------------------------------------------------------
// PUT /api/v1/applications/{id}/status  (manager only)
// -----------------------------------------------------------------------------
func (c *ApplicationController) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid application id", nil, err)
		return
	}

	var req dtos.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Status must be Approved or Denied", err.Error(), err)
		return
	}

	status, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Status must be Approved or Denied", nil, err)
		return
	}

	app, err := c.svc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		respondApplicationError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

func respondApplicationError(w http.ResponseWriter, err error) {
	switch err {
	case utils.ErrApplicationNotFound:
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Application not found", nil)
	case utils.ErrPropertyNotFound:
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Property not found", nil)
	case utils.ErrTenantNotFound:
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Tenant not found", nil)
	case utils.ErrAlreadyDecided:
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Application already decided", nil)
	case utils.ErrInvalidStatus:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Status must be Approved or Denied", nil)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Application operation failed", nil, err)
	}
}
