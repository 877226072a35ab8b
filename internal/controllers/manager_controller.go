package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/middleware"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/services"
	"github.com/rentstead/rentals-service/internal/utils"
)

type ManagerController struct {
	managerSvc  services.ManagerService
	propertySvc services.PropertyService
}

func NewManagerController(managerSvc services.ManagerService, propertySvc services.PropertyService) *ManagerController {
	return &ManagerController{managerSvc: managerSvc, propertySvc: propertySvc}
}

// -----------------------------------------------------------------------------
// POST /api/v1/managers
// -----------------------------------------------------------------------------
func (c *ManagerController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid manager payload", err.Error(), err)
		return
	}

	manager, err := c.managerSvc.Create(r.Context(), &req)
	if err != nil {
		if err == utils.ErrAlreadyExists {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Manager already exists", nil)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not create manager", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, manager)
}

// -----------------------------------------------------------------------------
// GET /api/v1/managers/{cognitoId}
// -----------------------------------------------------------------------------
func (c *ManagerController) GetHandler(w http.ResponseWriter, r *http.Request) {
	cognitoID, ok := c.ownCognitoID(w, r)
	if !ok {
		return
	}

	manager, err := c.managerSvc.GetByCognitoID(r.Context(), cognitoID)
	if err != nil {
		respondManagerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, manager)
}

// -----------------------------------------------------------------------------
// PUT /api/v1/managers/{cognitoId}
// -----------------------------------------------------------------------------
func (c *ManagerController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	cognitoID, ok := c.ownCognitoID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid manager payload", err.Error(), err)
		return
	}

	manager, err := c.managerSvc.Update(r.Context(), cognitoID, &req)
	if err != nil {
		respondManagerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, manager)
}

// -----------------------------------------------------------------------------
// GET /api/v1/managers/{cognitoId}/properties
// -----------------------------------------------------------------------------
func (c *ManagerController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	cognitoID, ok := c.ownCognitoID(w, r)
	if !ok {
		return
	}

	properties, err := c.propertySvc.ListByManager(r.Context(), cognitoID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not list properties", nil, err)
		return
	}
	if properties == nil {
		properties = []*models.Property{}
	}
	utils.RespondWithJSON(w, http.StatusOK, properties)
}

func (c *ManagerController) ownCognitoID(w http.ResponseWriter, r *http.Request) (string, bool) {
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

func respondManagerError(w http.ResponseWriter, err error) {
	if err == utils.ErrManagerNotFound {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Manager not found", nil)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Manager operation failed", nil, err)
}
