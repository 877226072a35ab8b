package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/services"
	"github.com/rentstead/rentals-service/internal/utils"
)

type LeaseController struct {
	svc services.LeaseService
}

func NewLeaseController(s services.LeaseService) *LeaseController {
	return &LeaseController{svc: s}
}

// -----------------------------------------------------------------------------
// GET /api/v1/leases
// -----------------------------------------------------------------------------
func (c *LeaseController) ListHandler(w http.ResponseWriter, r *http.Request) {
	leases, err := c.svc.ListAll(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not list leases", nil, err)
		return
	}
	if leases == nil {
		leases = []*models.Lease{}
	}
	utils.RespondWithJSON(w, http.StatusOK, leases)
}

// -----------------------------------------------------------------------------
// GET /api/v1/leases/{id}/payments
// -----------------------------------------------------------------------------
func (c *LeaseController) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid lease id", nil, err)
		return
	}

	payments, err := c.svc.ListPayments(r.Context(), id)
	if err != nil {
		if err == utils.ErrLeaseNotFound {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Lease not found", nil)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not list payments", nil, err)
		return
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	utils.RespondWithJSON(w, http.StatusOK, payments)
}
