package dtos

import (
	"time"

	"github.com/rentstead/rentals-service/internal/models"
)

type CreateApplicationRequest struct {
	PropertyID      int64  `json:"propertyId" validate:"required"`
	TenantCognitoID string `json:"tenantCognitoId" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber"`
	Message         string `json:"message"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Denied"`
}

// ApplicationResponse enriches an application with the records its foreign
// keys point at, matching what listing screens need in one round trip.
type ApplicationResponse struct {
	models.Application

	Property *models.Property `json:"property,omitempty"`
	Tenant   *models.Tenant   `json:"tenant,omitempty"`
	Manager  *models.Manager  `json:"manager,omitempty"`
	Lease    *models.Lease    `json:"lease,omitempty"`

	// Populated only for approved applications with an active lease.
	NextPaymentDate *time.Time `json:"nextPaymentDate,omitempty"`
}
