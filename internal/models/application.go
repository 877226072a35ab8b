package models

import "time"

type Application struct {
	ID              int64             `json:"id"`
	ApplicationDate time.Time         `json:"applicationDate"`
	Status          ApplicationStatus `json:"status"`
	PropertyID      int64             `json:"propertyId"`
	TenantCognitoID string            `json:"tenantCognitoId"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	PhoneNumber     string            `json:"phoneNumber"`
	Message         string            `json:"message"`

	// Set at creation time; the lease carries the rent/deposit terms
	// locked at the moment of application.
	LeaseID *int64 `json:"leaseId,omitempty"`
}
