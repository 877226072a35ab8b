package models

import "time"

// Lease terms are immutable once created; there is no amendment flow.
type Lease struct {
	ID              int64     `json:"id"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Rent            float64   `json:"rent"`
	Deposit         float64   `json:"deposit"`
	PropertyID      int64     `json:"propertyId"`
	TenantCognitoID string    `json:"tenantCognitoId"`
}
