package routes

const (
	Health = "/health"

	Properties = "/api/v1/properties"
	Property   = "/api/v1/properties/{id:[0-9]+}"

	Tenants          = "/api/v1/tenants"
	Tenant           = "/api/v1/tenants/{cognitoId}"
	TenantResidences = "/api/v1/tenants/{cognitoId}/current-residences"
	TenantFavorite   = "/api/v1/tenants/{cognitoId}/favorites/{propertyId:[0-9]+}"

	Managers          = "/api/v1/managers"
	Manager           = "/api/v1/managers/{cognitoId}"
	ManagerProperties = "/api/v1/managers/{cognitoId}/properties"

	Applications      = "/api/v1/applications"
	ApplicationStatus = "/api/v1/applications/{id:[0-9]+}/status"

	Leases        = "/api/v1/leases"
	LeasePayments = "/api/v1/leases/{id:[0-9]+}/payments"
)
