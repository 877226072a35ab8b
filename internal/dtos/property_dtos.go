package dtos

import (
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/utils"
)

// PropertiesResponse wraps property listings. Search and
// current-residences respond with this envelope.
type PropertiesResponse struct {
	Properties []*models.Property `json:"properties"`
}

// CreatePropertyRequest is decoded from the multipart form on
// POST /properties. Photos ride alongside as file parts.
type CreatePropertyRequest struct {
	Name              string   `json:"name" validate:"required"`
	Description       string   `json:"description"`
	PricePerMonth     float64  `json:"pricePerMonth" validate:"required,gt=0"`
	SecurityDeposit   float64  `json:"securityDeposit" validate:"gte=0"`
	ApplicationFee    float64  `json:"applicationFee" validate:"gte=0"`
	Amenities         []string `json:"amenities"`
	Highlights        []string `json:"highlights"`
	IsPetsAllowed     bool     `json:"isPetsAllowed"`
	IsParkingIncluded bool     `json:"isParkingIncluded"`
	Beds              int      `json:"beds" validate:"required,gte=0"`
	Baths             float64  `json:"baths" validate:"required,gte=0"`
	SquareFeet        int      `json:"squareFeet" validate:"required,gt=0"`
	PropertyType      string   `json:"propertyType" validate:"required"`
	ManagerCognitoID  string   `json:"managerCognitoId" validate:"required"`

	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postalCode"`
}

func (r *CreatePropertyRequest) StreetAddress() utils.StreetAddress {
	return utils.StreetAddress{
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
}

// ToModel converts the request into a property plus its location row.
// Enum values are parsed leniently; unknown entries are dropped.
func (r *CreatePropertyRequest) ToModel() (*models.Property, *models.Location, error) {
	pt, err := models.ParsePropertyType(r.PropertyType)
	if err != nil {
		return nil, nil, err
	}

	var amenities []models.Amenity
	for _, a := range r.Amenities {
		if parsed, err := models.ParseAmenity(a); err == nil {
			amenities = append(amenities, parsed)
		}
	}
	var highlights []models.Highlight
	for _, h := range r.Highlights {
		highlights = append(highlights, models.Highlight(h))
	}

	p := &models.Property{
		Name:              r.Name,
		Description:       r.Description,
		PricePerMonth:     r.PricePerMonth,
		SecurityDeposit:   r.SecurityDeposit,
		ApplicationFee:    r.ApplicationFee,
		Amenities:         amenities,
		Highlights:        highlights,
		IsPetsAllowed:     r.IsPetsAllowed,
		IsParkingIncluded: r.IsParkingIncluded,
		Beds:              r.Beds,
		Baths:             r.Baths,
		SquareFeet:        r.SquareFeet,
		PropertyType:      pt,
		ManagerCognitoID:  r.ManagerCognitoID,
	}
	loc := &models.Location{
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
	return p, loc, nil
}
