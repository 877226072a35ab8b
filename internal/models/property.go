package models

import "time"

type Property struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	PricePerMonth     float64      `json:"pricePerMonth"`
	SecurityDeposit   float64      `json:"securityDeposit"`
	ApplicationFee    float64      `json:"applicationFee"`
	PhotoURLs         []string     `json:"photoUrls"`
	Amenities         []Amenity    `json:"amenities"`
	Highlights        []Highlight  `json:"highlights"`
	IsPetsAllowed     bool         `json:"isPetsAllowed"`
	IsParkingIncluded bool         `json:"isParkingIncluded"`
	Beds              int          `json:"beds"`
	Baths             float64      `json:"baths"`
	SquareFeet        int          `json:"squareFeet"`
	PropertyType      PropertyType `json:"propertyType"`
	PostedDate        time.Time    `json:"postedDate"`
	AverageRating     float64      `json:"averageRating"`
	NumberOfReviews   int          `json:"numberOfReviews"`
	LocationID        int64        `json:"locationId"`
	ManagerCognitoID  string       `json:"managerCognitoId"`

	// Resolved join; always populated on read paths.
	Location *Location `json:"location,omitempty"`

	// Crow-flies distance from the search point, populated only when
	// the search carried a latitude/longitude filter.
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}
