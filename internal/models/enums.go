package models

import "fmt"

// ------------------------------------------------------------------------
// PropertyType enumerates the rentable unit categories.
// ------------------------------------------------------------------------
type PropertyType string

const (
	PropertyTypeRooms     PropertyType = "Rooms"
	PropertyTypeTinyhouse PropertyType = "Tinyhouse"
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeVilla     PropertyType = "Villa"
	PropertyTypeTownhouse PropertyType = "Townhouse"
	PropertyTypeCottage   PropertyType = "Cottage"
)

func ParsePropertyType(s string) (PropertyType, error) {
	switch PropertyType(s) {
	case PropertyTypeRooms, PropertyTypeTinyhouse, PropertyTypeApartment,
		PropertyTypeVilla, PropertyTypeTownhouse, PropertyTypeCottage:
		return PropertyType(s), nil
	default:
		return "", fmt.Errorf("invalid property type: %q", s)
	}
}

// ------------------------------------------------------------------------
// Amenity / Highlight sets attached to a property.
// ------------------------------------------------------------------------
type Amenity string

const (
	AmenityWasherDryer       Amenity = "WasherDryer"
	AmenityAirConditioning   Amenity = "AirConditioning"
	AmenityDishwasher        Amenity = "Dishwasher"
	AmenityHighSpeedInternet Amenity = "HighSpeedInternet"
	AmenityHardwoodFloors    Amenity = "HardwoodFloors"
	AmenityWalkInClosets     Amenity = "WalkInClosets"
	AmenityMicrowave         Amenity = "Microwave"
	AmenityRefrigerator      Amenity = "Refrigerator"
	AmenityPool              Amenity = "Pool"
	AmenityGym               Amenity = "Gym"
	AmenityParking           Amenity = "Parking"
	AmenityPetsAllowed       Amenity = "PetsAllowed"
	AmenityWiFi              Amenity = "WiFi"
)

func ParseAmenity(s string) (Amenity, error) {
	switch Amenity(s) {
	case AmenityWasherDryer, AmenityAirConditioning, AmenityDishwasher,
		AmenityHighSpeedInternet, AmenityHardwoodFloors, AmenityWalkInClosets,
		AmenityMicrowave, AmenityRefrigerator, AmenityPool, AmenityGym,
		AmenityParking, AmenityPetsAllowed, AmenityWiFi:
		return Amenity(s), nil
	default:
		return "", fmt.Errorf("invalid amenity: %q", s)
	}
}

type Highlight string

const (
	HighlightHighSpeedInternetAccess Highlight = "HighSpeedInternetAccess"
	HighlightWasherDryer             Highlight = "WasherDryer"
	HighlightAirConditioning         Highlight = "AirConditioning"
	HighlightHeating                 Highlight = "Heating"
	HighlightSmokeFree               Highlight = "SmokeFree"
	HighlightCableReady              Highlight = "CableReady"
	HighlightSatelliteTV             Highlight = "SatelliteTV"
	HighlightDoubleVanities          Highlight = "DoubleVanities"
	HighlightTubShower               Highlight = "TubShower"
	HighlightIntercom                Highlight = "Intercom"
	HighlightSprinklerSystem         Highlight = "SprinklerSystem"
	HighlightRecentlyRenovated       Highlight = "RecentlyRenovated"
	HighlightCloseToTransit          Highlight = "CloseToTransit"
	HighlightGreatView               Highlight = "GreatView"
	HighlightQuietNeighborhood       Highlight = "QuietNeighborhood"
)

// ------------------------------------------------------------------------
// ApplicationStatus transitions are one-way: Pending → Approved|Denied.
// ------------------------------------------------------------------------
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationDenied   ApplicationStatus = "Denied"
)

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationApproved, ApplicationDenied:
		return ApplicationStatus(s), nil
	default:
		return "", fmt.Errorf("invalid application status: %q", s)
	}
}

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPaid          PaymentStatus = "Paid"
	PaymentPartiallyPaid PaymentStatus = "PartiallyPaid"
	PaymentOverdue       PaymentStatus = "Overdue"
)
