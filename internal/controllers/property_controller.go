package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/rentstead/rentals-service/internal/dtos"
	"github.com/rentstead/rentals-service/internal/middleware"
	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/services"
	"github.com/rentstead/rentals-service/internal/utils"
)

// Multipart uploads are capped well above any realistic listing photo set.
const maxUploadBytes = 32 << 20

type PropertyController struct {
	svc services.PropertyService
}

func NewPropertyController(s services.PropertyService) *PropertyController {
	return &PropertyController{svc: s}
}

var validate = validator.New()

// -----------------------------------------------------------------------------
// GET /api/v1/properties
// -----------------------------------------------------------------------------
func (c *PropertyController) SearchHandler(w http.ResponseWriter, r *http.Request) {
	filters := parsePropertyFilters(r.URL.Query())

	properties, err := c.svc.Search(r.Context(), filters)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not search properties", nil, err)
		return
	}
	if properties == nil {
		properties = []*models.Property{}
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertiesResponse{Properties: properties})
}

// -----------------------------------------------------------------------------
// GET /api/v1/properties/{id}
// -----------------------------------------------------------------------------
func (c *PropertyController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property id", nil, err)
		return
	}

	property, err := c.svc.GetByID(r.Context(), id)
	if err != nil {
		respondPropertyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, property)
}

// -----------------------------------------------------------------------------
// POST /api/v1/properties  (multipart/form-data, manager only)
// -----------------------------------------------------------------------------
func (c *PropertyController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
		return
	}

	req := createPropertyRequestFromForm(r)
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid property payload", err.Error(), err)
		return
	}
	if caller := middleware.UserIDFromContext(r.Context()); caller != req.ManagerCognitoID {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "Cannot create a property for another manager", nil)
		return
	}

	var photos []services.PhotoUpload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Unreadable photo upload", nil, err)
				return
			}
			defer file.Close()
			photos = append(photos, services.PhotoUpload{Name: header.Filename, Content: file})
		}
	}

	property, err := c.svc.Create(r.Context(), req, photos)
	if err != nil {
		if err == utils.ErrManagerNotFound {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Manager not found", nil)
			return
		}
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, property)
}

func respondPropertyError(w http.ResponseWriter, err error) {
	if err == utils.ErrPropertyNotFound {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Property not found", nil)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not retrieve property", nil, err)
}

func createPropertyRequestFromForm(r *http.Request) *dtos.CreatePropertyRequest {
	form := func(key string) string { return strings.TrimSpace(r.FormValue(key)) }

	req := &dtos.CreatePropertyRequest{
		Name:              form("name"),
		Description:       form("description"),
		PropertyType:      form("propertyType"),
		ManagerCognitoID:  form("managerCognitoId"),
		Address:           form("address"),
		City:              form("city"),
		State:             form("state"),
		Country:           form("country"),
		PostalCode:        form("postalCode"),
		IsPetsAllowed:     form("isPetsAllowed") == "true",
		IsParkingIncluded: form("isParkingIncluded") == "true",
	}
	req.PricePerMonth, _ = strconv.ParseFloat(form("pricePerMonth"), 64)
	req.SecurityDeposit, _ = strconv.ParseFloat(form("securityDeposit"), 64)
	req.ApplicationFee, _ = strconv.ParseFloat(form("applicationFee"), 64)
	req.Beds, _ = strconv.Atoi(form("beds"))
	req.Baths, _ = strconv.ParseFloat(form("baths"), 64)
	req.SquareFeet, _ = strconv.Atoi(form("squareFeet"))
	req.Amenities = splitCSV(form("amenities"))
	req.Highlights = splitCSV(form("highlights"))
	return req
}

// parsePropertyFilters builds search filters from the query string.
// Malformed or "any" criteria are dropped rather than failing the
// request; a filterless search lists everything.
func parsePropertyFilters(q url.Values) repositories.PropertyFilters {
	var f repositories.PropertyFilters

	get := func(key string) string {
		v := strings.TrimSpace(q.Get(key))
		if strings.EqualFold(v, "any") {
			return ""
		}
		return v
	}

	for _, raw := range splitCSV(get("favoriteIds")) {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.FavoriteIDs = append(f.FavoriteIDs, id)
		}
	}
	if v, err := strconv.ParseFloat(get("priceMin"), 64); err == nil {
		f.PriceMin = utils.Ptr(v)
	}
	if v, err := strconv.ParseFloat(get("priceMax"), 64); err == nil {
		f.PriceMax = utils.Ptr(v)
	}
	if v, err := strconv.Atoi(get("beds")); err == nil {
		f.Beds = utils.Ptr(v)
	}
	if v, err := strconv.ParseFloat(get("baths"), 64); err == nil {
		f.Baths = utils.Ptr(v)
	}
	if v, err := strconv.Atoi(get("squareFeetMin")); err == nil {
		f.SquareFeetMin = utils.Ptr(v)
	}
	if v, err := strconv.Atoi(get("squareFeetMax")); err == nil {
		f.SquareFeetMax = utils.Ptr(v)
	}
	if pt, err := models.ParsePropertyType(get("propertyType")); err == nil {
		f.PropertyType = utils.Ptr(pt)
	}
	for _, raw := range splitCSV(get("amenities")) {
		if a, err := models.ParseAmenity(raw); err == nil {
			f.Amenities = append(f.Amenities, a)
		}
	}
	if t, err := time.Parse(time.RFC3339, get("availableFrom")); err == nil {
		f.AvailableFrom = utils.Ptr(t)
	} else if t, err := time.Parse("2006-01-02", get("availableFrom")); err == nil {
		f.AvailableFrom = utils.Ptr(t)
	}

	lat, latErr := strconv.ParseFloat(get("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(get("longitude"), 64)
	if latErr == nil && lngErr == nil {
		f.Latitude = utils.Ptr(lat)
		f.Longitude = utils.Ptr(lng)
	}

	return f
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
