package utils

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"googlemaps.github.io/maps"
)

// GeocodeTimeout bounds a single lookup so a slow upstream can never
// block property creation.
const GeocodeTimeout = 5 * time.Second

// StreetAddress is the postal address handed to the geocoder.
type StreetAddress struct {
	Address    string
	City       string
	State      string
	Country    string
	PostalCode string
}

func (a StreetAddress) String() string {
	parts := []string{a.Address, a.City, a.State, a.PostalCode, a.Country}
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// Geocoder resolves a postal address to a (longitude, latitude) pair.
type Geocoder interface {
	Geocode(ctx context.Context, addr StreetAddress) (lng, lat float64, err error)
}

/*──────────── Google Maps implementation ────────────*/

var (
	gmapsClientOnce sync.Once
	gmapsClient     *maps.Client
	gmapsClientErr  error
)

type gmapsGeocoder struct {
	apiKey string
}

// NewGMapsGeocoder returns a Geocoder backed by the Google Maps
// Geocoding API. An empty API key yields lookups that always fail,
// which callers degrade to the (0, 0) default coordinate.
func NewGMapsGeocoder(apiKey string) Geocoder {
	return &gmapsGeocoder{apiKey: apiKey}
}

func (g *gmapsGeocoder) client() (*maps.Client, error) {
	gmapsClientOnce.Do(func() {
		gmapsClient, gmapsClientErr = maps.NewClient(maps.WithAPIKey(g.apiKey))
		if gmapsClientErr != nil {
			Logger.WithError(gmapsClientErr).Error("[Geocoder] Failed to initialize Google Maps client")
		}
	})
	return gmapsClient, gmapsClientErr
}

func (g *gmapsGeocoder) Geocode(ctx context.Context, addr StreetAddress) (float64, float64, error) {
	if g.apiKey == "" {
		return 0, 0, fmt.Errorf("geocoding API key is empty")
	}

	cli, err := g.client()
	if err != nil {
		return 0, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, GeocodeTimeout)
	defer cancel()

	results, err := cli.Geocode(ctx, &maps.GeocodingRequest{Address: addr.String()})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", addr.String(), err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("geocode %q: no results", addr.String())
	}

	loc := results[0].Geometry.Location
	return loc.Lng, loc.Lat, nil
}
