package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// Compile-time port checks.
var (
	_ driven.Geocoder        = (*Client)(nil)
	_ driven.PlacesDirectory = (*Client)(nil)
)

// defaultBaseURL is the public Nominatim instance.
const defaultBaseURL = "https://nominatim.openstreetmap.org"

// userAgent identifies the client per the Nominatim usage policy.
const userAgent = "aegis-cli/1.0 (personal safety client)"

// metersPerDegreeLat is the approximate length of one degree of latitude.
const metersPerDegreeLat = 111320.0

// amenities maps service categories to OSM amenity values.
var amenities = map[domain.ServiceCategory]string{
	domain.CategoryPolice:   "police",
	domain.CategoryHospital: "hospital",
}

// Client talks to a Nominatim server for reverse geocoding and
// amenity search.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter
}

// NewClient creates a Nominatim client against the public instance.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a client against a specific Nominatim
// instance. Useful for self-hosted servers and tests.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    NewRateLimiter(DefaultRateLimit),
	}
}

// place is the subset of a Nominatim jsonv2 result the client uses.
type place struct {
	PlaceID     int64  `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// ReverseGeocode resolves a coordinate to its display address.
func (c *Client) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error) {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coord.Lng, 'f', -1, 64))

	var result place
	if err := c.get(ctx, "/reverse", query, &result); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeocodeUnavailable, err)
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("%w: empty result", domain.ErrGeocodeUnavailable)
	}
	return result.DisplayName, nil
}

// NearbySearch finds amenities of the given category inside a bounding
// box approximating the requested radius around center.
func (c *Client) NearbySearch(ctx context.Context, center domain.Coordinate, radiusMeters int, category domain.ServiceCategory) ([]driven.RawHit, error) {
	amenity, ok := amenities[category]
	if !ok {
		return nil, fmt.Errorf("%w: no amenity mapping for category %q", domain.ErrDirectoryUnavailable, category)
	}

	left, top, right, bottom := boundingBox(center, radiusMeters)

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("q", amenity)
	query.Set("limit", "20")
	query.Set("bounded", "1")
	query.Set("viewbox", fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", left, top, right, bottom))

	var results []place
	if err := c.get(ctx, "/search", query, &results); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}

	hits := make([]driven.RawHit, 0, len(results))
	for i := range results {
		hits = append(hits, results[i].rawHit())
	}
	return hits, nil
}

// get performs one rate-limited request and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.limiter.RecordRateLimitError(retryAfter)
		return errors.New("rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// rawHit converts a Nominatim place to a raw hit. Places with
// unparseable coordinates produce hits without a usable coordinate,
// which the discovery engine discards.
func (p *place) rawHit() driven.RawHit {
	hit := driven.RawHit{
		Name:     p.Name,
		Address:  p.DisplayName,
		PlaceRef: strconv.FormatInt(p.PlaceID, 10),
	}
	lat, latErr := strconv.ParseFloat(p.Lat, 64)
	lng, lngErr := strconv.ParseFloat(p.Lon, 64)
	if latErr == nil && lngErr == nil {
		hit.Coordinate = domain.Coordinate{Lat: lat, Lng: lng}
		hit.HasCoordinate = true
	}
	return hit
}

// boundingBox approximates a radius around center as a lat/lng viewbox
// (left, top, right, bottom). Longitude degrees shrink with latitude.
func boundingBox(center domain.Coordinate, radiusMeters int) (left, top, right, bottom float64) {
	dLat := float64(radiusMeters) / metersPerDegreeLat
	scale := math.Cos(center.Lat * math.Pi / 180)
	if scale < 0.01 {
		scale = 0.01
	}
	dLng := float64(radiusMeters) / (metersPerDegreeLat * scale)

	return center.Lng - dLng, center.Lat + dLat, center.Lng + dLng, center.Lat - dLat
}
