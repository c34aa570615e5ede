// Package geocode resolves a city name to coordinates through a third-party
// lookup service.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound means the service returned no result for the query.
var ErrNotFound = errors.New("city not found")

type Geocoder interface {
	Lookup(ctx context.Context, city string) (lat, lng float64, err error)
}

// HTTPGeocoder queries a Nominatim-shaped endpoint: the first result of
// ?q=<city>&format=json wins.
type HTTPGeocoder struct {
	endpoint string
	http     *http.Client
}

func NewHTTPGeocoder(endpoint string, timeout time.Duration) *HTTPGeocoder {
	return &HTTPGeocoder{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGeocoder) Lookup(ctx context.Context, city string) (float64, float64, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", "spotdrop")

	resp, err := g.http.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude in geocode response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude in geocode response: %w", err)
	}
	return lat, lng, nil
}
