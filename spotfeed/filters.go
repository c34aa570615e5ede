package spotfeed

import (
	"math"
	"strings"
)

// DefaultProximityThreshold is the search radius in degrees the mobile app
// shipped with.
const DefaultProximityThreshold = 0.1

// FilterCategory keeps spots whose category matches exactly.
func FilterCategory(spots []Spot, category string) []Spot {
	if category == "" {
		return spots
	}
	out := []Spot{}
	for _, s := range spots {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Search keeps spots whose title or description contains the query,
// case-insensitive.
func Search(spots []Spot, query string) []Spot {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return spots
	}
	out := []Spot{}
	for _, s := range spots {
		if strings.Contains(strings.ToLower(s.Title), q) ||
			strings.Contains(strings.ToLower(s.Description), q) {
			out = append(out, s)
		}
	}
	return out
}

// Near keeps spots within threshold of (lat, lng), measured as Euclidean
// distance in degrees. This is deliberately an approximation, not geodesic
// distance. Spots without renderable coordinates are excluded.
func Near(spots []Spot, lat, lng, threshold float64) []Spot {
	out := []Spot{}
	for _, s := range spots {
		slat, slng, ok := s.MarkerCoords()
		if !ok {
			continue
		}
		dlat, dlng := slat-lat, slng-lng
		if math.Sqrt(dlat*dlat+dlng*dlng) < threshold {
			out = append(out, s)
		}
	}
	return out
}
