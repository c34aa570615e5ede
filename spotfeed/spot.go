// Package spotfeed is the client-side read and mutation path for the spot
// collection: fetch, filter, marker rules, and a shared read-through cache.
package spotfeed

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coord parses a coordinate that one backend variant sends as a number and
// another as a string. Unparseable input becomes NaN, which the marker rule
// treats as missing.
type Coord float64

func (c *Coord) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*c = Coord(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = Coord(math.NaN())
		return nil
	}
	*c = Coord(f)
	return nil
}

func (c Coord) MarshalJSON() ([]byte, error) {
	f := float64(c)
	if math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

type Spot struct {
	ID          int     `json:"MaterialID"`
	Title       string  `json:"Title"`
	Description string  `json:"Description"`
	Latitude    Coord   `json:"Latitude"`
	Longitude   Coord   `json:"Longitude"`
	Status      string  `json:"Status"`
	Category    string  `json:"category"`
	Photo       *string `json:"Photo"`
	ExpiryDate  string  `json:"ExpiryDate"`
	CreatedAt   string  `json:"CreatedAt"`
	OwnerID     int     `json:"UserID"`
}

const StatusPickedUp = "picked_up"

// MarkerCoords reports whether the spot should be rendered as a map marker.
// NaN coordinates and the exact (0,0) pair mean "no location"; (0,0) is the
// common convention for an unset GPS field.
func (s Spot) MarkerCoords() (lat, lng float64, ok bool) {
	lat, lng = float64(s.Latitude), float64(s.Longitude)
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return 0, 0, false
	}
	if lat == 0 && lng == 0 {
		return 0, 0, false
	}
	return lat, lng, true
}
