package spotfeed

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"spotdrop/apiclient"
)

// Service is the shared read path into the spot collection. Every screen
// reads through one cache keyed by query, instead of each re-fetching the
// whole collection; mutations invalidate explicitly. Last fetch wins, no TTL.
type Service struct {
	api   *apiclient.Client
	mu    sync.Mutex
	cache map[string][]Spot
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, cache: make(map[string][]Spot)}
}

func (s *Service) cached(key string) ([]Spot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spots, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	out := make([]Spot, len(spots))
	copy(out, spots)
	return out, true
}

func (s *Service) store(key string, spots []Spot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = spots
}

// Invalidate drops every cached query. The next read re-fetches.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string][]Spot)
}

func (s *Service) fetchThrough(ctx context.Context, key, path string) ([]Spot, error) {
	if spots, ok := s.cached(key); ok {
		return spots, nil
	}
	var spots []Spot
	if err := s.api.GetJSON(ctx, path, &spots); err != nil {
		return nil, err
	}
	s.store(key, spots)

	// The cache owns the fetched slice; hand the caller its own copy so later
	// splices never shift elements under a list a screen is holding.
	out := make([]Spot, len(spots))
	copy(out, spots)
	return out, nil
}

// All returns every spot, cached.
func (s *Service) All(ctx context.Context) ([]Spot, error) {
	return s.fetchThrough(ctx, "all", "/api/spot")
}

// ByOwner returns spots owned by the given user, cached per owner.
func (s *Service) ByOwner(ctx context.Context, userID int) ([]Spot, error) {
	key := "owner/" + strconv.Itoa(userID)
	return s.fetchThrough(ctx, key, "/api/spot/user/"+strconv.Itoa(userID))
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.api.GetJSON(ctx, "/api/category", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes a spot. Cached lists are spliced only after the backend
// confirms; on error they are left as they were.
func (s *Service) Delete(ctx context.Context, spotID int) error {
	if err := s.api.Delete(ctx, "/api/spot/"+strconv.Itoa(spotID)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, spots := range s.cache {
		kept := make([]Spot, 0, len(spots))
		for _, spot := range spots {
			if spot.ID != spotID {
				kept = append(kept, spot)
			}
		}
		s.cache[key] = kept
	}
	return nil
}

// MarkPickedUp flips a spot's status. Local state changes only on a confirmed
// success; there is no optimistic-then-rollback.
func (s *Service) MarkPickedUp(ctx context.Context, spotID int) error {
	body := map[string]int{"materialId": spotID}
	if err := s.api.PostJSON(ctx, "/api/mark-as-picked-up", body, nil); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, spots := range s.cache {
		for i := range spots {
			if spots[i].ID == spotID {
				spots[i].Status = StatusPickedUp
			}
		}
	}
	return nil
}

// Draft is the spot-creation form.
type Draft struct {
	Title       string
	Description string
	Latitude    string
	Longitude   string
	Status      string
	ExpiryDate  string
	Category    string
	UserID      int
}

// Create submits the multipart creation form. photo may be nil. Cached
// queries are invalidated on success so the new spot shows up on next read.
func (s *Service) Create(ctx context.Context, d Draft, photoName string, photo io.Reader) error {
	if d.Title == "" {
		return &apiclient.ValidationError{Field: "title"}
	}
	if d.UserID == 0 {
		return &apiclient.ValidationError{Field: "userId"}
	}
	if d.Status == "" {
		d.Status = "available"
	}

	fields := map[string]string{
		"title":       d.Title,
		"description": d.Description,
		"latitude":    d.Latitude,
		"longitude":   d.Longitude,
		"status":      d.Status,
		"expiryDate":  d.ExpiryDate,
		"category":    d.Category,
		"userId":      fmt.Sprint(d.UserID),
	}
	if err := s.api.PostMultipart(ctx, "/api/spot", fields, "photo", photoName, photo); err != nil {
		return err
	}

	s.Invalidate()
	return nil
}
