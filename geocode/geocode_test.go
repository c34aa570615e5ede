package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Almere" {
			t.Fatalf("q = %q, want Almere", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Fatalf("format = %q, want json", got)
		}
		if got := r.Header.Get("User-Agent"); got != "spotdrop" {
			t.Fatalf("user-agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"52.37","lon":"5.21"}]`))
	}))
	defer srv.Close()

	g := NewHTTPGeocoder(srv.URL, 2*time.Second)
	lat, lng, err := g.Lookup(context.Background(), "Almere")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if lat != 52.37 || lng != 5.21 {
		t.Fatalf("got (%v, %v), want (52.37, 5.21)", lat, lng)
	}
}

func TestLookupNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewHTTPGeocoder(srv.URL, 2*time.Second)
	_, _, err := g.Lookup(context.Background(), "Nowhereville")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewHTTPGeocoder(srv.URL, 2*time.Second)
	_, _, err := g.Lookup(context.Background(), "Almere")
	if err == nil {
		t.Fatalf("expected an error on HTTP 502")
	}
}
