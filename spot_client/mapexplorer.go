package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spotdrop/geocode"
	"spotdrop/spotfeed"

	tea "github.com/charmbracelet/bubbletea"
)

type markersLoadedMsg struct {
	spots []spotfeed.Spot
	err   error
}

type citySearchMsg struct {
	city     string
	lat, lng float64
	err      error
}

// mapModel renders the spots that pass the marker rule as a coordinate list,
// with a city search that narrows to nearby spots.
type mapModel struct {
	deps     appDeps
	spots    []spotfeed.Spot
	search   field
	searched string
	nearby   []spotfeed.Spot
	loading  bool
}

func newMapModel(deps appDeps) *mapModel {
	return &mapModel{deps: deps, search: field{label: "City"}, loading: true}
}

func (m *mapModel) Init() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()
		spots, err := deps.spots.All(ctx)
		return markersLoadedMsg{spots: spots, err: err}
	}
}

func (m *mapModel) lookupCity() tea.Cmd {
	city := strings.TrimSpace(m.search.value)
	if city == "" {
		m.searched = ""
		m.nearby = nil
		return nil
	}
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()
		lat, lng, err := deps.geo.Lookup(ctx, city)
		return citySearchMsg{city: city, lat: lat, lng: lng, err: err}
	}
}

func (m *mapModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case markersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, status("Could not fetch spots: " + userFacing(msg.err))
		}
		m.spots = msg.spots
		return m, nil
	case citySearchMsg:
		if msg.err != nil {
			if errors.Is(msg.err, geocode.ErrNotFound) {
				return m, status("No such city: " + msg.city)
			}
			return m, status("City lookup failed: " + msg.err.Error())
		}
		m.searched = msg.city
		m.nearby = spotfeed.Near(m.spots, msg.lat, msg.lng, m.deps.cfg.Spots.ProximityThreshold)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m, m.lookupCity()
		}
		m.search.handleKey(msg)
	}
	return m, nil
}

func (m *mapModel) View() string {
	if m.loading {
		return dimStyle.Render("Loading map...")
	}

	var b strings.Builder
	b.WriteString(m.search.render(true) + "\n\n")

	shown := m.spots
	if m.searched != "" {
		b.WriteString(dimStyle.Render("near "+m.searched) + "\n")
		shown = m.nearby
	}

	markers := 0
	for _, spot := range shown {
		lat, lng, ok := spot.MarkerCoords()
		if !ok {
			continue // no location, no marker
		}
		markers++
		b.WriteString(fmt.Sprintf("  ◉ %-24s (%.4f, %.4f)\n", spot.Title, lat, lng))
	}
	if markers == 0 {
		b.WriteString(dimStyle.Render("  no markers") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("type a city, enter to search"))
	return b.String()
}
