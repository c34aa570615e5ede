package main

import (
	"context"
	"fmt"
	"strings"

	"spotdrop/navigation"
	"spotdrop/spotfeed"

	tea "github.com/charmbracelet/bubbletea"
)

type ownSpotsLoadedMsg struct {
	spots []spotfeed.Spot
	err   error
}

type spotDeletedMsg struct {
	spotID int
	err    error
}

// profileModel lists the spots owned by one user with a text search and the
// delete action.
type profileModel struct {
	deps    appDeps
	userID  int
	spots   []spotfeed.Spot
	search  field
	cursor  int
	loading bool
}

func newProfileModel(deps appDeps, params navigation.ProfileParams) *profileModel {
	return &profileModel{
		deps:    deps,
		userID:  params.UserID,
		search:  field{label: "Search"},
		loading: true,
	}
}

func (m *profileModel) load() tea.Cmd {
	deps := m.deps
	userID := m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()
		spots, err := deps.spots.ByOwner(ctx, userID)
		return ownSpotsLoadedMsg{spots: spots, err: err}
	}
}

func (m *profileModel) Init() tea.Cmd { return m.load() }

func (m *profileModel) visible() []spotfeed.Spot {
	return spotfeed.Search(m.spots, m.search.value)
}

func (m *profileModel) deleteSelected() tea.Cmd {
	visible := m.visible()
	if m.cursor >= len(visible) {
		return nil
	}
	spotID := visible[m.cursor].ID
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()
		return spotDeletedMsg{spotID: spotID, err: deps.spots.Delete(ctx, spotID)}
	}
}

func (m *profileModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ownSpotsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, status("Could not fetch your spots: " + userFacing(msg.err))
		}
		m.spots = msg.spots
		return m, nil
	case spotDeletedMsg:
		if msg.err != nil {
			// List stays as it was.
			return m, status("Could not delete spot: " + userFacing(msg.err))
		}
		kept := m.spots[:0]
		for _, spot := range m.spots {
			if spot.ID != msg.spotID {
				kept = append(kept, spot)
			}
		}
		m.spots = kept
		if m.cursor >= len(m.visible()) && m.cursor > 0 {
			m.cursor--
		}
		return m, status("Spot deleted")
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case "ctrl+d":
			return m, m.deleteSelected()
		default:
			m.search.handleKey(msg)
			m.cursor = 0
		}
	}
	return m, nil
}

func (m *profileModel) View() string {
	if m.loading {
		return dimStyle.Render("Loading your spots...")
	}

	var b strings.Builder
	b.WriteString(m.search.render(true) + "\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("No spots") + "\n")
	}
	for i, spot := range visible {
		line := fmt.Sprintf("%s — %s [%s]", spot.Title, spot.Description, spot.Status)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("type to search · ctrl+d delete"))
	return b.String()
}
