package main

import (
	"context"
	"fmt"
	"strings"

	"spotdrop/navigation"
	"spotdrop/session"
	"spotdrop/spotfeed"

	tea "github.com/charmbracelet/bubbletea"
)

type spotsLoadedMsg struct {
	spots      []spotfeed.Spot
	categories []string
	err        error
}

type pickedUpMsg struct {
	spotID int
	err    error
}

// directoryModel lists every spot with a category filter and the
// mark-as-picked-up action. It is also the home screen: the other screens
// hang off it.
type directoryModel struct {
	deps       appDeps
	sess       session.Session
	spots      []spotfeed.Spot
	categories []string
	category   int // index into categories, 0 = all
	cursor     int
	loading    bool
}

func newDirectoryModel(deps appDeps, sess session.Session) *directoryModel {
	return &directoryModel{deps: deps, sess: sess, loading: true}
}

func (m *directoryModel) load() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()

		spots, err := deps.spots.All(ctx)
		if err != nil {
			return spotsLoadedMsg{err: err}
		}
		categories, err := deps.spots.Categories(ctx)
		if err != nil {
			// The list still renders without the filter options.
			categories = nil
		}
		return spotsLoadedMsg{spots: spots, categories: categories}
	}
}

func (m *directoryModel) Init() tea.Cmd { return m.load() }

func (m *directoryModel) visible() []spotfeed.Spot {
	if m.category == 0 || len(m.categories) == 0 {
		return m.spots
	}
	return spotfeed.FilterCategory(m.spots, m.categories[m.category-1])
}

func (m *directoryModel) markPickedUp() tea.Cmd {
	visible := m.visible()
	if m.cursor >= len(visible) {
		return nil
	}
	spotID := visible[m.cursor].ID
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()
		return pickedUpMsg{spotID: spotID, err: deps.spots.MarkPickedUp(ctx, spotID)}
	}
}

func (m *directoryModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spotsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, status("Could not fetch spots: " + userFacing(msg.err))
		}
		m.spots = msg.spots
		if msg.categories != nil {
			m.categories = msg.categories
		}
		if m.cursor >= len(m.spots) {
			m.cursor = 0
		}
		return m, nil
	case pickedUpMsg:
		if msg.err != nil {
			return m, status("Could not mark spot: " + userFacing(msg.err))
		}
		// Cache already updated on confirmed success; re-read it.
		return m, tea.Batch(m.load(), status("Marked as picked up"))
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case "c":
			m.category = (m.category + 1) % (len(m.categories) + 1)
			m.cursor = 0
		case "r":
			m.deps.spots.Invalidate()
			m.loading = true
			return m, m.load()
		case "p":
			return m, m.markPickedUp()
		case "m":
			return m, navPush(navigation.Entry{Screen: navigation.MapExplorer})
		case "n":
			return m, navPush(navigation.Entry{Screen: navigation.SpotCreate})
		case "l":
			return m, navPush(navigation.Entry{Screen: navigation.ChatList})
		case "u":
			return m, navPush(navigation.ProfileEntry(navigation.ProfileParams{UserID: m.sess.UserID}))
		case "x":
			if err := m.deps.sessions.Clear(); err != nil {
				return m, status("Could not log out")
			}
			return m, tea.Batch(
				navReset(navigation.Entry{Screen: navigation.Login}),
				status("Logged out"),
			)
		}
	}
	return m, nil
}

func (m *directoryModel) View() string {
	if m.loading {
		return dimStyle.Render("Loading spots...")
	}

	var b strings.Builder
	filter := "all"
	if m.category > 0 && len(m.categories) > 0 {
		filter = m.categories[m.category-1]
	}
	b.WriteString(dimStyle.Render("category: "+filter) + "\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("No spots") + "\n")
	}
	for i, spot := range visible {
		line := fmt.Sprintf("%s — %s [%s]", spot.Title, spot.Category, spot.Status)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("c filter · p picked up · r refresh · m map · n new · l chats · u profile · x logout"))
	return b.String()
}
