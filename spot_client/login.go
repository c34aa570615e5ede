package main

import (
	"context"

	"spotdrop/navigation"
	"spotdrop/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

type loginDoneMsg struct {
	userID int
	err    error
}

type loginModel struct {
	deps appDeps
	form form
	busy bool
}

func newLoginModel(deps appDeps) *loginModel {
	return &loginModel{
		deps: deps,
		form: form{fields: []*field{
			{label: "Email"},
			{label: "Password", secret: true},
		}},
	}
}

func (m *loginModel) Init() tea.Cmd { return nil }

func (m *loginModel) submit() tea.Cmd {
	email := m.form.fields[0].value
	password := m.form.fields[1].value
	if email == "" || password == "" {
		return status("Please enter both email and password")
	}

	m.busy = true
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()

		var result struct {
			UserID int `json:"userId"`
		}
		body := map[string]string{"Email": email, "Password": password}
		if err := deps.api.PostJSON(ctx, "/api/login", body, &result); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{userID: result.UserID}
	}
}

func (m *loginModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, status("Login failed: " + userFacing(msg.err))
		}
		if err := m.deps.sessions.Save(session.Session{UserID: msg.userID}); err != nil {
			log.Error().Err(err).Msg("failed to persist session")
			return m, status("Could not save session")
		}
		return m, tea.Batch(
			navReset(navigation.Entry{Screen: navigation.SpotDirectory}),
			status("Login successful"),
		)
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			return m, m.submit()
		case "ctrl+r":
			return m, navPush(navigation.Entry{Screen: navigation.Register})
		default:
			m.form.handleKey(msg)
		}
	}
	return m, nil
}

func (m *loginModel) View() string {
	body := m.form.render()
	if m.busy {
		body += dimStyle.Render("Logging in...") + "\n"
	}
	return body + "\n" + helpStyle.Render("enter login · ctrl+r register · tab next field")
}
