package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type registerDoneMsg struct{ err error }

type registerModel struct {
	deps appDeps
	form form
	busy bool
}

func newRegisterModel(deps appDeps) *registerModel {
	return &registerModel{
		deps: deps,
		form: form{fields: []*field{
			{label: "Username"},
			{label: "Email"},
			{label: "Password", secret: true},
		}},
	}
}

func (m *registerModel) Init() tea.Cmd { return nil }

func (m *registerModel) submit() tea.Cmd {
	username := m.form.fields[0].value
	email := m.form.fields[1].value
	password := m.form.fields[2].value
	if email == "" || password == "" {
		return status("Please enter both email and password")
	}

	m.busy = true
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()

		body := map[string]string{"Username": username, "Email": email, "Password": password}
		return registerDoneMsg{err: deps.api.PostJSON(ctx, "/api/users", body, nil)}
	}
}

func (m *registerModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, status("Registration failed: " + userFacing(msg.err))
		}
		return m, tea.Batch(
			func() tea.Msg { return navPop() },
			status("Registered, you can log in now"),
		)
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if msg.String() == "enter" {
			return m, m.submit()
		}
		m.form.handleKey(msg)
	}
	return m, nil
}

func (m *registerModel) View() string {
	body := m.form.render()
	if m.busy {
		body += dimStyle.Render("Registering...") + "\n"
	}
	return body + "\n" + helpStyle.Render("enter register · tab next field")
}
