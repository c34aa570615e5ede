package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"spotdrop/session"
	"spotdrop/spotfeed"

	tea "github.com/charmbracelet/bubbletea"
)

type createDoneMsg struct{ err error }

type createModel struct {
	deps appDeps
	sess session.Session
	form form
	busy bool
}

func newCreateModel(deps appDeps, sess session.Session) *createModel {
	return &createModel{
		deps: deps,
		sess: sess,
		form: form{fields: []*field{
			{label: "Title"},
			{label: "Description"},
			{label: "Latitude"},
			{label: "Longitude"},
			{label: "Category"},
			{label: "Expiry date"},
			{label: "Photo path"},
		}},
	}
}

func (m *createModel) Init() tea.Cmd { return nil }

func (m *createModel) submit() tea.Cmd {
	draft := spotfeed.Draft{
		Title:       m.form.fields[0].value,
		Description: m.form.fields[1].value,
		Latitude:    m.form.fields[2].value,
		Longitude:   m.form.fields[3].value,
		Category:    m.form.fields[4].value,
		ExpiryDate:  m.form.fields[5].value,
		UserID:      m.sess.UserID,
	}
	photoPath := m.form.fields[6].value

	m.busy = true
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()

		var photo io.Reader
		var photoName string
		if photoPath != "" {
			f, err := os.Open(photoPath)
			if err != nil {
				return createDoneMsg{err: err}
			}
			defer f.Close()
			photo = f
			photoName = filepath.Base(photoPath)
		}

		return createDoneMsg{err: deps.spots.Create(ctx, draft, photoName, photo)}
	}
}

func (m *createModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case createDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, status("Could not create spot: " + userFacing(msg.err))
		}
		return m, tea.Batch(
			func() tea.Msg { return navPop() },
			status("Spot created"),
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

func (m *createModel) View() string {
	body := m.form.render()
	if m.busy {
		body += dimStyle.Render("Submitting...") + "\n"
	}
	return body + "\n" + helpStyle.Render("enter submit · tab next field")
}
