package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"spotdrop/chatsync"
	"spotdrop/navigation"
	"spotdrop/session"

	tea "github.com/charmbracelet/bubbletea"
)

type chatsLoadedMsg struct {
	summaries []chatsync.Summary
	err       error
}

// chatListModel shows one row per counterpart with the latest message, not
// the backend's flat message rows.
type chatListModel struct {
	deps      appDeps
	sess      session.Session
	summaries []chatsync.Summary
	cursor    int
	loading   bool
}

func newChatListModel(deps appDeps, sess session.Session) *chatListModel {
	return &chatListModel{deps: deps, sess: sess, loading: true}
}

func (m *chatListModel) Init() tea.Cmd {
	deps := m.deps
	selfID := m.sess.UserID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()

		var msgs []chatsync.Message
		if err := deps.api.GetJSON(ctx, "/api/messages", &msgs); err != nil {
			return chatsLoadedMsg{err: err}
		}
		return chatsLoadedMsg{summaries: chatsync.Summarize(selfID, msgs)}
	}
}

func (m *chatListModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, status("Could not fetch chats: " + userFacing(msg.err))
		}
		m.summaries = msg.summaries
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.summaries)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.summaries) {
				params := navigation.ChatParams{
					SelfUserID:    strconv.Itoa(m.sess.UserID),
					CounterpartID: strconv.Itoa(m.summaries[m.cursor].CounterpartID),
				}
				return m, navPush(navigation.ChatEntry(params))
			}
		}
	}
	return m, nil
}

func (m *chatListModel) View() string {
	if m.loading {
		return dimStyle.Render("Loading chats...")
	}
	if len(m.summaries) == 0 {
		return dimStyle.Render("No conversations yet")
	}

	var b strings.Builder
	for i, s := range m.summaries {
		preview := s.LastMessage.Text
		if len(preview) > 40 {
			preview = preview[:40] + "…"
		}
		line := fmt.Sprintf("user %d — %s (%s)",
			s.CounterpartID, preview, s.LastMessage.SentAt.Local().Format("Jan 2 15:04"))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter open chat"))
	return b.String()
}
