package main

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"spotdrop/apiclient"
	"spotdrop/chatsync"

	tea "github.com/charmbracelet/bubbletea"
)

// chatEventMsg is delivered when the poller applied a fetch or failed one. It
// carries the conversation pointer it was issued for, so a late event from a
// previous chat screen lands as a no-op instead of updating the wrong
// conversation.
type chatEventMsg struct {
	conv *chatsync.Conversation
	err  error
}

type chatSentMsg struct {
	conv *chatsync.Conversation
	text string
	err  error
}

type chatModel struct {
	deps   appDeps
	conv   *chatsync.Conversation
	poller *chatsync.Poller
	events chan chatEventMsg
	ctx    context.Context
	cancel context.CancelFunc
	input  field
}

func newChatModel(deps appDeps, selfID, counterpartID int) *chatModel {
	conv := chatsync.NewConversation(selfID, counterpartID)
	m := &chatModel{
		deps:   deps,
		conv:   conv,
		events: make(chan chatEventMsg, 8),
		input:  field{label: "Message"},
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	fetch := func(ctx context.Context) ([]chatsync.Message, error) {
		ctx, cancelReq := context.WithTimeout(ctx, deps.cfg.API.Timeout())
		defer cancelReq()

		var msgs []chatsync.Message
		err := deps.api.GetJSON(ctx, "/api/messages/"+strconv.Itoa(conv.SelfID()), &msgs)
		return msgs, err
	}
	m.poller = chatsync.NewPoller(conv, fetch, deps.cfg.Chat.PollInterval())
	m.poller.OnUpdate(func() { m.emit(chatEventMsg{conv: conv}) })
	m.poller.OnError(func(err error) { m.emit(chatEventMsg{conv: conv, err: err}) })
	return m
}

func (m *chatModel) emit(e chatEventMsg) {
	select {
	case m.events <- e:
	default: // UI behind; the next event carries fresher state anyway
	}
}

// Close stops the poller. A still in-flight fetch then completes as a no-op.
func (m *chatModel) Close() { m.cancel() }

func (m *chatModel) Init() tea.Cmd {
	go m.poller.Run(m.ctx)
	return m.waitCmd()
}

// waitCmd blocks on the next poller event and hands it to Update.
func (m *chatModel) waitCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.events:
			return e
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *chatModel) sendCmd(text string) tea.Cmd {
	conv := m.conv
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.cfg.API.Timeout())
		defer cancel()

		err := deps.api.PostJSON(ctx, "/api/messages", conv.SendBodyFor(text), nil)
		return chatSentMsg{conv: conv, text: text, err: err}
	}
}

func (m *chatModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatEventMsg:
		if msg.conv != m.conv {
			return m, nil
		}
		if msg.err != nil {
			// State stays as it was; the poller retries on the next tick.
			return m, tea.Batch(m.waitCmd(),
				status("Could not fetch messages: "+userFacing(msg.err)))
		}
		return m, m.waitCmd()
	case chatSentMsg:
		if msg.conv != m.conv {
			return m, nil
		}
		if msg.err != nil {
			m.conv.DropPending(msg.text)
			return m, status("Could not send message: " + userFacing(msg.err))
		}
		// Confirmed; poll right away instead of waiting for the tick.
		m.poller.Refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "enter" {
			text := m.input.value
			if _, err := m.conv.AppendLocal(text); err != nil {
				var v *apiclient.ValidationError
				if errors.As(err, &v) {
					return m, status("Message cannot be empty")
				}
				return m, status(err.Error())
			}
			m.input.value = ""
			return m, m.sendCmd(text)
		}
		m.input.handleKey(msg)
	}
	return m, nil
}

const chatWindow = 15

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("chat with user "+strconv.Itoa(m.conv.CounterpartID())) + "\n\n")

	display := m.conv.Display() // most recent first
	if len(display) > chatWindow {
		display = display[:chatWindow]
	}
	if len(display) == 0 {
		b.WriteString(dimStyle.Render("No messages yet") + "\n")
	}
	for _, msg := range display {
		line := msg.Text
		switch {
		case msg.Pending:
			line = pendingStyle.Render("me: " + line + " …")
		case msg.SenderID == m.conv.SelfID():
			line = myMessageStyle.Render("me: " + line)
		default:
			line = otherMessageStyle.Render("them: " + line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.input.render(true))
	b.WriteString("\n" + helpStyle.Render("enter send"))
	return b.String()
}
