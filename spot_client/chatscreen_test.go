package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"spotdrop/apiclient"
	"spotdrop/chatsync"
	"spotdrop/config"

	tea "github.com/charmbracelet/bubbletea"
)

func chatTestDeps(t *testing.T, handler http.Handler) appDeps {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	cfg.Chat.PollIntervalMS = 50
	return appDeps{cfg: cfg, api: apiclient.New(srv.URL, time.Second)}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("command did not complete")
		return nil
	}
}

func TestChatScreenPollerAppliesFetch(t *testing.T) {
	deps := chatTestDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/messages/3" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"MessageID":1,"SenderID":7,"ReceiverID":3,"MessageText":"hey","SentAt":"2025-06-01T12:00:00Z"}]`))
	}))

	m := newChatModel(deps, 3, 7)
	defer m.Close()

	// Init starts the poller; the returned command blocks until the first
	// fetch has been applied.
	msg := runCmd(t, m.Init())
	event, ok := msg.(chatEventMsg)
	if !ok {
		t.Fatalf("expected chatEventMsg, got %T", msg)
	}
	if event.conv != m.conv || event.err != nil {
		t.Fatalf("unexpected event: %+v", event)
	}

	msgs := m.conv.Messages()
	if len(msgs) != 1 || msgs[0].Text != "hey" {
		t.Fatalf("fetch not applied: %+v", msgs)
	}
}

func TestChatScreenCloseStopsWaiting(t *testing.T) {
	deps := chatTestDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))

	m := newChatModel(deps, 3, 7)
	m.Close()

	if msg := runCmd(t, m.waitCmd()); msg != nil {
		t.Fatalf("wait after close should yield nil, got %T", msg)
	}
}

func TestChatScreenDropsEventsFromOtherConversations(t *testing.T) {
	deps := chatTestDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))

	m := newChatModel(deps, 3, 7)
	defer m.Close()
	other := chatsync.NewConversation(5, 6)

	if _, cmd := m.Update(chatEventMsg{conv: other}); cmd != nil {
		t.Fatalf("event for another conversation must be a no-op")
	}
	if _, cmd := m.Update(chatSentMsg{conv: other, text: "hi"}); cmd != nil {
		t.Fatalf("send result for another conversation must be a no-op")
	}
}
