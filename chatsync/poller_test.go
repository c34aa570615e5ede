package chatsync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerFetchesAndStops(t *testing.T) {
	conv := NewConversation(3, 7)

	var fetches atomic.Int64
	fetch := func(ctx context.Context) ([]Message, error) {
		fetches.Add(1)
		return []Message{{ID: 1, SenderID: 7, ReceiverID: 3, Text: "hey", SentAt: time.Now()}}, nil
	}

	updated := make(chan struct{}, 16)
	poller := NewPoller(conv, fetch, 10*time.Millisecond)
	poller.OnUpdate(func() { updated <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	select {
	case <-updated:
	case <-time.After(time.Second):
		t.Fatalf("poller never applied a fetch")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("poller did not stop on cancel")
	}

	if len(conv.Messages()) != 1 {
		t.Fatalf("expected fetched message applied")
	}
	if fetches.Load() == 0 {
		t.Fatalf("expected at least one fetch")
	}
}

func TestPollerRefresh(t *testing.T) {
	conv := NewConversation(3, 7)

	var fetches atomic.Int64
	fetch := func(ctx context.Context) ([]Message, error) {
		fetches.Add(1)
		return nil, nil
	}

	// Long interval: only the initial fetch and explicit refreshes fire.
	poller := NewPoller(conv, fetch, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	waitFor(t, func() bool { return fetches.Load() >= 1 })
	poller.Refresh()
	waitFor(t, func() bool { return fetches.Load() >= 2 })
}

func TestPollerReportsErrors(t *testing.T) {
	conv := NewConversation(3, 7)
	fetchErr := make(chan error, 1)

	poller := NewPoller(conv, func(ctx context.Context) ([]Message, error) {
		return nil, context.DeadlineExceeded
	}, time.Hour)
	poller.OnError(func(err error) {
		select {
		case fetchErr <- err:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	select {
	case err := <-fetchErr:
		if err == nil {
			t.Fatalf("expected an error")
		}
	case <-time.After(time.Second):
		t.Fatalf("error callback never fired")
	}

	if len(conv.Messages()) != 0 {
		t.Fatalf("failed fetch must leave state unchanged")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}
