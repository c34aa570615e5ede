package chatsync

import (
	"context"
	"time"
)

// FetchFunc loads the session user's message history from the backend.
type FetchFunc func(ctx context.Context) ([]Message, error)

// Poller re-fetches a conversation on a fixed interval. A fetch runs in its
// own goroutine so a slow response never delays the next tick; out-of-order
// completions are handled by the conversation's sequence check. Run returns
// when the context is cancelled (screen teardown); any still in-flight fetch
// then completes as a no-op.
type Poller struct {
	conv     *Conversation
	fetch    FetchFunc
	interval time.Duration
	refresh  chan struct{}
	onUpdate func()
	onError  func(error)
}

func NewPoller(conv *Conversation, fetch FetchFunc, interval time.Duration) *Poller {
	return &Poller{
		conv:     conv,
		fetch:    fetch,
		interval: interval,
		refresh:  make(chan struct{}, 1),
	}
}

// OnUpdate registers a callback invoked after each applied fetch.
func (p *Poller) OnUpdate(fn func()) { p.onUpdate = fn }

// OnError registers a callback for fetch failures. Failures leave the message
// list unchanged.
func (p *Poller) OnError(fn func(error)) { p.onError = fn }

// Refresh nudges the poller to fetch now, used right after a send. Never
// blocks; a nudge while one is queued is dropped.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetchOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchOnce(ctx)
		case <-p.refresh:
			p.fetchOnce(ctx)
		}
	}
}

func (p *Poller) fetchOnce(ctx context.Context) {
	seq := p.conv.NextSeq()
	go func() {
		msgs, err := p.fetch(ctx)
		if err != nil {
			if p.onError != nil && ctx.Err() == nil {
				p.onError(err)
			}
			return
		}
		if err := p.conv.ApplyFetch(seq, msgs); err != nil {
			return // stale, drop
		}
		if p.onUpdate != nil {
			p.onUpdate()
		}
	}()
}
