package chatsync

import (
	"errors"
	"strings"
	"sync"
	"time"

	"spotdrop/apiclient"
)

// ErrStaleFetch is returned when a fetch result arrives after a newer one has
// already been applied. The caller drops the result; state is untouched.
var ErrStaleFetch = errors.New("stale fetch discarded")

// Conversation is the message state between the session user and one
// counterpart. Methods are safe for concurrent use; overlapping fetch
// completions are sequenced by ApplyFetch.
type Conversation struct {
	mu            sync.Mutex
	selfID        int
	counterpartID int
	messages      []Message
	pending       []Message
	seq           uint64
	lastApplied   uint64
}

func NewConversation(selfID, counterpartID int) *Conversation {
	return &Conversation{selfID: selfID, counterpartID: counterpartID}
}

func (c *Conversation) SelfID() int        { return c.selfID }
func (c *Conversation) CounterpartID() int { return c.counterpartID }

// NextSeq tags a fetch about to be issued. Results must be handed back to
// ApplyFetch with the same number.
func (c *Conversation) NextSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *Conversation) involves(msg Message) bool {
	return (msg.SenderID == c.selfID && msg.ReceiverID == c.counterpartID) ||
		(msg.SenderID == c.counterpartID && msg.ReceiverID == c.selfID)
}

// ApplyFetch replaces the message list with a fetch result. Fetched rows are
// filtered to this conversation, so the caller may hand over the user's whole
// message history. Results older than the last applied fetch are discarded.
// Optimistic sends echoed back by the server stop being pending; the rest stay
// queued for the next poll.
func (c *Conversation) ApplyFetch(seq uint64, fetched []Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.lastApplied {
		return ErrStaleFetch
	}
	c.lastApplied = seq

	msgs := make([]Message, 0, len(fetched))
	for _, msg := range fetched {
		if c.involves(msg) {
			msg.Pending = false
			msgs = append(msgs, msg)
		}
	}
	sortAscending(msgs)

	// Reconcile: a server copy of an optimistic send claims exactly one
	// pending entry, matched by text.
	claimed := make([]bool, len(msgs))
	var remaining []Message
	for _, p := range c.pending {
		matched := false
		for i, msg := range msgs {
			if !claimed[i] && msg.SenderID == c.selfID && msg.Text == p.Text {
				claimed[i] = true
				matched = true
				break
			}
		}
		if !matched {
			remaining = append(remaining, p)
		}
	}

	c.messages = msgs
	c.pending = remaining
	return nil
}

// AppendLocal validates and optimistically appends an outgoing message. The
// returned message carries Pending until a fetch reconciles it.
func (c *Conversation) AppendLocal(text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, &apiclient.ValidationError{Field: "text"}
	}

	msg := Message{
		SenderID:   c.selfID,
		ReceiverID: c.counterpartID,
		Text:       text,
		SentAt:     time.Now().UTC(),
		Pending:    true,
	}

	c.mu.Lock()
	c.pending = append(c.pending, msg)
	c.mu.Unlock()
	return msg, nil
}

// DropPending removes one optimistic entry after its send was rejected, so a
// message that never reached the server does not linger in the view.
func (c *Conversation) DropPending(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.pending {
		if p.Text == text {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// Messages returns the conversation oldest-first, pending sends last.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, 0, len(c.messages)+len(c.pending))
	out = append(out, c.messages...)
	out = append(out, c.pending...)
	return out
}

// Display returns the conversation most-recent-first for rendering.
func (c *Conversation) Display() []Message {
	msgs := c.Messages()
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs
}

// SendBody is the wire payload for a send: the mobile contract names the
// receiver "userId".
type SendBody struct {
	Sender int    `json:"sender"`
	UserID int    `json:"userId"`
	Text   string `json:"text"`
}

func (c *Conversation) SendBodyFor(text string) SendBody {
	return SendBody{Sender: c.selfID, UserID: c.counterpartID, Text: text}
}
