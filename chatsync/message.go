// Package chatsync keeps a conversation's message list in sync with the
// backend over a pull-based poll loop. Fetches are tagged with sequence
// numbers so a slow response can never overwrite newer state, and sends are
// applied optimistically and reconciled against the next fetch.
package chatsync

import (
	"sort"
	"time"
)

// Message mirrors the backend message row. Pending marks an optimistic local
// send the server has not echoed back yet.
type Message struct {
	ID         int       `json:"MessageID"`
	SenderID   int       `json:"SenderID"`
	ReceiverID int       `json:"ReceiverID"`
	Text       string    `json:"MessageText"`
	SentAt     time.Time `json:"SentAt"`
	Read       bool      `json:"ReadStatus"`
	Pending    bool      `json:"-"`
}

// sortAscending orders by SentAt with ID as tiebreak. This is the storage
// order; most-recent-first display is a view transform only.
func sortAscending(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].SentAt.Equal(msgs[j].SentAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].SentAt.Before(msgs[j].SentAt)
	})
}
