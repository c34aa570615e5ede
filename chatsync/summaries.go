package chatsync

import "sort"

// Summary is one chat-list row: a counterpart and the latest message
// exchanged with them.
type Summary struct {
	CounterpartID int
	LastMessage   Message
}

// Summarize collapses a flat message history into one row per distinct
// counterpart, keeping only the most recent message, most recent conversation
// first. Rows not involving selfID are ignored.
func Summarize(selfID int, msgs []Message) []Summary {
	latest := make(map[int]Message)
	for _, msg := range msgs {
		var counterpart int
		switch selfID {
		case msg.SenderID:
			counterpart = msg.ReceiverID
		case msg.ReceiverID:
			counterpart = msg.SenderID
		default:
			continue
		}

		last, ok := latest[counterpart]
		if !ok || msg.SentAt.After(last.SentAt) ||
			(msg.SentAt.Equal(last.SentAt) && msg.ID > last.ID) {
			latest[counterpart] = msg
		}
	}

	summaries := make([]Summary, 0, len(latest))
	for id, msg := range latest {
		summaries = append(summaries, Summary{CounterpartID: id, LastMessage: msg})
	}
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		if a.SentAt.Equal(b.SentAt) {
			return a.ID > b.ID
		}
		return a.SentAt.After(b.SentAt)
	})
	return summaries
}
