package chatsync

import (
	"testing"
	"time"
)

func TestSummarizeGroupsByCounterpart(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []Message{
		{ID: 1, SenderID: 3, ReceiverID: 7, Text: "hi", SentAt: base},
		{ID: 2, SenderID: 7, ReceiverID: 3, Text: "hello", SentAt: base.Add(time.Minute)},
		{ID: 3, SenderID: 9, ReceiverID: 3, Text: "spot still there?", SentAt: base.Add(2 * time.Minute)},
		{ID: 4, SenderID: 3, ReceiverID: 7, Text: "picking it up now", SentAt: base.Add(3 * time.Minute)},
	}

	summaries := Summarize(3, msgs)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].CounterpartID != 7 || summaries[0].LastMessage.Text != "picking it up now" {
		t.Fatalf("unexpected first summary: %+v", summaries[0])
	}
	if summaries[1].CounterpartID != 9 || summaries[1].LastMessage.ID != 3 {
		t.Fatalf("unexpected second summary: %+v", summaries[1])
	}
}

func TestSummarizeIgnoresUnrelatedMessages(t *testing.T) {
	msgs := []Message{
		{ID: 1, SenderID: 5, ReceiverID: 6, Text: "not ours", SentAt: time.Now()},
	}
	if got := Summarize(3, msgs); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}

func TestSummarizeTiesBreakOnID(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []Message{
		{ID: 10, SenderID: 7, ReceiverID: 3, Text: "first", SentAt: at},
		{ID: 11, SenderID: 7, ReceiverID: 3, Text: "second", SentAt: at},
	}
	summaries := Summarize(3, msgs)
	if len(summaries) != 1 || summaries[0].LastMessage.ID != 11 {
		t.Fatalf("expected id 11 to win the tie, got %+v", summaries)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(3, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}
