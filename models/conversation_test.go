package models

import (
	"testing"
	"time"
)

func TestSortEntriesNewestFirst(t *testing.T) {
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	entries := []ConversationEntry{
		{ConversationNotes: "first call", ConversationDate: base},
		{ConversationNotes: "third call", ConversationDate: base.AddDate(0, 0, 2)},
		{ConversationNotes: "second call", ConversationDate: base.AddDate(0, 0, 1)},
	}

	sorted := SortEntriesNewestFirst(entries)

	want := []string{"third call", "second call", "first call"}
	for i, note := range want {
		if sorted[i].ConversationNotes != note {
			t.Fatalf("sorted[%d] = %q, want %q", i, sorted[i].ConversationNotes, note)
		}
	}

	// 原切片不被改动
	if entries[0].ConversationNotes != "first call" {
		t.Fatal("input slice must not be mutated")
	}
}

func TestSortEntriesNewestFirstStable(t *testing.T) {
	when := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	// 同一时间戳的记录保持插入顺序
	entries := []ConversationEntry{
		{ConversationNotes: "a", ConversationDate: when},
		{ConversationNotes: "b", ConversationDate: when},
		{ConversationNotes: "c", ConversationDate: when},
	}

	sorted := SortEntriesNewestFirst(entries)
	for i, note := range []string{"a", "b", "c"} {
		if sorted[i].ConversationNotes != note {
			t.Fatalf("equal-date entries must keep insertion order, got %v", sorted)
		}
	}
}

func TestSortEntriesNewestFirstEmpty(t *testing.T) {
	if got := SortEntriesNewestFirst(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
