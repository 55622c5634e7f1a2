package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mailsense/mailsense/internal/gmail"
)

func TestHeuristicScoreKeywords(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-200 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name     string
		subject  string
		snippet  string
		expected int
	}{
		{"no keywords", "Lunch on Friday?", "See you there", 0},
		{"single keyword", "Urgent request", "", 2},
		{"two keywords in subject", "Urgent action required", "", 6}, // urgent, action, required
		{"keyword in snippet", "Hello", "please review the attached", 2},
		{"keywords case-insensitive", "DEADLINE tomorrow", "this is CRITICAL", 4},
		{"keyword counted once per list entry", "urgent urgent urgent", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := gmail.MessageSummary{Subject: tt.subject, Snippet: tt.snippet, Received: old}
			assert.Equal(t, tt.expected, HeuristicScore(msg, now))
		})
	}
}

func TestHeuristicScoreAddingKeywordAddsTwo(t *testing.T) {
	now := time.Now()
	old := now.Add(-200 * time.Hour).Format(time.RFC3339)

	base := gmail.MessageSummary{Subject: "Status update", Received: old}
	withKeyword := gmail.MessageSummary{Subject: "Status update deadline", Received: old}

	assert.Equal(t, HeuristicScore(base, now)+2, HeuristicScore(withKeyword, now))
}

func TestRecencyBonusMonotonic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	score := func(age time.Duration) int {
		msg := gmail.MessageSummary{Received: now.Add(-age).Format(time.RFC3339)}
		return HeuristicScore(msg, now)
	}

	h1 := score(1 * time.Hour)
	h30 := score(30 * time.Hour)
	h50 := score(50 * time.Hour)
	h100 := score(100 * time.Hour)

	assert.Equal(t, 3, h1)
	assert.Equal(t, 2, h30)
	assert.Equal(t, 1, h50)
	assert.Equal(t, 0, h100)
	assert.GreaterOrEqual(t, h1, h30)
	assert.GreaterOrEqual(t, h30, h50)
	assert.GreaterOrEqual(t, h50, h100)
}

func TestRecencyBonusMailDateHeader(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := gmail.MessageSummary{Received: "Sun, 1 Jun 2025 09:00:00 +0000"}
	assert.Equal(t, 3, HeuristicScore(msg, now))
}

func TestHeuristicScoreMalformedTimestamp(t *testing.T) {
	now := time.Now()

	// Malformed timestamps are treated as very old: no bonus, no error
	msg := gmail.MessageSummary{Subject: "urgent", Received: "not-a-date"}
	assert.Equal(t, 2, HeuristicScore(msg, now))

	empty := gmail.MessageSummary{Received: ""}
	assert.Equal(t, 0, HeuristicScore(empty, now))
}

func TestHeuristicScoreNonNegative(t *testing.T) {
	now := time.Now()
	msgs := []gmail.MessageSummary{
		{},
		{Subject: "hello", Snippet: "world"},
		{Received: "garbage"},
		{Subject: "urgent deadline critical", Received: now.Format(time.RFC3339)},
	}
	for _, msg := range msgs {
		assert.GreaterOrEqual(t, HeuristicScore(msg, now), 0)
	}
}
