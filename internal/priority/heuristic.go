package priority

import (
	"strings"
	"time"

	"github.com/mailsense/mailsense/internal/gmail"
)

// urgencyKeywords each add 2 points when present in the subject or snippet
var urgencyKeywords = []string{
	"urgent",
	"asap",
	"important",
	"deadline",
	"critical",
	"emergency",
	"review",
	"approval",
	"required",
	"action",
}

// receivedLayouts are the timestamp formats the provider hands back in Date
// headers, plus RFC 3339 for synthetic timestamps.
var receivedLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
}

// HeuristicScore computes the deterministic urgency score for a message:
// 2 points per urgency keyword present in the lower-cased subject+snippet,
// plus a recency bonus. It never fails; an unparseable received timestamp
// simply earns no bonus.
func HeuristicScore(msg gmail.MessageSummary, now time.Time) int {
	score := 0
	text := strings.ToLower(msg.Subject + " " + msg.Snippet)
	for _, kw := range urgencyKeywords {
		if strings.Contains(text, kw) {
			score += 2
		}
	}

	return score + recencyBonus(msg.Received, now)
}

// recencyBonus rewards fresh mail: +3 under 24h, +2 under 48h, +1 under 72h.
// Malformed timestamps are treated as very old.
func recencyBonus(received string, now time.Time) int {
	t, ok := parseReceived(received)
	if !ok {
		return 0
	}

	age := now.Sub(t)
	switch {
	case age < 24*time.Hour:
		return 3
	case age < 48*time.Hour:
		return 2
	case age < 72*time.Hour:
		return 1
	}
	return 0
}

func parseReceived(received string) (time.Time, bool) {
	received = strings.TrimSpace(received)
	if received == "" {
		return time.Time{}, false
	}
	for _, layout := range receivedLayouts {
		if t, err := time.Parse(layout, received); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
