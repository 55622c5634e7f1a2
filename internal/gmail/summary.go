package gmail

import (
	"time"

	gmail "google.golang.org/api/gmail/v1"
)

// MessageSummary is the validated view of a mailbox message the engine
// operates on. It is assembled once at the gateway edge; missing headers are
// defaulted here so downstream code never re-checks them.
type MessageSummary struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	From     string `json:"from"`
	Snippet  string `json:"snippet"`
	Received string `json:"received"`
}

// DraftSummary is the validated view of a draft
type DraftSummary struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	To      string `json:"to"`
	Snippet string `json:"snippet"`
}

// SummarizeMessage converts a full provider message into a MessageSummary
func SummarizeMessage(m *gmail.Message) MessageSummary {
	return MessageSummary{
		ID:       m.Id,
		Subject:  headerOrDefault(m, "Subject", "No subject"),
		From:     headerOrDefault(m, "From", "Unknown"),
		Snippet:  m.Snippet,
		Received: headerOrDefault(m, "Date", ""),
	}
}

// SummarizeDraft converts a full provider draft into a DraftSummary
func SummarizeDraft(d *gmail.Draft) DraftSummary {
	s := DraftSummary{ID: d.Id}
	if d.Message != nil {
		s.Subject = headerOrDefault(d.Message, "Subject", "No subject")
		s.From = headerOrDefault(d.Message, "From", "Unknown")
		s.To = headerOrDefault(d.Message, "To", "No recipient")
		s.Snippet = d.Message.Snippet
	} else {
		s.Subject = "No subject"
		s.From = "Unknown"
		s.To = "No recipient"
	}
	return s
}

func headerOrDefault(m *gmail.Message, header, fallback string) string {
	if v := HeaderValue(m, header); v != "" {
		return v
	}
	return fallback
}

// ListUnread fetches up to maxResults messages matching the query and
// summarizes each one. The received time falls back to the time of the fetch
// when the provider supplies no Date header.
func (c *Client) ListUnread(query string, maxResults int64) ([]MessageSummary, error) {
	refs, err := c.ListMessages(query, maxResults)
	if err != nil {
		return nil, err
	}

	summaries := make([]MessageSummary, 0, len(refs))
	for _, ref := range refs {
		full, err := c.GetMessage(ref.Id)
		if err != nil {
			return nil, err
		}
		s := SummarizeMessage(full)
		if s.Received == "" {
			s.Received = time.Now().UTC().Format(time.RFC3339)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
