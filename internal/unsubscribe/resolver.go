package unsubscribe

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/mailsense/mailsense/internal/gmail"
	"github.com/mailsense/mailsense/internal/logging"
)

// Terminal methods of a resolution. The first three indicate a strategy that
// ran to completion; the rest name the point where the chain stopped early.
const (
	MethodMailto     = "mailto"
	MethodURL        = "url"
	MethodURLSnippet = "url-snippet"
	MethodLabelOnly  = "label-only"
	MethodNoMessages = "no-messages"
	MethodListError  = "list-error"
	MethodFetchError = "fetch-error"
)

const (
	labelName     = "UNSUBSCRIBED"
	mailtoSubject = "Unsubscribe"
	mailtoBody    = "Please unsubscribe me from this mailing list."
)

// snippetURLPattern finds the first plain URL embedded in a message snippet
var snippetURLPattern = regexp.MustCompile(`(?i)https?://[\w\-./?=&%]+`)

// Attempt is the outcome of one resolution. Address or URL is set when the
// corresponding strategy succeeded; Error carries diagnostics for the early
// terminal states.
type Attempt struct {
	SenderEmail string `json:"senderEmail"`
	Method      string `json:"method"`
	Success     bool   `json:"success"`
	Address     string `json:"address,omitempty"`
	URL         string `json:"url,omitempty"`
	MessageID   string `json:"messageId,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Mailbox is the slice of the mail gateway the resolver needs
type Mailbox interface {
	ListMessages(query string, maxResults int64) ([]*gmailapi.Message, error)
	GetMessage(messageID string) (*gmailapi.Message, error)
	SendRaw(raw string) (*gmailapi.Message, error)
	ListLabels() ([]*gmailapi.Label, error)
	CreateLabel(name string) (*gmailapi.Label, error)
	AddLabel(messageID, labelID string) error
}

// Resolver walks the unsubscribe strategy chain for one sender at a time
type Resolver struct {
	mailbox Mailbox
	http    *http.Client
	logger  *slog.Logger
}

// NewResolver creates a Resolver. A nil httpClient gets a default with a
// request timeout so a slow unsubscribe endpoint cannot stall the chain.
func NewResolver(mailbox Mailbox, httpClient *http.Client, logger *slog.Logger) *Resolver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		mailbox: mailbox,
		http:    httpClient,
		logger:  logging.WithService(logger, "unsubscribe"),
	}
}

// Resolve runs the strategy chain for senderEmail. It never returns an error:
// failures terminate the chain with a diagnostic method instead, and a single
// candidate's failure only advances the chain to the next candidate.
func (r *Resolver) Resolve(ctx context.Context, senderEmail string) Attempt {
	attempt := Attempt{SenderEmail: senderEmail}

	refs, err := r.mailbox.ListMessages("from:"+senderEmail, 1)
	if err != nil {
		r.logger.Error("failed to list messages from sender",
			logging.Operation("resolve"), logging.Sender(senderEmail), logging.Domain(senderEmail), logging.Err(err))
		attempt.Method = MethodListError
		attempt.Error = err.Error()
		return attempt
	}
	if len(refs) == 0 {
		attempt.Method = MethodNoMessages
		return attempt
	}

	msg, err := r.mailbox.GetMessage(refs[0].Id)
	if err != nil {
		r.logger.Error("failed to fetch message from sender",
			logging.Operation("resolve"), logging.Sender(senderEmail), logging.Domain(senderEmail), logging.Err(err))
		attempt.Method = MethodFetchError
		attempt.Error = err.Error()
		return attempt
	}
	attempt.MessageID = msg.Id

	for _, candidate := range parseCandidates(gmail.HeaderValue(msg, "List-Unsubscribe")) {
		lower := strings.ToLower(candidate)
		switch {
		case strings.HasPrefix(lower, "mailto:"):
			addr := mailtoAddress(candidate)
			if addr == "" {
				r.logger.Warn("skipping malformed mailto candidate",
					logging.Operation("resolve"), slog.String("candidate", candidate))
				continue
			}
			raw := gmail.BuildRawMessage(addr, mailtoSubject, mailtoBody)
			if _, err := r.mailbox.SendRaw(raw); err != nil {
				r.logger.Warn("mailto unsubscribe failed, trying next candidate",
					logging.Operation("resolve"), slog.String("address", addr), logging.Err(err))
				continue
			}
			r.applyLabel(msg.Id)
			attempt.Method = MethodMailto
			attempt.Success = true
			attempt.Address = addr
			return attempt

		case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
			if err := r.get(ctx, candidate); err != nil {
				r.logger.Warn("http unsubscribe failed, trying next candidate",
					logging.Operation("resolve"), slog.String("url", candidate), logging.Err(err))
				continue
			}
			r.applyLabel(msg.Id)
			attempt.Method = MethodURL
			attempt.Success = true
			attempt.URL = candidate
			return attempt

		default:
			r.logger.Warn("skipping unrecognized unsubscribe candidate",
				logging.Operation("resolve"), slog.String("candidate", candidate))
		}
	}

	if url := snippetURLPattern.FindString(msg.Snippet); url != "" {
		if err := r.get(ctx, url); err == nil {
			r.applyLabel(msg.Id)
			attempt.Method = MethodURLSnippet
			attempt.Success = true
			attempt.URL = url
			return attempt
		}
		r.logger.Warn("snippet unsubscribe URL failed",
			logging.Operation("resolve"), slog.String("url", url))
	}

	// Nothing actionable worked: mark the message so the mailbox still
	// records the attempt, but do not claim the sender was unsubscribed.
	r.applyLabel(msg.Id)
	attempt.Method = MethodLabelOnly
	return attempt
}

// parseCandidates splits a List-Unsubscribe header into its URI candidates,
// preserving header order. Entries arrive as "<mailto:a@b>, <https://c/d>".
func parseCandidates(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	candidates := make([]string, 0, len(parts))
	for _, part := range parts {
		c := strings.TrimSpace(part)
		c = strings.TrimPrefix(c, "<")
		c = strings.TrimSuffix(c, ">")
		c = strings.TrimSpace(c)
		if c != "" {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// mailtoAddress extracts the bare address from a mailto: URI, dropping any
// query parameters. Returns "" when no address remains.
func mailtoAddress(candidate string) string {
	addr := candidate[len("mailto:"):]
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	return strings.TrimSpace(addr)
}

// get issues a GET to an unsubscribe endpoint. Any 4xx/5xx counts as failure.
func (r *Resolver) get(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode >= 400 {
		return fmt.Errorf("unsubscribe endpoint returned %s", res.Status)
	}
	return nil
}

// applyLabel tags the inspected message with the UNSUBSCRIBED label. Label
// failures are logged, never propagated: labeling is bookkeeping, not part of
// the strategy outcome.
func (r *Resolver) applyLabel(messageID string) {
	labelID, err := r.ensureLabel()
	if err != nil {
		r.logger.Warn("failed to ensure unsubscribe label",
			logging.Operation("apply_label"), logging.Err(err))
		return
	}
	if err := r.mailbox.AddLabel(messageID, labelID); err != nil {
		r.logger.Warn("failed to label message",
			logging.Operation("apply_label"), logging.MessageID(messageID), logging.Err(err))
	}
}

// ensureLabel returns the UNSUBSCRIBED label id, creating the label when it
// does not exist yet. Creation is check-then-act: a concurrent creator winning
// the race surfaces as an "already exists" error, which the re-list absorbs.
func (r *Resolver) ensureLabel() (string, error) {
	labels, err := r.mailbox.ListLabels()
	if err != nil {
		return "", fmt.Errorf("failed to list labels: %w", err)
	}
	for _, l := range labels {
		if l.Name == labelName {
			return l.Id, nil
		}
	}

	created, err := r.mailbox.CreateLabel(labelName)
	if err == nil {
		return created.Id, nil
	}

	labels, listErr := r.mailbox.ListLabels()
	if listErr == nil {
		for _, l := range labels {
			if l.Name == labelName {
				return l.Id, nil
			}
		}
	}
	return "", fmt.Errorf("failed to create label %s: %w", labelName, err)
}
