package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/mailsense/mailsense/internal/genai"
	"github.com/mailsense/mailsense/internal/gmail"
	"github.com/mailsense/mailsense/internal/logging"
)

// DefaultListLimit bounds how many drafts a listing returns
const DefaultListLimit = 20

// sentPageSize bounds the sent-folder view returned after sending
const sentPageSize = 10

// Sent-view statuses distinguishing the message just submitted from mail that
// was already in the sent folder.
const (
	StatusSentJustNow      = "sent-just-now"
	StatusPreviouslySent   = "previously-sent"
	StatusSendConfirmation = "sent"
)

const extractionPromptTemplate = `You are an email composition assistant.
From the user's request below, extract the recipient address, a subject line,
and a plain-text message body. Write the body in a natural, polite tone.

Return ONLY a valid JSON object in the following format:
{"to": "string", "subject": "string", "body": "string"}

User request:
%s
`

const revisionPromptTemplate = `You are a professional email writing assistant.
Your goal is to rewrite the following email draft to make it sound:
- Polished and professional
- Concise but friendly
- Grammatically correct
Keep the same intent, tone, and important details.
Apply this instruction from the user: %s

Return ONLY a valid JSON object in the following format:
{"subject": "string", "body": "string"}

Here is the draft to improve:
---
Subject: %s

%s
---
`

// MissingFieldsError reports which composition fields the model failed to
// extract from the prompt. Mail is never composed with a blank recipient.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "model extraction missing required fields: " + strings.Join(e.Fields, ", ")
}

// Mailbox is the slice of the mail gateway the manager needs
type Mailbox interface {
	ListDrafts(maxResults int64) ([]*gmailapi.Draft, error)
	GetDraft(draftID string) (*gmailapi.Draft, error)
	CreateDraft(raw string) (*gmailapi.Draft, error)
	DeleteDraft(draftID string) error
	SendRaw(raw string) (*gmailapi.Message, error)
	ListMessages(query string, maxResults int64) ([]*gmailapi.Message, error)
	GetMessage(messageID string) (*gmailapi.Message, error)
}

// SentMessage is one entry of the enriched sent-folder view returned after a
// send, newest first.
type SentMessage struct {
	gmail.MessageSummary
	To     string `json:"to"`
	Status string `json:"status"`
}

// SendResult confirms a send and carries the enriched sent-folder view
type SendResult struct {
	Status       string        `json:"status"`
	NewMailID    string        `json:"newMailId"`
	SentMessages []SentMessage `json:"sentMessages"`
}

// Manager owns the draft lifecycle for one mailbox
type Manager struct {
	mailbox   Mailbox
	generator genai.Generator
	logger    *slog.Logger
}

// NewManager creates a Manager
func NewManager(mailbox Mailbox, generator genai.Generator, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		mailbox:   mailbox,
		generator: generator,
		logger:    logging.WithService(logger, "drafts"),
	}
}

// CreateFromPrompt extracts recipient, subject, and body from a free-text
// request and creates a draft. Extraction failures are hard errors: no field
// is ever defaulted into an outgoing message.
func (m *Manager) CreateFromPrompt(ctx context.Context, prompt string) (gmail.DraftSummary, error) {
	to, subject, body, err := m.extract(ctx, prompt)
	if err != nil {
		return gmail.DraftSummary{}, err
	}

	raw := gmail.BuildRawMessage(to, subject, body)
	draft, err := m.mailbox.CreateDraft(raw)
	if err != nil {
		return gmail.DraftSummary{}, err
	}

	m.logger.Info("created draft from prompt",
		logging.Operation("create_draft"), logging.DraftID(draft.Id))

	return gmail.DraftSummary{
		ID:      draft.Id,
		Subject: subject,
		To:      to,
		Snippet: body,
	}, nil
}

// List returns up to maxResults draft summaries. A draft whose full payload
// cannot be fetched is logged and skipped; one broken draft does not hide the
// rest of the list.
func (m *Manager) List(ctx context.Context, maxResults int64) ([]gmail.DraftSummary, error) {
	if maxResults <= 0 {
		maxResults = DefaultListLimit
	}

	refs, err := m.mailbox.ListDrafts(maxResults)
	if err != nil {
		return nil, err
	}

	summaries := make([]gmail.DraftSummary, 0, len(refs))
	for _, ref := range refs {
		full, err := m.mailbox.GetDraft(ref.Id)
		if err != nil {
			m.logger.Warn("failed to fetch draft, skipping",
				logging.Operation("list_drafts"), logging.DraftID(ref.Id), logging.Err(err))
			continue
		}
		summaries = append(summaries, gmail.SummarizeDraft(full))
	}

	return summaries, nil
}

// Revise rewrites a draft through the model and replaces it. The provider has
// no in-place content update, so the revision creates a new draft first and
// then deletes the old one; the old identifier stops resolving. Deleting the
// old draft is best effort.
func (m *Manager) Revise(ctx context.Context, draftID, prompt string) (gmail.DraftSummary, error) {
	old, err := m.mailbox.GetDraft(draftID)
	if err != nil {
		return gmail.DraftSummary{}, err
	}
	current := gmail.SummarizeDraft(old)

	oldBody := ""
	if old.Message != nil {
		oldBody = gmail.PlainTextBody(old.Message)
	}
	if oldBody == "" {
		oldBody = current.Snippet
	}
	oldSubject := current.Subject

	request := fmt.Sprintf(revisionPromptTemplate, prompt, oldSubject, oldBody)
	rawOutput, err := m.generator.Generate(ctx, request)
	if err != nil {
		return gmail.DraftSummary{}, fmt.Errorf("failed to revise draft %s: %w", draftID, err)
	}

	subject := oldSubject
	body := strings.TrimSpace(genai.StripFences(rawOutput))
	var parsed struct {
		Subject *string `json:"subject"`
		Body    *string `json:"body"`
	}
	if err := genai.DecodeJSON(rawOutput, &parsed); err == nil && parsed.Body != nil {
		body = *parsed.Body
		if parsed.Subject != nil && *parsed.Subject != "" {
			subject = *parsed.Subject
		}
	} else {
		// Model ignored the JSON contract: keep the old subject and treat
		// the whole output as the improved body.
		m.logger.Warn("revision output not parseable as JSON, using raw output as body",
			logging.Operation("revise_draft"), logging.DraftID(draftID))
	}

	to := current.To
	raw := gmail.BuildRawMessage(to, subject, body)
	created, err := m.mailbox.CreateDraft(raw)
	if err != nil {
		return gmail.DraftSummary{}, fmt.Errorf("failed to create revised draft: %w", err)
	}

	if err := m.mailbox.DeleteDraft(draftID); err != nil {
		m.logger.Warn("failed to delete old draft after revision",
			logging.Operation("revise_draft"), logging.DraftID(draftID), logging.Err(err))
	}

	m.logger.Info("revised draft",
		logging.Operation("revise_draft"),
		slog.String("old_draft_id", draftID),
		slog.String("new_draft_id", created.Id))

	return gmail.DraftSummary{
		ID:      created.Id,
		Subject: subject,
		From:    current.From,
		To:      to,
		Snippet: body,
	}, nil
}

// SendFromPrompt extracts a message from a free-text request, sends it, and
// returns the sent-folder view with the new message flagged. Enrichment is
// best effort: a sent-folder listing failure never undoes a successful send.
func (m *Manager) SendFromPrompt(ctx context.Context, prompt string) (SendResult, error) {
	to, subject, body, err := m.extract(ctx, prompt)
	if err != nil {
		return SendResult{}, err
	}

	raw := gmail.BuildRawMessage(to, subject, body)
	sent, err := m.mailbox.SendRaw(raw)
	if err != nil {
		return SendResult{}, err
	}

	m.logger.Info("sent message from prompt",
		logging.Operation("send_from_prompt"), logging.MessageID(sent.Id))

	result := SendResult{
		Status:    StatusSendConfirmation,
		NewMailID: sent.Id,
	}

	refs, err := m.mailbox.ListMessages("in:sent", sentPageSize)
	if err != nil {
		m.logger.Warn("failed to list sent folder after send",
			logging.Operation("send_from_prompt"), logging.Err(err))
		return result, nil
	}

	// The provider lists newest first, so the just-sent message leads
	for _, ref := range refs {
		full, err := m.mailbox.GetMessage(ref.Id)
		if err != nil {
			m.logger.Warn("failed to fetch sent message, skipping",
				logging.Operation("send_from_prompt"), logging.MessageID(ref.Id), logging.Err(err))
			continue
		}
		status := StatusPreviouslySent
		if full.Id == sent.Id {
			status = StatusSentJustNow
		}
		result.SentMessages = append(result.SentMessages, SentMessage{
			MessageSummary: gmail.SummarizeMessage(full),
			To:             gmail.HeaderValue(full, "To"),
			Status:         status,
		})
	}

	return result, nil
}

// extract asks the model for the recipient, subject, and body of a message.
// All three fields are required; anything missing fails the operation.
func (m *Manager) extract(ctx context.Context, prompt string) (to, subject, body string, err error) {
	rawOutput, err := m.generator.Generate(ctx, fmt.Sprintf(extractionPromptTemplate, prompt))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to generate message from prompt: %w", err)
	}

	var parsed struct {
		To      *string `json:"to"`
		Subject *string `json:"subject"`
		Body    *string `json:"body"`
	}
	if err := genai.DecodeJSON(rawOutput, &parsed); err != nil {
		return "", "", "", fmt.Errorf("failed to parse model extraction: %w", err)
	}

	var missing []string
	if parsed.To == nil || strings.TrimSpace(*parsed.To) == "" {
		missing = append(missing, "to")
	}
	if parsed.Subject == nil || strings.TrimSpace(*parsed.Subject) == "" {
		missing = append(missing, "subject")
	}
	if parsed.Body == nil || strings.TrimSpace(*parsed.Body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return "", "", "", &MissingFieldsError{Fields: missing}
	}

	return *parsed.To, *parsed.Subject, *parsed.Body, nil
}
