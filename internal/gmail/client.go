package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/mailsense/mailsense/internal/google"
)

// Client wraps the Gmail Users service
type Client struct {
	svc     *gmail.UsersService
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return google.HasToken()
}

// GetAuthURLForAccount returns the OAuth URL for user authorization of a specific account
func GetAuthURLForAccount(account string) string {
	return google.GetAuthURLForAccount(account)
}

// GetAuthURL returns the OAuth URL for user authorization of the default account
func GetAuthURL() string {
	return google.GetAuthURL()
}

// NewClientForAccount creates a new Gmail client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := gmail.New(client)
	if err != nil {
		return nil, err
	}

	return &Client{
		svc:     svc.Users,
		account: account,
	}, nil
}

// NewClient creates a new Gmail client with OAuth2 authentication for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListMessages lists message references matching the query.
// The returned messages carry only Id and ThreadId; use GetMessage for the
// full payload.
func (c *Client) ListMessages(query string, maxResults int64) ([]*gmail.Message, error) {
	req := c.svc.Messages.List("me").MaxResults(maxResults)
	if query != "" {
		req = req.Q(query)
	}
	res, err := req.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return res.Messages, nil
}

// GetMessage retrieves a full Gmail message
func (c *Client) GetMessage(messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// ListDrafts lists draft references for the authenticated user.
// The returned drafts carry only Id; use GetDraft for the full message.
func (c *Client) ListDrafts(maxResults int64) ([]*gmail.Draft, error) {
	res, err := c.svc.Drafts.List("me").MaxResults(maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return res.Drafts, nil
}

// GetDraft retrieves a full draft including its message payload
func (c *Client) GetDraft(draftID string) (*gmail.Draft, error) {
	draft, err := c.svc.Drafts.Get("me", draftID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft %s: %w", draftID, err)
	}
	return draft, nil
}

// CreateDraft submits a new draft from a raw base64url-encoded RFC 2822 message
func (c *Client) CreateDraft(raw string) (*gmail.Draft, error) {
	draft, err := c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: raw},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

// DeleteDraft permanently deletes a draft
func (c *Client) DeleteDraft(draftID string) error {
	if err := c.svc.Drafts.Delete("me", draftID).Do(); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", draftID, err)
	}
	return nil
}

// SendRaw sends a raw base64url-encoded RFC 2822 message
func (c *Client) SendRaw(raw string) (*gmail.Message, error) {
	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return sent, nil
}

// ListLabels lists all labels in the mailbox
func (c *Client) ListLabels() ([]*gmail.Label, error) {
	res, err := c.svc.Labels.List("me").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return res.Labels, nil
}

// CreateLabel creates a user label visible in both label and message lists
func (c *Client) CreateLabel(name string) (*gmail.Label, error) {
	label, err := c.svc.Labels.Create("me", &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create label %s: %w", name, err)
	}
	return label, nil
}

// AddLabel applies a label to a message
func (c *Client) AddLabel(messageID, labelID string) error {
	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to label message %s: %w", messageID, err)
	}
	return nil
}
