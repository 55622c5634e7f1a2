package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailsense/mailsense/internal/drafts"
	"github.com/mailsense/mailsense/internal/priority"
	"github.com/mailsense/mailsense/internal/server"
)

// resourcePageSize bounds how many entries a resource view returns
const resourcePageSize = 25

// RegisterMailResources registers the read-only mailbox resources.
// Resources always read the default account; account selection is a tool
// concern.
func RegisterMailResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	unreadResource := mcp.NewResource(
		"mail://unread",
		"Unread Mail",
		mcp.WithResourceDescription("Unread messages of the default account, newest first"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(unreadResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUnreadMail(ctx, request, sc)
	})

	draftsResource := mcp.NewResource(
		"mail://drafts",
		"Mail Drafts",
		mcp.WithResourceDescription("Saved drafts of the default account"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(draftsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleMailDrafts(ctx, request, sc)
	})

	return nil
}

// handleUnreadMail returns the unread inbox view of the default account
func handleUnreadMail(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client := sc.GmailClient()
	if client == nil {
		return nil, fmt.Errorf("no Gmail client available for the default account")
	}

	ranker := priority.NewRanker(client, nil, nil)
	messages, err := ranker.ListUnread(ctx, resourcePageSize, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list unread mail: %w", err)
	}

	return jsonContents(request.Params.URI, messages)
}

// handleMailDrafts returns the saved draft list of the default account
func handleMailDrafts(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client := sc.GmailClient()
	if client == nil {
		return nil, fmt.Errorf("no Gmail client available for the default account")
	}

	manager := drafts.NewManager(client, sc.Generator(), nil)
	summaries, err := manager.List(ctx, resourcePageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	return jsonContents(request.Params.URI, summaries)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
