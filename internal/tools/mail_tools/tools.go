package mail_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailsense/mailsense/internal/genai"
	"github.com/mailsense/mailsense/internal/gmail"
	"github.com/mailsense/mailsense/internal/google"
	"github.com/mailsense/mailsense/internal/server"
	"github.com/mailsense/mailsense/internal/tools/common"
)

// RegisterMailTools registers all mail intelligence tools with the MCP server.
// Read tools are always available; tools that mutate the mailbox or send mail
// are skipped in read-only mode.
func RegisterMailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Rank unread tool
	rankUnreadTool := mcp.NewTool("mail_rank_unread",
		mcp.WithDescription("Rank unread emails by urgency using a blend of AI scoring and keyword/recency heuristics"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of emails to rank (default: 10)"),
		),
	)

	s.AddTool(rankUnreadTool, common.InstrumentedToolHandlerWithService(
		"mail_rank_unread", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRankUnread(ctx, request, sc)
		}))

	// List unread tool
	listUnreadTool := mcp.NewTool("mail_list_unread",
		mcp.WithDescription("List unread emails with sender, subject, and snippet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of emails to return (default: 25)"),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query (default: 'is:unread')"),
		),
	)

	s.AddTool(listUnreadTool, common.InstrumentedToolHandlerWithService(
		"mail_list_unread", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListUnread(ctx, request, sc)
		}))

	// List drafts tool
	listDraftsTool := mcp.NewTool("mail_list_drafts",
		mcp.WithDescription("List saved email drafts with recipient, subject, and snippet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of drafts to return (default: 20)"),
		),
	)

	s.AddTool(listDraftsTool, common.InstrumentedToolHandlerWithService(
		"mail_list_drafts", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListDrafts(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	// Create draft tool
	createDraftTool := mcp.NewTool("mail_create_draft",
		mcp.WithDescription("Compose a new email draft from a free-text prompt. The recipient, subject, and body are extracted by the AI model."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("Free-text description of the email to draft (e.g., 'tell ana the standup moved to 10')"),
		),
	)

	s.AddTool(createDraftTool, common.InstrumentedToolHandlerWithService(
		"mail_create_draft", "gmail", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDraft(ctx, request, sc)
		}))

	// Revise draft tool
	reviseDraftTool := mcp.NewTool("mail_revise_draft",
		mcp.WithDescription("Rewrite an existing draft with the AI model. Returns a NEW draft id; the old draft is deleted."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The id of the draft to revise"),
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("Instruction for the revision (e.g., 'make it sound more professional')"),
		),
	)

	s.AddTool(reviseDraftTool, common.InstrumentedToolHandlerWithService(
		"mail_revise_draft", "gmail", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReviseDraft(ctx, request, sc)
		}))

	// Send from prompt tool
	sendFromPromptTool := mcp.NewTool("mail_send_from_prompt",
		mcp.WithDescription("Compose and immediately send an email from a free-text prompt. Returns the sent-folder view with the new message flagged."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("Free-text description of the email to send"),
		),
	)

	s.AddTool(sendFromPromptTool, common.InstrumentedToolHandlerWithService(
		"mail_send_from_prompt", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendFromPrompt(ctx, request, sc)
		}))

	// Unsubscribe tool (supports single sender or batch)
	unsubscribeTool := mcp.NewTool("mail_unsubscribe",
		mcp.WithDescription("Unsubscribe from one or more senders using List-Unsubscribe headers, embedded links, or a label fallback"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("senderEmail",
			mcp.Required(),
			mcp.Description("Sender email address (string) or array of addresses to unsubscribe from"),
		),
	)

	s.AddTool(unsubscribeTool, common.InstrumentedToolHandlerWithService(
		"mail_unsubscribe", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUnsubscribe(ctx, request, sc)
		}))

	return nil
}

// gmailClientForAccount resolves the Gmail client for account, creating and
// caching it on first use. The returned tool result is non-nil when the
// caller should bail out with it.
func gmailClientForAccount(ctx context.Context, sc *server.ServerContext, account string) (*gmail.Client, *mcp.CallToolResult) {
	client := sc.GmailClientForAccount(account)
	if client != nil {
		return client, nil
	}

	if !gmail.HasTokenForAccount(account) {
		return nil, mcp.NewToolResultError(google.GetAuthenticationErrorMessage(account))
	}

	client, err := gmail.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to create Gmail client for account %s: %v", account, err))
	}
	sc.SetGmailClientForAccount(account, client)
	return client, nil
}

// generatorOrError returns the text-generation gateway or a tool error when
// the model is not configured.
func generatorOrError(sc *server.ServerContext) (genai.Generator, *mcp.CallToolResult) {
	gen := sc.Generator()
	if gen == nil {
		return nil, mcp.NewToolResultError("Text generation is not configured. Set GEMINI_API_KEY and restart the server.")
	}
	return gen, nil
}

// maxResultsFromArgs reads the optional maxResults number argument
func maxResultsFromArgs(args map[string]interface{}) int64 {
	if maxResultsVal, ok := args["maxResults"]; ok {
		if maxResultsFloat, ok := maxResultsVal.(float64); ok {
			return int64(maxResultsFloat)
		}
	}
	return 0
}

// jsonResult marshals v into an indented JSON tool result
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
