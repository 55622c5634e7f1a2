package mail_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailsense/mailsense/internal/drafts"
	"github.com/mailsense/mailsense/internal/server"
	"github.com/mailsense/mailsense/internal/tools/common"
)

func handleListDrafts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	maxResults := maxResultsFromArgs(args)

	client, errResult := gmailClientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	manager := drafts.NewManager(client, sc.Generator(), nil)
	summaries, err := manager.List(ctx, maxResults)
	if err != nil {
		return mcp.NewToolResultError("Failed to list drafts: " + err.Error()), nil
	}

	return jsonResult(summaries)
}

func handleCreateDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	prompt, ok := args["prompt"].(string)
	if !ok || prompt == "" {
		return mcp.NewToolResultError("prompt is required"), nil
	}

	client, errResult := gmailClientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	generator, errResult := generatorOrError(sc)
	if errResult != nil {
		return errResult, nil
	}

	manager := drafts.NewManager(client, generator, nil)
	summary, err := manager.CreateFromPrompt(ctx, prompt)
	if err != nil {
		var missing *drafts.MissingFieldsError
		if errors.As(err, &missing) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Could not compose the draft: the model did not extract %v from the prompt. Please rephrase with an explicit recipient, subject, and message.",
				missing.Fields)), nil
		}
		return mcp.NewToolResultError("Failed to create draft: " + err.Error()), nil
	}

	return jsonResult(summary)
}

func handleReviseDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	draftID, ok := args["draftId"].(string)
	if !ok || draftID == "" {
		return mcp.NewToolResultError("draftId is required"), nil
	}
	prompt, ok := args["prompt"].(string)
	if !ok || prompt == "" {
		return mcp.NewToolResultError("prompt is required"), nil
	}

	client, errResult := gmailClientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	generator, errResult := generatorOrError(sc)
	if errResult != nil {
		return errResult, nil
	}

	manager := drafts.NewManager(client, generator, nil)
	summary, err := manager.Revise(ctx, draftID, prompt)
	if err != nil {
		return mcp.NewToolResultError("Failed to revise draft: " + err.Error()), nil
	}

	return jsonResult(summary)
}

func handleSendFromPrompt(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	prompt, ok := args["prompt"].(string)
	if !ok || prompt == "" {
		return mcp.NewToolResultError("prompt is required"), nil
	}

	client, errResult := gmailClientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	generator, errResult := generatorOrError(sc)
	if errResult != nil {
		return errResult, nil
	}

	manager := drafts.NewManager(client, generator, nil)
	result, err := manager.SendFromPrompt(ctx, prompt)
	if err != nil {
		var missing *drafts.MissingFieldsError
		if errors.As(err, &missing) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Refusing to send: the model did not extract %v from the prompt. Nothing was sent.",
				missing.Fields)), nil
		}
		return mcp.NewToolResultError("Failed to send message: " + err.Error()), nil
	}

	return jsonResult(result)
}
