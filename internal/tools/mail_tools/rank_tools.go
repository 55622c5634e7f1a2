package mail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailsense/mailsense/internal/priority"
	"github.com/mailsense/mailsense/internal/server"
	"github.com/mailsense/mailsense/internal/tools/common"
)

func handleRankUnread(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	maxResults := maxResultsFromArgs(args)

	client, errResult := gmailClientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	generator, errResult := generatorOrError(sc)
	if errResult != nil {
		return errResult, nil
	}

	ranker := priority.NewRanker(client, priority.NewModelScorer(generator, nil), nil)
	ranked, err := ranker.RankUnread(ctx, maxResults)
	if err != nil {
		return mcp.NewToolResultError("Failed to rank unread emails: " + err.Error()), nil
	}

	return jsonResult(ranked)
}

func handleListUnread(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	maxResults := maxResultsFromArgs(args)

	query := ""
	if queryVal, ok := args["query"].(string); ok {
		query = queryVal
	}

	client, errResult := gmailClientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	ranker := priority.NewRanker(client, nil, nil)
	messages, err := ranker.ListUnread(ctx, maxResults, query)
	if err != nil {
		return mcp.NewToolResultError("Failed to list unread emails: " + err.Error()), nil
	}

	return jsonResult(messages)
}
