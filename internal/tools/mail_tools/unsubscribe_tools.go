package mail_tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailsense/mailsense/internal/server"
	"github.com/mailsense/mailsense/internal/tools/batch"
	"github.com/mailsense/mailsense/internal/tools/common"
	"github.com/mailsense/mailsense/internal/unsubscribe"
)

func handleUnsubscribe(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	senders, err := batch.ParseStringOrArray(args["senderEmail"], "senderEmail")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, errResult := gmailClientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	resolver := unsubscribe.NewResolver(client, nil, nil)

	resolve := func(sender string) unsubscribe.Attempt {
		attempt := resolver.Resolve(ctx, sender)
		if metrics := sc.Metrics(); metrics != nil {
			status := "error"
			if attempt.Success {
				status = "success"
			}
			metrics.RecordUnsubscribeResolution(ctx, attempt.Method, status)
		}
		return attempt
	}

	// Single sender keeps the original flat attempt shape
	if len(senders) == 1 {
		return jsonResult(resolve(senders[0]))
	}

	results := batch.ProcessBatch(ctx, senders, func(ctx context.Context, sender string) (string, error) {
		attempt := resolve(sender)
		data, err := json.Marshal(attempt)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
