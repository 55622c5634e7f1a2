// Package mail_tools provides the MCP tools of the mail intelligence engine:
// ranking unread mail by blended heuristic and model urgency, listing unread
// mail and drafts, the prompt-driven draft lifecycle (create, revise, send),
// and unsubscribe resolution for one or many senders.
package mail_tools
