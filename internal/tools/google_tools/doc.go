// Package google_tools provides MCP tools for Google OAuth authentication.
// These tools let an AI agent walk a user through the authorization flow and
// persist the resulting token per account.
package google_tools
