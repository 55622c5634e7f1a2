// Package cmd implements the command-line interface for mailsense.
//
// This package provides the following commands:
//   - rank: Rank unread mail by urgency and print the result
//   - serve: Start the MCP server to provide mail tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The rank command is the default command when no subcommand is specified.
package cmd
