// Package common provides shared helpers for the MCP tool packages: account
// selection from tool arguments and handler wrappers that add metrics and
// audit logging around every tool invocation.
package common
