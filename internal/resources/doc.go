// Package resources provides MCP resources for exposing mailbox data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the unread inbox view and the saved draft list.
package resources
