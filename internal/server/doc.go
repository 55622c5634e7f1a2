// Package server provides the MCP server context and its operational HTTP
// surfaces for the mailsense application.
//
// ServerContext manages Gmail API clients with lazy initialization and
// per-account caching, and carries the shared text-generation gateway and the
// observability provider used by the tool layer.
//
// HealthChecker exposes Kubernetes-style liveness and readiness probes, and
// MetricsServer serves Prometheus metrics on a dedicated port so operational
// metrics stay off the main MCP transport.
package server
