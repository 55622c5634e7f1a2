// Package logging provides structured logging utilities for the mailsense application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (sender addresses are hashed, never logged raw)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger scoped to an engine component:
//
//	logger := logging.WithService(slog.Default(), "unsubscribe")
//	logger.Info("resolved sender",
//	    logging.Sender(senderEmail),
//	    logging.Status("success"))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Sender and account emails are hashed to prevent PII leakage while
//     allowing correlation
//   - Tokens are never logged directly
package logging
