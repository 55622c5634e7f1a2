package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation    = "operation"
	KeyService      = "service"
	KeyAccount      = "account"
	KeySenderHash   = "sender_hash"
	KeySenderDomain = "sender_domain"
	KeyDraftID      = "draft_id"
	KeyMessageID    = "message_id"
	KeyModel        = "model"
	KeyDuration     = "duration"
	KeyStatus       = "status"
	KeyError        = "error"
	KeyTool         = "tool"
)

// Status values for consistent logging.
// Note: These are intentionally duplicated from instrumentation package
// to avoid circular dependencies (instrumentation imports logging).
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(slog.String(KeyService, service))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Service returns a slog attribute for the service name.
func Service(svc string) slog.Attr {
	return slog.String(KeyService, svc)
}

// Account returns a slog attribute for the account name.
func Account(account string) slog.Attr {
	return slog.String(KeyAccount, account)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// DraftID returns a slog attribute for a draft identifier.
func DraftID(id string) slog.Attr {
	return slog.String(KeyDraftID, id)
}

// MessageID returns a slog attribute for a message identifier.
func MessageID(id string) slog.Attr {
	return slog.String(KeyMessageID, id)
}

// Model returns a slog attribute for the text generation model name.
func Model(model string) slog.Attr {
	return slog.String(KeyModel, model)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
//
// Usage:
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		// Return an empty Group that slog will omit from output
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a hashed representation of an email for logging purposes.
// This allows correlation of log entries without exposing PII.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// Sender returns a slog attribute with the anonymized sender address.
// Sender addresses are PII; only the hash is logged.
func Sender(email string) slog.Attr {
	return slog.String(KeySenderHash, AnonymizeEmail(email))
}

// ExtractDomain extracts the domain part from an email address.
// This is useful for lower-cardinality logging where the full address would
// create too many unique values.
func ExtractDomain(email string) string {
	if email == "" {
		return ""
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// Domain returns a slog attribute for the sender's domain (lower cardinality
// than the full address).
func Domain(email string) slog.Attr {
	return slog.String(KeySenderDomain, ExtractDomain(email))
}
