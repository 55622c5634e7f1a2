// Package gmail provides the mail provider gateway used by the engine.
// It wraps the Gmail Users service with the message, draft and label
// operations the ranking, unsubscribe and draft components consume.
package gmail
