// Package drafts manages the draft lifecycle: creating drafts from free-text
// intent through the text-generation gateway, listing them, revising them, and
// sending mail straight from a prompt. The mail provider has no "replace draft
// content" primitive, so a revision creates a new draft and deletes the old
// one; the returned identifier is the only valid handle afterwards.
package drafts
