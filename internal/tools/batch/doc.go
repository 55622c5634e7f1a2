// Package batch provides common utilities for tools that accept one or many
// targets, such as unsubscribing from a list of senders.
//
// This package includes helpers for:
//   - Parsing parameters that accept both single values and arrays
//   - Formatting per-target results in a consistent structure
//   - Processing each target independently so one failure never hides the rest
package batch
