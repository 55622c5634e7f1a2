// Package genai provides the text-generation gateway used by the engine.
// The provider gives no structured-output guarantee; callers enforce JSON
// shape themselves via the extraction helpers in this package.
package genai
