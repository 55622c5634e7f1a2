package genai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// codeFence matches markdown code-fence markers with an optional language tag,
// e.g. ```json or a bare ```.
var codeFence = regexp.MustCompile("```[a-zA-Z]*")

// StripFences removes markdown code-fence wrapping from a model response.
// Models frequently wrap JSON answers in ```json blocks despite being asked
// not to.
func StripFences(s string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(s, ""))
}

// DecodeJSON strips code fences from a raw model response and unmarshals the
// remainder into v. This is the single best-effort structured-extraction step
// for model output; callers decide how to degrade when it fails.
func DecodeJSON(raw string, v any) error {
	cleaned := StripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("model response is not valid JSON: %w", err)
	}
	return nil
}
