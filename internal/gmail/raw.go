package gmail

import (
	"encoding/base64"
	"mime"
	"strings"
)

// BuildRawMessage encodes a minimal plain-text email as a base64url RFC 2822
// message suitable for the drafts.create and messages.send raw field.
// The encoding is base64url without padding: `+` -> `-`, `/` -> `_`, trailing
// `=` stripped.
func BuildRawMessage(to, subject, body string) string {
	rfc2822 := strings.Join([]string{
		"To: " + to,
		"Subject: " + encodeRFC2047(subject),
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	return base64.RawURLEncoding.EncodeToString([]byte(rfc2822))
}

// encodeRFC2047 encodes a string for use in email headers according to RFC 2047.
// This is necessary for non-ASCII characters (like German umlauts) in subjects.
func encodeRFC2047(s string) string {
	needsEncoding := false
	for _, r := range s {
		if r > 127 {
			needsEncoding = true
			break
		}
	}

	if !needsEncoding {
		return s
	}

	return mime.BEncoding.Encode("UTF-8", s)
}
