package gmail

import (
	"encoding/base64"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// HeaderValue extracts a header value from a Gmail message.
// Header names are matched case-insensitively as mail headers are not
// canonicalized by the provider.
func HeaderValue(m *gmail.Message, header string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	for _, mph := range m.Payload.Headers {
		if strings.EqualFold(mph.Name, header) {
			return mph.Value
		}
	}
	return ""
}

// PlainTextBody extracts the decoded text/plain body from a message.
// It prefers a text/plain part, walking nested multipart payloads, and
// returns an empty string when no decodable part exists.
func PlainTextBody(m *gmail.Message) string {
	if m == nil || m.Payload == nil {
		return ""
	}

	var data string
	if m.Payload.MimeType == "text/plain" && m.Payload.Body != nil && m.Payload.Body.Data != "" {
		data = m.Payload.Body.Data
	} else {
		walkParts(m.Payload, func(part *gmail.MessagePart) {
			if data == "" && part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
				data = part.Body.Data
			}
		})
	}

	if data == "" {
		return ""
	}

	decoded, err := decodeBody(data)
	if err != nil {
		return ""
	}
	return decoded
}

// decodeBody decodes base64url-encoded body data.
// Gmail uses RFC 4648 base64url, but some payloads arrive in standard base64.
func decodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			decoded, err = base64.StdEncoding.DecodeString(data)
			if err != nil {
				return "", err
			}
		}
	}
	return string(decoded), nil
}

// walkParts recursively walks through message parts
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}
