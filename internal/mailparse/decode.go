package mailparse

import (
	"encoding/base64"
	"strings"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
)

// DecodeBody extracts the text content from a raw mail payload.
// Single-part mails carry one encoded blob; multipart mails contribute every
// text/plain and text/html part plus one level of nested sub-parts, in tree
// order. Decoding problems degrade to an empty string, never an error.
func DecodeBody(raw *core.RawMail) string {
	if raw == nil || raw.Payload == nil {
		return ""
	}

	if raw.Payload.Body != nil && raw.Payload.Body.Data != "" {
		return decodeBase64(raw.Payload.Body.Data)
	}

	var body strings.Builder
	for _, part := range raw.Payload.Parts {
		if part == nil {
			continue
		}
		if isTextPart(part.MimeType) && part.Body != nil && part.Body.Data != "" {
			body.WriteString(decodeBase64(part.Body.Data))
		}
		// Nested parts (e.g. inside multipart/alternative)
		for _, sub := range part.Parts {
			if sub != nil && sub.Body != nil && sub.Body.Data != "" {
				body.WriteString(decodeBase64(sub.Body.Data))
			}
		}
	}
	return body.String()
}

func isTextPart(mimeType string) bool {
	return mimeType == "text/plain" || mimeType == "text/html"
}

// decodeBase64 decodes a URL-safe base64 string, with or without padding.
// Malformed input contributes an empty string so one bad part cannot sink
// the rest of the mail.
func decodeBase64(data string) string {
	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(data)
	if decoded, err := base64.StdEncoding.DecodeString(normalized); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(normalized); err == nil {
		return string(decoded)
	}
	return ""
}
