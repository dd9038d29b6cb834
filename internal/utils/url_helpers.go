package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ErrURLMissing reports an empty url setting.
var ErrURLMissing = fmt.Errorf("URL not provided")

// NormalizeURL validates a user-supplied page URL and fills in a default
// scheme. A bare host like "example.com" becomes "https://example.com"; a
// scheme with no host ("http://") is rejected.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrURLMissing
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL provided: %w", err)
	}

	if parsed.Scheme != "" && parsed.Host != "" {
		return raw, nil
	}
	if parsed.Scheme == "" && parsed.Path != "" {
		return "https://" + raw, nil
	}
	return "", fmt.Errorf("invalid URL provided")
}
