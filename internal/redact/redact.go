// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or returned in error responses. Provider
// errors can echo request URLs that carry the Gemini API key, so anything
// derived from them passes through here first.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder    = "[REDACTED]"
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
)

// Precompiled regex patterns
var (
	// API keys in query strings (?key=...)
	queryKeyRegex = regexp.MustCompile(`(?i)(key|token|api[_-]?key)=[A-Za-z0-9_\-.~]{8,}`)

	// Credentials in assignments and headers
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Google API keys have a fixed prefix
	googleKeyRegex = regexp.MustCompile(`AIza[A-Za-z0-9_\-]{30,}`)

	// Local file paths (prompt template overrides, config files)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	patterns = []struct {
		re          *regexp.Regexp
		placeholder string
	}{
		{queryKeyRegex, "$1=" + RedactedKeyPlaceholder},
		{googleKeyRegex, RedactedKeyPlaceholder},
		{apiKeyRegex, "$1$2" + RedactedKeyPlaceholder},
		{unixPathRegex, RedactedPathPlaceholder},
	}
)

// String returns s with anything resembling credentials or local paths
// replaced by placeholders.
func String(s string) string {
	for _, p := range patterns {
		s = p.re.ReplaceAllString(s, p.placeholder)
	}
	return s
}

// Error returns the redacted message of err, or an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
