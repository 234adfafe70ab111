// Package redact strips sensitive fragments from strings before they are
// logged or returned in error responses: API keys, backend URLs with
// embedded credentials, and local cache paths.
package redact

import "regexp"

const (
	redactedKey        = "[REDACTED_KEY]"
	redactedCredential = "[REDACTED_CREDENTIAL]"
	redactedPath       = "[REDACTED_PATH]"
	redactedHost       = "[REDACTED_HOST]"
)

var (
	// API keys and tokens in key=value or header-style fragments.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// URLs carrying userinfo before the host.
	credentialURLRegex = regexp.MustCompile(`(?i)[a-z][a-z0-9+.-]*://[^@/\s]+@`)

	// Filesystem paths, which leak data-dir layout in wrapped I/O errors.
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)

	// Host:port endpoints.
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{apiKeyRegex, redactedKey},
		{credentialURLRegex, redactedCredential},
		{unixPathRegex, redactedPath},
		{winPathRegex, redactedPath},
		{hostPortRegex, redactedHost},
	}
)

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive fragments from an error's message. A nil error
// yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
