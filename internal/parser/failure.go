package parser

import "regexp"

// failurePatterns match notifications about operations that did not happen.
// These share vocabulary with real transaction templates (amounts, account
// names) and must never be recorded, so the filter runs before
// classification and is authoritative.
var failurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfailed\b`),
	regexp.MustCompile(`(?i)insufficient funds`),
	regexp.MustCompile(`(?i)do not have sufficient funds`),
	regexp.MustCompile(`(?i)wrong pin`),
	regexp.MustCompile(`(?i)unable to process`),
	regexp.MustCompile(`(?i)transaction could not be completed`),
}

// IsFailed reports whether normalized text describes a failed operation.
func IsFailed(text string) bool {
	for _, p := range failurePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
