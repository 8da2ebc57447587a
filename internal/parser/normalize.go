// Package parser implements the M-Pesa notification parsing pipeline:
// normalization, failure filtering, template classification and field
// extraction.
package parser

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// The carrier spells the currency marker several ways across templates
	// (KES, ksh, Ksh.). Everything is rewritten to the canonical "Ksh".
	currencyMarker = regexp.MustCompile(`(?i)KES|Ksh\.?`)
)

// Normalize canonicalizes a raw message body for matching: whitespace runs
// collapse to a single space, digit-grouping commas are removed, currency
// spellings unify to "Ksh", and the result is trimmed. Normalize is total
// and idempotent.
func Normalize(raw string) string {
	text := whitespaceRun.ReplaceAllString(raw, " ")
	text = strings.ReplaceAll(text, ",", "")
	text = currencyMarker.ReplaceAllString(text, "Ksh")
	return strings.TrimSpace(text)
}
