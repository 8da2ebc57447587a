package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/njorogek/pesaflow/internal/model"
)

// Shared field extractors. All of them operate on normalized text, never
// fail, and signal absence through a documented default or a bool.
var (
	// Leading reference code followed by the confirmation keyword,
	// e.g. "QAB1X2Y3 Confirmed."
	txIDPattern = regexp.MustCompile(`(?i)^([A-Z0-9]{6,})\s+Confirmed`)

	// First currency-marker-prefixed numeric token.
	amountPattern = regexp.MustCompile(`(?i)Ksh\s?([\d.]+)`)

	// Numeric date and time pair, e.g. "on 11/9/25 at 2:30 PM".
	dateTimePattern = regexp.MustCompile(`(?i)on\s([\d/]+)\s+at\s(\d{1,2}:\d{2}\s?(?:AM|PM)?)`)

	// Carrier fee, e.g. "Transaction cost, Ksh0.00". The comma is optional
	// because normalization may have stripped it.
	costPattern = regexp.MustCompile(`(?i)Transaction cost,?\s*Ksh\s?([\d.]+)`)

	// M-Shwari statements phrase the fee without the comma and sometimes
	// with a trailing period on "cost".
	savingsCostPattern = regexp.MustCompile(`(?i)Transaction cost\.?,?\s+Ksh\s?([\d.]+)`)

	// Kenyan mobile formats: +2547XXXXXXXX, 2547XXXXXXXX, 10 digits with a
	// leading zero, or 9 digits with a leading 7.
	phonePattern = regexp.MustCompile(`(\+?2547\d{8}|\b0\d{9}\b|\b7\d{8}\b)`)

	balancePatterns = map[model.AccountKind]*regexp.Regexp{
		model.AccountMpesa:   regexp.MustCompile(`(?i)New M-?PESA balance is Ksh\s?([\d.]+)`),
		model.AccountPochi:   regexp.MustCompile(`(?i)New (?:Business|Pochi(?: la Biashara)?) balance is Ksh\s?([\d.]+)`),
		model.AccountMshwari: regexp.MustCompile(`(?i)New M-?Shwari (?:saving )?(?:account )?balance is Ksh\s?([\d.]+)`),
	}
)

// extractTxID returns the leading reference code, or model.UnknownTxID when
// the message has none.
func extractTxID(text string) string {
	if m := txIDPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return model.UnknownTxID
}

// extractAmount returns the first currency-prefixed amount, or 0. A genuine
// zero is indistinguishable from absence; callers treat both as "no amount".
func extractAmount(text string) float64 {
	if m := amountPattern.FindStringSubmatch(text); m != nil {
		return parseDecimal(m[1])
	}
	return 0
}

// extractDateTime returns the date and time tokens from the "on ... at ..."
// phrase. Either may be empty when the phrase is missing. Both are kept in
// the message's own format.
func extractDateTime(text string) (date, clock string) {
	if m := dateTimePattern.FindStringSubmatch(text); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return "", ""
}

// extractCost returns the carrier fee, or 0 when the message has no
// transaction-cost phrase.
func extractCost(text string) float64 {
	if m := costPattern.FindStringSubmatch(text); m != nil {
		return parseDecimal(m[1])
	}
	return 0
}

// extractSavingsCost is the M-Shwari variant of extractCost.
func extractSavingsCost(text string) float64 {
	if m := savingsCostPattern.FindStringSubmatch(text); m != nil {
		return parseDecimal(m[1])
	}
	return extractCost(text)
}

// extractPhone returns the first Kenyan-format phone number in text, or "".
func extractPhone(text string) string {
	if m := phonePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractBalance looks up the "New <account> balance is Ksh<amount>" phrase
// for one account kind. The bool reports whether the message mentioned that
// balance at all.
func extractBalance(text string, kind model.AccountKind) (float64, bool) {
	p, ok := balancePatterns[kind]
	if !ok {
		return 0, false
	}
	if m := p.FindStringSubmatch(text); m != nil {
		return parseDecimal(m[1]), true
	}
	return 0, false
}

// parseDecimal parses a numeric token that may carry a trailing period from
// sentence punctuation. Unparseable tokens degrade to 0.
func parseDecimal(token string) float64 {
	token = strings.TrimRight(token, ".")
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
