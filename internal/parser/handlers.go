package parser

import (
	"regexp"
	"strings"

	"github.com/njorogek/pesaflow/internal/model"
)

var (
	// Sender segment between "from" and the date boundary, e.g.
	// "You have received Ksh500.00 from JOHN DOE 0712345678 on 11/9/25 ...".
	receivedFromPattern = regexp.MustCompile(`(?i)you have received\s+Ksh\s?\d+(?:\.\d+)?\s+from\s+(.+?)(?:\s+on\b|\s+at\b|$)`)

	// Looser fallback when the amount token is malformed or missing.
	looseFromPattern = regexp.MustCompile(`(?i)\bfrom\s+([A-Za-z0-9 .\-&']+)`)

	// Recipient segment between the action phrase and the account/date
	// boundary; handles multi-word recipients like "SAFARICOM DATA BUNDLES".
	recipientPattern = regexp.MustCompile(`(?i)(sent to|paid to|transferred to)\s+(.+?)(?:\s+for account\b|\s+on\b|$)`)

	actionPhrasePattern = regexp.MustCompile(`(?i)sent to|paid to|transferred to`)

	// Paybill sub-account, e.g. "for account 0798765432".
	accountRefPattern = regexp.MustCompile(`(?i)for account\s+(.+?)(?:\s+on\b|$)`)

	movedFromPattern = regexp.MustCompile(`(?i)moved from your ([A-Za-z\- ]+?) account`)
	movedToPattern   = regexp.MustCompile(`(?i)\bto your ([A-Za-z\- ]+?) account`)

	toSavingsPattern = regexp.MustCompile(`(?i)transferred to (?:your )?M-?Shwari`)

	businessWordPattern = regexp.MustCompile(`(?i)business|pochi`)

	trailingPunct = regexp.MustCompile(`[.,;:]+$`)
)

// splitPhone isolates an embedded phone number from a party segment and
// returns the cleaned display name alongside it.
func splitPhone(segment string) (name, phone string) {
	name = strings.TrimSpace(segment)
	if m := phonePattern.FindStringSubmatch(name); m != nil {
		phone = m[1]
		name = strings.TrimSpace(strings.Replace(name, phone, "", 1))
	}
	name = strings.TrimSpace(trailingPunct.ReplaceAllString(name, ""))
	return name, phone
}

// addBalances records every account balance the message mentions. Absent
// kinds stay absent rather than zero.
func addBalances(text string, tx *model.Transaction, kinds ...model.AccountKind) {
	for _, kind := range kinds {
		if v, ok := extractBalance(text, kind); ok {
			if tx.Balances == nil {
				tx.Balances = make(map[model.AccountKind]float64, len(kinds))
			}
			tx.Balances[kind] = v
		}
	}
}

// handleReceived extracts fields for the "you have received" template.
func handleReceived(text string, tx *model.Transaction) {
	tx.Action = "received from"

	if m := receivedFromPattern.FindStringSubmatch(text); m != nil {
		name, phone := splitPhone(m[1])
		if name == "" {
			name = model.UnknownTxID
		}
		tx.From = name
		tx.Phone = phone
	} else {
		if m := looseFromPattern.FindStringSubmatch(text); m != nil {
			tx.From = strings.TrimSpace(m[1])
		}
		// A phone number may still appear anywhere in the message.
		tx.Phone = extractPhone(text)
	}

	addBalances(text, tx, model.AccountMpesa, model.AccountPochi)

	// A business-balance statement means the money landed in the Pochi
	// wallet rather than the personal one.
	if _, ok := tx.Balance(model.AccountPochi); ok {
		tx.To = model.NamePochi
	} else {
		tx.To = model.NameMpesa
	}
}

// handleSent extracts fields for the sent/paid/transferred-out templates.
func handleSent(text string, tx *model.Transaction) {
	if m := actionPhrasePattern.FindString(text); m != "" {
		tx.Action = strings.ToLower(m)
	}

	if m := recipientPattern.FindStringSubmatch(text); m != nil {
		name, phone := splitPhone(m[2])
		if name == "" {
			name = model.UnknownTxID
		}
		tx.To = name
		tx.Phone = phone
	}

	if m := accountRefPattern.FindStringSubmatch(text); m != nil {
		tx.AccountRef = strings.TrimSpace(m[1])
		// The paybill reference often repeats a truncated recipient name;
		// prefer the fuller reference for display when it does.
		if tx.To != "" && strings.Contains(strings.ToLower(tx.AccountRef), strings.ToLower(tx.To)) {
			tx.To = tx.AccountRef
		}
	}

	addBalances(text, tx, model.AccountMpesa, model.AccountPochi)

	if _, ok := tx.Balance(model.AccountPochi); ok || businessSource(text) {
		tx.From = model.NamePochi
	} else {
		tx.From = model.NameMpesa
	}
}

var businessSourcePattern = regexp.MustCompile(`(?i)from your (?:business|pochi[a-z ]*) account`)

func businessSource(text string) bool {
	return businessSourcePattern.MatchString(text)
}

// handleInternal extracts fields for the "has been moved" template.
func handleInternal(text string, tx *model.Transaction) {
	tx.Action = "has been moved"

	if m := movedFromPattern.FindStringSubmatch(text); m != nil {
		tx.From = resolveOwnAccount(m[1])
	}
	if m := movedToPattern.FindStringSubmatch(text); m != nil {
		tx.To = resolveOwnAccount(m[1])
	}

	addBalances(text, tx, model.AccountMpesa, model.AccountPochi)
}

// resolveOwnAccount maps an account phrase from an internal-move message to
// a canonical wallet name.
func resolveOwnAccount(phrase string) string {
	if businessWordPattern.MatchString(phrase) {
		return model.NamePochi
	}
	return model.NameMpesa
}

// handleSavings extracts fields for M-Shwari transfers in either direction.
func handleSavings(text string, tx *model.Transaction) {
	if toSavingsPattern.MatchString(text) {
		tx.Action = "transferred to"
		tx.From = model.NameMpesa
		tx.To = model.NameMshwari
	} else {
		tx.Action = "transferred from"
		tx.From = model.NameMshwari
		tx.To = model.NameMpesa
	}

	addBalances(text, tx, model.AccountMpesa, model.AccountMshwari)

	// The savings template phrases the fee differently from the money
	// movement templates.
	tx.Cost = extractSavingsCost(text)
}
