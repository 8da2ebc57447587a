// Package model defines the core domain types for parsed M-Pesa records.
package model

import (
	"crypto/sha256"
	"fmt"
)

// Category identifies which message template produced a transaction.
type Category string

const (
	// CategoryReceived represents money received into the user's wallet.
	CategoryReceived Category = "received"
	// CategorySent represents money sent or paid out of the user's wallet.
	CategorySent Category = "sent"
	// CategoryInternal represents movement between the user's own accounts.
	CategoryInternal Category = "internal"
	// CategorySavings represents a transfer to or from the savings account.
	CategorySavings Category = "savings"
	// CategoryOther represents a real but unrecognized message.
	CategoryOther Category = "other"
)

// Direction indicates the flow of money relative to the user.
type Direction string

const (
	// DirectionIn represents incoming money.
	DirectionIn Direction = "in"
	// DirectionOut represents outgoing money.
	DirectionOut Direction = "out"
	// DirectionInternal represents movement between the user's own accounts.
	DirectionInternal Direction = "internal"
	// DirectionUnknown represents an undetermined flow.
	DirectionUnknown Direction = "unknown"
)

// DirectionFor returns the flow direction implied by a category.
// Direction is never tracked independently of the category.
func DirectionFor(c Category) Direction {
	switch c {
	case CategoryReceived:
		return DirectionIn
	case CategorySent:
		return DirectionOut
	case CategoryInternal, CategorySavings:
		return DirectionInternal
	default:
		return DirectionUnknown
	}
}

// AccountKind identifies one of the user's own mobile-money accounts.
type AccountKind string

const (
	// AccountMpesa is the primary personal wallet.
	AccountMpesa AccountKind = "mpesa"
	// AccountPochi is the Pochi la Biashara business wallet.
	AccountPochi AccountKind = "pochi"
	// AccountMshwari is the linked M-Shwari savings account.
	AccountMshwari AccountKind = "mshwari"
)

// Canonical display names for the user's own accounts. Counterparty fields
// resolve to these when money moves between the user's wallets.
const (
	NameMpesa   = "M-PESA"
	NamePochi   = "POCHI"
	NameMshwari = "M-SHWARI"
)

// UnknownTxID is used when a message carries no leading reference code.
const UnknownTxID = "UNKNOWN"

// Transaction is a structured record extracted from one notification
// message. It is built once by the parser and never mutated afterwards.
type Transaction struct {
	Balances   map[AccountKind]float64
	TxID       string
	Category   Category
	Direction  Direction
	Action     string // Verb phrase from the matched template, e.g. "received from"
	From       string
	To         string
	Phone      string // Optional; empty when no counterparty number was isolated
	AccountRef string // Optional; paybill/merchant account reference
	Date       string // Optional; kept in the message's own format
	Time       string // Optional; kept in the message's own format
	RawText    string
	Amount     float64
	Cost       float64
}

// Balance returns the reported balance for an account kind and whether the
// message mentioned it at all. An absent key means "not mentioned", not zero.
func (t *Transaction) Balance(kind AccountKind) (float64, bool) {
	v, ok := t.Balances[kind]
	return v, ok
}

// Hash creates a content hash for duplicate detection across imports. The
// raw message text is part of the hashed content, so two records collide only
// when they came from the same message.
func (t *Transaction) Hash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s:%s %s:%s",
		t.TxID,
		t.Amount,
		t.From,
		t.To,
		t.Date,
		t.Time,
		t.RawText)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
