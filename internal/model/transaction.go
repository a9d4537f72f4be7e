package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

var (
	ErrNegativeAmount = errors.New("amount must be non-negative")
	ErrUnknownType    = errors.New("type must be credit or debit")
)

// Transaction is a raw, identity-less transaction as submitted by a client.
type Transaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
}

func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.Type != TypeCredit && t.Type != TypeDebit {
		return ErrUnknownType
	}
	return nil
}

// RecordedTransaction is a transaction once the ledger owns it: id assigned
// by the store, story attached, timestamp fixed. Immutable after insertion.
// Degraded marks stories that are the fixed fallback line rather than
// generated text.
type RecordedTransaction struct {
	Transaction
	ID        int       `json:"id"`
	Story     string    `json:"story"`
	Degraded  bool      `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}
