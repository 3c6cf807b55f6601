package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType is a custom type for the account-type ENUM.
type AccountType string

const (
	// AccountTypeSortCodeAccountNumber is the only recognized counterparty
	// account type.
	AccountTypeSortCodeAccountNumber AccountType = "SORT_CODE_ACCOUNT_NUMBER"
)

// Account is a counterparty bank account, identified by its
// (accountNumber, sortCode) pair. The pair is unique across all stored
// accounts; many payments may reference the same account row.
type Account struct {
	ID            uuid.UUID
	Type          AccountType
	AccountNumber string // exactly 8 numeric characters
	SortCode      string // exactly 6 numeric characters
	CreatedAt     time.Time
}

// Payment is a recorded payment intent. Immutable once persisted.
type Payment struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	Currency     string // 3-letter uppercase ISO 4217 code
	Counterparty *Account
	CreatedAt    time.Time
}

// PaymentFilter narrows a payment listing. Both fields are optional and
// independent: an empty Currencies slice matches all currencies, a nil
// MinAmount applies no lower bound.
type PaymentFilter struct {
	Currencies []string
	MinAmount  *decimal.Decimal
}
