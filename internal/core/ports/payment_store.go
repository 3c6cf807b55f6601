package ports

import (
	"FinPay/internal/core/domain"
	"context"
)

// PaymentStore defines the persistence operations for payments and their
// counterparty accounts. The store is the authority on the
// (accountNumber, sortCode) uniqueness invariant: SavePayment must persist
// the payment and its counterparty as one atomic unit, reusing the stored
// account row when the pair already exists.
type PaymentStore interface {
	// FindAccountByNumberAndSortCode looks up a stored account by its
	// unique pair. Returns (nil, nil) when no account matches.
	FindAccountByNumberAndSortCode(ctx context.Context, accountNumber, sortCode string) (*domain.Account, error)

	// SaveAccount creates the account if the pair is unseen, otherwise
	// returns the already-stored account. Idempotent.
	SaveAccount(ctx context.Context, acct *domain.Account) (*domain.Account, error)

	// SavePayment persists the payment and resolves its counterparty in a
	// single atomic unit, assigning identifiers. Either the payment and
	// its (possibly new) account are both durable, or neither is.
	SavePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)

	// QueryPayments returns payments matching the filter in stable order.
	// Returns an empty slice, never nil, when nothing matches.
	QueryPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)
}
