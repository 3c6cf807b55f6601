package memory

import (
	"FinPay/internal/core/domain"
	"FinPay/internal/core/ports"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ ports.PaymentStore = (*PaymentStore)(nil) // Ensure compliance

// PaymentStore is an in-memory implementation of ports.PaymentStore,
// used in dev mode and in tests. It enforces the same
// (accountNumber, sortCode) uniqueness invariant as the relational store
// and preserves insertion order for queries.
type PaymentStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account // keyed by accountNumber|sortCode
	payments []*domain.Payment
}

// NewPaymentStore creates an empty in-memory store.
func NewPaymentStore() *PaymentStore {
	return &PaymentStore{
		accounts: make(map[string]*domain.Account),
	}
}

func accountKey(accountNumber, sortCode string) string {
	return accountNumber + "|" + sortCode
}

// FindAccountByNumberAndSortCode returns the stored account for the pair,
// or (nil, nil) when the pair is unseen.
func (s *PaymentStore) FindAccountByNumberAndSortCode(_ context.Context, accountNumber, sortCode string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[accountKey(accountNumber, sortCode)]
	if !ok {
		return nil, nil
	}
	return acct, nil
}

// SaveAccount stores the account if its pair is unseen, otherwise returns
// the existing row. Idempotent.
func (s *PaymentStore) SaveAccount(_ context.Context, acct *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.upsertAccount(acct), nil
}

// upsertAccount must be called with the write lock held.
func (s *PaymentStore) upsertAccount(acct *domain.Account) *domain.Account {
	key := accountKey(acct.AccountNumber, acct.SortCode)
	if existing, ok := s.accounts[key]; ok {
		return existing
	}

	stored := &domain.Account{
		ID:            acct.ID,
		Type:          acct.Type,
		AccountNumber: acct.AccountNumber,
		SortCode:      acct.SortCode,
		CreatedAt:     time.Now().UTC(),
	}
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	s.accounts[key] = stored
	return stored
}

// SavePayment assigns identifiers and stores the payment together with
// its counterparty under one lock, mirroring the relational store's
// single transaction.
func (s *PaymentStore) SavePayment(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := &domain.Payment{
		ID:           uuid.New(),
		Amount:       p.Amount,
		Currency:     p.Currency,
		Counterparty: s.upsertAccount(p.Counterparty),
		CreatedAt:    time.Now().UTC(),
	}
	s.payments = append(s.payments, stored)
	return stored, nil
}

// QueryPayments returns payments matching the filter in insertion order.
func (s *PaymentStore) QueryPayments(_ context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(filter.Currencies))
	for _, c := range filter.Currencies {
		wanted[c] = true
	}

	result := []*domain.Payment{}
	for _, p := range s.payments {
		if len(wanted) > 0 && !wanted[p.Currency] {
			continue
		}
		if filter.MinAmount != nil && p.Amount.Cmp(*filter.MinAmount) < 0 {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}
