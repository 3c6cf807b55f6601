package services

import (
	"FinPay/internal/core/domain"
	"FinPay/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentService orchestrates payment writes (validate, deduplicate the
// counterparty, persist atomically) and filtered payment reads.
type PaymentService struct {
	store  ports.PaymentStore
	events ports.EventPublisher
	log    zerolog.Logger
}

// NewPaymentService creates the payment service.
func NewPaymentService(store ports.PaymentStore, events ports.EventPublisher, baseLogger *zerolog.Logger) *PaymentService {
	return &PaymentService{
		store:  store,
		events: events,
		log:    baseLogger.With().Str("component", "payment_service").Logger(),
	}
}

// Create validates the candidate, resolves its counterparty against
// already-stored accounts, and persists the payment. On validation
// failure it returns *domain.ValidationErrors and touches nothing.
func (s *PaymentService) Create(ctx context.Context, candidate *domain.Payment) (*domain.Payment, error) {
	if errs := domain.Validate(candidate); len(errs) > 0 {
		s.log.Info().Int("error_count", len(errs)).Msg("Rejected invalid payment")
		return nil, &domain.ValidationErrors{Errors: errs}
	}

	resolved, err := s.resolveCounterparty(ctx, candidate.Counterparty)
	if err != nil {
		return nil, err
	}
	candidate.Counterparty = resolved

	saved, err := s.store.SavePayment(ctx, candidate)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to save payment")
		return nil, err
	}

	// Best-effort notification. The payment is already durable.
	if err := s.events.Publish(ctx, ports.TopicPaymentCreated, saved); err != nil {
		s.log.Warn().Err(err).Str("payment_id", saved.ID.String()).Msg("Failed to publish payment created event")
	}

	s.log.Info().
		Str("payment_id", saved.ID.String()).
		Str("currency", saved.Currency).
		Msg("Payment created")
	return saved, nil
}

// resolveCounterparty substitutes an already-stored account for the
// candidate when one exists with the same (accountNumber, sortCode) pair,
// so the new payment links to the existing row. This is a best-effort
// optimization: under concurrent creates the store's unique constraint is
// the authority, and SavePayment resolves the pair again atomically.
func (s *PaymentService) resolveCounterparty(ctx context.Context, candidate *domain.Account) (*domain.Account, error) {
	existing, err := s.store.FindAccountByNumberAndSortCode(ctx, candidate.AccountNumber, candidate.SortCode)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to look up counterparty account")
		return nil, err
	}
	if existing != nil {
		s.log.Debug().Str("account_id", existing.ID.String()).Msg("Reusing existing counterparty account")
		return existing, nil
	}
	return candidate, nil
}

// List returns payments matching the given filters. Both filters are
// optional and independent: an empty currency list matches all
// currencies, a nil minAmount applies no lower bound. The result is
// never nil.
func (s *PaymentService) List(ctx context.Context, currencies []string, minAmount *decimal.Decimal) ([]*domain.Payment, error) {
	payments, err := s.store.QueryPayments(ctx, domain.PaymentFilter{
		Currencies: currencies,
		MinAmount:  minAmount,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to query payments")
		return nil, err
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return payments, nil
}
