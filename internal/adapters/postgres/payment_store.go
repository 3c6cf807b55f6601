package postgres

import (
	"FinPay/internal/core/domain"
	"FinPay/internal/core/ports"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var _ ports.PaymentStore = (*paymentStore)(nil) // Ensure compliance

type paymentStore struct {
	db  *DB
	log zerolog.Logger
}

// NewPaymentStore creates a new store for payment and account operations.
func NewPaymentStore(db *DB, baseLogger *zerolog.Logger) ports.PaymentStore {
	return &paymentStore{
		db:  db,
		log: baseLogger.With().Str("component", "payment_store").Logger(),
	}
}

// upsertAccountQuery resolves the (account_number, sort_code) pair to a
// single row regardless of races: the no-op DO UPDATE makes RETURNING
// yield the existing row when the pair is already stored.
const upsertAccountQuery = `
	INSERT INTO accounts (id, type, account_number, sort_code)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (account_number, sort_code)
	DO UPDATE SET account_number = EXCLUDED.account_number
	RETURNING id, type, account_number, sort_code, created_at
`

// FindAccountByNumberAndSortCode looks up a stored account by its unique
// pair. Returns (nil, nil) when no account matches.
func (s *paymentStore) FindAccountByNumberAndSortCode(ctx context.Context, accountNumber, sortCode string) (*domain.Account, error) {
	query := `
		SELECT id, type, account_number, sort_code, created_at
		FROM accounts
		WHERE account_number = $1 AND sort_code = $2
	`

	var acct domain.Account
	err := s.db.pool.QueryRow(ctx, query, accountNumber, sortCode).Scan(
		&acct.ID,
		&acct.Type,
		&acct.AccountNumber,
		&acct.SortCode,
		&acct.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.log.Error().Err(err).Msg("Failed to look up account")
		return nil, err
	}
	return &acct, nil
}

// SaveAccount inserts the account or fetches the already-stored row for
// its pair. Idempotent by the unique constraint.
func (s *paymentStore) SaveAccount(ctx context.Context, acct *domain.Account) (*domain.Account, error) {
	id := acct.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var stored domain.Account
	err := s.db.pool.QueryRow(ctx, upsertAccountQuery, id, acct.Type, acct.AccountNumber, acct.SortCode).Scan(
		&stored.ID,
		&stored.Type,
		&stored.AccountNumber,
		&stored.SortCode,
		&stored.CreatedAt,
	)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to upsert account")
		return nil, err
	}
	return &stored, nil
}

// SavePayment persists the payment and its counterparty in one
// transaction. The account is resolved through the conditional insert, so
// a concurrent create with the same pair can never produce a duplicate
// account row; a failure anywhere rolls the whole unit back.
func (s *paymentStore) SavePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to begin transaction")
		return nil, err
	}
	defer tx.Rollback(ctx)

	acctID := p.Counterparty.ID
	if acctID == uuid.Nil {
		acctID = uuid.New()
	}

	var acct domain.Account
	err = tx.QueryRow(ctx, upsertAccountQuery, acctID, p.Counterparty.Type, p.Counterparty.AccountNumber, p.Counterparty.SortCode).Scan(
		&acct.ID,
		&acct.Type,
		&acct.AccountNumber,
		&acct.SortCode,
		&acct.CreatedAt,
	)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to resolve counterparty account")
		return nil, err
	}

	stored := domain.Payment{
		ID:           uuid.New(),
		Amount:       p.Amount,
		Currency:     p.Currency,
		Counterparty: &acct,
	}
	query := `
		INSERT INTO payments (id, account_id, amount, currency)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = tx.QueryRow(ctx, query, stored.ID, acct.ID, stored.Amount, stored.Currency).Scan(&stored.CreatedAt)
	if err != nil {
		s.log.Error().Err(err).Str("account_id", acct.ID.String()).Msg("Failed to insert payment")
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error().Err(err).Msg("Failed to commit payment transaction")
		return nil, err
	}
	return &stored, nil
}

// QueryPayments returns payments matching the filter. Absent filters are
// passed as NULL so the predicate collapses to true, mirroring the
// conditional query contract.
func (s *paymentStore) QueryPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	query := `
		SELECT p.id, p.amount, p.currency, p.created_at,
			   a.id, a.type, a.account_number, a.sort_code, a.created_at
		FROM payments p
		JOIN accounts a ON a.id = p.account_id
		WHERE ($1::text[] IS NULL OR p.currency = ANY($1))
		  AND ($2::numeric IS NULL OR p.amount >= $2)
		ORDER BY p.created_at, p.id
	`

	var currencies []string
	if len(filter.Currencies) > 0 {
		currencies = filter.Currencies
	}

	rows, err := s.db.pool.Query(ctx, query, currencies, filter.MinAmount)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to query payments")
		return nil, err
	}
	defer rows.Close()

	payments := []*domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		var acct domain.Account
		err := rows.Scan(
			&p.ID,
			&p.Amount,
			&p.Currency,
			&p.CreatedAt,
			&acct.ID,
			&acct.Type,
			&acct.AccountNumber,
			&acct.SortCode,
			&acct.CreatedAt,
		)
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to scan payment row")
			return nil, err
		}
		p.Counterparty = &acct
		payments = append(payments, &p)
	}

	if rows.Err() != nil {
		s.log.Error().Err(rows.Err()).Msg("Error iterating payment rows")
		return nil, rows.Err()
	}
	return payments, nil
}
