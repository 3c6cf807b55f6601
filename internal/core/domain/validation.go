package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyPattern      = regexp.MustCompile(`^[A-Z]{3}$`)
	sortCodePattern      = regexp.MustCompile(`^\d{6}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{8}$`)
)

// ValidationError is a single user-facing validation failure.
type ValidationError struct {
	Message string `json:"message"`
}

// ValidationErrors is the ordered list of failures for one candidate
// payment. It implements error so services can return it alongside
// system faults; callers unwrap it with errors.As.
type ValidationErrors struct {
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Message
	}
	return "payment validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks a candidate payment against the business rules and
// returns every failure, in check order (amount, currency, counterparty
// presence, type, sortCode, accountNumber). It is not fail-fast: all
// applicable checks run and their results accumulate. A nil candidate is
// the one short-circuit, reported as a single error.
func Validate(p *Payment) []ValidationError {
	var errs []ValidationError

	if p == nil {
		return []ValidationError{{Message: "Payment object cannot be null"}}
	}

	if p.Amount.Cmp(decimal.Zero) <= 0 {
		errs = append(errs, ValidationError{Message: "Amount must be greater than 0.00"})
	}

	if !currencyPattern.MatchString(p.Currency) {
		errs = append(errs, ValidationError{Message: "Currency code must be 3 letter ISO 4217 code"})
	}

	if p.Counterparty == nil {
		errs = append(errs, ValidationError{Message: "Counterparty is required"})
	} else {
		if p.Counterparty.Type != AccountTypeSortCodeAccountNumber {
			errs = append(errs, ValidationError{Message: "Counterparty type must be SORT_CODE_ACCOUNT_NUMBER"})
		}

		if !sortCodePattern.MatchString(p.Counterparty.SortCode) {
			errs = append(errs, ValidationError{Message: "Counterparty sortCode must be 6 numeric characters"})
		}

		if !accountNumberPattern.MatchString(p.Counterparty.AccountNumber) {
			errs = append(errs, ValidationError{Message: "Counterparty accountNumber must be 8 numeric characters"})
		}
	}

	return errs
}
