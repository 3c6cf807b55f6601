package httpapi

import (
	"FinPay/internal/core/domain"
	"FinPay/internal/core/services"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentHandler translates HTTP requests to payment service calls.
type PaymentHandler struct {
	svc *services.PaymentService
	log zerolog.Logger
}

// NewPaymentHandler creates the handler for the payments endpoints.
func NewPaymentHandler(svc *services.PaymentService, baseLogger *zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
		log: baseLogger.With().Str("component", "http_handler").Logger(),
	}
}

type accountPayload struct {
	Type          string `json:"type"`
	AccountNumber string `json:"accountNumber"`
	SortCode      string `json:"sortCode"`
}

type paymentRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Counterparty *accountPayload `json:"counterparty"`
}

type accountResponse struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	AccountNumber string    `json:"accountNumber"`
	SortCode      string    `json:"sortCode"`
}

type paymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Counterparty accountResponse `json:"counterparty"`
}

type badRequestBody struct {
	Errors []domain.ValidationError `json:"errors"`
}

func toResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:       p.ID,
		Amount:   p.Amount,
		Currency: p.Currency,
		Counterparty: accountResponse{
			ID:            p.Counterparty.ID,
			Type:          string(p.Counterparty.Type),
			AccountNumber: p.Counterparty.AccountNumber,
			SortCode:      p.Counterparty.SortCode,
		},
	}
}

func (h *PaymentHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response body")
	}
}

func (h *PaymentHandler) writeBadRequest(w http.ResponseWriter, errs []domain.ValidationError) {
	h.writeJSON(w, http.StatusBadRequest, badRequestBody{Errors: errs})
}

// CreatePayment handles POST /payments.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An unreadable body is reported with the counterparty-type
		// message, matching the deserialization contract of the API.
		h.log.Info().Err(err).Msg("Failed to decode payment request body")
		h.writeBadRequest(w, []domain.ValidationError{
			{Message: "Counterparty type must be SORT_CODE_ACCOUNT_NUMBER"},
		})
		return
	}

	candidate := &domain.Payment{
		Amount:   req.Amount,
		Currency: req.Currency,
	}
	if req.Counterparty != nil {
		candidate.Counterparty = &domain.Account{
			Type:          domain.AccountType(req.Counterparty.Type),
			AccountNumber: req.Counterparty.AccountNumber,
			SortCode:      req.Counterparty.SortCode,
		}
	}

	saved, err := h.svc.Create(r.Context(), candidate)
	if err != nil {
		var verrs *domain.ValidationErrors
		if errors.As(err, &verrs) {
			h.writeBadRequest(w, verrs.Errors)
			return
		}
		h.log.Error().Err(err).Msg("Unhandled error creating payment")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, toResponse(saved))
}

// ListPayments handles GET /payments with optional minAmount and
// currencies (csv) query parameters.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	var minAmount *decimal.Decimal
	if raw := r.URL.Query().Get("minAmount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			http.Error(w, "minAmount must be a valid decimal number", http.StatusBadRequest)
			return
		}
		minAmount = &parsed
	}

	var currencies []string
	if raw := r.URL.Query().Get("currencies"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				currencies = append(currencies, c)
			}
		}
	}

	payments, err := h.svc.List(r.Context(), currencies, minAmount)
	if err != nil {
		h.log.Error().Err(err).Msg("Unhandled error listing payments")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		body = append(body, toResponse(p))
	}
	h.writeJSON(w, http.StatusOK, body)
}

// Health handles GET /health.
func (h *PaymentHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
