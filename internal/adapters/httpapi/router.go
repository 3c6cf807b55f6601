package httpapi

import "net/http"

// NewRouter wires the payment endpoints onto a fresh mux.
func NewRouter(handler *PaymentHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /payments", handler.CreatePayment)
	mux.HandleFunc("GET /payments", handler.ListPayments)
	mux.HandleFunc("GET /health", handler.Health)

	return mux
}
