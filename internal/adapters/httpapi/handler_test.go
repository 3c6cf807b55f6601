package httpapi

import (
	"FinPay/internal/adapters/eventbus"
	"FinPay/internal/adapters/memory"
	"FinPay/internal/core/services"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	nopLogger := zerolog.Nop()
	store := memory.NewPaymentStore()
	bus := eventbus.NewInMemoryEventBus(&nopLogger)
	svc := services.NewPaymentService(store, bus, &nopLogger)
	srv := httptest.NewServer(NewRouter(NewPaymentHandler(svc, &nopLogger)))
	t.Cleanup(srv.Close)
	return srv
}

func postPayment(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/payments", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const validBody = `{
	"amount": "100.00",
	"currency": "USD",
	"counterparty": {
		"type": "SORT_CODE_ACCOUNT_NUMBER",
		"accountNumber": "12345678",
		"sortCode": "123456"
	}
}`

func TestCreatePayment_Success(t *testing.T) {
	srv := newTestServer(t)

	resp := postPayment(t, srv, validBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got paymentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.NotEqual(t, uuid.Nil, got.ID)
	require.Equal(t, "USD", got.Currency)
	require.Equal(t, "100", got.Amount.String())
	require.Equal(t, "SORT_CODE_ACCOUNT_NUMBER", got.Counterparty.Type)
	require.Equal(t, "12345678", got.Counterparty.AccountNumber)
	require.NotEqual(t, uuid.Nil, got.Counterparty.ID)
}

func TestCreatePayment_DeduplicatesCounterparty(t *testing.T) {
	srv := newTestServer(t)

	var first, second paymentResponse

	resp := postPayment(t, srv, validBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))

	resp = postPayment(t, srv, validBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))

	require.NotEqual(t, first.ID, second.ID, "payments must be distinct")
	require.Equal(t, first.Counterparty.ID, second.Counterparty.ID, "account row must be shared")
}

func TestCreatePayment_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	resp := postPayment(t, srv, `{"amount": "-5", "currency": "us", "counterparty": null}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got badRequestBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Errors, 3)
	require.Equal(t, "Amount must be greater than 0.00", got.Errors[0].Message)
	require.Equal(t, "Currency code must be 3 letter ISO 4217 code", got.Errors[1].Message)
	require.Equal(t, "Counterparty is required", got.Errors[2].Message)
}

func TestCreatePayment_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp := postPayment(t, srv, `{"amount": `)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got badRequestBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Errors, 1)
	require.Equal(t, "Counterparty type must be SORT_CODE_ACCOUNT_NUMBER", got.Errors[0].Message)
}

func seedPayments(t *testing.T, srv *httptest.Server) {
	t.Helper()
	bodies := []string{
		`{"amount": "25.00", "currency": "USD", "counterparty": {"type": "SORT_CODE_ACCOUNT_NUMBER", "accountNumber": "12345678", "sortCode": "123456"}}`,
		`{"amount": "75.00", "currency": "USD", "counterparty": {"type": "SORT_CODE_ACCOUNT_NUMBER", "accountNumber": "12345678", "sortCode": "123456"}}`,
		`{"amount": "100.00", "currency": "GBP", "counterparty": {"type": "SORT_CODE_ACCOUNT_NUMBER", "accountNumber": "87654321", "sortCode": "654321"}}`,
	}
	for _, b := range bodies {
		resp := postPayment(t, srv, b)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}

func listPayments(t *testing.T, srv *httptest.Server, query string) []paymentResponse {
	t.Helper()
	resp, err := http.Get(srv.URL + "/payments" + query)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []paymentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	return got
}

func TestListPayments_Unfiltered(t *testing.T) {
	srv := newTestServer(t)
	seedPayments(t, srv)

	got := listPayments(t, srv, "")
	require.Len(t, got, 3)
}

func TestListPayments_Filtered(t *testing.T) {
	srv := newTestServer(t)
	seedPayments(t, srv)

	got := listPayments(t, srv, "?currencies=USD&minAmount=50")
	require.Len(t, got, 1)
	require.Equal(t, "USD", got[0].Currency)
	require.Equal(t, "75", got[0].Amount.String())

	got = listPayments(t, srv, "?currencies=USD,GBP")
	require.Len(t, got, 3)
}

func TestListPayments_EmptyIsJSONArray(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/payments")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestListPayments_InvalidMinAmount(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/payments?minAmount=abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
