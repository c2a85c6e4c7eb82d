package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarlazuardi/erp-ledger/internal/storage/memory"
)

func newTestServer(t *testing.T, auth AuthConfig) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(memory.New(), logger, auth)
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestTransactionLifecycle(t *testing.T) {
	srv := newTestServer(t, AuthConfig{})
	h := srv.Handler()
	userID := uuid.New()
	today := time.Now().UTC().Format(time.RFC3339)

	rec := doJSON(t, h, http.MethodPost, "/v1/transactions", map[string]any{
		"user_id":      userID,
		"finance_type": "income",
		"amount":       "1000000",
		"date":         today,
		"category":     "Penjualan",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[transactionResponse](t, rec)
	require.NotNil(t, created.JournalEntryID)

	rec = doJSON(t, h, http.MethodGet, "/v1/transactions?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[listTransactionsResponse](t, rec)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)

	// The derived entry is visible through the journal endpoint
	rec = doJSON(t, h, http.MethodGet, "/v1/journal?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	journal := decode[listJournalResponse](t, rec)
	require.Len(t, journal.Items, 1)
	assert.Equal(t, *created.JournalEntryID, journal.Items[0].ID)
	require.Len(t, journal.Items[0].Lines, 2)

	rec = doJSON(t, h, http.MethodPatch, "/v1/transactions/"+created.ID.String(), map[string]any{
		"user_id": userID,
		"amount":  "1500000",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode[transactionResponse](t, rec)
	assert.Equal(t, created.JournalEntryID, patched.JournalEntryID)
	assert.Equal(t, "1500000", patched.Amount.String())

	rec = doJSON(t, h, http.MethodDelete,
		fmt.Sprintf("/v1/transactions/%s?user_id=%s", created.ID, userID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Delete cascades to the journal
	rec = doJSON(t, h, http.MethodGet, "/v1/journal?user_id="+userID.String(), nil)
	journal = decode[listJournalResponse](t, rec)
	assert.Empty(t, journal.Items)
}

func TestPostTransaction_Validation(t *testing.T) {
	srv := newTestServer(t, AuthConfig{})
	h := srv.Handler()
	userID := uuid.New()
	today := time.Now().UTC().Format(time.RFC3339)

	t.Run("missing user_id", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/transactions", map[string]any{
			"finance_type": "income", "amount": "100", "date": today,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/transactions", map[string]any{
			"user_id": userID, "finance_type": "income", "amount": "100",
			"date": today, "color": "red",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/transactions", map[string]any{
			"user_id": userID, "finance_type": "income", "amount": "0", "date": today,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode[errorResponse](t, rec)
		assert.Equal(t, "invalid_amount", body.Code)
	})

	t.Run("unknown finance type", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/transactions", map[string]any{
			"user_id": userID, "finance_type": "crypto", "amount": "100", "date": today,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestPatchTransaction_NotFound(t *testing.T) {
	srv := newTestServer(t, AuthConfig{})
	rec := doJSON(t, srv.Handler(), http.MethodPatch, "/v1/transactions/"+uuid.NewString(), map[string]any{
		"user_id": uuid.New(),
		"amount":  "100",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	srv := newTestServer(t, AuthConfig{})
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/v1/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	accounts := decode[struct {
		Items []accountResponse `json:"items"`
	}](t, rec)
	assert.NotEmpty(t, accounts.Items)

	rec = doJSON(t, h, http.MethodGet, "/v1/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	presets := decode[struct {
		Items []presetResponse `json:"items"`
	}](t, rec)
	require.NotEmpty(t, presets.Items)
	for _, p := range presets.Items {
		assert.NotEmpty(t, p.DebitAccount, p.Key)
		assert.NotEmpty(t, p.CreditAccount, p.Key)
	}
}

func TestAdjustmentLifecycle(t *testing.T) {
	srv := newTestServer(t, AuthConfig{})
	h := srv.Handler()
	userID := uuid.New()

	rec := doJSON(t, h, http.MethodPost, "/v1/adjustments", map[string]any{
		"user_id":        userID,
		"report_type":    "balance-sheet",
		"section":        "assets",
		"label":          "Prepaid insurance",
		"amount":         "750000",
		"effective_date": "2026-08-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[adjustmentResponse](t, rec)

	rec = doJSON(t, h, http.MethodGet, "/v1/adjustments?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[listAdjustmentsResponse](t, rec)
	require.Len(t, list.Items, 1)

	rec = doJSON(t, h, http.MethodPatch, "/v1/adjustments/"+created.ID.String(), map[string]any{
		"user_id": userID,
		"amount":  "800000",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodDelete,
		fmt.Sprintf("/v1/adjustments/%s?user_id=%s", created.ID, userID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("mismatched section", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/adjustments", map[string]any{
			"user_id":        userID,
			"report_type":    "income-statement",
			"section":        "assets",
			"label":          "Wrong section",
			"amount":         "1",
			"effective_date": "2026-08-01T00:00:00Z",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestReportEndpoints(t *testing.T) {
	srv := newTestServer(t, AuthConfig{})
	h := srv.Handler()
	userID := uuid.New()
	today := time.Now().UTC().Format(time.RFC3339)

	rec := doJSON(t, h, http.MethodPost, "/v1/transactions", map[string]any{
		"user_id":      userID,
		"finance_type": "income",
		"amount":       "5000000",
		"date":         today,
		"category":     "Penjualan",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet,
		"/v1/reports?user_id="+userID.String()+"&period=current-month", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[reportDataResponse](t, rec)
	assert.Equal(t, "current-month", report.Period)
	assert.Equal(t, "5000000", report.IncomeStatement.TotalRevenue.String())

	rec = doJSON(t, h, http.MethodGet, "/v1/reports?user_id="+userID.String(), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet,
		"/v1/reports?user_id="+userID.String()+"&period=sometime", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, h, http.MethodGet,
		"/v1/dashboard?user_id="+userID.String()+"&period=current-month", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dash := decode[dashboardResponse](t, rec)
	assert.Equal(t, "5000000", dash.Metrics.Revenue.String())

	rec = doJSON(t, h, http.MethodGet, "/v1/overview?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, AuthConfig{})
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthJWT(t *testing.T) {
	const secret = "test-secret"
	srv := newTestServer(t, AuthConfig{Secret: secret, Issuer: "erp-ledger"})
	h := srv.Handler()
	userID := uuid.New()

	t.Run("missing token", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/v1/transactions?user_id="+userID.String(), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/transactions?user_id="+userID.String(), nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok := signToken(t, secret, jwt.MapClaims{
			"iss": "someone-else",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/v1/transactions?user_id="+userID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		tok := signToken(t, secret, jwt.MapClaims{
			"iss": "erp-ledger",
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/v1/transactions?user_id="+userID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("health stays open", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}
