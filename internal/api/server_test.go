package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplebook-dev/purplebook/internal/accounts"
	"github.com/purplebook-dev/purplebook/internal/inventory"
	"github.com/purplebook-dev/purplebook/internal/journal"
	"github.com/purplebook-dev/purplebook/internal/report"
	"github.com/purplebook-dev/purplebook/internal/storage/memory"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store := memory.New()
	chart := accounts.NewRegistry(accounts.DefaultChart("farm"))
	j := journal.NewService(store, chart, journal.Options{}, nil)
	reports := report.NewService(store, report.DefaultEquityPolicy(), nil)
	stock := inventory.NewService(j, inventory.DefaultAccounts(), nil)
	srv := NewServer(j, reports, stock, nil)
	srv.EnableMetrics()
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

const capitalEntry = `{
	"day": 1, "month": 1, "year": 2025,
	"description": "Initial capital",
	"debit_account": "Kas", "debit_category": "asset", "debit_amount": "100000",
	"credit_account": "Modal", "credit_category": "Modal", "credit_amount": "100000"
}`

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateEntry(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/v1/owners/o1/entries", capitalEntry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got := decodeBody(t, w)
	assert.Equal(t, float64(1), got["id"])
	assert.Equal(t, "o1", got["owner_id"])
	assert.Equal(t, "equity", got["credit_category"], "legacy label is normalized")

	w = do(t, h, http.MethodGet, "/v1/owners/o1/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(t, h, http.MethodGet, "/v1/owners/someone-else/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateEntry_Unbalanced(t *testing.T) {
	h := newTestServer(t)
	body := strings.Replace(capitalEntry, `"credit_amount": "100000"`, `"credit_amount": "99999"`, 1)

	w := do(t, h, http.MethodPost, "/v1/owners/o1/entries", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	errBody := decodeBody(t, w)["error"].(map[string]any)
	assert.Equal(t, "validation_error", errBody["type"])
	violations := errBody["violations"].([]any)
	require.NotEmpty(t, violations)
	assert.Equal(t, "balanced", violations[0].(map[string]any)["rule"])
}

func TestCreateEntry_UnknownCategory(t *testing.T) {
	h := newTestServer(t)
	body := strings.Replace(capitalEntry, `"debit_category": "asset"`, `"debit_category": "gold"`, 1)

	w := do(t, h, http.MethodPost, "/v1/owners/o1/entries", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestCreateEntry_BadRequests(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"day":`},
		{"unknown field", `{"day": 1, "month": 1, "year": 2025, "bogus": true}`},
		{"missing credit side", `{"day": 1, "month": 1, "year": 2025, "debit_account": "Kas", "debit_category": "asset", "debit_amount": "1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/v1/owners/o1/entries", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestReports(t *testing.T) {
	h := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/v1/owners/o1/entries", capitalEntry).Code)

	sale := `{
		"day": 3, "month": 1, "year": 2025,
		"debit_account": "Kas", "debit_category": "asset", "debit_amount": "2500.50",
		"credit_account": "Pendapatan Penjualan", "credit_category": "revenue", "credit_amount": "2500.50"
	}`
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/v1/owners/o1/entries", sale).Code)

	w := do(t, h, http.MethodGet, "/v1/owners/o1/trial-balance", "")
	require.Equal(t, http.StatusOK, w.Code)
	tb := decodeBody(t, w)
	assert.Equal(t, true, tb["balanced"])
	assert.Equal(t, "102500.5", tb["total_debit"])

	w = do(t, h, http.MethodGet, "/v1/owners/o1/income-statement", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2500.5", decodeBody(t, w)["net_income"])

	w = do(t, h, http.MethodGet, "/v1/owners/o1/balance-sheet", "")
	require.Equal(t, http.StatusOK, w.Code)
	bs := decodeBody(t, w)
	assert.Equal(t, true, bs["balanced"])
	assert.Equal(t, "102500.5", bs["total_assets"])

	w = do(t, h, http.MethodGet, "/v1/owners/o1/equity-statement", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "102500.5", decodeBody(t, w)["ending_equity"])

	w = do(t, h, http.MethodGet, "/v1/owners/o1/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "trial_balance")
}

func TestLedgers(t *testing.T) {
	h := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/v1/owners/o1/entries", capitalEntry).Code)

	w := do(t, h, http.MethodGet, "/v1/owners/o1/ledgers", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ledgers []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ledgers))
	assert.Len(t, ledgers, 2)

	w = do(t, h, http.MethodGet, "/v1/owners/o1/ledgers/Kas", "")
	require.Equal(t, http.StatusOK, w.Code)
	l := decodeBody(t, w)
	assert.Equal(t, "Kas", l["account"])
	assert.Equal(t, "100000", l["balance"])
}

func TestStockMovements(t *testing.T) {
	h := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/v1/owners/o1/entries", capitalEntry).Code)

	in := `{"day": 2, "month": 1, "year": 2025, "item": "Pupuk", "quantity": "10", "unit_price": "1500"}`
	w := do(t, h, http.MethodPost, "/v1/owners/o1/stock/in", in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Persediaan Barang", decodeBody(t, w)["debit_account"])

	out := `{"day": 5, "month": 1, "year": 2025, "item": "Pupuk", "quantity": "4", "unit_price": "1500"}`
	w = do(t, h, http.MethodPost, "/v1/owners/o1/stock/out", out)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Beban Persediaan", decodeBody(t, w)["debit_account"])

	bad := `{"day": 5, "month": 1, "year": 2025, "item": "Pupuk", "quantity": "-4", "unit_price": "1500"}`
	w = do(t, h, http.MethodPost, "/v1/owners/o1/stock/out", bad)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}
