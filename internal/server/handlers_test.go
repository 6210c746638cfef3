package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ldurand/paydash/backend/internal/auth"
	"github.com/ldurand/paydash/backend/internal/domain"
	"github.com/ldurand/paydash/backend/internal/service"
	"github.com/ldurand/paydash/backend/internal/store"
)

func testTransactions() []domain.Transaction {
	return []domain.Transaction{
		{
			ID:            "TXN-001",
			Date:          time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
			Amount:        1250.50,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusCompleted,
			Description:   "Paiement facture fournisseur",
			Customer:      domain.Customer{Name: "Jean Dupont", Email: "jean.dupont@email.com"},
			PaymentMethod: "Virement bancaire",
			Reference:     "REF-2025-001",
		},
		{
			ID:            "TXN-002",
			Date:          time.Date(2025, 1, 16, 14, 0, 0, 0, time.UTC),
			Amount:        300,
			Currency:      "EUR",
			Type:          domain.TypeRefund,
			Status:        domain.StatusPending,
			Description:   "Remboursement commande",
			Customer:      domain.Customer{Name: "Marie Martin", Email: "marie.martin@email.com"},
			PaymentMethod: "Carte bancaire",
			Reference:     "REF-2025-002",
		},
		{
			ID:            "TXN-003",
			Date:          time.Date(2025, 1, 17, 9, 15, 0, 0, time.UTC),
			Amount:        85.99,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusFailed,
			Description:   "Achat en ligne",
			Customer:      domain.Customer{Name: "Pierre Bernard", Email: "pierre.bernard@email.com"},
			PaymentMethod: "Carte bancaire",
			Reference:     "REF-2025-003",
		},
		{
			ID:            "TXN-004",
			Date:          time.Date(2025, 1, 18, 16, 45, 0, 0, time.UTC),
			Amount:        2000,
			Currency:      "EUR",
			Type:          domain.TypeTransfer,
			Status:        domain.StatusCancelled,
			Description:   "Virement annule",
			Customer:      domain.Customer{Name: "Sophie Petit", Email: "sophie.petit@email.com"},
			PaymentMethod: "Virement bancaire",
			Reference:     "REF-2025-004",
		},
	}
}

type testEnv struct {
	handlers *APIHandlers
	session  *auth.Session
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	source, err := store.NewMemorySource(testTransactions())
	if err != nil {
		t.Fatalf("failed to build source: %v", err)
	}

	session, err := auth.NewSession(auth.DefaultRoster(), nil)
	if err != nil {
		t.Fatalf("failed to build session: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := NewAPIHandlers(logger, service.NewTransactionService(source), session)
	router := NewRouter(logger, RouterDependencies{API: handlers})

	return &testEnv{handlers: handlers, session: session, router: router}
}

func (e *testEnv) loginAs(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.session.Login(domain.Credentials{Email: email, Password: "whatever"})
	if err != nil {
		t.Fatalf("login as %s failed: %v", email, err)
	}
	return resp.Token
}

func (e *testEnv) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleLogin(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"email":"admin@dashboard.com","password":"n'importe quoi"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload domain.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.User.Email != "admin@dashboard.com" || payload.User.Role != domain.RoleAdmin {
		t.Errorf("unexpected identity: %+v", payload.User)
	}
	if !strings.HasPrefix(payload.Token, "mock-token-") {
		t.Errorf("unexpected token: %s", payload.Token)
	}
}

func TestHandleLoginRejectsUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"email":"inconnu@dashboard.com","password":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHandleLoginValidation(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed body, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"password":"x"}`))
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing email, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405 for GET, got %d", rec.Code)
	}
}

func TestHandleLogoutAndMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "user@dashboard.com")

	rec := env.get("/auth/me", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var me domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if me.Name != "Utilisateur Simple" {
		t.Errorf("unexpected identity: %+v", me)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	logoutRec := httptest.NewRecorder()
	env.router.ServeHTTP(logoutRec, req)
	if logoutRec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", logoutRec.Code)
	}

	rec = env.get("/auth/me", token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 after logout, got %d", rec.Code)
	}
}

func TestHandleTransactionsRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/transactions", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	env.loginAs(t, "user@dashboard.com")
	rec = env.get("/transactions", "stale-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for wrong token, got %d", rec.Code)
	}
}

func TestHandleTransactionsList(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "user@dashboard.com")

	rec := env.get("/transactions", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload transactionListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Total != 4 || len(payload.Items) != 4 {
		t.Fatalf("expected 4 transactions, got total=%d items=%d", payload.Total, len(payload.Items))
	}
	if payload.Items[0].ID != "TXN-001" {
		t.Errorf("expected store order preserved, got %s first", payload.Items[0].ID)
	}
	if payload.Items[0].Date != "2025-01-15T10:30:00Z" {
		t.Errorf("expected RFC 3339 date, got %s", payload.Items[0].Date)
	}
}

func TestHandleTransactionsFilterQuery(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "user@dashboard.com")

	rec := env.get("/transactions?status=COMPLETED&type=PAYMENT", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload transactionListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Total != 1 || payload.Items[0].ID != "TXN-001" {
		t.Fatalf("expected only TXN-001, got %+v", payload)
	}

	rec = env.get("/transactions?search=dupont", token)
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Total != 1 || payload.Items[0].ID != "TXN-001" {
		t.Fatalf("expected search to match TXN-001, got %+v", payload)
	}

	rec = env.get("/transactions?dateFrom=2025-01-16T00:00:00Z&dateTo=2025-01-17T23:59:59Z", token)
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Total != 2 {
		t.Fatalf("expected 2 transactions in range, got %d", payload.Total)
	}

	rec = env.get("/transactions?dateFrom=17/01/2025", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed date, got %d", rec.Code)
	}
}

func TestHandleTransactionByID(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "user@dashboard.com")

	rec := env.get("/transactions/TXN-002", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Reference != "REF-2025-002" {
		t.Errorf("unexpected record: %+v", payload)
	}

	rec = env.get("/transactions/TXN-999", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown ID, got %d", rec.Code)
	}
}

func TestHandleTransactionByReference(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "user@dashboard.com")

	rec := env.get("/transactions/reference/REF-2025-003", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.ID != "TXN-003" {
		t.Errorf("unexpected record: %+v", payload)
	}

	rec = env.get("/transactions/reference/REF-0000-000", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown reference, got %d", rec.Code)
	}
}

func TestHandleStatsIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	userToken := env.loginAs(t, "user@dashboard.com")
	rec := env.get("/stats", userToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for USER role, got %d", rec.Code)
	}

	adminToken := env.loginAs(t, "admin@dashboard.com")
	rec = env.get("/stats", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var stats domain.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.Total != 4 || stats.Pending != 1 || stats.Completed != 1 || stats.Failed != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.TotalAmount != 1250.50 {
		t.Errorf("expected completed-only amount, got %f", stats.TotalAmount)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := raw["cancelled"]; ok {
		t.Errorf("stats payload must not report a cancelled count: %s", rec.Body.String())
	}
}

func TestHandleExportTransactionsCSV(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "admin@dashboard.com")

	rec := env.get("/export/transactions?format=csv", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "transactions.csv") {
		t.Errorf("unexpected disposition %q", got)
	}

	body := rec.Body.Bytes()
	if !bytes.HasPrefix(body, []byte("\xEF\xBB\xBF")) {
		t.Fatalf("expected UTF-8 BOM prefix")
	}

	reader := csv.NewReader(bytes.NewReader(body[3:]))
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Client" {
		t.Errorf("unexpected header: %v", rows[0])
	}
}

func TestHandleExportTransactionsBinaryFormats(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "admin@dashboard.com")

	rec := env.get("/export/transactions?format=xlsx", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Errorf("expected zip container magic bytes")
	}
	if got := rec.Header().Get("Content-Length"); got != strconv.Itoa(rec.Body.Len()) {
		t.Errorf("expected Content-Length %d for the fully rendered body, got %q", rec.Body.Len(), got)
	}

	rec = env.get("/export/transactions?format=pdf", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("expected PDF magic bytes")
	}
	if got := rec.Header().Get("Content-Length"); got != strconv.Itoa(rec.Body.Len()) {
		t.Errorf("expected Content-Length %d for the fully rendered body, got %q", rec.Body.Len(), got)
	}
}

func TestHandleExportTransactionsGating(t *testing.T) {
	env := newTestEnv(t)

	userToken := env.loginAs(t, "user@dashboard.com")
	rec := env.get("/export/transactions", userToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for USER role, got %d", rec.Code)
	}

	adminToken := env.loginAs(t, "admin@dashboard.com")
	rec = env.get("/export/transactions?format=docx", adminToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unsupported format, got %d", rec.Code)
	}
}

type stubHealth struct {
	err error
}

func (s stubHealth) Probe(context.Context) error { return s.err }

func TestHealthzReportsProbeFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(logger, RouterDependencies{Health: stubHealth{}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	router = NewRouter(logger, RouterDependencies{Health: stubHealth{err: errors.New("graph unreachable")}})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(logger, RouterDependencies{
		AllowedOrigins: []string{"http://localhost:4200"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/transactions", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for allowed pre-flight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:4200" {
		t.Errorf("unexpected allow-origin %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/transactions", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for unknown origin pre-flight, got %d", rec.Code)
	}
}
