package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ldurand/paydash/backend/internal/auth"
	"github.com/ldurand/paydash/backend/internal/domain"
	"github.com/ldurand/paydash/backend/internal/export"
	"github.com/ldurand/paydash/backend/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger       *slog.Logger
	transactions *service.TransactionService
	session      *auth.Session
	nowFn        func() time.Time
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, transactions *service.TransactionService, session *auth.Session) *APIHandlers {
	return &APIHandlers{
		logger:       logger,
		transactions: transactions,
		session:      session,
		nowFn:        time.Now,
	}
}

// --- Auth endpoints ---

func (h *APIHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var creds domain.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if creds.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	resp, err := h.session.Login(creds)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "email ou mot de passe incorrect")
			return
		}
		h.logger.Error("login failed", "error", err, "email", creds.Email)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if !h.authenticated(r) {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.session.Logout(); err != nil {
		h.logger.Error("logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *APIHandlers) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !h.authenticated(r) {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respondJSON(w, http.StatusOK, h.session.CurrentUser())
}

// --- Transaction endpoints ---

func (h *APIHandlers) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !h.requireAuth(w, r) {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := h.transactions.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	resp := transactionListResponse{Items: make([]transactionResponse, 0, len(transactions))}
	for _, tx := range transactions {
		resp.Items = append(resp.Items, toTransactionResponse(tx))
	}
	resp.Total = len(resp.Items)

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !h.requireAuth(w, r) {
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/transactions/"), "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "transaction ID is required")
		return
	}

	tx, err := h.transactions.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to fetch transaction", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to fetch transaction")
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	respondJSON(w, http.StatusOK, toTransactionResponse(*tx))
}

func (h *APIHandlers) handleTransactionByReference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !h.requireAuth(w, r) {
		return
	}

	reference := strings.Trim(strings.TrimPrefix(r.URL.Path, "/transactions/reference/"), "/")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "transaction reference is required")
		return
	}

	tx, err := h.transactions.GetByReference(r.Context(), reference)
	if err != nil {
		h.logger.Error("failed to fetch transaction", "error", err, "reference", reference)
		writeError(w, http.StatusInternalServerError, "failed to fetch transaction")
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	respondJSON(w, http.StatusOK, toTransactionResponse(*tx))
}

func (h *APIHandlers) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}

	stats, err := h.transactions.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (h *APIHandlers) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := h.transactions.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to load transactions for export", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export transactions")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	// Render into a buffer first so a failure becomes a clean 500 instead of
	// a truncated download.
	var buf bytes.Buffer
	var contentType, filename string
	switch format {
	case "csv":
		contentType, filename = "text/csv", "transactions.csv"
		err = export.WriteCSV(&buf, transactions)
	case "xlsx":
		contentType, filename = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "transactions.xlsx"
		err = export.WriteExcel(&buf, transactions)
	case "pdf":
		contentType, filename = "application/pdf", "transactions.pdf"
		err = export.WritePDF(&buf, transactions, h.nowFn())
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format")
		return
	}
	if err != nil {
		h.logger.Error("export rendering failed", "error", err, "format", format)
		writeError(w, http.StatusInternalServerError, "failed to export transactions")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// --- Authorization helpers ---

func (h *APIHandlers) authenticated(r *http.Request) bool {
	if !h.session.IsAuthenticated() {
		return false
	}
	token := bearerToken(r)
	return token != "" && token == h.session.Token()
}

func (h *APIHandlers) requireAuth(w http.ResponseWriter, r *http.Request) bool {
	if !h.authenticated(r) {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	return true
}

func (h *APIHandlers) requireRole(w http.ResponseWriter, r *http.Request, role domain.Role) bool {
	if !h.requireAuth(w, r) {
		return false
	}
	if !h.session.HasRole(role) {
		writeError(w, http.StatusForbidden, "insufficient role")
		return false
	}
	return true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// --- Request parsing ---

func parseFilter(r *http.Request) (*service.TransactionFilter, error) {
	query := r.URL.Query()

	filter := service.TransactionFilter{
		Status:     domain.TransactionStatus(query.Get("status")),
		Type:       domain.TransactionType(query.Get("type")),
		SearchTerm: query.Get("search"),
	}

	if v := query.Get("dateFrom"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("invalid dateFrom timestamp")
		}
		filter.DateFrom = &ts
	}
	if v := query.Get("dateTo"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("invalid dateTo timestamp")
		}
		filter.DateTo = &ts
	}

	if filter.IsZero() {
		return nil, nil
	}
	return &filter, nil
}

// --- Response DTOs ---

type transactionListResponse struct {
	Items []transactionResponse `json:"items"`
	Total int                   `json:"total"`
}

type transactionResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	Customer      domain.Customer `json:"customer"`
	PaymentMethod string          `json:"paymentMethod"`
	Reference     string          `json:"reference"`
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Date:          tx.Date.UTC().Format(time.RFC3339),
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Type:          string(tx.Type),
		Status:        string(tx.Status),
		Description:   tx.Description,
		Customer:      tx.Customer,
		PaymentMethod: tx.PaymentMethod,
		Reference:     tx.Reference,
	}
}

// --- Helpers ---

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
