package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/devkartikrathi/ncfo/internal/api/httpx"
	"github.com/devkartikrathi/ncfo/internal/api/validate"
	"github.com/devkartikrathi/ncfo/internal/middleware"
	"github.com/devkartikrathi/ncfo/internal/models"
	"github.com/devkartikrathi/ncfo/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type TransactionsHandler struct {
	Txns    *services.TransactionService
	Scans   *services.ScanService
	Prompts *services.PromptService
}

func NewTransactionsHandler(ts *services.TransactionService, ss *services.ScanService, ps *services.PromptService) *TransactionsHandler {
	return &TransactionsHandler{Txns: ts, Scans: ss, Prompts: ps}
}

func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	var req struct {
		AccountID         string          `json:"account_id"`
		Type              string          `json:"type"`
		Amount            decimal.Decimal `json:"amount"`
		Category          string          `json:"category"`
		Date              *time.Time      `json:"date"`
		Description       string          `json:"description"`
		IsRecurring       bool            `json:"is_recurring"`
		RecurringInterval string          `json:"recurring_interval"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body")
		return
	}
	if err := validate.Collect(
		validate.Required("account_id", req.AccountID),
		validate.Required("type", req.Type),
		validate.Required("category", req.Category),
		validate.NonNegative("amount", req.Amount),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	in := services.CreateTransactionInput{
		AccountID:         req.AccountID,
		Type:              models.TransactionType(req.Type),
		Amount:            req.Amount,
		Category:          req.Category,
		Description:       req.Description,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: req.RecurringInterval,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	res, err := h.Txns.Create(r.Context(), callerID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, map[string]any{
		"transaction": res.Transaction,
		"new_balance": res.NewBalance,
		"stale_paths": res.StalePaths,
	})
}

func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "account_id required")
		return
	}

	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	txns, err := h.Txns.ListByAccount(r.Context(), callerID, accountID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, txns)
}

func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	txn, err := h.Txns.GetByID(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, txn)
}

// Scan accepts a base64 receipt image and returns the extracted fields.
// Presentation decides what to do with an all-zero result (not a receipt).
func (h *TransactionsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image    string `json:"image"` // base64
		MIMEType string `json:"mime_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" || req.MIMEType == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "image and mime_type required")
		return
	}
	img, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "image must be base64")
		return
	}

	fields, err := h.Scans.ScanReceipt(r.Context(), img, req.MIMEType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, fields)
}

func (h *TransactionsHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "text required")
		return
	}

	res, err := h.Prompts.CreateFromPrompt(r.Context(), callerID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, map[string]any{
		"transaction": res.Transaction,
		"new_balance": res.NewBalance,
		"stale_paths": res.StalePaths,
	})
}
