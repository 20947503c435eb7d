package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/devkartikrathi/ncfo/internal/api/httpx"
	"github.com/devkartikrathi/ncfo/internal/api/validate"
	"github.com/devkartikrathi/ncfo/internal/middleware"
	"github.com/devkartikrathi/ncfo/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type AccountsHandler struct {
	Accounts *services.AccountService
}

func NewAccountsHandler(as *services.AccountService) *AccountsHandler {
	return &AccountsHandler{Accounts: as}
}

func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	var req struct {
		Name      string          `json:"name"`
		Balance   decimal.Decimal `json:"balance"`
		IsDefault bool            `json:"is_default"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body")
		return
	}
	if err := validate.Collect(
		validate.Required("name", req.Name),
		validate.NonNegative("balance", req.Balance),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a, err := h.Accounts.Create(r.Context(), callerID, req.Name, req.Balance, req.IsDefault)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, a)
}

func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	accounts, err := h.Accounts.List(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, accounts)
}

func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())
	a, err := h.Accounts.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, a)
}
