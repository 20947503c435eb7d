package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/devkartikrathi/ncfo/internal/ai"
	"github.com/devkartikrathi/ncfo/internal/api/httpx"
	"github.com/devkartikrathi/ncfo/internal/api/validate"
	"github.com/devkartikrathi/ncfo/internal/recurring"
	"github.com/devkartikrathi/ncfo/internal/services"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses and
// the uniform envelope. Internal detail (quota state, oracle output) never
// reaches the client.
func writeServiceError(w http.ResponseWriter, err error) {
	var rl *services.RateLimitError
	if errors.As(err, &rl) {
		w.Header().Set("Retry-After", strconv.Itoa(int(rl.ResetAfter.Seconds())+1))
		httpx.WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
		return
	}

	var parseErr *ai.ParseError
	var fieldErrs validate.Errs
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, services.ErrRequestBlocked):
		httpx.WriteError(w, http.StatusForbidden, "blocked", "request blocked")
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrTransactionNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrNoDefaultAccount),
		errors.Is(err, services.ErrIncompleteExtraction):
		httpx.WriteError(w, http.StatusUnprocessableEntity, "unprocessable", err.Error())
	case errors.Is(err, services.ErrScanFailed):
		httpx.WriteError(w, http.StatusBadGateway, "scan_failed", services.ErrScanFailed.Error())
	case errors.As(err, &parseErr):
		httpx.WriteError(w, http.StatusBadGateway, "oracle_parse_error", "could not interpret extraction result")
	case errors.Is(err, recurring.ErrInvalidInterval),
		errors.Is(err, services.ErrInvalidType),
		errors.Is(err, services.ErrNegativeAmount),
		errors.As(err, &fieldErrs):
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
