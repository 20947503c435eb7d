package middleware

import (
	"net"
	"net/http"

	"github.com/devkartikrathi/ncfo/internal/admission"
	"github.com/devkartikrathi/ncfo/internal/api/httpx"
)

// Admit is a coarse edge limiter keyed by client address. The business
// check with per-user quotas runs inside the services; this one only sheds
// abusive peers before routing.
func Admit(c admission.Checker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			d := c.Check(r.Context(), host, 1)
			if !d.Allowed {
				if d.Blocked {
					httpx.WriteError(w, http.StatusForbidden, "blocked", "request blocked")
					return
				}
				httpx.WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
