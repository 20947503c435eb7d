package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/devkartikrathi/ncfo/internal/admission"
	"github.com/devkartikrathi/ncfo/internal/api/handlers"
	"github.com/devkartikrathi/ncfo/internal/metrics"
	"github.com/devkartikrathi/ncfo/internal/middleware"
)

type RouterDeps struct {
	Auth         *middleware.AuthMiddleware
	EdgeLimiter  admission.Checker
	AuthHandler  *handlers.AuthHandler
	Accounts     *handlers.AccountsHandler
	Transactions *handlers.TransactionsHandler
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(middleware.Admit(d.EdgeLimiter))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", d.AuthHandler.Register)
		r.Post("/auth/login", d.AuthHandler.Login)
		r.Post("/auth/refresh", d.AuthHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Get("/accounts", d.Accounts.List)
			r.Post("/accounts", d.Accounts.Create)
			r.Get("/accounts/{id}", d.Accounts.Get)

			r.Post("/transactions", d.Transactions.Create)
			r.Get("/transactions", d.Transactions.List)
			r.Get("/transactions/{id}", d.Transactions.Get)
			r.Post("/transactions/scan", d.Transactions.Scan)
			r.Post("/transactions/prompt", d.Transactions.Prompt)
		})
	})

	return r
}
