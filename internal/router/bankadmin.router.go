package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	hrest "bank-admin-service/internal/handler/rest"
	"bank-admin-service/internal/middleware"
)

func New(
	auth *middleware.AuthMiddleware,
	authHandler *hrest.AuthHandler,
	accountHandler *hrest.AccountHandler,
	userHandler *hrest.UserHandler,
	ledgerHandler *hrest.LedgerHandler,
	statementHandler *hrest.StatementHandler,
	analyticsHandler *hrest.AnalyticsHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Post("/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession)

		r.Post("/auth/logout", authHandler.Logout)

		r.Route("/admin", func(r chi.Router) {
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", accountHandler.ListAccounts)
				r.Post("/", accountHandler.OpenAccount)
				r.Get("/search", accountHandler.SearchAccounts)

				r.Route("/{number}", func(r chi.Router) {
					r.Get("/", accountHandler.GetAccount)
					r.Put("/", accountHandler.UpdateAccount)
					r.Delete("/", accountHandler.DeleteAccount)

					r.Post("/deposit", ledgerHandler.Deposit)
					r.Post("/withdraw", ledgerHandler.Withdraw)
					r.Post("/transfer", ledgerHandler.Transfer)

					r.Get("/statement", statementHandler.GetStatement)
					r.Get("/transactions", accountHandler.ListTransactions)
				})
			})

			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Put("/", userHandler.UpdateUser)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/summary", analyticsHandler.AccountsSummary)
				r.Get("/distribution", analyticsHandler.AccountTypeDistribution)
				r.Get("/trends", analyticsHandler.TransactionTrends)
				r.Get("/growth", analyticsHandler.MonthlyGrowth)
				r.Get("/demographics", analyticsHandler.UserDemographics)
			})
		})
	})

	return r
}
