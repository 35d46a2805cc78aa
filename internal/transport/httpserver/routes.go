package httpserver

import (
	"net/http"
	"time"

	"chama-ledger-go/internal/config"
	"chama-ledger-go/internal/transport/httpserver/handler"
	corsmw "chama-ledger-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(corsmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Get("/members", handlers.ListMembers)
		r.Post("/members", handlers.RegisterMember)
		r.Get("/members/{id}", handlers.GetMember)
		r.Patch("/members/{id}", handlers.UpdateMember)
		r.Post("/members/{id}/deactivate", handlers.DeactivateMember)
		r.Post("/members/{id}/activate", handlers.ActivateMember)
		r.Delete("/members/{id}", handlers.DeleteMember)

		r.Get("/months", handlers.ListMonths)
		r.Post("/months", handlers.CreateMonth)
		r.Get("/months/{id}", handlers.GetMonth)
		r.Post("/months/{id}/lock", handlers.LockMonth)
		r.Post("/months/{id}/unlock", handlers.UnlockMonth)
		r.Delete("/months/{id}", handlers.DeleteMonth)

		r.Get("/payments", handlers.ListPayments)
		r.Post("/payments", handlers.CreatePayment)
		r.Get("/payments/entry-options", handlers.PaymentEntryOptions)
		r.Get("/payments/{id}", handlers.GetPayment)
		r.Put("/payments/{id}", handlers.UpdatePayment)
		r.Delete("/payments/{id}", handlers.DeletePayment)
	})

	return r
}
