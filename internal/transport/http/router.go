package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"host-ledger/internal/app/operator"
)

// NewRouter assembles the operator API. healthcheck may be nil when no
// durable store is wired.
func NewRouter(svc *operator.Service, apiKey string, healthcheck func(context.Context) error) *chi.Mux {
	h := NewHandlers(svc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(requestLogMiddleware()).Get("/healthz", healthHandler(healthcheck))

	r.Route("/api", func(r chi.Router) {
		r.Use(requestLogMiddleware())
		r.Use(operatorAuthMiddleware(apiKey))

		r.Get("/players", h.ListPlayers())
		r.Post("/players", h.AddPlayer())
		r.Post("/players/{name}/rebuy", h.Rebuy())
		r.Post("/players/{name}/repay", h.RepayDebt())
		r.Post("/players/{name}/sit-out", h.SitOut())
		r.Post("/players/{name}/return", h.ReturnToTable())
		r.Post("/players/{name}/chips", h.SetChipCounts())
		r.Get("/players/{name}/cashout/preview", h.PreviewCashout())
		r.Post("/players/{name}/cashout", h.CommitCashout())

		r.Post("/house/rake", h.AddRake())
		r.Post("/house/expenses", h.AddExpense())
		r.Post("/house/insurance/win", h.InsuranceWin())
		r.Post("/house/insurance/loss", h.InsuranceLoss())
		r.Post("/house/insurance/manual", h.InsuranceManual())

		r.Get("/audit", h.Audit())
		r.Get("/summary", h.Summary())

		r.Post("/session/config", h.SetConfig())
		r.Post("/session/import", h.Import())
		r.Post("/session/close", h.CloseSession())
		r.Post("/session/reset", h.ResetSession())
		r.Post("/session/snapshot", h.SaveSnapshot())
		r.Post("/session/snapshot/restore", h.RestoreSnapshot())
		r.Delete("/session/snapshot", h.DeleteSnapshot())

		r.Get("/records", h.Records())
	})
	return r
}

func healthHandler(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				WriteHTTPError(w, http.StatusServiceUnavailable, "store_unreachable")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// LogRoutes prints the mounted route table at startup.
func LogRoutes(r chi.Routes) {
	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		log.Info().Str("method", method).Str("route", route).Msg("route")
		return nil
	})
}
