package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parisxmas/OxiSign/internal/handler"
	mw "github.com/parisxmas/OxiSign/internal/middleware"
)

func New(
	sigH *handler.SignatureHandler,
	statusH *handler.StatusHandler,
	auditH *handler.AuditHandler,
	webhookH *handler.WebhookHandler,
	docH *handler.DocumentHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)
	r.Use(mw.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/start-signature", sigH.Start)
		r.Get("/signature-status/{id}", statusH.Cached)
		r.Get("/signature-status/{id}/live", statusH.Live)
		r.Get("/audit-trail", auditH.Get)
		r.Post("/yousign-webhook", webhookH.Receive)
		r.Post("/fill-nda", docH.FillNDA)
	})

	return r
}
