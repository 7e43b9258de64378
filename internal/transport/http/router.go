// Package httptransport is the thin HTTP layer. Handlers decode, delegate to
// domain services, and translate coded errors; business rules never live here.
package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registrar mounts a handler group on the router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter assembles the public API surface from handler groups.
func NewRouter(groups ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, group := range groups {
		group.Register(r)
	}
	return r
}
