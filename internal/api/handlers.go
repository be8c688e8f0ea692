package api

import (
	"net/http"
	"time"

	"github.com/ignite/rpp-analyzer/internal/config"
	"github.com/ignite/rpp-analyzer/internal/ingest"
	"github.com/ignite/rpp-analyzer/internal/pkg/httputil"
	"github.com/ignite/rpp-analyzer/internal/session"
)

// Handlers holds the dependencies shared by all HTTP handlers
type Handlers struct {
	cfg       *config.Config
	store     *session.Store
	loader    *ingest.Loader
	startedAt time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(cfg *config.Config, store *session.Store, loader *ingest.Loader) *Handlers {
	return &Handlers{
		cfg:       cfg,
		store:     store,
		loader:    loader,
		startedAt: time.Now(),
	}
}

// HealthCheck returns server health status
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"sessions":  h.store.Count(),
	})
}
