package api

import (
	"log/slog"
	"net/http"

	"github.com/IsakPar/hanzi-vocab-val/internal/api/shared"
	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
	"github.com/IsakPar/hanzi-vocab-val/internal/platform/metrics"
	"github.com/IsakPar/hanzi-vocab-val/internal/redact"
	"github.com/IsakPar/hanzi-vocab-val/internal/syncer"
)

// AdminHandler serves health, version, and the protected sync endpoint.
type AdminHandler struct {
	store       *curriculum.Store
	syncer      *syncer.Service
	apply       func(*domain.CurriculumExport)
	environment string
	logger      *slog.Logger
}

// NewAdminHandler creates the admin handler. apply installs a freshly
// synced export as the active snapshot.
func NewAdminHandler(store *curriculum.Store, sync *syncer.Service, apply func(*domain.CurriculumExport), environment string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		store:       store,
		syncer:      sync,
		apply:       apply,
		environment: environment,
		logger:      logger.With(slog.String("handler", "admin")),
	}
}

// Health handles GET /health. The service reports degraded, not down,
// while the curriculum is missing: validation cannot run but sync can.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:      "degraded",
		Environment: h.environment,
	}
	if snap, err := h.store.Current(); err == nil {
		resp.Status = "healthy"
		resp.CurriculumLoaded = true
		resp.WordCount = snap.WordCount()
		resp.Version = snap.Version()
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Version handles GET /version.
func (h *AdminHandler) Version(w http.ResponseWriter, r *http.Request) {
	resp := VersionResponse{}
	if snap, err := h.store.Current(); err == nil {
		resp.Loaded = true
		resp.Version = snap.Version()
		resp.WordCount = snap.WordCount()
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Sync handles POST /sync (API-key protected): one sync cycle against
// the backend, installing the new snapshot when data changed. Network
// failure is reported as an unsuccessful result rather than an HTTP
// error, so schedulers can distinguish "backend unreachable" from
// "request rejected".
func (h *AdminHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, export, err := h.syncer.Sync(r.Context())
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		h.logger.Error("sync failed",
			slog.String("trace_id", shared.GetTraceID(r.Context())),
			slog.String("error", redact.Error(err)))
		shared.RespondWithJSON(w, r, http.StatusOK, syncer.Result{})
		return
	}

	if result.Changed && export != nil {
		h.apply(export)
		h.logger.Info("curriculum reloaded",
			slog.String("version", result.Version),
			slog.Int("word_count", result.WordCount))
		metrics.SyncRuns.WithLabelValues("changed").Inc()
	} else {
		metrics.SyncRuns.WithLabelValues("unchanged").Inc()
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
