package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/IsakPar/hanzi-vocab-val/internal/config"
	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
	"github.com/IsakPar/hanzi-vocab-val/internal/platform/metrics"
	"github.com/IsakPar/hanzi-vocab-val/internal/recommend"
	"github.com/IsakPar/hanzi-vocab-val/internal/segment"
	"github.com/IsakPar/hanzi-vocab-val/internal/syncer"
	"github.com/IsakPar/hanzi-vocab-val/internal/validation"
)

// bootstrapTimeout bounds the startup auto-sync against the backend.
const bootstrapTimeout = 2 * time.Minute

// application holds the wired services and shared state for the server's
// lifetime.
type application struct {
	config *config.Config
	logger *slog.Logger

	segmenter *segment.GseSegmenter
	store     *curriculum.Store
	syncer    *syncer.Service
	watcher   *syncer.Watcher

	validationService *validation.Service
	recommendService  *recommend.Service
}

// newApplication wires all services and bootstraps the first curriculum
// snapshot. The server still starts when no snapshot can be obtained;
// validation endpoints answer 503 until a sync succeeds.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	seg, err := segment.New()
	if err != nil {
		return nil, fmt.Errorf("initializing segmenter: %w", err)
	}

	sync, err := syncer.New(cfg.Backend.URL, cfg.Sync.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("initializing syncer: %w", err)
	}

	app := &application{
		config:    cfg,
		logger:    log,
		segmenter: seg,
		store:     curriculum.NewStore(),
		syncer:    sync,
	}
	app.validationService = validation.NewService(app.store, seg, log)
	app.recommendService = recommend.NewService(app.store, log)

	app.bootstrapSnapshot()

	if cfg.Sync.WatchCache {
		watcher, err := syncer.NewWatcher(sync.ExportPath(), app.reloadFromCache, log)
		if err != nil {
			return nil, fmt.Errorf("starting cache watcher: %w", err)
		}
		app.watcher = watcher
	}

	return app, nil
}

// bootstrapSnapshot loads the cached export, falling back to one sync
// attempt against the backend when the cache is cold and auto-sync is on.
func (app *application) bootstrapSnapshot() {
	export, err := app.syncer.LoadCached()
	if err == nil {
		app.applyExport(export)
		app.logger.Info("curriculum loaded from cache",
			"word_count", len(export.Words))
		return
	}
	if !os.IsNotExist(err) {
		app.logger.Error("cached curriculum is unreadable", "error", err)
		return
	}

	if !app.config.Sync.AutoSync {
		app.logger.Warn("no curriculum cache and auto-sync disabled, POST /sync to initialize")
		return
	}

	app.logger.Warn("no curriculum cache found, attempting auto-sync")
	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	result, export, err := app.syncer.Sync(ctx)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		app.logger.Error("auto-sync failed, service starting without curriculum", "error", err)
		return
	}
	if export != nil {
		app.applyExport(export)
		metrics.SyncRuns.WithLabelValues("changed").Inc()
		app.logger.Info("auto-sync successful", "word_count", result.WordCount)
	}
}

// applyExport builds a snapshot from an export and installs it. Building
// also reseeds the segmenter with the curriculum vocabulary.
func (app *application) applyExport(export *domain.CurriculumExport) {
	snap := curriculum.Build(export, app.segmenter)
	app.store.Replace(snap)
	metrics.SnapshotWords.Set(float64(snap.WordCount()))
}

// reloadFromCache re-reads the cached export after the watcher saw it
// change.
func (app *application) reloadFromCache() {
	export, err := app.syncer.LoadCached()
	if err != nil {
		app.logger.Error("reload from cache failed", "error", err)
		return
	}
	app.applyExport(export)
	app.logger.Info("curriculum reloaded from cache",
		"word_count", len(export.Words))
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Warn("closing cache watcher", "error", err)
		}
	}
}
