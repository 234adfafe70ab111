// Package syncer fetches the curriculum export from the backend, caches
// it on disk, and detects whether the cached copy changed. The engine
// itself never touches the network; it consumes exports this package
// materializes.
package syncer

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/zeebo/blake3"

	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

// Cache file names inside the data directory. content.json is the raw
// export; the sidecars track the backend version string and the content
// hash of the last downloaded payload.
const (
	exportFile  = "content.json"
	versionFile = "version.txt"
	hashFile    = "content.hash"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 2 // 3 attempts total
)

// Service talks to the backend's curriculum endpoints and manages the
// local cache.
type Service struct {
	backendURL string
	dataDir    string
	client     *http.Client
	logger     *slog.Logger
}

// New creates a sync service for the given backend and data directory.
// The directory is created if missing.
func New(backendURL, dataDir string, logger *slog.Logger) (*Service, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}
	return &Service{
		backendURL: strings.TrimRight(backendURL, "/"),
		dataDir:    dataDir,
		client:     &http.Client{Timeout: requestTimeout},
		logger:     logger.With(slog.String("component", "syncer")),
	}, nil
}

// VersionInfo is the backend's answer to a version probe.
type VersionInfo struct {
	Version     string `json:"version"`
	Changed     bool   `json:"changed"`
	WordCount   int    `json:"wordCount"`
	LessonCount int    `json:"lessonCount"`
}

// Result summarizes one sync run for callers and for the HTTP response.
type Result struct {
	Success     bool   `json:"success"`
	Version     string `json:"version"`
	WordCount   int    `json:"word_count"`
	LessonCount int    `json:"lesson_count"`
	Changed     bool   `json:"changed"`
}

// Sync performs one full sync cycle: probe the version endpoint, and if
// the backend reports a change (or the probe is inconclusive), download
// the export, compare its content hash against the cached one, and write
// the cache atomically. A hash match after download still counts as
// unchanged, covering backends whose version strings churn without data
// changes.
//
// Network failures after retries surface as an error; callers translate
// that to a failed Result at the boundary.
func (s *Service) Sync(ctx context.Context) (*Result, *domain.CurriculumExport, error) {
	info, err := s.CheckVersion(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("checking curriculum version: %w", err)
	}
	if !info.Changed {
		s.logger.Info("curriculum unchanged, skipping download",
			slog.String("version", info.Version))
		return &Result{
			Success:     true,
			Version:     info.Version,
			WordCount:   info.WordCount,
			LessonCount: info.LessonCount,
			Changed:     false,
		}, nil, nil
	}

	s.logger.Info("downloading curriculum export")
	payload, err := s.FetchExport(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching curriculum export: %w", err)
	}

	var export domain.CurriculumExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidExport, err)
	}

	newHash := hashPayload(payload)
	changed := newHash != s.readSidecar(hashFile)

	if changed {
		if err := s.writeCache(payload, export.Version, newHash); err != nil {
			return nil, nil, err
		}
		s.logger.Info("curriculum cache updated",
			slog.String("version", export.Version),
			slog.Int("word_count", len(export.Words)),
			slog.Int("lesson_count", len(export.LessonOrder)))
	} else {
		s.logger.Info("export content identical to cache",
			slog.String("version", export.Version))
	}

	return &Result{
		Success:     true,
		Version:     export.Version,
		WordCount:   len(export.Words),
		LessonCount: len(export.LessonOrder),
		Changed:     changed,
	}, &export, nil
}

// CheckVersion probes the backend's version endpoint, sending the locally
// cached version so the backend can answer with a change flag.
func (s *Service) CheckVersion(ctx context.Context) (*VersionInfo, error) {
	local := s.readSidecar(versionFile)

	var info VersionInfo
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.backendURL+"/v1/curriculum/version", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("X-Local-Version", local)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := checkStatus(resp); err != nil {
			return err
		}
		return json.NewDecoder(resp.Body).Decode(&info)
	}
	if err := s.retry(ctx, "check version", op); err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchExport downloads the full curriculum export and returns the raw
// payload bytes.
func (s *Service) FetchExport(ctx context.Context) ([]byte, error) {
	var payload []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.backendURL+"/v1/curriculum/export", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := checkStatus(resp); err != nil {
			return err
		}
		payload, err = io.ReadAll(resp.Body)
		return err
	}
	if err := s.retry(ctx, "fetch export", op); err != nil {
		return nil, err
	}
	return payload, nil
}

// LoadCached reads the cached export from disk, for startup without
// network. os.IsNotExist on the returned error distinguishes a cold cache
// from a corrupt one.
func (s *Service) LoadCached() (*domain.CurriculumExport, error) {
	data, err := os.ReadFile(s.ExportPath())
	if err != nil {
		return nil, err
	}
	var export domain.CurriculumExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExport, err)
	}
	return &export, nil
}

// ExportPath returns the path of the cached export file, for the watcher.
func (s *Service) ExportPath() string {
	return filepath.Join(s.dataDir, exportFile)
}

func (s *Service) retry(ctx context.Context, what string, op backoff.Operation) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("backend request failed, retrying",
			slog.String("operation", what),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()))
	}
	return backoff.RetryNotify(op, policy, notify)
}

// checkStatus classifies HTTP status codes for retry purposes: 4xx means
// the request itself is wrong and retrying cannot help, anything else
// non-2xx is transient.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	err := fmt.Errorf("backend returned %s", resp.Status)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return backoff.Permanent(err)
	}
	return err
}

// writeCache persists the export and its sidecars. Each file is written
// to a temp name and renamed so a crash never leaves a half-written
// export for the watcher to pick up.
func (s *Service) writeCache(payload []byte, version, hash string) error {
	files := []struct {
		name string
		data []byte
	}{
		{exportFile, payload},
		{versionFile, []byte(version)},
		{hashFile, []byte(hash)},
	}
	for _, f := range files {
		target := filepath.Join(s.dataDir, f.name)
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, f.data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
		if err := os.Rename(tmp, target); err != nil {
			return fmt.Errorf("replacing %s: %w", f.name, err)
		}
	}
	return nil
}

func (s *Service) readSidecar(name string) string {
	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func hashPayload(payload []byte) string {
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
