package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
	"github.com/IsakPar/hanzi-vocab-val/internal/syncer"
)

func newAdminHandler(t *testing.T, store *curriculum.Store, backendURL string, apply func(*domain.CurriculumExport)) *AdminHandler {
	t.Helper()
	sync, err := syncer.New(backendURL, t.TempDir(), discardLogger())
	require.NoError(t, err)
	if apply == nil {
		apply = func(*domain.CurriculumExport) {}
	}
	return NewAdminHandler(store, sync, apply, "development", discardLogger())
}

func TestHealthDegradedBeforeLoad(t *testing.T) {
	t.Parallel()

	h := newAdminHandler(t, curriculum.NewStore(), "http://localhost:1", nil)
	rr := doJSON(t, h.Health, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.False(t, resp.CurriculumLoaded)
	assert.Equal(t, "development", resp.Environment)
}

func TestHealthHealthyAfterLoad(t *testing.T) {
	t.Parallel()

	h := newAdminHandler(t, loadedStore(t), "http://localhost:1", nil)
	rr := doJSON(t, h.Health, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.CurriculumLoaded)
	assert.Equal(t, 3, resp.WordCount)
	assert.Equal(t, "v1", resp.Version)
}

func TestVersionEndpoint(t *testing.T) {
	t.Parallel()

	h := newAdminHandler(t, loadedStore(t), "http://localhost:1", nil)
	rr := doJSON(t, h.Version, http.MethodGet, "/version", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var resp VersionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Loaded)
	assert.Equal(t, "v1", resp.Version)
}

func TestSyncInstallsNewSnapshot(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/curriculum/version":
			_ = json.NewEncoder(w).Encode(map[string]any{"version": "v2", "changed": true})
		case "/v1/curriculum/export":
			_ = json.NewEncoder(w).Encode(domain.CurriculumExport{
				Version: "v2",
				Words:   map[string]string{"你好": "hsk1-l1"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	var applied *domain.CurriculumExport
	h := newAdminHandler(t, curriculum.NewStore(), backend.URL, func(e *domain.CurriculumExport) {
		applied = e
	})

	rr := doJSON(t, h.Sync, http.MethodPost, "/sync", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var result syncer.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.True(t, result.Changed)
	require.NotNil(t, applied)
	assert.Equal(t, "v2", applied.Version)
}

func TestSyncUnreachableBackendReportsFailure(t *testing.T) {
	t.Parallel()

	h := newAdminHandler(t, curriculum.NewStore(), "http://127.0.0.1:1", nil)
	rr := doJSON(t, h.Sync, http.MethodPost, "/sync", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var result syncer.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.False(t, result.Success)
}
