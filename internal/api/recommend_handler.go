package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/IsakPar/hanzi-vocab-val/internal/api/shared"
	"github.com/IsakPar/hanzi-vocab-val/internal/curriculum"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
	"github.com/IsakPar/hanzi-vocab-val/internal/platform/metrics"
	"github.com/IsakPar/hanzi-vocab-val/internal/recommend"
)

// defaultMaxLesson is the vocabulary-export ceiling when the caller does
// not pass max_lesson: all of HSK1.
const defaultMaxLesson = 10

// RecommendHandler serves content recommendations and the vocabulary
// export consumed by the upstream lesson generator.
type RecommendHandler struct {
	service *recommend.Service
	store   *curriculum.Store
	logger  *slog.Logger
}

// NewRecommendHandler creates a handler backed by the recommendation
// service and the snapshot store.
func NewRecommendHandler(service *recommend.Service, store *curriculum.Store, logger *slog.Logger) *RecommendHandler {
	return &RecommendHandler{
		service: service,
		store:   store,
		logger:  logger.With(slog.String("handler", "recommend")),
	}
}

// Recommend handles POST /recommend: tiered content recommendations for
// a learner's lesson position.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	contentType := domain.ContentType(req.ContentType)
	if contentType == "" {
		contentType = domain.ContentTypeAll
	}

	rec, err := h.service.Recommend(req.LessonID, contentType, req.ItemsPerTier)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	metrics.RecommendRequests.Inc()
	shared.RespondWithJSON(w, r, http.StatusOK, rec)
}

// GetVocabulary handles GET /vocabulary?max_lesson=N: the deduplicated
// curriculum words taught no later than the given absolute lesson.
func (h *RecommendHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	maxLesson := defaultMaxLesson
	if raw := r.URL.Query().Get("max_lesson"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "max_lesson must be a positive integer")
			return
		}
		maxLesson = parsed
	}

	snap, err := h.store.Current()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	words := snap.WordsUpTo(maxLesson)
	shared.RespondWithJSON(w, r, http.StatusOK, VocabularyResponse{
		Words:     words,
		Count:     len(words),
		MaxLesson: maxLesson,
	})
}
