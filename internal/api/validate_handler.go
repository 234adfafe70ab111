// Package api implements the HTTP surface: request decoding and
// validation, handler wiring, and error mapping. The engine packages
// never see a malformed request.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/IsakPar/hanzi-vocab-val/internal/api/shared"
	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
	"github.com/IsakPar/hanzi-vocab-val/internal/platform/metrics"
	"github.com/IsakPar/hanzi-vocab-val/internal/validation"
)

// ValidationHandler serves the four validation endpoints.
type ValidationHandler struct {
	service *validation.Service
	logger  *slog.Logger
}

// NewValidationHandler creates a handler backed by the validation service.
func NewValidationHandler(service *validation.Service, logger *slog.Logger) *ValidationHandler {
	return &ValidationHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "validation")),
	}
}

// ValidateText handles POST /validate: free validation of text against a
// learner's (level, lesson) position.
func (h *ValidationHandler) ValidateText(w http.ResponseWriter, r *http.Request) {
	var req ValidateTextRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	pos := domain.Position{Level: req.UserPosition.HSK, Lesson: req.UserPosition.Lesson}
	report, err := h.service.ValidateText(*req.Text, pos, req.TargetWords)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	metrics.ValidationRequests.WithLabelValues("text", strconv.FormatBool(report.Valid)).Inc()
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// ValidateLesson handles POST /validate-lesson: strict i+1 validation
// against an absolute-lesson ceiling.
func (h *ValidationHandler) ValidateLesson(w http.ResponseWriter, r *http.Request) {
	var req ValidateLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	level := req.HSKLevel
	if level == 0 {
		level = 1
	}
	maxLesson := domain.Position{Level: level, Lesson: *req.LessonNumber}.AbsoluteLesson()

	report, err := h.service.ValidateLesson(*req.Text, maxLesson, req.FocusWords)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	metrics.ValidationRequests.WithLabelValues("lesson", strconv.FormatBool(report.Valid)).Inc()
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// ValidateReading handles POST /validate/reading: ratio-scored checking
// of generated reading content, with retry hints on rejection.
func (h *ValidationHandler) ValidateReading(w http.ResponseWriter, r *http.Request) {
	var req ValidateReadingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	level := req.HSKLevel
	if level == 0 {
		level = 1
	}
	maxLesson := domain.Position{Level: level, Lesson: *req.UserLessonPosition}.AbsoluteLesson()

	report, err := h.service.ValidateReading(req.Reading.Text, maxLesson, req.FocusWords, req.AllowedWords)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	metrics.ValidationRequests.WithLabelValues("reading", strconv.FormatBool(report.OK)).Inc()
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// ValidateStructure handles POST /validate/structure: structural checks
// on a batch of generated exercises. Unknown exercise types fail JSON
// decoding, so they are rejected here as bad requests.
func (h *ValidationHandler) ValidateStructure(w http.ResponseWriter, r *http.Request) {
	var req ValidateStructureRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, domain.ErrUnknownExerciseType) {
			msg = GetSafeErrorMessage(err)
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	report := h.service.ValidateStructure(req.Exercises, req.AllowedWords)

	metrics.ValidationRequests.WithLabelValues("structure", strconv.FormatBool(report.OK)).Inc()
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}
