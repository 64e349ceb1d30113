package question

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quizdeck/internal/domain"
	httperrors "quizdeck/pkg/http/errors"
)

// HTTPHandlers exposes the admin question-bank endpoints. All routes are
// mounted behind RequireAuth + RequireAdmin.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for question administration.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// List handles GET /api/admin/questions
func (h *HTTPHandlers) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list questions failed")
		httperrors.RespondInternalError(w, "Failed to get questions")
		return
	}
	h.respondJSON(w, http.StatusOK, questions)
}

// Create handles POST /api/admin/questions
func (h *HTTPHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create question")
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/questions/{id}
func (h *HTTPHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var input UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		h.respondServiceError(w, err, "Failed to update question")
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/questions/{id}
func (h *HTTPHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "Failed to delete question")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandlers) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		httperrors.RespondValidationError(w, ve.Reason, ve.Field)
	case errors.Is(err, domain.ErrQuestionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
	default:
		h.logger.Error().Err(err).Msg(fallback)
		httperrors.RespondInternalError(w, fallback)
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}
