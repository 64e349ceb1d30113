package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"quizdeck/internal/auth"
	"quizdeck/internal/domain"
	httperrors "quizdeck/pkg/http/errors"
)

// SubmitRequest is the body of POST /api/quiz/submit.
type SubmitRequest struct {
	Answers []domain.Answer `json:"answers"`
}

// HTTPHandlers exposes the player-facing quiz endpoints. Both routes sit
// behind RequireAuth.
type HTTPHandlers struct {
	svc         *Service
	sessionSize int
	logger      zerolog.Logger
}

// NewHTTPHandlers creates quiz handlers; sessionSize is the number of
// questions drawn per session.
func NewHTTPHandlers(svc *Service, sessionSize int, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:         svc,
		sessionSize: sessionSize,
		logger:      logger.With().Str("component", "quiz_http").Logger(),
	}
}

// Questions handles GET /api/quiz/questions
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.BuildSession(r.Context(), h.sessionSize)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestionsAvailable) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNoQuestionsAvailable, "No questions available")
			return
		}
		h.logger.Error().Err(err).Msg("session assembly failed")
		httperrors.RespondInternalError(w, "Failed to get questions")
		return
	}
	h.respondJSON(w, http.StatusOK, session)
}

// Submit handles POST /api/quiz/submit
func (h *HTTPHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	summary, err := h.svc.Grade(r.Context(), identity.UserID, req.Answers)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyAnswerSet) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeEmptyAnswerSet, "Answers array is required")
			return
		}
		h.logger.Error().Err(err).Msg("submission grading failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSubmitFailed, "Failed to submit quiz")
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}
