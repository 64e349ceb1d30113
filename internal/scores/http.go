package scores

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"quizdeck/internal/auth"
	httperrors "quizdeck/pkg/http/errors"
)

// HTTPHandlers exposes leaderboard and history endpoints.
type HTTPHandlers struct {
	svc          *Service
	defaultLimit int
	logger       zerolog.Logger
}

// NewHTTPHandlers creates score handlers; defaultLimit governs the
// leaderboard size when the client does not ask for one.
func NewHTTPHandlers(svc *Service, defaultLimit int, logger zerolog.Logger) *HTTPHandlers {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLeaderboardLimit
	}
	return &HTTPHandlers{
		svc:          svc,
		defaultLimit: defaultLimit,
		logger:       logger.With().Str("component", "scores_http").Logger(),
	}
}

// Leaderboard handles GET /api/scores/leaderboard (public)
func (h *HTTPHandlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := h.svc.TopEntries(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("leaderboard fetch failed")
		httperrors.RespondInternalError(w, "Failed to get leaderboard")
		return
	}
	h.respondJSON(w, entries)
}

// History handles GET /api/scores/history (auth required)
func (h *HTTPHandlers) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	history, err := h.svc.HistoryFor(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("history fetch failed")
		httperrors.RespondInternalError(w, "Failed to get history")
		return
	}
	h.respondJSON(w, history)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}
