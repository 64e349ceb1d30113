package scores

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/auth"
	"quizdeck/internal/domain"
)

func newTestHandlers(ledger *stubLedger) *HTTPHandlers {
	return NewHTTPHandlers(NewService(ledger, zerolog.Nop()), DefaultLeaderboardLimit, zerolog.Nop())
}

func TestLeaderboardHandler(t *testing.T) {
	now := time.Now()
	h := newTestHandlers(&stubLedger{joined: []domain.AttemptWithUser{
		joinedAttempt("alice", 9, 10, now),
		joinedAttempt("bob", 5, 10, now.Add(time.Minute)),
	}})

	rec := httptest.NewRecorder()
	h.Leaderboard(rec, httptest.NewRequest(http.MethodGet, "/api/scores/leaderboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []LeaderboardEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 90.0, entries[0].Percentage)
}

func TestLeaderboardHandlerHonorsLimitParam(t *testing.T) {
	now := time.Now()
	ledger := &stubLedger{}
	for i := 0; i < 10; i++ {
		ledger.joined = append(ledger.joined, joinedAttempt("user", 5, 10, now.Add(time.Duration(i)*time.Second)))
	}
	h := newTestHandlers(ledger)

	rec := httptest.NewRecorder()
	h.Leaderboard(rec, httptest.NewRequest(http.MethodGet, "/api/scores/leaderboard?limit=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []LeaderboardEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	assert.Len(t, entries, 3)
}

func TestLeaderboardHandlerIgnoresBadLimit(t *testing.T) {
	h := newTestHandlers(&stubLedger{})

	for _, raw := range []string{"abc", "-5", "0", "500"} {
		rec := httptest.NewRecorder()
		h.Leaderboard(rec, httptest.NewRequest(http.MethodGet, "/api/scores/leaderboard?limit="+raw, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "limit=%s", raw)
	}
}

func TestHistoryHandler(t *testing.T) {
	userID := uuid.New()
	h := newTestHandlers(&stubLedger{byUser: map[uuid.UUID][]domain.Attempt{
		userID: {
			{ID: uuid.New(), UserID: userID, Score: 7, TotalQuestions: 10, CompletedAt: time.Now()},
		},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/scores/history", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: userID, Username: "alice"}))

	rec := httptest.NewRecorder()
	h.History(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var history []HistoryEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, 7, history[0].Score)
	assert.Equal(t, 70.0, history[0].Percentage)
}

func TestHistoryHandlerWithoutIdentity(t *testing.T) {
	h := newTestHandlers(&stubLedger{})

	rec := httptest.NewRecorder()
	h.History(rec, httptest.NewRequest(http.MethodGet, "/api/scores/history", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}
