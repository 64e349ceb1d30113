package scores

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/domain"
)

type stubLedger struct {
	byUser map[uuid.UUID][]domain.Attempt
	joined []domain.AttemptWithUser
}

func (s *stubLedger) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Attempt, error) {
	attempts := s.byUser[userID]
	if attempts == nil {
		attempts = []domain.Attempt{}
	}
	return attempts, nil
}

func (s *stubLedger) ListWithUsernames(_ context.Context) ([]domain.AttemptWithUser, error) {
	return s.joined, nil
}

func joinedAttempt(username string, score, total int, completedAt time.Time) domain.AttemptWithUser {
	return domain.AttemptWithUser{
		Attempt: domain.Attempt{
			ID:             uuid.New(),
			UserID:         uuid.New(),
			Score:          score,
			TotalQuestions: total,
			CompletedAt:    completedAt,
		},
		Username: username,
	}
}

func TestTopEntriesOrderingWithTieBreak(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t1, t2, t3, t4 := base, base.Add(time.Minute), base.Add(2*time.Minute), base.Add(3*time.Minute)

	ledger := &stubLedger{joined: []domain.AttemptWithUser{
		joinedAttempt("alice", 8, 10, t1),  // 80%
		joinedAttempt("bob", 19, 20, t2),   // 95%, earlier
		joinedAttempt("carol", 19, 20, t3), // 95%, later
		joinedAttempt("dave", 6, 10, t4),   // 60%
	}}
	svc := NewService(ledger, zerolog.Nop())

	entries, err := svc.TopEntries(context.Background(), 20)

	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, "carol", entries[1].Username)
	assert.Equal(t, "alice", entries[2].Username)
	assert.Equal(t, "dave", entries[3].Username)
	assert.Equal(t, 95.0, entries[0].Percentage)
	assert.Equal(t, 80.0, entries[2].Percentage)
}

func TestTopEntriesTruncatesToLimit(t *testing.T) {
	now := time.Now()
	ledger := &stubLedger{}
	for i := 0; i < 30; i++ {
		ledger.joined = append(ledger.joined, joinedAttempt("user", i%10, 10, now.Add(time.Duration(i)*time.Second)))
	}
	svc := NewService(ledger, zerolog.Nop())

	entries, err := svc.TopEntries(context.Background(), 20)

	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestTopEntriesDefaultLimit(t *testing.T) {
	now := time.Now()
	ledger := &stubLedger{}
	for i := 0; i < 25; i++ {
		ledger.joined = append(ledger.joined, joinedAttempt("user", 5, 10, now.Add(time.Duration(i)*time.Second)))
	}
	svc := NewService(ledger, zerolog.Nop())

	entries, err := svc.TopEntries(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, entries, DefaultLeaderboardLimit)
}

func TestHistoryForEmptyUser(t *testing.T) {
	svc := NewService(&stubLedger{byUser: map[uuid.UUID][]domain.Attempt{}}, zerolog.Nop())

	history, err := svc.HistoryFor(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestHistoryPercentageOneDecimal(t *testing.T) {
	userID := uuid.New()
	ledger := &stubLedger{byUser: map[uuid.UUID][]domain.Attempt{
		userID: {
			{ID: uuid.New(), UserID: userID, Score: 2, TotalQuestions: 3, CompletedAt: time.Now()},
			{ID: uuid.New(), UserID: userID, Score: 7, TotalQuestions: 8, CompletedAt: time.Now()},
		},
	}}
	svc := NewService(ledger, zerolog.Nop())

	history, err := svc.HistoryFor(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 66.7, history[0].Percentage)
	assert.Equal(t, 87.5, history[1].Percentage)
}
