package scores

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quizdeck/internal/domain"
)

// DefaultLeaderboardLimit caps the ranked projection when no limit is given.
const DefaultLeaderboardLimit = 20

// Ledger is the read side of the attempt store.
type Ledger interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Attempt, error)
	ListWithUsernames(ctx context.Context) ([]domain.AttemptWithUser, error)
}

// HistoryEntry is one attempt in a user's history, annotated with the derived
// percentage to one decimal.
type HistoryEntry struct {
	ID             uuid.UUID `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

// LeaderboardEntry is one ranked attempt on the public leaderboard.
type LeaderboardEntry struct {
	Username       string    `json:"username"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Service derives history and leaderboard views over the attempt ledger. The
// ranking is recomputed on every call; there is no cached state.
type Service struct {
	ledger Ledger
	logger zerolog.Logger
}

// NewService constructs the scores service.
func NewService(ledger Ledger, logger zerolog.Logger) *Service {
	return &Service{
		ledger: ledger,
		logger: logger.With().Str("component", "scores").Logger(),
	}
}

// HistoryFor returns the user's attempts, newest first. No attempts is an
// empty slice, not an error.
func (s *Service) HistoryFor(ctx context.Context, userID uuid.UUID) ([]HistoryEntry, error) {
	attempts, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	history := make([]HistoryEntry, 0, len(attempts))
	for _, a := range attempts {
		history = append(history, HistoryEntry{
			ID:             a.ID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			Percentage:     percentage1(a.Score, a.TotalQuestions),
			CompletedAt:    a.CompletedAt,
		})
	}
	return history, nil
}

// TopEntries ranks all attempts by percentage descending; ties go to the
// earlier completion. The result is truncated to limit.
func (s *Service) TopEntries(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := s.ledger.ListWithUsernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Username:       row.Username,
			Score:          row.Score,
			TotalQuestions: row.TotalQuestions,
			Percentage:     percentage1(row.Score, row.TotalQuestions),
			CompletedAt:    row.CompletedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		return entries[i].CompletedAt.Before(entries[j].CompletedAt)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// percentage1 computes 100*score/total rounded to one decimal place.
func percentage1(score, total int) float64 {
	return math.Round(float64(score)*1000/float64(total)) / 10
}
