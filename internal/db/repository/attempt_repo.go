package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizdeck/internal/domain"
)

// AttemptRepository is the append-only ledger of completed quiz submissions.
// It deliberately exposes no update or delete.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository wraps a pgx pool for attempt operations.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Insert appends one immutable attempt record and returns it with the
// store-assigned id and completion timestamp.
func (r *AttemptRepository) Insert(ctx context.Context, userID uuid.UUID, score, total int) (domain.Attempt, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO attempts (user_id, score, total_questions)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, score, total_questions, completed_at`,
		pgUUID(userID), score, total)

	var (
		id  pgtype.UUID
		uid pgtype.UUID
		a   domain.Attempt
	)
	if err := row.Scan(&id, &uid, &a.Score, &a.TotalQuestions, &a.CompletedAt); err != nil {
		return domain.Attempt{}, fmt.Errorf("insert attempt: %w", err)
	}
	a.ID = fromPG(id)
	a.UserID = fromPG(uid)
	return a, nil
}

// ListByUser returns all attempts for a user, newest first. A user with no
// attempts gets an empty slice.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Attempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, score, total_questions, completed_at
		 FROM attempts WHERE user_id = $1 ORDER BY completed_at DESC`,
		pgUUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.Attempt, 0)
	for rows.Next() {
		var (
			id  pgtype.UUID
			uid pgtype.UUID
			a   domain.Attempt
		)
		if err := rows.Scan(&id, &uid, &a.Score, &a.TotalQuestions, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.ID = fromPG(id)
		a.UserID = fromPG(uid)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ListWithUsernames joins every attempt with its owner's username for
// leaderboard ranking. Ordering is left to the ranker.
func (r *AttemptRepository) ListWithUsernames(ctx context.Context) ([]domain.AttemptWithUser, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.user_id, a.score, a.total_questions, a.completed_at, u.username
		 FROM attempts a JOIN users u ON a.user_id = u.id`)
	if err != nil {
		return nil, fmt.Errorf("list attempts with users: %w", err)
	}
	defer rows.Close()

	joined := make([]domain.AttemptWithUser, 0)
	for rows.Next() {
		var (
			id  pgtype.UUID
			uid pgtype.UUID
			row domain.AttemptWithUser
		)
		if err := rows.Scan(&id, &uid, &row.Score, &row.TotalQuestions, &row.CompletedAt, &row.Username); err != nil {
			return nil, fmt.Errorf("scan attempt row: %w", err)
		}
		row.ID = fromPG(id)
		row.UserID = fromPG(uid)
		joined = append(joined, row)
	}
	return joined, rows.Err()
}
