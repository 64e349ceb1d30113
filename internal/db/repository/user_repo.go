package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizdeck/internal/domain"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// UserRepository exposes typed DB operations required by auth flows.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository wraps a pgx pool for user-specific operations.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new account. The unique constraint on username is the
// authority for uniqueness; a violation maps to domain.ErrUsernameTaken so
// concurrent registrations cannot race past an existence check.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, isAdmin bool) (domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, is_admin)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, password_hash, is_admin, created_at`,
		username, passwordHash, isAdmin)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// GetByUsername fetches a user by its unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_admin, created_at
		 FROM users WHERE username = $1`,
		username)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

// GetByID fetches a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_admin, created_at
		 FROM users WHERE id = $1`,
		pgUUID(userID))

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		id   pgtype.UUID
		user domain.User
	)
	if err := row.Scan(&id, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt); err != nil {
		return domain.User{}, err
	}
	user.ID = fromPG(id)
	return user, nil
}
