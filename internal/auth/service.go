package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quizdeck/internal/auth/jwt"
	"quizdeck/internal/domain"
)

// UserStore is the account storage contract the auth service depends on.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string, isAdmin bool) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

// Service handles registration, login and token validation.
type Service struct {
	users    UserStore
	tokenMgr *jwt.Manager
	logger   zerolog.Logger
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
}

// NewService creates an authentication service.
func NewService(users UserStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		tokenMgr: jwt.NewManager(opts.TokenConfig),
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a new account and issues a token. Uniqueness is enforced
// by the store's unique constraint, not by a check-then-insert.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (UserInfo, Token, error) {
	if len(req.Username) < minUsernameLength {
		return UserInfo{}, Token{}, ErrUsernameTooShort
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return UserInfo{}, Token{}, err
	}

	user, err := s.users.Create(ctx, req.Username, passwordHash, false)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return UserInfo{}, Token{}, domain.ErrUsernameTaken
		}
		return UserInfo{}, Token{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return UserInfo{}, Token{}, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("user registered")

	return toUserInfo(user), token, nil
}

// Login authenticates username/password credentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (UserInfo, Token, error) {
	if req.Username == "" || req.Password == "" {
		return UserInfo{}, Token{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return UserInfo{}, Token{}, domain.ErrInvalidCredentials
	}

	if err := VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return UserInfo{}, Token{}, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return UserInfo{}, Token{}, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return toUserInfo(user), token, nil
}

// Me fetches the current account for an authenticated identity.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (UserInfo, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return UserInfo{}, err
	}
	return toUserInfo(user), nil
}

// ValidateToken verifies an access token and returns its claims.
func (s *Service) ValidateToken(token string) (*jwt.Claims, error) {
	return s.tokenMgr.Validate(token)
}

func (s *Service) issueToken(user domain.User) (Token, error) {
	signed, err := s.tokenMgr.Generate(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return Token{}, fmt.Errorf("generate token: %w", err)
	}
	return Token{
		AccessToken: signed,
		ExpiresIn:   int64(s.tokenMgr.TTL().Seconds()),
	}, nil
}

func toUserInfo(user domain.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}
