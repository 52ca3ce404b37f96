package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/repository"
	"github.com/shopcore/shopcore/internal/utils"
)

// LoginResult carries the freshly issued session back to the handler,
// which sets the cookie. The raw token is never stored.
type LoginResult struct {
	User       *domain.User
	Token      string
	ExpiresAt  time.Time
	SessionTTL time.Duration
}

type authService struct {
	repos      *repository.Repositories
	bcryptCost int
	sessionTTL time.Duration
}

// NewAuthService creates the authentication service.
func NewAuthService(repos *repository.Repositories, bcryptCost int, sessionTTL time.Duration) AuthService {
	return &authService{
		repos:      repos,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new account. New users are subscribed to the
// newsletter until they opt out.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if !utils.ValidateUsername(username) {
		return nil, domain.Invalid("username must be 1-80 characters")
	}

	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, domain.Invalid("invalid email address")
	}

	if req.Password == "" {
		return nil, domain.MissingField("password")
	}

	// The unique index still decides concurrent registrations; this
	// pre-check just skips the bcrypt work for a known-taken email.
	if _, err := s.repos.Users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: username or email already registered", domain.ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsSubscribed: true,
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already registered", domain.ErrConflict)
		}
		return nil, err
	}

	return userResponse(user), nil
}

// Login verifies credentials and issues a session token. A user holds
// at most one active session, so earlier sessions are revoked in the
// same transaction that creates the new one. Unknown usernames and
// wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error) {
	user, err := s.repos.Users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := utils.NewToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		TokenHash: utils.HashToken(token),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	err = s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		if err := tx.Sessions.RevokeAllForUser(ctx, user.ID); err != nil {
			return err
		}
		return tx.Sessions.Create(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginResult{
		User:       user,
		Token:      token,
		ExpiresAt:  session.ExpiresAt,
		SessionTTL: s.sessionTTL,
	}, nil
}

// Logout revokes the session behind a raw token.
func (s *authService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return domain.ErrUnauthenticated
	}

	err := s.repos.Sessions.RevokeByTokenHash(ctx, utils.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrUnauthenticated
		}
		return err
	}

	return nil
}

// Resolve maps a raw session token to its user, rejecting expired and
// revoked sessions.
func (s *authService) Resolve(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := s.repos.Sessions.GetByTokenHash(ctx, utils.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if !session.Active(time.Now().UTC()) {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repos.Users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

// GetUser returns a user's profile.
func (s *authService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	return userResponse(user), nil
}

func userResponse(user *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		IsAdmin:      user.IsAdmin,
		IsSubscribed: user.IsSubscribed,
		CreatedAt:    user.CreatedAt.UTC().Format(time.RFC3339),
	}
}
