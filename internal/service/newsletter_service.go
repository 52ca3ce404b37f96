package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/repository"
	"github.com/shopcore/shopcore/internal/utils"
)

type newsletterService struct {
	repos    *repository.Repositories
	tokenTTL time.Duration
}

// NewNewsletterService creates the unsubscribe token service.
func NewNewsletterService(repos *repository.Repositories, tokenTTL time.Duration) NewsletterService {
	return &newsletterService{
		repos:    repos,
		tokenTTL: tokenTTL,
	}
}

// MintToken issues a fresh single-use unsubscribe token for the user
// and returns the raw value. Only the hash is stored.
func (s *newsletterService) MintToken(ctx context.Context, userID string) (string, error) {
	raw, err := utils.NewToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	token := &domain.UnsubscribeToken{
		TokenHash: utils.HashToken(raw),
		UserID:    userID,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}

	if err := s.repos.UnsubscribeTokens.Create(ctx, token); err != nil {
		return "", err
	}

	return raw, nil
}

// CheckToken reports whether a raw token is still redeemable, without
// consuming it. The unsubscribe form calls this before rendering.
func (s *newsletterService) CheckToken(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return domain.ErrTokenInvalid
	}

	token, err := s.repos.UnsubscribeTokens.GetByTokenHash(ctx, utils.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrTokenInvalid
		}
		return err
	}

	if !token.Redeemable(time.Now().UTC()) {
		return domain.ErrTokenInvalid
	}

	return nil
}

// Redeem consumes a token and unsubscribes its user, recording the
// optional reason. Consumption and the flag flip share a transaction,
// and the consumed guard makes a second redemption fail even if two
// requests race.
func (s *newsletterService) Redeem(ctx context.Context, rawToken, reason string) error {
	if rawToken == "" {
		return domain.ErrTokenInvalid
	}
	hash := utils.HashToken(rawToken)

	return s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		token, err := tx.UnsubscribeTokens.GetByTokenHash(ctx, hash)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrTokenInvalid
			}
			return err
		}

		if !token.Redeemable(time.Now().UTC()) {
			return domain.ErrTokenInvalid
		}

		if err := tx.UnsubscribeTokens.Consume(ctx, token.TokenHash); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrTokenInvalid
			}
			return err
		}

		var reasonPtr *string
		if trimmed := reason; trimmed != "" {
			reasonPtr = &trimmed
		}

		return tx.Users.SetUnsubscribed(ctx, token.UserID, reasonPtr)
	})
}
