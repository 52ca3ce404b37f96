package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/pkg/database"
)

// SessionRepo persists sessions. Tokens are stored as SHA-256 hashes.
type SessionRepo struct {
	q database.Querier
}

// Create inserts a new session row.
func (r *SessionRepo) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (token_hash, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx, query,
		session.TokenHash,
		session.UserID,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("session with this token already exists: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByTokenHash retrieves a session by its token hash. Callers decide
// whether the session is still active.
func (r *SessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	query := `
		SELECT token_hash, user_id, created_at, expires_at, revoked_at
		FROM sessions
		WHERE token_hash = ?
	`

	session := &domain.Session{}
	var revokedAt sql.NullTime

	err := r.q.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.TokenHash,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if revokedAt.Valid {
		session.RevokedAt = &revokedAt.Time
	}

	return session, nil
}

// RevokeByTokenHash marks one session revoked. Revocation is terminal.
func (r *SessionRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	query := `UPDATE sessions SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL`

	result, err := r.q.ExecContext(ctx, query, time.Now().UTC(), tokenHash)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("active session not found: %w", ErrNotFound)
	}

	return nil
}

// RevokeAllForUser revokes every active session of a user. Combined with
// Create in one transaction it enforces the single-session policy.
func (r *SessionRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	query := `UPDATE sessions SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL`

	if _, err := r.q.ExecContext(ctx, query, time.Now().UTC(), userID); err != nil {
		return fmt.Errorf("failed to revoke sessions for user: %w", err)
	}

	return nil
}

// CountActiveForUser returns the number of active, unexpired sessions.
func (r *SessionRepo) CountActiveForUser(ctx context.Context, userID string, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM sessions
		WHERE user_id = ? AND revoked_at IS NULL AND expires_at > ?
	`

	var count int
	if err := r.q.QueryRowContext(ctx, query, userID, now.UTC()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}

// DeleteExpired removes sessions past their expiry.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	query := `DELETE FROM sessions WHERE expires_at < ?`

	if _, err := r.q.ExecContext(ctx, query, now.UTC()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return nil
}
