package ports

import (
	"context"
	"time"

	"github.com/edusign/edusign-api/internal/core/domain"
)

// AccountRepository persists accounts. Implementations must surface
// domain.ErrAccountNotFound on a missed lookup and domain.ErrAccountExists on
// a unique-constraint violation; the store's constraint is the authoritative
// duplicate signal, not the caller's advisory pre-check.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

// ProgressRepository maintains the per-account progress row. Both operations
// are idempotent so the orchestrators can retry or overlap them safely.
type ProgressRepository interface {
	// Bootstrap inserts an all-zero progress row; a no-op if one exists.
	Bootstrap(ctx context.Context, userID string, now time.Time) error
	// Touch updates last_activity/updated_at, creating the row if absent.
	Touch(ctx context.Context, userID string, now time.Time) error
}
