package service

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusign/edusign-api/internal/api/metrics"
	"github.com/edusign/edusign-api/internal/core/domain"
	"github.com/edusign/edusign-api/internal/core/ports"
)

// storeTimeout bounds every store and hash round-trip. A timeout surfaces to
// the caller as a store error.
const storeTimeout = 5 * time.Second

// AuthService implements the signup and login orchestrators.
type AuthService struct {
	accounts ports.AccountRepository
	progress ports.ProgressRepository
	hasher   ports.PasswordHasher
	limiter  ports.RateLimiter
	logger   zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	accounts ports.AccountRepository,
	progress ports.ProgressRepository,
	hasher ports.PasswordHasher,
	limiter ports.RateLimiter,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		progress: progress,
		hasher:   hasher,
		limiter:  limiter,
		logger:   logger,
	}
}

// outcome maps a flow result to its metrics label.
func outcome(err error) string {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &ve):
		return metrics.OutcomeValidationError
	case errors.Is(err, domain.ErrAccountExists):
		return metrics.OutcomeDuplicateEmail
	case errors.Is(err, domain.ErrInvalidCredentials):
		return metrics.OutcomeInvalidCredentials
	case errors.Is(err, domain.ErrRateLimited):
		return metrics.OutcomeRateLimited
	default:
		return metrics.OutcomeStoreError
	}
}
