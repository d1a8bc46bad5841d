package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edusign/edusign-api/internal/api/metrics"
	"github.com/edusign/edusign-api/internal/core/domain"
	"github.com/edusign/edusign-api/internal/core/ports"
	"github.com/edusign/edusign-api/internal/core/validate"
)

// Login authenticates an account. An unknown email and a wrong password
// produce the same error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (account *domain.Account, err error) {
	defer func() { metrics.LoginAttemptsTotal.WithLabelValues(outcome(err)).Inc() }()

	if input.Password == "" {
		return nil, &domain.ValidationError{Field: "password", Reason: "is required"}
	}
	email, err := validate.Email(input.Email)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	found, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !s.hasher.Verify(input.Password, found.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// Upsert covers accounts whose signup-time bootstrap failed. Best-effort:
	// login already succeeded.
	now := time.Now().UTC()
	if err := s.progress.Touch(ctx, found.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", found.ID).
			Msg("progress touch failed after login")
		metrics.ProgressWriteFailuresTotal.WithLabelValues("touch").Inc()
	}

	return found.Sanitized(), nil
}
