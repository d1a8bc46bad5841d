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

// Signup provisions a new account: rate limit, validate, advisory duplicate
// check, hash, insert, best-effort progress bootstrap. The store's unique
// constraint is the authoritative duplicate signal; the pre-check only exists
// to fail early with a friendly error before the expensive hash.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (account *domain.Account, err error) {
	defer func() { metrics.SignupAttemptsTotal.WithLabelValues(outcome(err)).Inc() }()

	allowed, limErr := s.limiter.Allow(ctx, input.ClientAddr)
	if limErr != nil {
		// A broken limiter backend must not take signups down with it.
		s.logger.Warn().Err(limErr).Str("client_addr", input.ClientAddr).
			Msg("rate limiter unavailable, allowing attempt")
	} else if !allowed {
		return nil, domain.ErrRateLimited
	}

	// Deterministic field order: name, email, password, age.
	fullName, err := validate.FullName(input.FullName)
	if err != nil {
		return nil, err
	}
	email, err := validate.Email(input.Email)
	if err != nil {
		return nil, err
	}
	if err = validate.Password(input.Password); err != nil {
		return nil, err
	}
	if err = validate.Age(input.Age); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	_, err = s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrAccountExists
	case errors.Is(err, domain.ErrAccountNotFound):
		// expected: the email is free
	default:
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	age := input.Age
	now := time.Now().UTC()
	created, err := s.accounts.Create(ctx, &domain.Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: digest,
		Age:          &age,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent signup can win the race between the advisory check and
		// the insert; the unique violation reports it the same way.
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	// Best-effort: the account exists and is usable even if this fails.
	if err := s.progress.Bootstrap(ctx, created.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", created.ID).
			Msg("progress bootstrap failed after signup")
		metrics.ProgressWriteFailuresTotal.WithLabelValues("bootstrap").Inc()
	}

	s.logger.Info().Str("user_id", created.ID).Msg("account created")
	return created.Sanitized(), nil
}
