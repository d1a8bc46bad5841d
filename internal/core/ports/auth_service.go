package ports

import (
	"context"

	"github.com/edusign/edusign-api/internal/core/domain"
)

// SignupInput carries one signup attempt. ClientAddr is the caller's network
// address, used only for rate limiting.
type SignupInput struct {
	FullName   string
	Email      string
	Password   string
	Age        int
	ClientAddr string
}

// LoginInput carries one login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// AuthService exposes the two credential flows. Returned accounts are always
// sanitized; failures are domain errors, never raw infrastructure ones.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.Account, error)
	Login(ctx context.Context, input LoginInput) (*domain.Account, error)
}
