package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edusign/edusign-api/internal/core/domain"
	"github.com/edusign/edusign-api/internal/core/ports"
)

func TestSignup_Success(t *testing.T) {
	env := newTestEnv()

	account, err := env.svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if account.ID == "" {
		t.Fatalf("expected generated id")
	}
	if account.Email != "jane@test.com" {
		t.Fatalf("expected normalized email, got %q", account.Email)
	}
	if account.FullName != "Jane Doe" {
		t.Fatalf("unexpected full name: %q", account.FullName)
	}
	if account.PasswordHash != "" {
		t.Fatalf("sanitized account must not carry the hash")
	}
	if env.progress.bootstrapCalls != 1 {
		t.Fatalf("expected one progress bootstrap, got %d", env.progress.bootstrapCalls)
	}

	// The stored row carries a real digest, not the plaintext.
	stored := env.accounts.byEmail["jane@test.com"]
	if stored.PasswordHash == "" || stored.PasswordHash == "longenoughpass" {
		t.Fatalf("stored password must be hashed")
	}
}

func TestSignup_ValidationOrderAndNoStoreAccess(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ports.SignupInput)
		wantField string
	}{
		{"short name", func(in *ports.SignupInput) { in.FullName = " a " }, "fullName"},
		{"bad email", func(in *ports.SignupInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *ports.SignupInput) { in.Password = "short" }, "password"},
		{"weak password", func(in *ports.SignupInput) { in.Password = "password123" }, "password"},
		{"age too low", func(in *ports.SignupInput) { in.Age = 1 }, "age"},
		{"age too high", func(in *ports.SignupInput) { in.Age = 101 }, "age"},
		// Name is checked first, so a request that is wrong everywhere
		// reports the name.
		{"everything wrong", func(in *ports.SignupInput) {
			in.FullName, in.Email, in.Password, in.Age = "", "", "", 0
		}, "fullName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			input := validSignup()
			tt.mutate(&input)

			_, err := env.svc.Signup(context.Background(), input)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Fatalf("expected field %q, got %q", tt.wantField, ve.Field)
			}
			if env.accounts.findCalls != 0 || env.accounts.createCalls != 0 {
				t.Fatalf("validation failure must not touch the store")
			}
		})
	}
}

func TestSignup_DuplicateEmailNormalized(t *testing.T) {
	env := newTestEnv()

	if _, err := env.svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	// Same address, different case and surrounding whitespace.
	second := validSignup()
	second.Email = "  JANE@test.com "
	_, err := env.svc.Signup(context.Background(), second)
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	if env.accounts.createCalls != 1 {
		t.Fatalf("duplicate must be caught by the advisory check, got %d creates", env.accounts.createCalls)
	}
}

func TestSignup_InsertRaceSurfacesDuplicate(t *testing.T) {
	// The advisory check passes but the insert loses the race: the store's
	// unique violation must come back as the same duplicate error.
	env := newTestEnv()
	env.accounts.createErr = domain.ErrAccountExists

	_, err := env.svc.Signup(context.Background(), validSignup())
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestSignup_StoreErrorIsWrapped(t *testing.T) {
	env := newTestEnv()
	env.accounts.findErr = errors.New("connection refused")

	_, err := env.svc.Signup(context.Background(), validSignup())
	if err == nil || errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("store failure must not masquerade as validation")
	}
}

func TestSignup_ProgressBootstrapFailureDoesNotFailSignup(t *testing.T) {
	env := newTestEnv()
	env.progress.bootstrapErr = errors.New("progress table unavailable")

	account, err := env.svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("signup must succeed despite bootstrap failure, got %v", err)
	}
	if account == nil || account.ID == "" {
		t.Fatalf("expected usable account")
	}
}

func TestSignup_RateLimited(t *testing.T) {
	svc, accounts := realLimiterService(15*time.Minute, 5)

	for i := 1; i <= 5; i++ {
		input := validSignup()
		input.Email = "user" + string(rune('a'+i)) + "@test.com"
		if _, err := svc.Signup(context.Background(), input); err != nil {
			t.Fatalf("attempt %d should pass, got %v", i, err)
		}
	}

	_, err := svc.Signup(context.Background(), validSignup())
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("6th attempt from the same address must be throttled, got %v", err)
	}
	if accounts.createCalls != 5 {
		t.Fatalf("throttled attempt must not reach the store")
	}
}

func TestSignup_LimiterFailureFailsOpen(t *testing.T) {
	env := newTestEnv()
	env.limiter.allow = false
	env.limiter.err = errors.New("redis down")

	if _, err := env.svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("a broken limiter must not block signups, got %v", err)
	}
}

func TestSignup_ConcurrentSameEmail(t *testing.T) {
	env := newTestEnv()

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := env.svc.Signup(context.Background(), validSignup())
			results <- err
		}()
	}

	var successes, duplicates int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrAccountExists):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 || duplicates != 1 {
		t.Fatalf("expected exactly one winner, got %d successes / %d duplicates", successes, duplicates)
	}
	if len(env.accounts.byEmail) != 1 {
		t.Fatalf("expected exactly one stored account, got %d", len(env.accounts.byEmail))
	}
}
