package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusign/edusign-api/internal/core/domain"
	"github.com/edusign/edusign-api/internal/core/hash"
	"github.com/edusign/edusign-api/internal/core/ports"
	"github.com/edusign/edusign-api/internal/ratelimit"
)

// stubAccounts is an in-memory AccountRepository tracking call counts so
// tests can assert that validation failures never reach the store.
type stubAccounts struct {
	mu          sync.Mutex
	byEmail     map[string]*domain.Account
	nextID      int
	findCalls   int
	createCalls int
	findErr     error
	createErr   error
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{byEmail: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	if a, ok := r.byEmail[email]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}
	// The unique constraint, miniaturised.
	if _, exists := r.byEmail[account.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	r.nextID++
	created := cloneAccount(account)
	created.ID = "user-" + strconv.Itoa(r.nextID)
	r.byEmail[created.Email] = cloneAccount(created)
	return created, nil
}

type stubProgress struct {
	mu             sync.Mutex
	bootstrapCalls int
	touchCalls     int
	bootstrapErr   error
	touchErr       error
}

func (p *stubProgress) Bootstrap(_ context.Context, _ string, _ time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bootstrapCalls++
	return p.bootstrapErr
}

func (p *stubProgress) Touch(_ context.Context, _ string, _ time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touchCalls++
	return p.touchErr
}

type stubLimiter struct {
	allow bool
	err   error
	calls int
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	l.calls++
	return l.allow, l.err
}

type testEnv struct {
	svc      *AuthService
	accounts *stubAccounts
	progress *stubProgress
	limiter  *stubLimiter
}

// newTestEnv wires the service with permissive stubs and a fast bcrypt cost.
func newTestEnv() *testEnv {
	accounts := newStubAccounts()
	progress := &stubProgress{}
	limiter := &stubLimiter{allow: true}
	svc := NewAuthService(accounts, progress, hash.NewBcrypt(4), limiter, zerolog.Nop())
	return &testEnv{svc: svc, accounts: accounts, progress: progress, limiter: limiter}
}

func validSignup() ports.SignupInput {
	return ports.SignupInput{
		FullName:   "Jane Doe",
		Email:      "Jane@Test.COM",
		Password:   "longenoughpass",
		Age:        25,
		ClientAddr: "203.0.113.7",
	}
}

// realLimiterService wires the actual in-memory limiter for throttle tests.
func realLimiterService(window time.Duration, max int) (*AuthService, *stubAccounts) {
	accounts := newStubAccounts()
	svc := NewAuthService(accounts, &stubProgress{}, hash.NewBcrypt(4), ratelimit.NewMemory(window, max), zerolog.Nop())
	return svc, accounts
}
