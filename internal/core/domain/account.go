package domain

import (
	"errors"
	"fmt"
	"time"
)

// Account models a registered learner.
//
// PasswordHash never crosses the API boundary: it is excluded from JSON and
// additionally cleared by the orchestrators before an Account is returned.
type Account struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          *int      `json:"age,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// Sanitized returns a copy safe to hand to callers: the stored hash is gone.
func (a *Account) Sanitized() *Account {
	clone := *a
	clone.PasswordHash = ""
	return &clone
}

// Progress holds per-account learning counters. One row per account, created
// lazily: at signup when possible, otherwise on first login.
type Progress struct {
	UserID                string    `json:"userId"`
	CoursesCompleted      []string  `json:"coursesCompleted"`
	TotalLessonsCompleted int       `json:"totalLessonsCompleted"`
	CurrentStreak         int       `json:"currentStreak"`
	LastActivity          time.Time `json:"lastActivity"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

var (
	ErrAccountExists      = errors.New("an account with this email already exists") // 409
	ErrAccountNotFound    = errors.New("account not found")                         // internal, never reaches a login caller
	ErrInvalidCredentials = errors.New("invalid email or password")                 // 401
	ErrRateLimited        = errors.New("too many signup attempts, try again later") // 429
)

// ValidationError reports a single malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
