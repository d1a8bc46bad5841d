package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edusign/edusign-api/internal/core/domain"
)

// AccountRepository implements ports.AccountRepository against the users
// table. Emails are stored already normalized; the UNIQUE constraint on the
// column is the final arbiter for duplicates.
type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	created := *account
	created.ID = uuid.NewString()

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, full_name, email, password_hash, age, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		created.ID, created.FullName, created.Email, created.PasswordHash,
		created.Age, created.CreatedAt, created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account := &domain.Account{}
	err := r.db.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, age, created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		email,
	).Scan(
		&account.ID, &account.FullName, &account.Email, &account.PasswordHash,
		&account.Age, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return account, nil
}
