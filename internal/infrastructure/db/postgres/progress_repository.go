package postgres

import (
	"context"
	"fmt"
	"time"
)

// ProgressRepository implements ports.ProgressRepository against the
// user_progress table. Both writes are idempotent upserts.
type ProgressRepository struct {
	db DB
}

func NewProgressRepository(db DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Bootstrap inserts an all-zero progress row for a freshly created account.
// If a row already exists (a retried signup, or a login raced ahead) it is
// left untouched.
func (r *ProgressRepository) Bootstrap(ctx context.Context, userID string, now time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_progress (user_id, courses_completed, total_lessons_completed, current_streak, last_activity, updated_at)
		 VALUES ($1, '{}', 0, 0, $2, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, now,
	)
	if err != nil {
		return fmt.Errorf("bootstrap progress: %w", err)
	}
	return nil
}

// Touch records activity for an account, creating the row if the signup-time
// bootstrap never happened.
func (r *ProgressRepository) Touch(ctx context.Context, userID string, now time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_progress (user_id, courses_completed, total_lessons_completed, current_streak, last_activity, updated_at)
		 VALUES ($1, '{}', 0, 0, $2, $2)
		 ON CONFLICT (user_id) DO UPDATE SET last_activity = $2, updated_at = $2`,
		userID, now,
	)
	if err != nil {
		return fmt.Errorf("touch progress: %w", err)
	}
	return nil
}
