package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stamina-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	u.ID = uuid.New()

	query := `INSERT INTO users (id, email, password_hash, display_name, is_guest)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, u.IsGuest,
	).Scan(&u.CreatedAt)
}

// CreateGuest creates an anonymous pseudo-user so decks and stamina can
// accrue before sign-up.
func (r *UserRepo) CreateGuest(ctx context.Context) (*models.User, error) {
	u := &models.User{
		DisplayName: "Guest Reader",
		IsGuest:     true,
	}
	if err := r.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u := &models.User{}
	query := `SELECT id, email, password_hash, display_name, is_guest, created_at, last_login_at
		FROM users WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsGuest, &u.CreatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	query := `SELECT id, email, password_hash, display_name, is_guest, created_at, last_login_at
		FROM users WHERE email = $1`

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsGuest, &u.CreatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", time.Now(), id)
	return err
}

// PromoteGuest moves a guest's decks, completions, and stamina to an
// authenticated account, then removes the guest row. Stamina totals are
// summed; the larger streak wins.
func (r *UserRepo) PromoteGuest(ctx context.Context, guestID, accountID uuid.UUID) error {
	guest, err := r.GetByID(ctx, guestID)
	if err != nil {
		return fmt.Errorf("guest not found: %w", err)
	}
	if !guest.IsGuest {
		return fmt.Errorf("user %s is not a guest", guestID)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "UPDATE decks SET user_id = $1 WHERE user_id = $2", accountID, guestID); err != nil {
		return fmt.Errorf("failed to move decks: %w", err)
	}
	if _, err := tx.Exec(ctx, "UPDATE card_completions SET user_id = $1 WHERE user_id = $2", accountID, guestID); err != nil {
		return fmt.Errorf("failed to move completions: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_stamina (user_id, total_cards_completed, total_words_learned,
			current_streak, longest_streak, last_activity_date, total_time_spent_minutes, updated_at)
		SELECT $1, total_cards_completed, total_words_learned, current_streak, longest_streak,
			last_activity_date, total_time_spent_minutes, NOW()
		FROM user_stamina WHERE user_id = $2
		ON CONFLICT (user_id) DO UPDATE SET
			total_cards_completed = user_stamina.total_cards_completed + EXCLUDED.total_cards_completed,
			total_words_learned = user_stamina.total_words_learned + EXCLUDED.total_words_learned,
			current_streak = GREATEST(user_stamina.current_streak, EXCLUDED.current_streak),
			longest_streak = GREATEST(user_stamina.longest_streak, EXCLUDED.longest_streak),
			last_activity_date = GREATEST(user_stamina.last_activity_date, EXCLUDED.last_activity_date),
			total_time_spent_minutes = user_stamina.total_time_spent_minutes + EXCLUDED.total_time_spent_minutes,
			updated_at = NOW()`,
		accountID, guestID,
	)
	if err != nil {
		return fmt.Errorf("failed to merge stamina: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM user_stamina WHERE user_id = $1", guestID); err != nil {
		return fmt.Errorf("failed to clear guest stamina: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", guestID); err != nil {
		return fmt.Errorf("failed to remove guest user: %w", err)
	}

	return tx.Commit(ctx)
}
