package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stamina-backend/internal/models"
)

type StaminaRepo struct {
	pool *pgxpool.Pool
}

func NewStaminaRepo(pool *pgxpool.Pool) *StaminaRepo {
	return &StaminaRepo{pool: pool}
}

// Get returns the user's stamina record, or nil when the user has no
// recorded activity yet.
func (r *StaminaRepo) Get(ctx context.Context, userID uuid.UUID) (*models.UserStamina, error) {
	st := &models.UserStamina{}
	query := `SELECT user_id, total_cards_completed, total_words_learned, current_streak,
		longest_streak, last_activity_date, total_time_spent_minutes, updated_at
		FROM user_stamina WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&st.UserID, &st.TotalCardsCompleted, &st.TotalWordsLearned, &st.CurrentStreak,
		&st.LongestStreak, &st.LastActivityDate, &st.TotalTimeSpentMin, &st.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// RecordCompletion stores one swipe outcome for a card.
func (r *StaminaRepo) RecordCompletion(ctx context.Context, c *models.CardCompletion) error {
	c.ID = uuid.New()

	query := `INSERT INTO card_completions (id, user_id, deck_id, card_id, action)
		VALUES ($1, $2, $3, $4, $5) RETURNING completed_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.UserID, c.DeckID, c.CardID, c.Action,
	).Scan(&c.CompletedAt)
}

// ApplyActivity folds a finished study session into the aggregate
// stamina record, advancing or resetting the streak by calendar day.
func (r *StaminaRepo) ApplyActivity(ctx context.Context, userID uuid.UUID, cardsCompleted, wordsLearned, minutesSpent int) (*models.UserStamina, error) {
	now := time.Now().UTC()

	current, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	st := &models.UserStamina{UserID: userID}
	if current != nil {
		*st = *current
	}

	st.TotalCardsCompleted += cardsCompleted
	st.TotalWordsLearned += wordsLearned
	st.TotalTimeSpentMin += minutesSpent
	st.CurrentStreak, st.LongestStreak = NextStreak(st.CurrentStreak, st.LongestStreak, st.LastActivityDate, now)
	st.LastActivityDate = &now

	query := `INSERT INTO user_stamina (user_id, total_cards_completed, total_words_learned,
			current_streak, longest_streak, last_activity_date, total_time_spent_minutes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			total_cards_completed = EXCLUDED.total_cards_completed,
			total_words_learned = EXCLUDED.total_words_learned,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_activity_date = EXCLUDED.last_activity_date,
			total_time_spent_minutes = EXCLUDED.total_time_spent_minutes,
			updated_at = NOW()
		RETURNING updated_at`

	err = r.pool.QueryRow(ctx, query,
		st.UserID, st.TotalCardsCompleted, st.TotalWordsLearned,
		st.CurrentStreak, st.LongestStreak, st.LastActivityDate, st.TotalTimeSpentMin,
	).Scan(&st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// NextStreak advances the consecutive-day streak: same UTC day leaves it
// unchanged, the day after the last activity extends it, anything else
// restarts at 1. Longest never shrinks.
func NextStreak(current, longest int, lastActivity *time.Time, now time.Time) (int, int) {
	next := 1
	if lastActivity != nil {
		last := lastActivity.UTC().Truncate(24 * time.Hour)
		today := now.UTC().Truncate(24 * time.Hour)

		switch today.Sub(last) {
		case 0:
			next = current
			if next < 1 {
				next = 1
			}
		case 24 * time.Hour:
			next = current + 1
		}
	}

	if next > longest {
		longest = next
	}
	return next, longest
}

// StreakReminder is a recipient for the lapse-warning email.
type StreakReminder struct {
	UserID           uuid.UUID
	Email            string
	DisplayName      string
	CurrentStreak    int
	LastActivityDate *time.Time
}

// ListStreaksAtRisk returns authenticated users with an email address
// and a live streak whose last activity was not today.
func (r *StaminaRepo) ListStreaksAtRisk(ctx context.Context) ([]StreakReminder, error) {
	query := `SELECT u.id, u.email, u.display_name, s.current_streak, s.last_activity_date
		FROM user_stamina s
		JOIN users u ON u.id = s.user_id
		WHERE u.is_guest = FALSE
		  AND u.email IS NOT NULL
		  AND s.current_streak > 0
		  AND s.last_activity_date < CURRENT_DATE`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StreakReminder
	for rows.Next() {
		var rem StreakReminder
		if err := rows.Scan(&rem.UserID, &rem.Email, &rem.DisplayName, &rem.CurrentStreak, &rem.LastActivityDate); err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

// WeeklyActivity returns completion counts per day for the trailing week.
func (r *StaminaRepo) WeeklyActivity(ctx context.Context, userID uuid.UUID) ([7]int, error) {
	var activity [7]int

	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(DOW FROM completed_at)::int AS dow, COUNT(*)
		FROM card_completions
		WHERE user_id = $1 AND completed_at >= CURRENT_DATE - INTERVAL '7 days'
		GROUP BY dow`, userID)
	if err != nil {
		return activity, err
	}
	defer rows.Close()

	for rows.Next() {
		var dow, count int
		if err := rows.Scan(&dow, &count); err != nil {
			return activity, err
		}
		if dow >= 0 && dow < 7 {
			activity[dow] = count
		}
	}
	return activity, rows.Err()
}
