package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stamina-backend/internal/models"
)

type DeckRepo struct {
	pool *pgxpool.Pool
}

func NewDeckRepo(pool *pgxpool.Pool) *DeckRepo {
	return &DeckRepo{pool: pool}
}

// Save persists a freshly assembled deck for its owner. The caller may
// pre-assign the ID (generation jobs announce it before the deck
// exists); otherwise one is minted here.
func (r *DeckRepo) Save(ctx context.Context, d *models.Deck) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	cardsJSON, err := json.Marshal(d.Cards)
	if err != nil {
		return fmt.Errorf("failed to marshal cards: %w", err)
	}

	query := `INSERT INTO decks (id, user_id, title, description, cards, card_count, origin, vibe)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		d.ID, d.UserID, d.Title, d.Description, cardsJSON, d.CardCount, d.Origin, d.Vibe,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *DeckRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Deck, error) {
	d := &models.Deck{}
	var cardsJSON []byte

	query := `SELECT id, user_id, title, description, cards, card_count, origin, vibe, created_at, updated_at
		FROM decks WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Title, &d.Description, &cardsJSON, &d.CardCount,
		&d.Origin, &d.Vibe, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(cardsJSON, &d.Cards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cards for deck %s: %w", id, err)
	}
	return d, nil
}

func (r *DeckRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Deck, error) {
	query := `SELECT id, user_id, title, description, cards, card_count, origin, vibe, created_at, updated_at
		FROM decks WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []*models.Deck
	for rows.Next() {
		d := &models.Deck{}
		var cardsJSON []byte
		err := rows.Scan(
			&d.ID, &d.UserID, &d.Title, &d.Description, &cardsJSON, &d.CardCount,
			&d.Origin, &d.Vibe, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(cardsJSON, &d.Cards); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cards for deck %s: %w", d.ID, err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *DeckRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM decks WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

// Delete removes a deck only if ownerID owns it; reports whether a row
// was removed.
func (r *DeckRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM decks WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateTitle renames a deck only if ownerID owns it.
func (r *DeckRepo) UpdateTitle(ctx context.Context, id, ownerID uuid.UUID, title string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE decks SET title = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3",
		title, id, ownerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
