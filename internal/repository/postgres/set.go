package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flashstudy/internal/domain"
)

// SetRepo implements repository.SetRepository
type SetRepo struct {
	db *sql.DB
}

// NewSetRepo creates a new flashcard set repository
func NewSetRepo(db *sql.DB) *SetRepo {
	return &SetRepo{db: db}
}

// GetSetByID returns a set and its cards ordered by position
func (r *SetRepo) GetSetByID(ctx context.Context, id int64) (*domain.FlashcardSet, error) {
	var set domain.FlashcardSet
	query := `SELECT id, name, created_at FROM flashcard_sets WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&set.ID, &set.Name, &set.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSetNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT term, definition
		FROM cards
		WHERE set_id = $1
		ORDER BY position, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	set.Cards = domain.Deck{}
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.Term, &c.Definition); err != nil {
			return nil, err
		}
		set.Cards = append(set.Cards, c)
	}

	return &set, rows.Err()
}

// DeleteSet removes a set; its cards go with it through ON DELETE CASCADE,
// so the delete is all or nothing.
func (r *SetRepo) DeleteSet(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flashcard_sets WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSetNotFound
	}
	return nil
}
