package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"flashstudy/internal/domain"
)

// PreferenceRepo implements repository.PreferenceRepository
type PreferenceRepo struct {
	db *sql.DB
}

// NewPreferenceRepo creates a new preference repository
func NewPreferenceRepo(db *sql.DB) *PreferenceRepo {
	return &PreferenceRepo{db: db}
}

// GetPreference returns a value that has not expired yet
func (r *PreferenceRepo) GetPreference(ctx context.Context, userID int64, key domain.PreferenceKey) (string, bool, error) {
	var value string
	query := `
		SELECT value
		FROM preferences
		WHERE user_id = $1 AND flag = $2 AND set_id = $3 AND expires_at > NOW()
	`
	err := r.db.QueryRowContext(ctx, query, userID, string(key.Flag), key.SetID).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// SetPreference writes a value and pushes its expiry forward
func (r *PreferenceRepo) SetPreference(ctx context.Context, userID int64, key domain.PreferenceKey, value string, expiresAt time.Time) error {
	query := `
		INSERT INTO preferences (user_id, flag, set_id, value, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, flag, set_id)
		DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`
	_, err := r.db.ExecContext(ctx, query, userID, string(key.Flag), key.SetID, value, expiresAt)
	return err
}

// DeleteExpiredPreferences removes rows past their expiry
func (r *PreferenceRepo) DeleteExpiredPreferences(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
