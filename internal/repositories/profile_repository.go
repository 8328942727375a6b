package repositories

import (
	"context"
	"database/sql"
	"errors"

	"taskway/internal/models"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	GetTelegramSettings(ctx context.Context, userID string) (chatID int64, notify bool, err error)
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	q := `SELECT id, email, full_name, avatar_url, telegram_chat_id, notify_telegram, created_at, updated_at
	      FROM profiles WHERE id = $1`
	p := &models.Profile{}
	var chat sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &chat, &p.NotifyTelegram,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if chat.Valid {
		p.TelegramChatID = &chat.Int64
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	q := `UPDATE profiles SET full_name=$1, avatar_url=$2, updated_at=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, q, profile.FullName, profile.AvatarURL, profile.UpdatedAt, profile.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *profileRepository) GetTelegramSettings(ctx context.Context, userID string) (int64, bool, error) {
	var chat sql.NullInt64
	var notify bool
	err := r.db.QueryRowContext(ctx,
		`SELECT telegram_chat_id, notify_telegram FROM profiles WHERE id=$1`, userID,
	).Scan(&chat, &notify)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return chat.Int64, notify, nil
}
