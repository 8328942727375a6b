package models

import "time"

// Profile holds per-user display data kept alongside the external auth
// provider's account.
type Profile struct {
	ID        string  `json:"id"` // same id as the auth provider's user id
	Email     *string `json:"email,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`

	// Optional Telegram notification settings.
	TelegramChatID *int64 `json:"-"`
	NotifyTelegram bool   `json:"notify_telegram"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
