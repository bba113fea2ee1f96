package model

import "time"

// RefreshToken is a ledger row for an issued refresh token. A refresh
// token is only honored while its row exists and has not expired.
type RefreshToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// PasswordResetToken is a single-use token mailed to a user who
// requested a password reset. The row is deleted on use or expiry.
type PasswordResetToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"size:128;uniqueIndex;not null" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
