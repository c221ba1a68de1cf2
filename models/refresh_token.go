package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// RefreshToken is an opaque single-use token row. The ID doubles as the token
// string handed to the client; rotation revokes the old row and issues a new one.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:72" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Usable reports whether the token can still be exchanged.
func (rt *RefreshToken) Usable() bool {
	return !rt.Revoked && time.Now().Before(rt.ExpiresAt)
}

func NewRefreshToken(userID uint, ttlDays int) (*RefreshToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	return &RefreshToken{
		ID:        "rt_" + hex.EncodeToString(raw),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}
