package models

import "time"

// Token is the opaque bearer credential handed out at login. One active
// token per user; login reuses it until it expires.
type Token struct {
	Key       string `gorm:"primaryKey;size:64" json:"key"`
	UserID    uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time
}

// Expired reports whether the token is past its validity window.
func (t *Token) Expired(ttl time.Duration) bool {
	return time.Since(t.CreatedAt) > ttl
}
