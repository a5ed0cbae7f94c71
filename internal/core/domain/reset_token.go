package domain

import "time"

// PasswordResetToken is a short-lived one-time credential. Only the SHA-256
// hash of the 6-digit code is ever stored; the plaintext code is transmitted
// to the user exactly once, by mail.
type PasswordResetToken struct {
	TokenID   string    `json:"tokenID"`
	UserID    string    `json:"userID"`
	TokenHash string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
