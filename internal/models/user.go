package models

import (
	"database/sql"
	"time"
)

// User is the relational persistence shape of a user row.
// The Mongo adapter keeps its own document types.
type User struct {
	UserID       string         `db:"user_id"`
	Email        sql.NullString `db:"email"`
	PhoneNumber  sql.NullString `db:"phone_number"`
	FullName     string         `db:"full_name"`
	AvatarURL    sql.NullString `db:"avatar_url"`
	PasswordHash string         `db:"password_hash"`
	Role         string         `db:"role"`
	CreatedAt    time.Time      `db:"created_at"`
}
