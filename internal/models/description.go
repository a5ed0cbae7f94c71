package models

import (
	"database/sql"
	"time"
)

// Description is the relational persistence shape of a history row.
type Description struct {
	DescriptionID  string         `db:"description_id"`
	UserID         sql.NullString `db:"user_id"`
	Timestamp      time.Time      `db:"timestamp"`
	Source         string         `db:"source"`
	Style          string         `db:"style"`
	Content        string         `db:"content"`
	ImagePath      sql.NullString `db:"image_path"`
	Prompt         sql.NullString `db:"prompt"`
	ConversationID sql.NullString `db:"conversation_id"`
}
