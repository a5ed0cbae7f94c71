package mongodb

import (
	"time"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
)

// Collection names.
const (
	usersCollection         = "users"
	descriptionsCollection  = "descriptions"
	resetTokensCollection   = "password_reset_tokens"
	conversationsCollection = "conversations"
)

// userDoc is the document shape of a user. _id carries the same UUID string
// the relational adapter uses as primary key.
type userDoc struct {
	UserID       string    `bson:"_id"`
	Email        *string   `bson:"email,omitempty"`
	PhoneNumber  *string   `bson:"phone_number,omitempty"`
	FullName     string    `bson:"full_name"`
	AvatarURL    *string   `bson:"avatar_url,omitempty"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toUserDoc(d domain.User) userDoc {
	return userDoc{
		UserID:       d.UserID,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		FullName:     d.FullName,
		AvatarURL:    d.AvatarURL,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		CreatedAt:    d.CreatedAt,
	}
}

func (doc userDoc) toDomain() domain.User {
	return domain.User{
		UserID:       doc.UserID,
		Email:        doc.Email,
		PhoneNumber:  doc.PhoneNumber,
		FullName:     doc.FullName,
		AvatarURL:    doc.AvatarURL,
		PasswordHash: doc.PasswordHash,
		Role:         domain.UserRole(doc.Role),
		CreatedAt:    doc.CreatedAt,
	}
}

type descriptionDoc struct {
	DescriptionID  string    `bson:"_id"`
	UserID         *string   `bson:"user_id,omitempty"`
	Timestamp      time.Time `bson:"timestamp"`
	Source         string    `bson:"source"`
	Style          string    `bson:"style"`
	Content        string    `bson:"content"`
	ImagePath      *string   `bson:"image_path,omitempty"`
	Prompt         *string   `bson:"prompt,omitempty"`
	ConversationID *string   `bson:"conversation_id,omitempty"`
}

func toDescriptionDoc(d domain.Description) descriptionDoc {
	return descriptionDoc{
		DescriptionID:  d.DescriptionID,
		UserID:         d.UserID,
		Timestamp:      d.Timestamp,
		Source:         string(d.Source),
		Style:          d.Style,
		Content:        d.Content,
		ImagePath:      d.ImagePath,
		Prompt:         d.Prompt,
		ConversationID: d.ConversationID,
	}
}

func (doc descriptionDoc) toDomain() domain.Description {
	return domain.Description{
		DescriptionID:  doc.DescriptionID,
		UserID:         doc.UserID,
		Timestamp:      doc.Timestamp,
		Source:         domain.DescriptionSource(doc.Source),
		Style:          doc.Style,
		Content:        doc.Content,
		ImagePath:      doc.ImagePath,
		Prompt:         doc.Prompt,
		ConversationID: doc.ConversationID,
	}
}

type resetTokenDoc struct {
	TokenID   string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	TokenHash string    `bson:"token_hash"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
	Used      bool      `bson:"used"`
}

func toResetTokenDoc(t domain.PasswordResetToken) resetTokenDoc {
	return resetTokenDoc{
		TokenID:   t.TokenID,
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
	}
}

func (doc resetTokenDoc) toDomain() domain.PasswordResetToken {
	return domain.PasswordResetToken{
		TokenID:   doc.TokenID,
		UserID:    doc.UserID,
		TokenHash: doc.TokenHash,
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
		Used:      doc.Used,
	}
}

type conversationDoc struct {
	ConversationID string    `bson:"_id"`
	UserID         string    `bson:"user_id"`
	Title          string    `bson:"title"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toConversationDoc(c domain.Conversation) conversationDoc {
	return conversationDoc{
		ConversationID: c.ConversationID,
		UserID:         c.UserID,
		Title:          c.Title,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (doc conversationDoc) toDomain() domain.Conversation {
	return domain.Conversation{
		ConversationID: doc.ConversationID,
		UserID:         doc.UserID,
		Title:          doc.Title,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
