package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
)

type MongoConversationRepository struct {
	db *mongo.Database
}

func newMongoConversationRepository(db *mongo.Database) portsrepo.ConversationRepository {
	return &MongoConversationRepository{db: db}
}

var _ portsrepo.ConversationRepository = (*MongoConversationRepository)(nil)

func (r *MongoConversationRepository) conversations() *mongo.Collection {
	return r.db.Collection(conversationsCollection)
}

func (r *MongoConversationRepository) SaveConversation(ctx context.Context, conversation domain.Conversation) error {
	if _, err := r.conversations().InsertOne(ctx, toConversationDoc(conversation)); err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

func (r *MongoConversationRepository) FindConversationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.conversations().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var conversations []domain.Conversation
	for cursor.Next(ctx) {
		var doc conversationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode conversation document: %w", err)
		}
		conversations = append(conversations, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversation documents: %w", err)
	}
	return conversations, nil
}

func (r *MongoConversationRepository) FindConversation(ctx context.Context, conversationID string, userID string) (*domain.Conversation, error) {
	var doc conversationDoc
	err := r.conversations().FindOne(ctx, bson.M{"_id": conversationID, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	c := doc.toDomain()
	return &c, nil
}

func (r *MongoConversationRepository) UpdateConversationTitle(ctx context.Context, conversationID string, userID string, title string, updatedAt time.Time) (bool, error) {
	result, err := r.conversations().UpdateOne(ctx,
		bson.M{"_id": conversationID, "user_id": userID},
		bson.M{"$set": bson.M{"title": title, "updated_at": updatedAt}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update conversation title: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoConversationRepository) TouchConversation(ctx context.Context, conversationID string, updatedAt time.Time) error {
	_, err := r.conversations().UpdateByID(ctx, conversationID, bson.M{"$set": bson.M{"updated_at": updatedAt}})
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	return nil
}

// DeleteConversation removes an owned thread, then its messages. Standalone
// deployments have no transactions, so the cascade runs sequentially.
func (r *MongoConversationRepository) DeleteConversation(ctx context.Context, conversationID string, userID string) (bool, error) {
	result, err := r.conversations().DeleteOne(ctx, bson.M{"_id": conversationID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete conversation: %w", err)
	}
	if result.DeletedCount == 0 {
		return false, nil
	}

	if _, err := r.db.Collection(descriptionsCollection).DeleteMany(ctx,
		bson.M{"conversation_id": conversationID, "user_id": userID},
	); err != nil {
		return false, fmt.Errorf("failed to delete conversation messages: %w", err)
	}
	return true, nil
}
