package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
)

type MongoResetTokenRepository struct {
	db *mongo.Database
}

func newMongoResetTokenRepository(db *mongo.Database) portsrepo.ResetTokenRepository {
	return &MongoResetTokenRepository{db: db}
}

var _ portsrepo.ResetTokenRepository = (*MongoResetTokenRepository)(nil)

func (r *MongoResetTokenRepository) tokens() *mongo.Collection {
	return r.db.Collection(resetTokensCollection)
}

func (r *MongoResetTokenRepository) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	if _, err := r.tokens().InsertOne(ctx, toResetTokenDoc(token)); err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}
	return nil
}

func (r *MongoResetTokenRepository) FindLatestUnusedByUser(ctx context.Context, userID string) (*domain.PasswordResetToken, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var doc resetTokenDoc
	err := r.tokens().FindOne(ctx, bson.M{"user_id": userID, "used": false}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}
	t := doc.toDomain()
	return &t, nil
}

func (r *MongoResetTokenRepository) MarkUnusedTokensUsed(ctx context.Context, userID string) (int64, error) {
	result, err := r.tokens().UpdateMany(ctx,
		bson.M{"user_id": userID, "used": false},
		bson.M{"$set": bson.M{"used": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate reset tokens: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *MongoResetTokenRepository) MarkTokenUsed(ctx context.Context, tokenID string) error {
	result, err := r.tokens().UpdateByID(ctx, tokenID, bson.M{"$set": bson.M{"used": true}})
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoResetTokenRepository) DeleteResetToken(ctx context.Context, tokenID string) error {
	if _, err := r.tokens().DeleteOne(ctx, bson.M{"_id": tokenID}); err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}
