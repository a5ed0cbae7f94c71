package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
)

type MongoDescriptionRepository struct {
	db *mongo.Database
}

func newMongoDescriptionRepository(db *mongo.Database) portsrepo.DescriptionRepository {
	return &MongoDescriptionRepository{db: db}
}

var _ portsrepo.DescriptionRepository = (*MongoDescriptionRepository)(nil)

func (r *MongoDescriptionRepository) descriptions() *mongo.Collection {
	return r.db.Collection(descriptionsCollection)
}

func (r *MongoDescriptionRepository) findDescriptions(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Description, error) {
	cursor, err := r.descriptions().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query descriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var descriptions []domain.Description
	for cursor.Next(ctx) {
		var doc descriptionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode description document: %w", err)
		}
		descriptions = append(descriptions, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate description documents: %w", err)
	}
	return descriptions, nil
}

func (r *MongoDescriptionRepository) SaveDescription(ctx context.Context, description domain.Description) error {
	if _, err := r.descriptions().InsertOne(ctx, toDescriptionDoc(description)); err != nil {
		return fmt.Errorf("failed to insert description: %w", err)
	}
	return nil
}

func (r *MongoDescriptionRepository) FindDescriptionsByUser(ctx context.Context, userID string, limit int) ([]domain.Description, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	return r.findDescriptions(ctx, bson.M{"user_id": userID}, opts)
}

func (r *MongoDescriptionRepository) FindDescriptions(ctx context.Context, limit, offset int) ([]domain.Description, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	return r.findDescriptions(ctx, bson.M{}, opts)
}

func (r *MongoDescriptionRepository) DeleteDescription(ctx context.Context, userID string, descriptionID string) (bool, error) {
	result, err := r.descriptions().DeleteOne(ctx, bson.M{"_id": descriptionID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete description: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoDescriptionRepository) DeleteDescriptionsByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.descriptions().DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete descriptions: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *MongoDescriptionRepository) FindDescriptionsByConversation(ctx context.Context, conversationID string, userID string) ([]domain.Description, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	return r.findDescriptions(ctx, bson.M{"conversation_id": conversationID, "user_id": userID}, opts)
}
