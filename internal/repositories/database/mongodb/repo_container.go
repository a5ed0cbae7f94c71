package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *mongo.Database) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newMongoUserRepository(db),
		DescriptionRepo:  newMongoDescriptionRepository(db),
		ResetTokenRepo:   newMongoResetTokenRepository(db),
		ConversationRepo: newMongoConversationRepository(db),
		ReportingRepo:    newMongoReportingRepository(db),
	}
}

// EnsureIndexes creates the unique and query indexes the repositories rely
// on. Safe to run at every startup; index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: sparseUnique},
		{Keys: bson.D{{Key: "phone_number", Value: 1}}, Options: sparseUnique},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = db.Collection(descriptionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create description indexes: %w", err)
	}

	_, err = db.Collection(resetTokensCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "used", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create reset token index: %w", err)
	}

	_, err = db.Collection(conversationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create conversation index: %w", err)
	}

	return nil
}
