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

type MongoUserRepository struct {
	db *mongo.Database
}

func newMongoUserRepository(db *mongo.Database) portsrepo.UserRepository {
	return &MongoUserRepository{db: db}
}

var _ portsrepo.UserRepository = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) users() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *MongoUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.users().InsertOne(ctx, toUserDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	err := r.users().FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u := doc.toDomain()
	return &u, nil
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"_id": userID})
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"phone_number": phone})
}

func (r *MongoUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.users().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user document: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user documents: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	update := bson.M{"$set": bson.M{
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"full_name":    user.FullName,
		"avatar_url":   user.AvatarURL,
	}}
	result, err := r.users().UpdateByID(ctx, user.UserID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	result, err := r.users().UpdateByID(ctx, userID, bson.M{"$set": bson.M{"password_hash": passwordHash}})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole) error {
	result, err := r.users().UpdateByID(ctx, userID, bson.M{"$set": bson.M{"role": string(role)}})
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUser removes the user document and then best-effort removes the
// user's dependent documents. Standalone deployments have no transactions,
// so the cascade runs sequentially.
func (r *MongoUserRepository) DeleteUser(ctx context.Context, userID string) error {
	result, err := r.users().DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}

	filter := bson.M{"user_id": userID}
	for _, name := range []string{resetTokensCollection, descriptionsCollection, conversationsCollection} {
		if _, err := r.db.Collection(name).DeleteMany(ctx, filter); err != nil {
			return fmt.Errorf("failed to cascade user delete into %s: %w", name, err)
		}
	}
	return nil
}
