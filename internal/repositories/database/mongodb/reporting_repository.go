package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
)

type MongoReportingRepository struct {
	db *mongo.Database
}

func newMongoReportingRepository(db *mongo.Database) portsrepo.ReportingRepository {
	return &MongoReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*MongoReportingRepository)(nil)

func (r *MongoReportingRepository) CountUsers(ctx context.Context) (int64, error) {
	n, err := r.db.Collection(usersCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *MongoReportingRepository) CountDescriptions(ctx context.Context) (int64, error) {
	n, err := r.db.Collection(descriptionsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count descriptions: %w", err)
	}
	return n, nil
}

func (r *MongoReportingRepository) CountDescriptionsBySource(ctx context.Context, source domain.DescriptionSource) (int64, error) {
	n, err := r.db.Collection(descriptionsCollection).CountDocuments(ctx, bson.M{"source": string(source)})
	if err != nil {
		return 0, fmt.Errorf("failed to count descriptions by source: %w", err)
	}
	return n, nil
}

// DescriptionsPerDay buckets descriptions by UTC day via an aggregation
// pipeline. Days with no documents are absent; the service layer fills them.
func (r *MongoReportingRepository) DescriptionsPerDay(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$timestamp",
				"timezone": "UTC",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.db.Collection(descriptionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily counts: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []domain.DailyCount
	for cursor.Next(ctx) {
		var row struct {
			Day   string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode daily count row: %w", err)
		}
		day, err := time.ParseInLocation(time.DateOnly, row.Day, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse daily bucket %q: %w", row.Day, err)
		}
		buckets = append(buckets, domain.DailyCount{Day: day, Count: row.Count})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily count rows: %w", err)
	}
	return buckets, nil
}
