// File: database/repository/analytics/analyticsMongo.go
package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"simba/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AnalyticsRepository keeps one counter document per calendar day.
type AnalyticsRepository interface {
	// Increment bumps one counter on the document for date, creating it if needed.
	Increment(ctx context.Context, date, field string) error
	// Since returns days with date >= from, oldest first.
	Since(ctx context.Context, from string) ([]models.DailyAnalytics, error)
}

type mongoAnalyticsRepo struct {
	coll *mongo.Collection
}

func NewMongoAnalyticsRepo(db *mongo.Database) AnalyticsRepository {
	repo := &mongoAnalyticsRepo{coll: db.Collection("analytics")}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		zap.L().Warn("analytics repository: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *mongoAnalyticsRepo) Increment(ctx context.Context, date, field string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$inc":         bson.M{field: 1},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"date": date}, update, opts); err != nil {
		return fmt.Errorf("failed to increment %s for %s: %w", field, date, err)
	}
	return nil
}

func (r *mongoAnalyticsRepo) Since(ctx context.Context, from string) ([]models.DailyAnalytics, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"date": bson.M{"$gte": from}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve analytics: %w", err)
	}
	defer cursor.Close(ctx)

	days := []models.DailyAnalytics{}
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode analytics: %w", err)
	}
	return days, nil
}
