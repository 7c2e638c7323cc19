package activityRepo

import (
	"context"
	"fmt"
	"time"

	"simba/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoActivityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "entityType", Value: 1}, {Key: "entityId", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create activity log indexes: %w", err)
	}
	return nil
}

// Create inserts a new activity entry and returns its ID.
func (r *mongoActivityRepo) Create(ctx context.Context, entry models.ActivityLog) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return "", fmt.Errorf("failed to insert activity log: %w", err)
	}
	return entry.ID, nil
}

// List returns one page of entries, newest first, and the filtered total.
func (r *mongoActivityRepo) List(ctx context.Context, f models.ActivityFilter) ([]models.ActivityLog, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if f.Action != "" {
		query["action"] = f.Action
	}
	if f.EntityType != "" {
		query["entityType"] = f.EntityType
	}
	if f.Severity != "" {
		query["severity"] = f.Severity
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * f.Limit)).SetLimit(int64(f.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve activity logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []models.ActivityLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode activity logs: %w", err)
	}
	return logs, total, nil
}

// Summary counts entries since the given instant, grouped by action.
func (r *mongoActivityRepo) Summary(ctx context.Context, since time.Time) (*models.ActivitySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	window := bson.M{"createdAt": bson.M{"$gte": since}}
	total, err := r.coll.CountDocuments(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to count activity logs: %w", err)
	}
	failures, err := r.coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}, "success": false})
	if err != nil {
		return nil, fmt.Errorf("failed to count failed activity: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: window}},
		{{Key: "$group", Value: bson.M{"_id": "$action", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity logs: %w", err)
	}
	defer cursor.Close(ctx)

	byAction := []models.ActionCount{}
	if err := cursor.All(ctx, &byAction); err != nil {
		return nil, fmt.Errorf("failed to decode activity summary: %w", err)
	}

	return &models.ActivitySummary{
		Total:    total,
		Failures: failures,
		ByAction: byAction,
		Since:    since,
	}, nil
}
