package activityRepo

import (
	"context"
	"time"

	"simba/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ActivityLogRepository stores the append-only audit trail.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry models.ActivityLog) (string, error)
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, int64, error)
	Summary(ctx context.Context, since time.Time) (*models.ActivitySummary, error)
}

type mongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo returns a new ActivityLogRepository instance using MongoDB.
func NewMongoActivityRepo(db *mongo.Database) ActivityLogRepository {
	repo := &mongoActivityRepo{coll: db.Collection("activitylogs")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("activity repository: index setup failed", zap.Error(err))
	}
	return repo
}
