// File: database/repository/tour/tourMongo.go
package tourRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simba/database"
	"simba/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoTourRepo implements TourRepository using MongoDB.
type MongoTourRepo struct {
	coll *mongo.Collection
}

// NewMongoTourRepo creates a new instance of TourRepository using MongoDB.
func NewMongoTourRepo(db *mongo.Database) TourRepository {
	repo := &MongoTourRepo{coll: db.Collection("tours")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("tour repository: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *MongoTourRepo) List(ctx context.Context) ([]models.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tours: %w", err)
	}
	defer cursor.Close(ctx)

	tours := []models.Tour{}
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}
	return tours, nil
}

func (r *MongoTourRepo) findOne(ctx context.Context, filter bson.M) (*models.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tour models.Tour
	if err := r.coll.FindOne(ctx, filter).Decode(&tour); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &tour, nil
}

func (r *MongoTourRepo) GetByID(ctx context.Context, id string) (*models.Tour, error) {
	tour, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tour with id %s: %w", id, err)
	}
	return tour, nil
}

func (r *MongoTourRepo) GetBySlug(ctx context.Context, slug string) (*models.Tour, error) {
	tour, err := r.findOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tour with slug %s: %w", slug, err)
	}
	return tour, nil
}

func (r *MongoTourRepo) Create(ctx context.Context, tour *models.Tour) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, tour); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

func (r *MongoTourRepo) Replace(ctx context.Context, tour *models.Tour) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": tour.ID}, tour)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, database.ErrDuplicateKey
		}
		return false, fmt.Errorf("failed to update tour with id %s: %w", tour.ID, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoTourRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete tour with id %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoTourRepo) IncrementViews(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return false, fmt.Errorf("failed to increment views for tour %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoTourRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count tours: %w", err)
	}
	return n, nil
}
