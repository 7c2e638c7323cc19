// File: database/repository/admin/adminMongo.go
package adminRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simba/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AdminRepository defines methods for back-office accounts.
type AdminRepository interface {
	// GetByEmail returns nil, nil when no admin matches.
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, admin *models.AdminUser) error
	RecordFailedLogin(ctx context.Context, id string, attempts int, lockUntil *time.Time) error
	RecordSuccessfulLogin(ctx context.Context, id string, at time.Time) error
}

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

func NewMongoAdminRepo(db *mongo.Database) AdminRepository {
	repo := &MongoAdminRepo{coll: db.Collection("adminusers")}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		zap.L().Warn("admin repository: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *MongoAdminRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var admin models.AdminUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch admin %s: %w", email, err)
	}
	return &admin, nil
}

func (r *MongoAdminRepo) Create(ctx context.Context, admin *models.AdminUser) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *MongoAdminRepo) RecordFailedLogin(ctx context.Context, id string, attempts int, lockUntil *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"loginAttempts": attempts, "lockUntil": lockUntil, "updatedAt": time.Now()}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to record failed login for admin %s: %w", id, err)
	}
	return nil
}

func (r *MongoAdminRepo) RecordSuccessfulLogin(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"loginAttempts": 0, "lockUntil": nil, "lastLogin": at, "updatedAt": at}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to record login for admin %s: %w", id, err)
	}
	return nil
}
