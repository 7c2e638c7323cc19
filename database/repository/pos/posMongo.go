// File: database/repository/pos/posMongo.go
package posRepo

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

// MongoTransactionRepo implements TransactionRepository using MongoDB.
type MongoTransactionRepo struct {
	coll *mongo.Collection
}

// NewMongoTransactionRepo creates a new instance of TransactionRepository using MongoDB.
func NewMongoTransactionRepo(db *mongo.Database) TransactionRepository {
	repo := &MongoTransactionRepo{coll: db.Collection("postransactions")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("pos repository: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *MongoTransactionRepo) Insert(ctx context.Context, txn *models.POSTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, txn); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert pos transaction: %w", err)
	}
	return nil
}

func (r *MongoTransactionRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.POSTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var txn models.POSTransaction
	if err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&txn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *MongoTransactionRepo) GetByID(ctx context.Context, id string) (*models.POSTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var txn models.POSTransaction
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&txn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", id, err)
	}
	return &txn, nil
}

func (r *MongoTransactionRepo) MarkRefunded(ctx context.Context, id, status string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "status": bson.M{"$ne": models.TxnRefunded}}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update status of transaction %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoTransactionRepo) SetBookingID(ctx context.Context, id, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"bookingId": bookingID, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to link booking to transaction %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}

func (r *MongoTransactionRepo) List(ctx context.Context, f models.TransactionFilter) ([]models.POSTransaction, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if f.Type != "" {
		query["type"] = f.Type
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.PaymentMethod != "" {
		query["paymentMethod"] = f.PaymentMethod
	}
	if f.From != nil || f.To != nil {
		window := bson.M{}
		if f.From != nil {
			window["$gte"] = *f.From
		}
		if f.To != nil {
			window["$lt"] = *f.To
		}
		query["createdAt"] = window
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pos transactions: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * f.Limit)).SetLimit(int64(f.Limit))
	}
	txns, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func (r *MongoTransactionRepo) SalesSince(ctx context.Context, since time.Time) (models.SalesWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"type":      models.TxnSale,
			"status":    models.TxnCompleted,
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.SalesWindow{}, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.SalesWindow
	if err := cursor.All(ctx, &rows); err != nil {
		return models.SalesWindow{}, fmt.Errorf("failed to decode sales: %w", err)
	}
	if len(rows) == 0 {
		return models.SalesWindow{}, nil
	}
	return rows[0], nil
}

func (r *MongoTransactionRepo) Recent(ctx context.Context, limit int) ([]models.POSTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *MongoTransactionRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.POSTransaction, error) {
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pos transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txns := []models.POSTransaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode pos transactions: %w", err)
	}
	return txns, nil
}
