package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs a unit of work atomically when the store allows it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTransactor runs fn inside a multi-document transaction on replica
// sets. On a standalone server fn runs directly and its writes are not atomic.
type MongoTransactor struct {
	client    *mongo.Client
	supported bool
}

// NewMongoTransactor probes the deployment once and remembers the answer.
func NewMongoTransactor(ctx context.Context, client *mongo.Client) *MongoTransactor {
	supported, err := SupportsTransactions(ctx, client)
	if err != nil {
		supported = false
	}
	return &MongoTransactor{client: client, supported: supported}
}

// Atomic reports whether WithTransaction gives all-or-nothing semantics.
func (t *MongoTransactor) Atomic() bool { return t.supported }

func (t *MongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.supported {
		return fn(ctx)
	}

	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
