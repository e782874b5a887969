// Package mongodb implements the db.Store contract on a MongoDB deployment.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Mthew/million-real-state/internal/db"
)

// Config holds the connection settings.
type Config struct {
	URI      string
	Database string
	// Timeout applies to every outbound store call. Zero means the
	// driver default.
	Timeout time.Duration
}

// Store is the MongoDB-backed document store.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
}

var _ db.Store = (*Store)(nil)

// NewStore connects a client. The connection is verified lazily; call
// WaitForReady before serving traffic.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return &Store{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

// Find decodes every matching document into results.
func (s *Store) Find(ctx context.Context, collection string, filter bson.D, results any) error {
	cursor, err := s.database.Collection(collection).Find(ctx, filter)
	if err != nil {
		return &db.Error{Op: db.OpFind, Collection: collection, Err: err}
	}
	if err := cursor.All(ctx, results); err != nil {
		return &db.Error{Op: db.OpFind, Collection: collection, Err: err}
	}
	return nil
}

// Aggregate runs pipeline as one compound request and decodes its output.
func (s *Store) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, results any) error {
	cursor, err := s.database.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return &db.Error{Op: db.OpAggregate, Collection: collection, Err: err}
	}
	if err := cursor.All(ctx, results); err != nil {
		return &db.Error{Op: db.OpAggregate, Collection: collection, Err: err}
	}
	return nil
}

// InsertMany writes documents in order.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	if _, err := s.database.Collection(collection).InsertMany(ctx, docs); err != nil {
		return &db.Error{Op: db.OpInsertMany, Collection: collection, Err: err}
	}
	return nil
}

// Drop removes a collection.
func (s *Store) Drop(ctx context.Context, collection string) error {
	if err := s.database.Collection(collection).Drop(ctx); err != nil {
		return &db.Error{Op: db.OpDrop, Collection: collection, Err: err}
	}
	return nil
}

// WaitForReady pings until the deployment answers or timeout elapses.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	deadline, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	for {
		pingCtx, pingCancel := context.WithTimeout(deadline, time.Second)
		lastErr = s.client.Ping(pingCtx, readpref.Primary())
		pingCancel()
		if lastErr == nil {
			return nil
		}

		select {
		case <-deadline.Done():
			return &db.Error{Op: db.OpPing, Err: fmt.Errorf("not ready after %s: %w", timeout, lastErr)}
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}
