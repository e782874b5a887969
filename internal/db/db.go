// Package db defines the storage contract the repositories consume and the
// names of the document collections the system reads.
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names as provisioned by the external setup scripts.
const (
	CollOwners         = "owners"
	CollProperties     = "properties"
	CollPropertyImages = "propertyimages"
	CollPropertyTraces = "propertytraces"
)

// Store is the document-store boundary. Each call is a single round trip;
// results decodes into the pointer the caller provides.
type Store interface {
	// Find decodes all documents matching filter into results
	// (pointer to slice).
	Find(ctx context.Context, collection string, filter bson.D, results any) error
	// Aggregate runs a pipeline and decodes all output documents into
	// results (pointer to slice).
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, results any) error

	// InsertMany writes documents. Only the out-of-band seed tool uses it;
	// the API surface is read-only.
	InsertMany(ctx context.Context, collection string, docs []any) error
	// Drop removes a collection. Seed tool only.
	Drop(ctx context.Context, collection string) error

	// WaitForReady blocks until the store answers a ping or the timeout
	// elapses.
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close(ctx context.Context) error
}
