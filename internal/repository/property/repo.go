// Package property reads the property collections from the document store.
// The two queries each execute as a single store round trip; the join and
// derived-field logic lives in the pipeline built by internal/db/query.
package property

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mthew/million-real-state/internal/db"
	"github.com/Mthew/million-real-state/internal/db/query"
	"github.com/Mthew/million-real-state/internal/domain"
)

// store is the consumer interface for the property queries (ISP).
type store interface {
	Find(ctx context.Context, collection string, filter bson.D, results any) error
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, results any) error
}

// Repo implements the property query contract against a document store.
type Repo struct {
	store store
}

// New creates a property repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FindFiltered returns the properties satisfying every present criterion.
// An empty result is a valid answer, never an error.
func (r *Repo) FindFiltered(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	var docs []propertyDoc
	if err := r.store.Find(ctx, db.CollProperties, query.ListFilter(f), &docs); err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}

	properties := make([]domain.Property, 0, len(docs))
	for _, doc := range docs {
		properties = append(properties, doc.toDomain())
	}
	return properties, nil
}

// GetDetailByID runs the detail aggregation for one property. The pipeline
// left-joins owner, images and traces, so a property with no related
// documents still comes back whole. A missing property yields
// domain.ErrPropertyNotFound.
func (r *Repo) GetDetailByID(ctx context.Context, id primitive.ObjectID) (*domain.PropertyDetail, error) {
	var docs []detailDoc
	if err := r.store.Aggregate(ctx, db.CollProperties, query.DetailPipeline(id), &docs); err != nil {
		return nil, fmt.Errorf("aggregate property detail: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrPropertyNotFound
	}
	return docs[0].toDomain(), nil
}
