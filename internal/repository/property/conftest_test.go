package property

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mthew/million-real-state/internal/domain"
)

// mockStore implements the consumer interface for tests. The decode step is
// simulated by remarshalling canned documents into the caller's pointer.
type mockStore struct {
	findFn      func(ctx context.Context, collection string, filter bson.D) (any, error)
	aggregateFn func(ctx context.Context, collection string, pipeline mongo.Pipeline) (any, error)

	lastFilter   bson.D
	lastPipeline mongo.Pipeline
}

func (m *mockStore) Find(ctx context.Context, collection string, filter bson.D, results any) error {
	m.lastFilter = filter
	if m.findFn == nil {
		return nil
	}
	docs, err := m.findFn(ctx, collection, filter)
	if err != nil {
		return err
	}
	return decodeInto(docs, results)
}

func (m *mockStore) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, results any) error {
	m.lastPipeline = pipeline
	if m.aggregateFn == nil {
		return nil
	}
	docs, err := m.aggregateFn(ctx, collection, pipeline)
	if err != nil {
		return err
	}
	return decodeInto(docs, results)
}

// decodeInto round-trips docs through BSON into the results pointer, the
// same way a cursor decode would.
func decodeInto(docs any, results any) error {
	raw, err := bson.Marshal(bson.D{{Key: "v", Value: docs}})
	if err != nil {
		return err
	}
	var wrapper struct {
		V bson.RawValue `bson:"v"`
	}
	if err := bson.Unmarshal(raw, &wrapper); err != nil {
		return err
	}
	return wrapper.V.Unmarshal(results)
}

func testPropertyDoc(t *testing.T) propertyDoc {
	t.Helper()
	return propertyDoc{
		ID:           primitive.NewObjectID(),
		OwnerID:      primitive.NewObjectID(),
		Name:         "Skyline Penthouse",
		Address:      "1 Harbor Way",
		Price:        domain.MustDecimal("4500000.00"),
		CodeInternal: "SKY-001",
		Year:         2019,
	}
}

func testDetailDoc(t *testing.T) detailDoc {
	t.Helper()
	prop := testPropertyDoc(t)
	owner := ownerDoc{
		ID:       prop.OwnerID,
		Name:     "Ada Realty",
		Address:  "2 Broker St",
		PhotoURL: "ada.jpg",
		Birthday: time.Date(1980, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	return detailDoc{
		propertyDoc: prop,
		Owner:       &owner,
		Images: []imageDoc{
			{ID: primitive.NewObjectID(), PropertyID: prop.ID, FileURL: "a.jpg", IsEnabled: true},
			{ID: primitive.NewObjectID(), PropertyID: prop.ID, FileURL: "b.jpg", IsEnabled: false},
		},
		Traces: []traceDoc{
			{
				ID:         primitive.NewObjectID(),
				PropertyID: prop.ID,
				DateSale:   time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
				Name:       "First sale",
				Value:      domain.MustDecimal("4200000.00"),
				Tax:        domain.MustDecimal("126000.00"),
			},
		},
		ImageURL: "a.jpg",
	}
}
