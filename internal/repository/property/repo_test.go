package property

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mthew/million-real-state/internal/db"
	"github.com/Mthew/million-real-state/internal/domain"
)

func TestFindFiltered_MapsDocuments(t *testing.T) {
	doc := testPropertyDoc(t)
	ms := &mockStore{
		findFn: func(_ context.Context, _ string, _ bson.D) (any, error) {
			return []propertyDoc{doc}, nil
		},
	}
	repo := New(ms)

	got, err := repo.FindFiltered(context.Background(), domain.PropertyFilter{})
	if err != nil {
		t.Fatalf("FindFiltered: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d properties, want 1", len(got))
	}
	p := got[0]
	if p.ID != doc.ID.Hex() || p.OwnerID != doc.OwnerID.Hex() {
		t.Errorf("ids not mapped: %+v", p)
	}
	if p.Name != "Skyline Penthouse" || p.CodeInternal != "SKY-001" || p.Year != 2019 {
		t.Errorf("fields not mapped: %+v", p)
	}
	if p.Price.String() != "4500000.00" {
		t.Errorf("price = %s, want 4500000.00", p.Price.String())
	}
}

func TestFindFiltered_EmptyResultIsNotAnError(t *testing.T) {
	ms := &mockStore{
		findFn: func(_ context.Context, _ string, _ bson.D) (any, error) {
			return []propertyDoc{}, nil
		},
	}
	repo := New(ms)

	got, err := repo.FindFiltered(context.Background(), domain.PropertyFilter{Name: "nothing"})
	if err != nil {
		t.Fatalf("FindFiltered: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d properties, want 0", len(got))
	}
}

func TestFindFiltered_SendsComposedFilter(t *testing.T) {
	minPrice := domain.MustDecimal("100")
	ms := &mockStore{}
	repo := New(ms)

	_, err := repo.FindFiltered(context.Background(), domain.PropertyFilter{
		Name:     "villa",
		MinPrice: &minPrice,
	})
	if err != nil {
		t.Fatalf("FindFiltered: %v", err)
	}
	if len(ms.lastFilter) != 2 {
		t.Fatalf("store received filter %v, want name + price clauses", ms.lastFilter)
	}
}

func TestFindFiltered_PropagatesStoreError(t *testing.T) {
	storeErr := &db.Error{Op: db.OpFind, Collection: db.CollProperties, Err: errors.New("connection reset")}
	ms := &mockStore{
		findFn: func(_ context.Context, _ string, _ bson.D) (any, error) {
			return nil, storeErr
		},
	}
	repo := New(ms)

	_, err := repo.FindFiltered(context.Background(), domain.PropertyFilter{})
	if err == nil {
		t.Fatal("expected error")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Errorf("store failure must stay identifiable as *db.Error, got %v", err)
	}
	if errors.Is(err, domain.ErrPropertyNotFound) {
		t.Error("infrastructure error must not look like not-found")
	}
}

func TestGetDetailByID_MapsJoinedDocument(t *testing.T) {
	doc := testDetailDoc(t)
	ms := &mockStore{
		aggregateFn: func(_ context.Context, _ string, _ mongo.Pipeline) (any, error) {
			return []detailDoc{doc}, nil
		},
	}
	repo := New(ms)

	got, err := repo.GetDetailByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("GetDetailByID: %v", err)
	}
	if got.Owner == nil || got.Owner.Name != "Ada Realty" {
		t.Errorf("owner not mapped: %+v", got.Owner)
	}
	if len(got.Images) != 2 || len(got.Traces) != 1 {
		t.Errorf("joined collections: %d images, %d traces, want 2 and 1",
			len(got.Images), len(got.Traces))
	}
	if got.ImageURL != "a.jpg" {
		t.Errorf("imageUrl = %q, want a.jpg", got.ImageURL)
	}
	if got.Traces[0].Value.String() != "4200000.00" {
		t.Errorf("trace value = %s, want 4200000.00", got.Traces[0].Value.String())
	}
}

func TestGetDetailByID_MissingOwnerStaysNil(t *testing.T) {
	doc := testDetailDoc(t)
	doc.Owner = nil
	ms := &mockStore{
		aggregateFn: func(_ context.Context, _ string, _ mongo.Pipeline) (any, error) {
			return []detailDoc{doc}, nil
		},
	}
	repo := New(ms)

	got, err := repo.GetDetailByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("GetDetailByID: %v", err)
	}
	if got.Owner != nil {
		t.Errorf("owner = %+v, want nil", got.Owner)
	}
}

func TestGetDetailByID_EmptyJoinsYieldEmptySlices(t *testing.T) {
	doc := testDetailDoc(t)
	doc.Images = nil
	doc.Traces = nil
	doc.ImageURL = ""
	ms := &mockStore{
		aggregateFn: func(_ context.Context, _ string, _ mongo.Pipeline) (any, error) {
			return []detailDoc{doc}, nil
		},
	}
	repo := New(ms)

	got, err := repo.GetDetailByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("GetDetailByID: %v", err)
	}
	if got.Images == nil || len(got.Images) != 0 {
		t.Errorf("images must be an empty slice, got %#v", got.Images)
	}
	if got.Traces == nil || len(got.Traces) != 0 {
		t.Errorf("traces must be an empty slice, got %#v", got.Traces)
	}
	if got.ImageURL != "" {
		t.Errorf("imageUrl = %q, want empty string", got.ImageURL)
	}
}

func TestGetDetailByID_NoMatchIsNotFound(t *testing.T) {
	ms := &mockStore{
		aggregateFn: func(_ context.Context, _ string, _ mongo.Pipeline) (any, error) {
			return []detailDoc{}, nil
		},
	}
	repo := New(ms)

	_, err := repo.GetDetailByID(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("err = %v, want ErrPropertyNotFound", err)
	}
}

func TestGetDetailByID_SendsPipelineOnce(t *testing.T) {
	id := primitive.NewObjectID()
	ms := &mockStore{
		aggregateFn: func(_ context.Context, _ string, _ mongo.Pipeline) (any, error) {
			return []detailDoc{testDetailDoc(t)}, nil
		},
	}
	repo := New(ms)

	if _, err := repo.GetDetailByID(context.Background(), id); err != nil {
		t.Fatalf("GetDetailByID: %v", err)
	}
	if len(ms.lastPipeline) != 6 {
		t.Fatalf("pipeline has %d stages, want the full 6-stage aggregation", len(ms.lastPipeline))
	}
}
