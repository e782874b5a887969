package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Mthew/million-real-state/internal/domain"
	"github.com/Mthew/million-real-state/internal/repository/memory"
	propertyuc "github.com/Mthew/million-real-state/internal/usecase/property"
)

func newTestRouter(t *testing.T, repo *memory.Repo) *chi.Mux {
	t.Helper()
	server := NewServer(propertyuc.New(repo), zap.NewNop())
	r := chi.NewRouter()
	server.Register(r)
	return r
}

func doGet(t *testing.T, r http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %s: %v", rr.Body.String(), err)
	}
}

func seedProperty(repo *memory.Repo, name, price string) domain.Property {
	p := domain.Property{
		ID:      primitive.NewObjectID().Hex(),
		OwnerID: primitive.NewObjectID().Hex(),
		Name:    name,
		Address: "somewhere",
		Price:   domain.MustDecimal(price),
	}
	repo.AddProperty(p)
	return p
}

func TestListProperties_ReturnsSummaries(t *testing.T) {
	repo := memory.New()
	seedProperty(repo, "Oceanfront Villa", "50000")
	seedProperty(repo, "Inland Cottage", "250000")
	r := newTestRouter(t, repo)

	rr := doGet(t, r, "/api/properties")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var got []map[string]any
	decodeBody(t, rr, &got)
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	for _, key := range []string{"id", "ownerId", "name", "address", "price", "codeInternal", "year", "imageUrl"} {
		if _, ok := got[0][key]; !ok {
			t.Errorf("summary missing field %q: %v", key, got[0])
		}
	}
	if price, ok := got[1]["price"].(string); !ok || price != "250000" {
		t.Errorf("price = %v, want decimal string token", got[1]["price"])
	}
}

func TestListProperties_PriceRangeScenario(t *testing.T) {
	repo := memory.New()
	seedProperty(repo, "Cheap", "50000")
	seedProperty(repo, "Middle", "250000")
	seedProperty(repo, "Expensive", "2000000")
	r := newTestRouter(t, repo)

	rr := doGet(t, r, "/api/properties?minPrice=200000&maxPrice=300000")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var got []map[string]any
	decodeBody(t, rr, &got)
	if len(got) != 1 || got[0]["name"] != "Middle" {
		t.Fatalf("got %v, want only the 250000 property", got)
	}
}

func TestListProperties_BlankNameImposesNoConstraint(t *testing.T) {
	repo := memory.New()
	seedProperty(repo, "Cottage", "100000")
	r := newTestRouter(t, repo)

	for _, url := range []string{
		"/api/properties?name=%20%20",
		"/api/properties?address=%09",
		"/api/properties?name=%20&address=%20",
	} {
		rr := doGet(t, r, url)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", url, rr.Code)
		}
		var got []map[string]any
		decodeBody(t, rr, &got)
		if len(got) != 1 {
			t.Errorf("%s: got %d properties, want 1 (blank filter is absent)", url, len(got))
		}
	}
}

func TestListProperties_EmptyMatchIsEmptyArray(t *testing.T) {
	repo := memory.New()
	seedProperty(repo, "Only One", "100")
	r := newTestRouter(t, repo)

	rr := doGet(t, r, "/api/properties?name=unmatchable")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	var got []json.RawMessage
	decodeBody(t, rr, &got)
	if got == nil || len(got) != 0 {
		t.Fatalf("body = %s, want JSON empty array", body)
	}
}

func TestListProperties_MalformedPriceIs400(t *testing.T) {
	r := newTestRouter(t, memory.New())

	rr := doGet(t, r, "/api/properties?minPrice=abc")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var body errorResponse
	decodeBody(t, rr, &body)
	if body.Title == "" || body.Description == "" {
		t.Errorf("error envelope incomplete: %+v", body)
	}
}

func TestListProperties_StoreFailureIs500Envelope(t *testing.T) {
	repo := memory.New()
	repo.Err = errors.New("connection refused to mongodb://internal-host")
	r := newTestRouter(t, repo)

	rr := doGet(t, r, "/api/properties")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var body errorResponse
	decodeBody(t, rr, &body)
	if body.Title != "Internal server error" {
		t.Errorf("title = %q", body.Title)
	}
}

func TestGetPropertyDetail_FullScenario(t *testing.T) {
	repo := memory.New()
	owner := domain.Owner{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Ada Realty",
		Address:  "2 Broker St",
		PhotoURL: "ada.jpg",
		Birthday: time.Date(1980, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.AddOwner(owner)

	prop := domain.Property{
		ID:           primitive.NewObjectID().Hex(),
		OwnerID:      owner.ID,
		Name:         "Skyline Penthouse",
		Address:      "1 Harbor Way",
		Price:        domain.MustDecimal("4500000.00"),
		CodeInternal: "SKY-001",
		Year:         2019,
	}
	repo.AddProperty(prop)
	repo.AddImage(domain.PropertyImage{
		ID: primitive.NewObjectID().Hex(), PropertyID: prop.ID, FileURL: "a.jpg", Enabled: true,
	})
	repo.AddImage(domain.PropertyImage{
		ID: primitive.NewObjectID().Hex(), PropertyID: prop.ID, FileURL: "b.jpg", Enabled: false,
	})
	repo.AddTrace(domain.PropertyTrace{
		ID: primitive.NewObjectID().Hex(), PropertyID: prop.ID,
		DateSale: time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		Name:     "First sale",
		Value:    domain.MustDecimal("4200000.00"),
		Tax:      domain.MustDecimal("126000.00"),
	})
	r := newTestRouter(t, repo)

	rr := doGet(t, r, "/api/properties/"+prop.ID)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	var got struct {
		Name     string `json:"name"`
		Price    string `json:"price"`
		ImageURL string `json:"imageUrl"`
		Owner    struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"owner"`
		Images []struct {
			FileURL   string `json:"fileUrl"`
			IsEnabled bool   `json:"isEnabled"`
		} `json:"images"`
		Traces []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
			Tax   string `json:"tax"`
		} `json:"traces"`
	}
	decodeBody(t, rr, &got)

	if got.Name != "Skyline Penthouse" || got.Price != "4500000.00" {
		t.Errorf("base fields: %+v", got)
	}
	if got.Owner.ID != owner.ID || got.Owner.Name != "Ada Realty" {
		t.Errorf("owner: %+v", got.Owner)
	}
	if len(got.Images) != 2 || got.Images[0].FileURL != "a.jpg" || !got.Images[0].IsEnabled {
		t.Errorf("images: %+v", got.Images)
	}
	if len(got.Traces) != 1 || got.Traces[0].Value != "4200000.00" || got.Traces[0].Tax != "126000.00" {
		t.Errorf("traces: %+v", got.Traces)
	}
	if got.ImageURL != "a.jpg" {
		t.Errorf("imageUrl = %q, want a.jpg", got.ImageURL)
	}
}

func TestGetPropertyDetail_AbsentOwnerIsZeroValue(t *testing.T) {
	repo := memory.New()
	prop := seedProperty(repo, "Orphan Flat", "100")
	r := newTestRouter(t, repo)

	rr := doGet(t, r, "/api/properties/"+prop.ID)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var got map[string]any
	decodeBody(t, rr, &got)
	owner, ok := got["owner"].(map[string]any)
	if !ok {
		t.Fatalf("owner field = %v, want explicit zero-value object", got["owner"])
	}
	if owner["id"] != "" {
		t.Errorf("owner id = %v, want empty", owner["id"])
	}
}

func TestGetPropertyDetail_MalformedAndUnknownAreDistinct(t *testing.T) {
	repo := memory.New()
	seedProperty(repo, "Known", "100")
	r := newTestRouter(t, repo)

	malformed := doGet(t, r, "/api/properties/not-a-valid-id")
	if malformed.Code != http.StatusBadRequest {
		t.Errorf("malformed id status = %d, want 400", malformed.Code)
	}

	unknown := doGet(t, r, "/api/properties/"+primitive.NewObjectID().Hex())
	if unknown.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", unknown.Code)
	}
}

func TestHealthz(t *testing.T) {
	repo := memory.New()
	server := NewServer(propertyuc.New(repo), zap.NewNop())
	healthy := true
	server.WithHealth(func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("ping timeout")
	})
	r := chi.NewRouter()
	server.Register(r)

	if rr := doGet(t, r, "/healthz"); rr.Code != http.StatusOK {
		t.Errorf("healthy status = %d, want 200", rr.Code)
	}
	healthy = false
	if rr := doGet(t, r, "/healthz"); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d, want 503", rr.Code)
	}
}
