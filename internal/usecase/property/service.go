// Package property is the query engine: it answers the two read operations
// of the listing API. Each call is stateless and performs exactly one store
// round trip through the repository.
package property

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mthew/million-real-state/internal/domain"
)

// Service answers the property queries.
type Service struct {
	repo Repository
}

// New creates the query service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the summaries of all properties satisfying every present
// filter criterion. The result may be empty; it is never nil on success.
func (s *Service) List(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	properties, err := s.repo.FindFiltered(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	if properties == nil {
		properties = []domain.Property{}
	}
	return properties, nil
}

// GetDetail returns the denormalized detail view for one property id.
// A malformed id fails with domain.ErrInvalidID before the store is
// touched; a well-formed id with no match fails with
// domain.ErrPropertyNotFound.
func (s *Service) GetDetail(ctx context.Context, id string) (*domain.PropertyDetail, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", id, domain.ErrInvalidID)
	}

	detail, err := s.repo.GetDetailByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("get property detail: %w", err)
	}
	return detail, nil
}
