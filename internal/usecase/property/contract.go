package property

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mthew/million-real-state/internal/domain"
)

// Repository is the storage contract for the property queries. Both the
// store-backed and the in-memory repositories satisfy it.
type Repository interface {
	FindFiltered(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error)
	GetDetailByID(ctx context.Context, id primitive.ObjectID) (*domain.PropertyDetail, error)
}
