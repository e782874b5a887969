// Package memory is an in-process implementation of the property query
// contract with the same semantics as the store-backed repository:
// conjunctive case-insensitive substring filters, inclusive price bounds,
// left-outer joins and the first-enabled-image rule. It backs the unit
// tests of the layers above the store without a live database.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mthew/million-real-state/internal/domain"
)

// Repo holds documents in insertion order, the way a store returns them
// when no ordering is requested.
type Repo struct {
	mu     sync.RWMutex
	owners []domain.Owner
	props  []domain.Property
	images []domain.PropertyImage
	traces []domain.PropertyTrace

	// Err, when set, is returned by every query. Simulates an
	// unreachable store.
	Err error
}

// New creates an empty in-memory repository.
func New() *Repo {
	return &Repo{}
}

// AddOwner seeds an owner document.
func (r *Repo) AddOwner(o domain.Owner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners = append(r.owners, o)
}

// AddProperty seeds a property document.
func (r *Repo) AddProperty(p domain.Property) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props = append(r.props, p)
}

// AddImage seeds a property image. Insertion order is preserved; the
// primary-image rule depends on it.
func (r *Repo) AddImage(img domain.PropertyImage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images = append(r.images, img)
}

// AddTrace seeds a sale trace.
func (r *Repo) AddTrace(tr domain.PropertyTrace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.traces = append(r.traces, tr)
}

// FindFiltered returns the properties satisfying every present criterion.
func (r *Repo) FindFiltered(_ context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	matched := make([]domain.Property, 0, len(r.props))
	for _, p := range r.props {
		ok, err := matches(p, f)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetDetailByID joins the property with its owner, images and traces.
func (r *Repo) GetDetailByID(_ context.Context, id primitive.ObjectID) (*domain.PropertyDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	hex := id.Hex()
	var base *domain.Property
	for i := range r.props {
		if r.props[i].ID == hex {
			base = &r.props[i]
			break
		}
	}
	if base == nil {
		return nil, domain.ErrPropertyNotFound
	}

	detail := &domain.PropertyDetail{
		Property: *base,
		Images:   make([]domain.PropertyImage, 0),
		Traces:   make([]domain.PropertyTrace, 0),
	}

	for _, o := range r.owners {
		if o.ID == base.OwnerID {
			owner := o
			detail.Owner = &owner
			break
		}
	}
	for _, img := range r.images {
		if img.PropertyID == hex {
			detail.Images = append(detail.Images, img)
		}
	}
	for _, tr := range r.traces {
		if tr.PropertyID == hex {
			detail.Traces = append(detail.Traces, tr)
		}
	}
	detail.ImageURL = domain.PrimaryImageURL(detail.Images)

	return detail, nil
}

func matches(p domain.Property, f domain.PropertyFilter) (bool, error) {
	if f.Name != "" && !containsFold(p.Name, f.Name) {
		return false, nil
	}
	if f.Address != "" && !containsFold(p.Address, f.Address) {
		return false, nil
	}
	if f.MinPrice != nil {
		c, err := p.Price.Cmp(*f.MinPrice)
		if err != nil {
			return false, fmt.Errorf("compare price: %w", err)
		}
		if c < 0 {
			return false, nil
		}
	}
	if f.MaxPrice != nil {
		c, err := p.Price.Cmp(*f.MaxPrice)
		if err != nil {
			return false, fmt.Errorf("compare price: %w", err)
		}
		if c > 0 {
			return false, nil
		}
	}
	return true, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
