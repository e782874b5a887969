package rest

import (
	"time"

	"github.com/Mthew/million-real-state/internal/domain"
)

// Response DTOs own the public JSON field names. Projection copies from the
// domain values; it never mutates them.

type propertySummary struct {
	ID           string         `json:"id"`
	OwnerID      string         `json:"ownerId"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	Price        domain.Decimal `json:"price"`
	CodeInternal string         `json:"codeInternal"`
	Year         int            `json:"year"`
	ImageURL     string         `json:"imageUrl"`
}

type ownerResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	PhotoURL string    `json:"photoUrl"`
	Birthday time.Time `json:"birthday"`
}

type imageResponse struct {
	ID        string `json:"id"`
	FileURL   string `json:"fileUrl"`
	IsEnabled bool   `json:"isEnabled"`
}

type traceResponse struct {
	ID       string         `json:"id"`
	DateSale time.Time      `json:"dateSale"`
	Name     string         `json:"name"`
	Value    domain.Decimal `json:"value"`
	Tax      domain.Decimal `json:"tax"`
}

type propertyDetail struct {
	propertySummary
	Owner  ownerResponse   `json:"owner"`
	Images []imageResponse `json:"images"`
	Traces []traceResponse `json:"traces"`
}

// errorResponse is the uniform failure envelope for every handler.
type errorResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toSummary(p domain.Property, imageURL string) propertySummary {
	return propertySummary{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		ImageURL:     imageURL,
	}
}

func toSummaries(props []domain.Property) []propertySummary {
	out := make([]propertySummary, 0, len(props))
	for _, p := range props {
		// The list query reads the property collection only; the primary
		// image is a detail-level derivation. Placeholder substitution is
		// up to the presentation layer.
		out = append(out, toSummary(p, ""))
	}
	return out
}

func toDetail(d *domain.PropertyDetail) propertyDetail {
	resp := propertyDetail{
		propertySummary: toSummary(d.Property, d.ImageURL),
		Images:          make([]imageResponse, 0, len(d.Images)),
		Traces:          make([]traceResponse, 0, len(d.Traces)),
	}
	// An unresolved owner reference projects to the zero-value owner.
	if d.Owner != nil {
		resp.Owner = ownerResponse{
			ID:       d.Owner.ID,
			Name:     d.Owner.Name,
			Address:  d.Owner.Address,
			PhotoURL: d.Owner.PhotoURL,
			Birthday: d.Owner.Birthday,
		}
	}
	for _, img := range d.Images {
		resp.Images = append(resp.Images, imageResponse{
			ID:        img.ID,
			FileURL:   img.FileURL,
			IsEnabled: img.Enabled,
		})
	}
	for _, tr := range d.Traces {
		resp.Traces = append(resp.Traces, traceResponse{
			ID:       tr.ID,
			DateSale: tr.DateSale,
			Name:     tr.Name,
			Value:    tr.Value,
			Tax:      tr.Tax,
		})
	}
	return resp
}
