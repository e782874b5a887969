package property

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mthew/million-real-state/internal/domain"
)

// Storage DTOs mirror the document shapes in the four collections. Field
// names follow the external setup scripts; entities stay bson-free.

type propertyDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	OwnerID      primitive.ObjectID `bson:"ownerId"`
	Name         string             `bson:"name"`
	Address      string             `bson:"address"`
	Price        domain.Decimal     `bson:"price"`
	CodeInternal string             `bson:"codeInternal"`
	Year         int                `bson:"year"`
}

type ownerDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Address  string             `bson:"address"`
	PhotoURL string             `bson:"photoUrl"`
	Birthday time.Time          `bson:"birthday"`
}

type imageDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	PropertyID primitive.ObjectID `bson:"propertyId"`
	FileURL    string             `bson:"fileUrl"`
	IsEnabled  bool               `bson:"isEnabled"`
}

type traceDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	PropertyID primitive.ObjectID `bson:"propertyId"`
	DateSale   time.Time          `bson:"dateSale"`
	Name       string             `bson:"name"`
	Value      domain.Decimal     `bson:"value"`
	Tax        domain.Decimal     `bson:"tax"`
}

// detailDoc is the output shape of the detail pipeline. Owner is a pointer:
// when the owner lookup matches nothing the field is absent and stays nil.
type detailDoc struct {
	propertyDoc `bson:",inline"`
	Owner       *ownerDoc  `bson:"owner"`
	Images      []imageDoc `bson:"images"`
	Traces      []traceDoc `bson:"traces"`
	ImageURL    string     `bson:"imageUrl"`
}

func (d propertyDoc) toDomain() domain.Property {
	return domain.Property{
		ID:           d.ID.Hex(),
		OwnerID:      d.OwnerID.Hex(),
		Name:         d.Name,
		Address:      d.Address,
		Price:        d.Price,
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
	}
}

func (d ownerDoc) toDomain() domain.Owner {
	return domain.Owner{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Address:  d.Address,
		PhotoURL: d.PhotoURL,
		Birthday: d.Birthday,
	}
}

func (d imageDoc) toDomain() domain.PropertyImage {
	return domain.PropertyImage{
		ID:         d.ID.Hex(),
		PropertyID: d.PropertyID.Hex(),
		FileURL:    d.FileURL,
		Enabled:    d.IsEnabled,
	}
}

func (d traceDoc) toDomain() domain.PropertyTrace {
	return domain.PropertyTrace{
		ID:         d.ID.Hex(),
		PropertyID: d.PropertyID.Hex(),
		DateSale:   d.DateSale,
		Name:       d.Name,
		Value:      d.Value,
		Tax:        d.Tax,
	}
}

func (d detailDoc) toDomain() *domain.PropertyDetail {
	detail := &domain.PropertyDetail{
		Property: d.propertyDoc.toDomain(),
		Images:   make([]domain.PropertyImage, 0, len(d.Images)),
		Traces:   make([]domain.PropertyTrace, 0, len(d.Traces)),
		ImageURL: d.ImageURL,
	}
	if d.Owner != nil {
		owner := d.Owner.toDomain()
		detail.Owner = &owner
	}
	for _, img := range d.Images {
		detail.Images = append(detail.Images, img.toDomain())
	}
	for _, tr := range d.Traces {
		detail.Traces = append(detail.Traces, tr.toDomain())
	}
	return detail
}
