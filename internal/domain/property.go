// Package domain holds the real-estate entities and the query contracts
// shared by the repositories, the query engine and the transport layer.
package domain

import "time"

// Property is the core listing entity. OwnerID references an Owner document;
// the store does not enforce the reference.
type Property struct {
	ID           string
	OwnerID      string
	Name         string
	Address      string
	Price        Decimal
	CodeInternal string
	Year         int
}

// PropertyImage is one of zero or more images attached to a property.
type PropertyImage struct {
	ID         string
	PropertyID string
	FileURL    string
	Enabled    bool
}

// PropertyTrace is a historical sale record for a property.
type PropertyTrace struct {
	ID         string
	PropertyID string
	DateSale   time.Time
	Name       string
	Value      Decimal
	Tax        Decimal
}

// PropertyDetail is the denormalized result of the detail aggregation:
// the base property joined with its owner, images and traces.
//
// Owner is nil when the owner reference resolves to nothing; Images and
// Traces are empty slices when no related documents exist. Neither case is
// an error. ImageURL is the file URL of the first enabled image in stored
// order, or "" when no image is enabled.
type PropertyDetail struct {
	Property
	Owner    *Owner
	Images   []PropertyImage
	Traces   []PropertyTrace
	ImageURL string
}

// PrimaryImageURL derives the primary image URL from an image list:
// first enabled image wins, in the order given; no enabled image yields "".
func PrimaryImageURL(images []PropertyImage) string {
	for _, img := range images {
		if img.Enabled {
			return img.FileURL
		}
	}
	return ""
}

// PropertyFilter is the optional conjunctive criteria for the list query.
// Zero-value fields impose no constraint. Name and Address are
// case-insensitive substring matches; the price bounds are inclusive.
type PropertyFilter struct {
	Name     string
	Address  string
	MinPrice *Decimal
	MaxPrice *Decimal
}

// IsEmpty reports whether the filter constrains nothing.
func (f PropertyFilter) IsEmpty() bool {
	return f.Name == "" && f.Address == "" && f.MinPrice == nil && f.MaxPrice == nil
}
