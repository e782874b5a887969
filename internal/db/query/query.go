// Package query builds the bson filter and pipeline documents the property
// repository sends to the store. Builders are pure so the wire shape of
// every query is unit-testable without a live database.
package query

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mthew/million-real-state/internal/db"
	"github.com/Mthew/million-real-state/internal/domain"
)

// ListFilter composes the conjunctive filter for the property list query.
// Absent criteria contribute nothing; an empty filter matches everything.
// Name and address become case-insensitive literal substring regexes, the
// price bounds an inclusive range on the Decimal128 price field.
func ListFilter(f domain.PropertyFilter) bson.D {
	filter := bson.D{}
	if f.IsEmpty() {
		return filter
	}

	if f.Name != "" {
		filter = append(filter, bson.E{Key: "name", Value: containsFold(f.Name)})
	}
	if f.Address != "" {
		filter = append(filter, bson.E{Key: "address", Value: containsFold(f.Address)})
	}

	price := bson.D{}
	if f.MinPrice != nil {
		price = append(price, bson.E{Key: "$gte", Value: f.MinPrice.Decimal128()})
	}
	if f.MaxPrice != nil {
		price = append(price, bson.E{Key: "$lte", Value: f.MaxPrice.Decimal128()})
	}
	if len(price) > 0 {
		filter = append(filter, bson.E{Key: "price", Value: price})
	}

	return filter
}

// containsFold is a case-insensitive substring match. The input is quoted so
// caller-supplied text is never interpreted as a regex pattern.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// DetailPipeline builds the detail aggregation for one property id:
//
//  1. match the property document,
//  2. left-join the owner (zero or one element),
//  3. left-join the images,
//  4. left-join the sale traces,
//  5. collapse the owner array and derive imageUrl from the first enabled
//     image, defaulting to "" so the field is never null.
//
// Every join preserves the base document when the joined side is empty.
// The whole pipeline executes as a single store round trip.
func DetailPipeline(id primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		lookup(db.CollOwners, "ownerId", "_id", "ownerDocs"),
		lookup(db.CollPropertyImages, "_id", "propertyId", "images"),
		lookup(db.CollPropertyTraces, "_id", "propertyId", "traces"),
		{{Key: "$addFields", Value: bson.D{
			{Key: "owner", Value: bson.D{
				{Key: "$arrayElemAt", Value: bson.A{"$ownerDocs", 0}},
			}},
			{Key: "imageUrl", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{firstEnabledImageURL(), ""}},
			}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "ownerDocs", Value: 0}}}},
	}
}

func lookup(from, localField, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}}}
}

// firstEnabledImageURL selects fileUrl of the first image whose isEnabled
// flag is true, in stored order. Missing image or url resolves to null,
// which the caller's $ifNull turns into "".
func firstEnabledImageURL() bson.D {
	enabled := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: "$images"},
		{Key: "as", Value: "img"},
		{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$img.isEnabled", true}}}},
	}}}
	return bson.D{{Key: "$let", Value: bson.D{
		{Key: "vars", Value: bson.D{
			{Key: "enabledImage", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{enabled, 0}}}},
		}},
		{Key: "in", Value: "$$enabledImage.fileUrl"},
	}}}
}
