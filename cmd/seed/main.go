// Command seed resets the document store and loads a demo data set. The API
// itself never writes; this tool exists for local and demo environments.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Mthew/million-real-state/internal/config"
	"github.com/Mthew/million-real-state/internal/db"
	"github.com/Mthew/million-real-state/internal/db/mongodb"
	"github.com/Mthew/million-real-state/internal/domain"
	logpkg "github.com/Mthew/million-real-state/internal/logger"
)

// Wire-shaped documents. The field names must match what the read path
// projects, so any change here has to stay in sync with the repository DTOs.
type ownerDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Address  string             `bson:"address"`
	PhotoURL string             `bson:"photoUrl"`
	Birthday time.Time          `bson:"birthday"`
}

type propertyDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	OwnerID      primitive.ObjectID `bson:"ownerId"`
	Name         string             `bson:"name"`
	Address      string             `bson:"address"`
	Price        domain.Decimal     `bson:"price"`
	CodeInternal string             `bson:"codeInternal"`
	Year         int                `bson:"year"`
}

type imageDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	PropertyID primitive.ObjectID `bson:"propertyId"`
	FileURL    string             `bson:"fileUrl"`
	Enabled    bool               `bson:"isEnabled"`
}

type traceDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	PropertyID primitive.ObjectID `bson:"propertyId"`
	DateSale   time.Time          `bson:"dateSale"`
	Name       string             `bson:"name"`
	Value      domain.Decimal     `bson:"value"`
	Tax        domain.Decimal     `bson:"tax"`
}

func main() {
	_ = godotenv.Load()
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	store, err := mongodb.NewStore(ctx, mongodb.Config{
		URI:      cfg.Database.URI,
		Database: cfg.Database.Name,
		Timeout:  time.Duration(cfg.Database.TimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	for _, coll := range []string{db.CollOwners, db.CollProperties, db.CollPropertyImages, db.CollPropertyTraces} {
		if err := store.Drop(ctx, coll); err != nil {
			logger.Fatal("Failed to drop collection", zap.String("collection", coll), zap.Error(err))
		}
	}

	owners := demoOwners()
	properties := demoProperties(owners)
	images := demoImages(properties)
	traces := demoTraces(properties)

	insert(ctx, logger, store, db.CollOwners, owners)
	insert(ctx, logger, store, db.CollProperties, properties)
	insert(ctx, logger, store, db.CollPropertyImages, images)
	insert(ctx, logger, store, db.CollPropertyTraces, traces)

	logger.Info("Seed complete",
		zap.Int("owners", len(owners)),
		zap.Int("properties", len(properties)),
		zap.Int("images", len(images)),
		zap.Int("traces", len(traces)),
	)
}

func insert[T any](ctx context.Context, logger *zap.Logger, store db.Store, coll string, docs []T) {
	anyDocs := make([]any, len(docs))
	for i, d := range docs {
		anyDocs[i] = d
	}
	if err := store.InsertMany(ctx, coll, anyDocs); err != nil {
		logger.Fatal("Failed to insert documents", zap.String("collection", coll), zap.Error(err))
	}
}

func demoOwners() []ownerDoc {
	return []ownerDoc{
		{
			ID:       primitive.NewObjectID(),
			Name:     "Isabella Sterling",
			Address:  "123 Investor Lane, Capital City",
			PhotoURL: "https://i.pravatar.cc/150?u=isabella",
			Birthday: date(1980, 5, 20),
		},
		{
			ID:       primitive.NewObjectID(),
			Name:     "David Beaumont",
			Address:  "456 Dreamer's Drive, Serenity Bay",
			PhotoURL: "https://i.pravatar.cc/150?u=david",
			Birthday: date(1975, 11, 15),
		},
		{
			ID:       primitive.NewObjectID(),
			Name:     "Eleanor Vance",
			Address:  "789 Heritage Row, Old Town",
			PhotoURL: "https://i.pravatar.cc/150?u=eleanor",
			Birthday: date(1968, 9, 2),
		},
		{
			ID:       primitive.NewObjectID(),
			Name:     "Marcus Thorne",
			Address:  "101 Pinnacle Point, Summit Hills",
			PhotoURL: "https://i.pravatar.cc/150?u=marcus",
			Birthday: date(1985, 2, 18),
		},
	}
}

func demoProperties(owners []ownerDoc) []propertyDoc {
	type row struct {
		owner   int
		name    string
		address string
		price   string
		code    string
		year    int
	}
	rows := []row{
		{0, "The Skyline Penthouse", "789 High Street, Suite 5000, Metropolis", "4500000.00", "PH001", 2022},
		{1, "Oceanfront Villa", "101 Coastline Road, Paradise Cove", "8250000.00", "VF101", 2018},
		{0, "Downtown Loft", "222 Art District, Apt 3B, Metropolis", "1800000.00", "DL222", 2020},
		{2, "The Heritage Manor", "45 Grand Oak Lane, Willow Creek", "6700000.00", "HM45", 1995},
		{3, "Summit View Estate", "1 Peak Circle, Aspen Grove", "12500000.00", "SV01", 2021},
		{1, "Lakeside Retreat", "88 Serene Water Way, Emerald Lake", "3200000.00", "LR88", 2005},
		{0, "The Onyx Condominium", "1500 Financial Avenue, Unit 2501, Metropolis", "2950000.00", "OC2501", 2019},
		{2, "Countryside Estate", "99 Rolling Hills Dr, Green Valley", "5100000.00", "CE99", 2010},
		{3, "The Glass House", "33 Modernist Path, Innovation City", "9800000.00", "GH33", 2023},
		{1, "Secluded Beach Bungalow", "7 Hidden Shore, Sandy Point", "1200000.00", "SBB07", 1988},
		{0, "The Ambassador Suite", "1 Global Plaza, Embassy Row", "7500000.00", "AS01", 2015},
		{2, "The Artist's Studio", "5 Creative Alley, Soho District", "950000.00", "AS5", 2008},
	}

	props := make([]propertyDoc, 0, len(rows))
	for _, r := range rows {
		props = append(props, propertyDoc{
			ID:           primitive.NewObjectID(),
			OwnerID:      owners[r.owner].ID,
			Name:         r.name,
			Address:      r.address,
			Price:        domain.MustDecimal(r.price),
			CodeInternal: r.code,
			Year:         r.year,
		})
	}
	return props
}

func demoImages(props []propertyDoc) []imageDoc {
	urls := []string{
		"https://images.pexels.com/photos/5997993/pexels-photo-5997993.jpeg",
		"https://images.pexels.com/photos/106399/pexels-photo-106399.jpeg",
		"https://images.pexels.com/photos/276724/pexels-photo-276724.jpeg",
		"https://images.pexels.com/photos/209296/pexels-photo-209296.jpeg",
		"https://images.pexels.com/photos/259588/pexels-photo-259588.jpeg",
		"https://images.pexels.com/photos/1396122/pexels-photo-1396122.jpeg",
		"https://images.pexels.com/photos/323780/pexels-photo-323780.jpeg",
		"https://images.pexels.com/photos/164558/pexels-photo-164558.jpeg",
		"https://images.pexels.com/photos/2089698/pexels-photo-2089698.jpeg",
		"https://images.pexels.com/photos/209315/pexels-photo-209315.jpeg",
		"https://images.pexels.com/photos/271816/pexels-photo-271816.jpeg",
		"https://images.pexels.com/photos/2724749/pexels-photo-2724749.jpeg",
	}
	images := make([]imageDoc, 0, len(props)+1)
	for i, p := range props {
		images = append(images, imageDoc{
			ID:         primitive.NewObjectID(),
			PropertyID: p.ID,
			FileURL:    urls[i%len(urls)],
			Enabled:    true,
		})
	}
	// One disabled image so the primary-image selection has something to skip.
	images = append(images, imageDoc{
		ID:         primitive.NewObjectID(),
		PropertyID: props[0].ID,
		FileURL:    "https://images.pexels.com/photos/439284/pexels-photo-439284.jpeg",
		Enabled:    false,
	})
	return images
}

func demoTraces(props []propertyDoc) []traceDoc {
	return []traceDoc{
		{
			ID:         primitive.NewObjectID(),
			PropertyID: props[0].ID,
			DateSale:   date(2022, 2, 1),
			Name:       "Off-Plan Purchase from Developer",
			Value:      domain.MustDecimal("4200000.00"),
			Tax:        domain.MustDecimal("210000.00"),
		},
		{
			ID:         primitive.NewObjectID(),
			PropertyID: props[1].ID,
			DateSale:   date(2021, 1, 10),
			Name:       "Previous Sale to Investment Group",
			Value:      domain.MustDecimal("7500000.00"),
			Tax:        domain.MustDecimal("375000.00"),
		},
		{
			ID:         primitive.NewObjectID(),
			PropertyID: props[3].ID,
			DateSale:   date(1998, 11, 20),
			Name:       "Original Purchase from Estate",
			Value:      domain.MustDecimal("2500000.00"),
			Tax:        domain.MustDecimal("125000.00"),
		},
		{
			ID:         primitive.NewObjectID(),
			PropertyID: props[3].ID,
			DateSale:   date(2015, 7, 1),
			Name:       "Renovation Sale to Vance Family",
			Value:      domain.MustDecimal("5500000.00"),
			Tax:        domain.MustDecimal("275000.00"),
		},
		{
			ID:         primitive.NewObjectID(),
			PropertyID: props[4].ID,
			DateSale:   date(2021, 8, 10),
			Name:       "Purchase from Summit Developers Inc.",
			Value:      domain.MustDecimal("11500000.00"),
			Tax:        domain.MustDecimal("575000.00"),
		},
		{
			ID:         primitive.NewObjectID(),
			PropertyID: props[9].ID,
			DateSale:   date(1995, 4, 12),
			Name:       "Auction Purchase",
			Value:      domain.MustDecimal("350000.00"),
			Tax:        domain.MustDecimal("17500.00"),
		},
		{
			ID:         primitive.NewObjectID(),
			PropertyID: props[9].ID,
			DateSale:   date(2018, 9, 30),
			Name:       "Resale to Beaumont Family",
			Value:      domain.MustDecimal("1100000.00"),
			Tax:        domain.MustDecimal("55000.00"),
		},
		{
			ID:         primitive.NewObjectID(),
			PropertyID: props[11].ID,
			DateSale:   date(2014, 11, 5),
			Name:       "Foreclosure Auction Sale",
			Value:      domain.MustDecimal("650000.00"),
			Tax:        domain.MustDecimal("32500.00"),
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
