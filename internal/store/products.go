package store

import (
	"context"
	"errors"
	"regexp"

	"freshsip_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProductStore struct {
	col *mongo.Collection
}

func NewMongoProductStore(col *mongo.Collection) *MongoProductStore {
	return &MongoProductStore{col: col}
}

func (s *MongoProductStore) Find(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	filter := buildProductFilter(q)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 12
	}

	opts := options.Find().
		SetSort(productSort(q.Sort)).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (s *MongoProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any document
		return nil, ErrNotFound
	}

	var product models.Product
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func buildProductFilter(q ProductQuery) bson.M {
	filter := bson.M{}

	if q.Category != "" && q.Category != "all" {
		filter["category"] = q.Category
	}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}

	return filter
}

// productSort maps a sort key onto a Mongo sort document. Ties are broken by
// creation time descending, except alphabetical which sorts by name alone.
func productSort(sort string) bson.D {
	switch sort {
	case SortBestSelling:
		return bson.D{{Key: "bestSelling", Value: -1}, {Key: "createdAt", Value: -1}}
	case SortAlphabetical:
		return bson.D{{Key: "name", Value: 1}}
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case SortNewest:
		return bson.D{{Key: "createdAt", Value: -1}}
	default: // SortFeatured and anything unrecognized
		return bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}
	}
}
