package mongodb

import (
	"regexp"

	"github.com/your-org/beauty-store/internal/domain/product"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productFilter translates a list filter into a query document.
func productFilter(f product.ListFilter) bson.M {
	filter := bson.M{}

	if f.Category != "" {
		filter["category"] = f.Category
	}
	if len(f.Brands) > 0 {
		filter["brand"] = bson.M{"$in": f.Brands}
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"brand": pattern},
		}
	}
	return filter
}

// productSort mirrors the relational ordering.
func productSort(sort string) bson.D {
	newest := bson.E{Key: "createdAt", Value: -1}
	switch sort {
	case product.SortPriceLow:
		return bson.D{{Key: "price", Value: 1}, newest}
	case product.SortPriceHigh:
		return bson.D{{Key: "price", Value: -1}, newest}
	case product.SortRating:
		return bson.D{{Key: "rating", Value: -1}, newest}
	case product.SortNewest:
		return bson.D{newest}
	default:
		return bson.D{{Key: "featured", Value: -1}, newest}
	}
}
