package mongodb

import (
	"regexp"

	"github.com/lampara23/dise-o-web/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildFilter translates a product filter into a query document.
// The search term is matched literally and ignores case.
func buildFilter(f domain.ProductFilter) bson.M {
	filter := bson.M{}

	if category := f.EffectiveCategory(); category != "" {
		filter[domain.FieldCategory] = category
	}

	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{domain.FieldName: re},
			bson.M{domain.FieldDescription: re},
		}
	}

	return filter
}
