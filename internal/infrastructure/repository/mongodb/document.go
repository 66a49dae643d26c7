package mongodb

import (
	"fmt"

	"github.com/lampara23/dise-o-web/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product documents are read and written as plain maps. Nothing checks the
// value types a writer stored, so no field may be decoded into a typed
// struct member.

// newProductDocument renders a product for insertion. _id is left to the server.
func newProductDocument(p domain.Product) bson.M {
	doc := make(bson.M, len(p.Fields))
	for k, v := range p.Fields {
		if k != domain.FieldID {
			doc[k] = v
		}
	}
	return doc
}

// productFromDocument turns a stored document into a product, keeping
// every field as it was decoded.
func productFromDocument(doc bson.M) *domain.Product {
	return domain.NewProduct(idString(doc[domain.FieldID]), doc)
}

// parseID turns an opaque identifier back into an ObjectID. Anything that is
// not a valid ObjectID cannot name a stored product.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return oid, nil
}

// idString renders a stored _id as its string token.
func idString(v any) string {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
