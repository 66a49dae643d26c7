package mongodb

import (
	"testing"

	"github.com/lampara23/dise-o-web/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		if got := buildFilter(domain.ProductFilter{}); len(got) != 0 {
			t.Errorf("expected empty filter, got %v", got)
		}
	})

	t.Run("all category is ignored", func(t *testing.T) {
		if got := buildFilter(domain.ProductFilter{Category: "all"}); len(got) != 0 {
			t.Errorf("expected empty filter, got %v", got)
		}
	})

	t.Run("category only", func(t *testing.T) {
		got := buildFilter(domain.ProductFilter{Category: "combos"})
		if got["category"] != "combos" {
			t.Errorf("expected category combos, got %v", got)
		}
		if _, ok := got["$or"]; ok {
			t.Errorf("unexpected $or in %v", got)
		}
	})

	t.Run("search and category", func(t *testing.T) {
		got := buildFilter(domain.ProductFilter{Category: "hotdogs", Search: "hot"})
		if got["category"] != "hotdogs" {
			t.Errorf("expected category hotdogs, got %v", got["category"])
		}
		or, ok := got["$or"].(bson.A)
		if !ok || len(or) != 2 {
			t.Fatalf("expected two $or clauses, got %v", got["$or"])
		}
		want := primitive.Regex{Pattern: "hot", Options: "i"}
		if or[0].(bson.M)["name"] != want {
			t.Errorf("unexpected name clause %v", or[0])
		}
		if or[1].(bson.M)["description"] != want {
			t.Errorf("unexpected description clause %v", or[1])
		}
	})

	t.Run("search is quoted", func(t *testing.T) {
		got := buildFilter(domain.ProductFilter{Search: "500ml (x2)"})
		re := got["$or"].(bson.A)[0].(bson.M)["name"].(primitive.Regex)
		if re.Pattern != `500ml \(x2\)` {
			t.Errorf("expected quoted pattern, got %q", re.Pattern)
		}
	})
}
