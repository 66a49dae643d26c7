package domain

import "testing"

func TestProductFilter_Matches(t *testing.T) {
	hotdog := NewProduct("1", map[string]any{"name": "Hot Dog Tradicional", "description": "Pan hot dog, vienesa", "category": "hotdogs"})
	combo := NewProduct("2", map[string]any{"name": "Combo Victory Royale", "description": "2 Hot Dogs premium", "category": "combos"})
	completo := NewProduct("3", map[string]any{"name": "Completo Italiano", "description": "Pan, vienesa, palta", "category": "completos"})
	tagged := NewProduct("4", map[string]any{"name": []any{"Papas", 3}, "category": []any{"extras", "combos"}})
	odd := NewProduct("5", map[string]any{"name": 12, "description": true, "category": 7})

	tests := []struct {
		name    string
		filter  ProductFilter
		product *Product
		want    bool
	}{
		{"empty filter", ProductFilter{}, completo, true},
		{"all category", ProductFilter{Category: "all"}, combo, true},
		{"category match", ProductFilter{Category: "hotdogs"}, hotdog, true},
		{"category mismatch", ProductFilter{Category: "hotdogs"}, combo, false},
		{"category is case sensitive", ProductFilter{Category: "HotDogs"}, hotdog, false},
		{"search name ignores case", ProductFilter{Search: "HOT DOG"}, hotdog, true},
		{"search description", ProductFilter{Search: "premium"}, combo, true},
		{"search miss", ProductFilter{Search: "pizza"}, completo, false},
		{"search and category", ProductFilter{Category: "combos", Search: "hot"}, combo, true},
		{"search hit but category miss", ProductFilter{Category: "completos", Search: "hot"}, hotdog, false},
		{"regex metacharacters are literal", ProductFilter{Search: ".*"}, completo, false},
		{"array category element", ProductFilter{Category: "combos"}, tagged, true},
		{"array name element", ProductFilter{Search: "papas"}, tagged, true},
		{"off-type fields listed without filter", ProductFilter{}, odd, true},
		{"off-type category never matches", ProductFilter{Category: "7"}, odd, false},
		{"off-type name never matches", ProductFilter{Search: "12"}, odd, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.product); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProductFilter_EffectiveCategory(t *testing.T) {
	if got := (ProductFilter{Category: "all"}).EffectiveCategory(); got != "" {
		t.Errorf("expected empty category for all, got %q", got)
	}
	if got := (ProductFilter{Category: "combos"}).EffectiveCategory(); got != "combos" {
		t.Errorf("expected combos, got %q", got)
	}
}
