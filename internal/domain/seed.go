package domain

// InitialProducts returns the catalog written into an empty store on startup.
func InitialProducts() []Product {
	return []Product{
		{Fields: map[string]any{
			FieldName:        "Completo Italiano",
			FieldPrice:       int64(2490),
			FieldStock:       int64(50),
			FieldDescription: "Pan, vienesa, palta, tomate y mayonesa",
			FieldCategory:    "completos",
			FieldRarity:      "common",
			FieldImage:       "🌭",
		}},
		{Fields: map[string]any{
			FieldName:        "Hot Dog Tradicional",
			FieldPrice:       int64(2190),
			FieldStock:       int64(60),
			FieldDescription: "Pan hot dog, vienesa, mostaza, ketchup, pepinillos",
			FieldCategory:    "hotdogs",
			FieldRarity:      "common",
			FieldImage:       "🌭",
		}},
		{Fields: map[string]any{
			FieldName:        "Combo Victory Royale 🏆",
			FieldPrice:       int64(7990),
			FieldStock:       int64(25),
			FieldDescription: "2 Hot Dogs premium + papas fritas + bebida 500ml",
			FieldCategory:    "combos",
			FieldRarity:      "epic",
			FieldImage:       "🎮",
		}},
	}
}
