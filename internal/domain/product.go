package domain

// Known product field names, as stored and as rendered over JSON.
const (
	FieldID          = "_id"
	FieldName        = "name"
	FieldPrice       = "price"
	FieldStock       = "stock"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldRarity      = "rarity"
	FieldImage       = "image"
)

// CategoryAll is the category value that disables category filtering.
const CategoryAll = "all"

// Product is a catalog item as stored. The catalog does not enforce a
// schema, so Fields holds every stored field except the identifier, with
// whatever value types the writer chose.
type Product struct {
	ID     string
	Fields map[string]any
}

// Fields is a loosely typed field-set taken from a request body.
// No validation is performed on it.
type Fields map[string]any

// WithoutID returns a copy of f with the identifier key removed.
// Identifiers are assigned by the store only.
func (f Fields) WithoutID() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if k == FieldID {
			continue
		}
		out[k] = v
	}
	return out
}

// NewProduct builds a product from a stored field-set. Any _id key in
// fields is ignored in favour of id.
func NewProduct(id string, fields map[string]any) *Product {
	return &Product{ID: id, Fields: map[string]any(Fields(fields).WithoutID())}
}

// Clone returns a copy of the product with its own top-level field map.
func (p *Product) Clone() *Product {
	c := &Product{ID: p.ID, Fields: make(map[string]any, len(p.Fields))}
	for k, v := range p.Fields {
		c.Fields[k] = v
	}
	return c
}

// Merge sets every field in fields on the product, values kept as given.
// Fields not named are left alone.
func (p *Product) Merge(fields Fields) {
	if p.Fields == nil {
		p.Fields = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		if k == FieldID {
			continue
		}
		p.Fields[k] = v
	}
}

// Text returns the field as a string, or "" when it is missing or not a string.
func (p *Product) Text(key string) string {
	s, _ := p.Fields[key].(string)
	return s
}

// Name returns the product name when it is stored as a string.
func (p *Product) Name() string { return p.Text(FieldName) }

// texts returns the string values a field holds: the value itself when it
// is a string, or the string elements when it is an array.
func (p *Product) texts(key string) []string {
	switch v := p.Fields[key].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	}
	return nil
}
