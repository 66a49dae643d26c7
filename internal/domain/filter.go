package domain

import "strings"

// ProductFilter narrows a product listing. Zero values mean no restriction.
type ProductFilter struct {
	Category string
	Search   string
}

// EffectiveCategory returns the category to match on, or "" when the
// filter should not restrict by category.
func (f ProductFilter) EffectiveCategory() string {
	if f.Category == CategoryAll {
		return ""
	}
	return f.Category
}

// Matches reports whether the product passes the filter: exact category
// and a case-insensitive substring of name or description. Array fields
// match when any string element does, as in the document store. Values
// of other types never match.
func (f ProductFilter) Matches(p *Product) bool {
	if category := f.EffectiveCategory(); category != "" {
		equal := func(s string) bool { return s == category }
		if !anyOf(p.texts(FieldCategory), equal) {
			return false
		}
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), needle) }
	return anyOf(p.texts(FieldName), contains) || anyOf(p.texts(FieldDescription), contains)
}

func anyOf(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if pred(v) {
			return true
		}
	}
	return false
}
