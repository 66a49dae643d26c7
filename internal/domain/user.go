package domain

// User is a stored user document. Its schema is not enforced by the catalog.
type User struct {
	ID     string
	Fields map[string]any
}
