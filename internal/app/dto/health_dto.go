package dto

const (
	HealthStatusHealthy = "healthy"
	HealthStatusError   = "error"
)

// HealthResponse reports store reachability. TotalProducts is omitted on error.
type HealthResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	TotalProducts *int64 `json:"total_products,omitempty"`
}
