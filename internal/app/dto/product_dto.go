package dto

import (
	"encoding/json"

	"github.com/lampara23/dise-o-web/internal/domain"
)

// ProductResponse is a product rendered as stored: its string _id plus
// every stored field, flattened into one object. Fields that were never
// stored are not rendered.
type ProductResponse struct {
	ID     string
	Fields map[string]any
}

// MarshalJSON renders the product as one flat object keyed like the stored document.
func (p ProductResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fields)+1)
	for k, v := range p.Fields {
		out[k] = v
	}
	out[domain.FieldID] = p.ID
	return json.Marshal(out)
}

// ProductMutationResponse is returned by create and update.
type ProductMutationResponse struct {
	Message string           `json:"message"`
	Product *ProductResponse `json:"product"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{ID: p.ID, Fields: p.Fields}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
