package dto

import (
	"encoding/json"

	"github.com/lampara23/dise-o-web/internal/domain"
)

// UserResponse is a stored user rendered with a string _id.
type UserResponse struct {
	ID     string
	Fields map[string]any
}

func (u UserResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Fields)+1)
	for k, v := range u.Fields {
		out[k] = v
	}
	out[domain.FieldID] = u.ID
	return json.Marshal(out)
}

func ToUserResponseList(users []*domain.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = &UserResponse{ID: u.ID, Fields: u.Fields}
	}
	return out
}
