package handler

import (
	"net/http"

	"github.com/lampara23/dise-o-web/internal/app/service"
	"github.com/lampara23/dise-o-web/internal/infrastructure/http/response"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	response.JSON(w, http.StatusOK, users)
}
