package handler

import (
	"net/http"

	"github.com/lampara23/dise-o-web/internal/app/service"
	"github.com/lampara23/dise-o-web/internal/infrastructure/http/response"
)

type HealthHandler struct {
	service *service.HealthService
}

func NewHealthHandler(service *service.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health handles GET /api/health. It always answers 200; store failures
// show up as status "error" in the body.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.Check(r.Context()))
}
