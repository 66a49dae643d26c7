package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lampara23/dise-o-web/internal/app/dto"
	"github.com/lampara23/dise-o-web/internal/app/service"
	"github.com/lampara23/dise-o-web/internal/domain"
	"github.com/lampara23/dise-o-web/internal/infrastructure/http/response"
	"github.com/lampara23/dise-o-web/internal/infrastructure/telemetry"
)

// Response messages for product mutations.
const (
	msgProductCreated = "Product created!"
	msgProductUpdated = "Product updated!"
	msgProductDeleted = "Product deleted"
)

// maxBodyBytes caps product request bodies.
const maxBodyBytes = 1 << 20

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products?category=&search=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.decode(w, r)
	if !ok {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), fields)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ProductMutationResponse{
		Message: msgProductCreated,
		Product: product,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fields, ok := h.decode(w, r)
	if !ok {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, fields)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ProductMutationResponse{
		Message: msgProductUpdated,
		Product: product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.MessageResponse{Message: msgProductDeleted})
}

func (h *ProductHandler) decode(w http.ResponseWriter, r *http.Request) (domain.Fields, bool) {
	fields, err := dto.DecodeFields(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", telemetry.Err(err))
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		response.Error(w, status, err)
		return nil, false
	}
	return fields, true
}
