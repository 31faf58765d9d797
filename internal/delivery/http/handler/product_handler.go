package handler

import (
	"errors"
	"net/http"

	productService "labtrack/internal/application/product"
	"labtrack/internal/domain/product"
	"labtrack/internal/logging"
)

type ProductHandler struct {
	service productService.Service
	logger  logging.Logger
}

func NewProductHandler(service productService.Service, logger logging.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

type addProductResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Table handles GET /productstable?type=<t>
func (h *ProductHandler) Table(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		SendInternalError(w, r, h.logger, "list products", err)
		return
	}
	SendJSON(w, http.StatusOK, products)
}

// Add handles POST /products/add
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req product.AddProductRequest
	if err := decodeBody(w, r, &req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.service.Add(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrInvalidName):
			SendError(w, "Product name is required", http.StatusBadRequest)
		case errors.Is(err, product.ErrProductExists):
			SendError(w, "Product already exists", http.StatusBadRequest)
		default:
			SendInternalError(w, r, h.logger, "add product", err)
		}
		return
	}

	SendJSON(w, http.StatusCreated, addProductResponse{
		Success: true,
		Message: "Product added successfully",
		ID:      p.ID,
	})
}
