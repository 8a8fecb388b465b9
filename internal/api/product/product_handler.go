package product

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bakeryhq/bakery-admin/internal/api"
	"github.com/bakeryhq/bakery-admin/internal/api/auth"
	"github.com/bakeryhq/bakery-admin/internal/types"
)

type Handler struct {
	productService ProductService
	logger         *slog.Logger
}

func NewHandler(productService ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		productService: productService,
		logger:         logger,
	}
}

func productIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// CreateProduct godoc
// @Summary      Create product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        body body types.CreateProductParams true "Product"
// @Success      201 {object} map[string]interface{} "Created product id"
// @Failure      400 {object} types.Response "Validation error"
// @Security     BearerAuth
// @Router       /products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateProduct"))

	user, ok := auth.GetUserFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var params types.CreateProductParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.productService.Create(ctx, params, user.ID)
	if err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrNegativePrice) || errors.Is(err, ErrNegativeStock) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to create product", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create product")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   map[string]int64{"id": id},
	})
}

// GetAllProducts godoc
// @Summary      List products
// @Tags         Products
// @Produce      json
// @Success      200 {object} map[string]interface{} "Products"
// @Security     BearerAuth
// @Router       /products [get]
func (h *Handler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetAllProducts"))

	products, err := h.productService.GetAll(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch products", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   products,
	})
}

// GetProductByID godoc
// @Summary      Get product
// @Tags         Products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} map[string]interface{} "Product"
// @Failure      404 {object} types.Response "Not found"
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := productIDFromURL(r)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid product id")
		return
	}

	p, err := h.productService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to fetch product", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   p,
	})
}

// UpdateProduct godoc
// @Summary      Update product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        body body types.UpdateProductParams true "Fields to update"
// @Success      200 {object} types.Response "Updated"
// @Failure      400 {object} types.Response "Validation error"
// @Failure      404 {object} types.Response "Not found"
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateProduct"))

	id, err := productIDFromURL(r)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid product id")
		return
	}

	var params types.UpdateProductParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = h.productService.Update(ctx, id, params)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Product not found")
		case errors.Is(err, ErrNegativePrice), errors.Is(err, ErrNegativeStock):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		default:
			l.ErrorContext(ctx, "Failed to update product", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Status:  "success",
		Message: "Product updated successfully",
	})
}

// DeleteProduct godoc
// @Summary      Delete product (soft delete)
// @Tags         Products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} types.Response "Deleted"
// @Failure      404 {object} types.Response "Not found"
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteProduct"))

	id, err := productIDFromURL(r)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid product id")
		return
	}

	err = h.productService.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Product not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete product", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Status:  "success",
		Message: "Product deleted successfully",
	})
}
