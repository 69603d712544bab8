package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListProducts returns the whole catalog.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, products)
}

// GetProduct returns a single catalog product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, product)
}

// CreateProduct adds a catalog product. Admin-gated by the router.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	input := new(usecase.ProductInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, product)
}

// UpdateProduct replaces a product's fields. Admin-gated by the router.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	input := new(usecase.ProductInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, product)
}

// DeleteProduct removes a product. Admin-gated by the router.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Product deleted")
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid id parameter")
	}

	return id, nil
}
