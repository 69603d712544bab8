package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetCart returns the authenticated user's resolved cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, cart)
}

// AddToCart merges {productId} into the cart and returns the resolved cart.
func (h *CartHandler) AddToCart(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	input := new(usecase.CartMutationInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid cart input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	cart, err := h.uc.AddToCart(c.Request().Context(), user.ID, input.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, cart)
}

// RemoveFromCart drops the {productId} line and returns the resolved cart.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	input := new(usecase.CartMutationInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid cart input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	cart, err := h.uc.RemoveFromCart(c.Request().Context(), user.ID, input.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, cart)
}

// requireUser fetches the identity Authenticate attached; its absence means
// the route was wired without the auth middleware.
func requireUser(c echo.Context) (*entity.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domainerrors.ErrNoToken
	}

	return user, nil
}
