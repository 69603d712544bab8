package handler

import (
	"net/http"
	"testing"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUC "storefront/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func withUser(c echo.Context, user *entity.User) {
	c.Set(string(deliverycontext.KeyUser), user)
}

func TestCartHandler_GetCart_OK(t *testing.T) {
	uc := mockUC.NewMockCartUsecase(t)
	h := NewCartHandler(uc, newDiscardLogger())

	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	resolved := &entity.ResolvedCart{
		ID:       uuid.New(),
		UserID:   user.ID,
		Lines:    []entity.ResolvedCartLine{},
		Subtotal: decimal.Zero,
	}

	uc.EXPECT().
		GetCart(mock.Anything, user.ID).
		Return(resolved, nil)

	c, rec := newJSONContext(http.MethodGet, "/api/cart", "")
	withUser(c, user)

	err := h.GetCart(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lines":[]`)
	assert.Contains(t, rec.Body.String(), `"subtotal":"0"`)
}

func TestCartHandler_GetCart_Unauthenticated(t *testing.T) {
	uc := mockUC.NewMockCartUsecase(t)
	h := NewCartHandler(uc, newDiscardLogger())

	c, _ := newJSONContext(http.MethodGet, "/api/cart", "")

	err := h.GetCart(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoToken)
}

func TestCartHandler_AddToCart_OK(t *testing.T) {
	uc := mockUC.NewMockCartUsecase(t)
	h := NewCartHandler(uc, newDiscardLogger())

	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	product := &entity.Product{
		ID:    uuid.New(),
		Name:  "Wireless Mouse",
		Price: decimal.RequireFromString("24.99"),
	}
	resolved := &entity.ResolvedCart{
		ID:     uuid.New(),
		UserID: user.ID,
		Lines: []entity.ResolvedCartLine{
			{Product: product, Quantity: 1},
		},
		Subtotal: product.Price,
	}

	uc.EXPECT().
		AddToCart(mock.Anything, user.ID, product.ID).
		Return(resolved, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/cart/add",
		`{"productId":"`+product.ID.String()+`"}`)
	withUser(c, user)

	err := h.AddToCart(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":1`)
	assert.Contains(t, rec.Body.String(), `"subtotal":"24.99"`)
}

func TestCartHandler_AddToCart_MissingProductID(t *testing.T) {
	uc := mockUC.NewMockCartUsecase(t)
	h := NewCartHandler(uc, newDiscardLogger())

	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}

	c, _ := newJSONContext(http.MethodPost, "/api/cart/add", `{}`)
	withUser(c, user)

	err := h.AddToCart(c)

	require.Error(t, err)
}

func TestCartHandler_RemoveFromCart_OK(t *testing.T) {
	uc := mockUC.NewMockCartUsecase(t)
	h := NewCartHandler(uc, newDiscardLogger())

	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	productID := uuid.New()
	resolved := &entity.ResolvedCart{
		ID:       uuid.New(),
		UserID:   user.ID,
		Lines:    []entity.ResolvedCartLine{},
		Subtotal: decimal.Zero,
	}

	uc.EXPECT().
		RemoveFromCart(mock.Anything, user.ID, productID).
		Return(resolved, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/cart/remove",
		`{"productId":"`+productID.String()+`"}`)
	withUser(c, user)

	err := h.RemoveFromCart(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lines":[]`)
}

func TestOrderHandler_Checkout_Created(t *testing.T) {
	uc := mockUC.NewMockOrderUsecase(t)
	h := NewOrderHandler(uc, newDiscardLogger())

	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	order := &entity.Order{
		ID:     uuid.New(),
		UserID: user.ID,
		Lines: []entity.OrderLine{
			{
				ProductID: uuid.New(),
				Name:      "Wireless Mouse",
				UnitPrice: decimal.RequireFromString("24.99"),
				Quantity:  2,
			},
		},
		TotalPrice: decimal.RequireFromString("49.98"),
	}

	uc.EXPECT().
		PlaceOrder(mock.Anything, user.ID).
		Return(order, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/cart/checkout", "")
	withUser(c, user)

	err := h.Checkout(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPrice":"49.98"`)
	assert.Contains(t, rec.Body.String(), `"name":"Wireless Mouse"`)
}

func TestOrderHandler_Checkout_Unauthenticated(t *testing.T) {
	uc := mockUC.NewMockOrderUsecase(t)
	h := NewOrderHandler(uc, newDiscardLogger())

	c, _ := newJSONContext(http.MethodPost, "/api/cart/checkout", "")

	err := h.Checkout(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoToken)
}
