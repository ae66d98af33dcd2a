package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/orders"
	"storefront/internal/domain/requirements"
	"storefront/internal/domain/storage"
	"storefront/internal/domain/validation"
	"storefront/internal/params"

	"github.com/go-chi/chi/v5"
)

const salesTimeout = 5 * time.Second

type cartResponse struct {
	Cart *carts.CartView `json:"cart"`
}

// getCartHandler godoc
//
//	@Summary		Get user's cart
//	@Description	The caller's cart with priced lines. Users without a cart get an empty one.
//	@Tags			carts
//	@Produce		json
//	@Success		200	{object}	cartResponse
//	@Failure		401	{object}	error
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/carts/me [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	user := getUserFromContext(r)

	view, err := app.store.Sales.Carts.GetView(ctx, user.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, cartResponse{Cart: view}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AddCartItemPayload struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0,lte=100"`
}

// addCartItemHandler godoc
//
//	@Summary		Add to cart
//	@Description	Adds quantity of a product, creating the cart on first use
//	@Tags			carts
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		AddCartItemPayload	true	"Product and quantity"
//	@Success		200		{object}	cartResponse
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/carts/me/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	var payload AddCartItemPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	if err := app.store.Sales.Carts.AddItem(ctx, user.ID, payload.ProductID, payload.Quantity); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	view, err := app.store.Sales.Carts.GetView(ctx, user.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, cartResponse{Cart: view}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeCartItemHandler godoc
//
//	@Summary		Remove from cart
//	@Tags			carts
//	@Param			productID	path	int	true	"Product ID"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/carts/me/items/{productID} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		app.badRequestResponse(w, r, errors.New("invalid product id"))
		return
	}

	user := getUserFromContext(r)
	if err := app.store.Sales.Carts.RemoveItem(ctx, user.ID, productID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type requirementsResponse struct {
	Requirements requirements.Set `json:"requirements"`
}

// getRequirementsHandler godoc
//
//	@Summary		Top-up requirements
//	@Description	Values the caller stored per topup category, keyed by category slug
//	@Tags			requirements
//	@Produce		json
//	@Success		200	{object}	requirementsResponse
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/requirements [get]
func (app *application) getRequirementsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	user := getUserFromContext(r)

	set, err := app.store.Sales.Requirements.ListByUser(ctx, user.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, requirementsResponse{Requirements: set}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// putRequirementHandler godoc
//
//	@Summary		Store top-up requirement
//	@Description	Replaces the caller's values for one topup category
//	@Tags			requirements
//	@Accept			json
//	@Param			categorySlug	path	string				true	"Category slug"
//	@Param			payload			body	map[string]string	true	"Values, e.g. userId and zoneId"
//	@Success		204
//	@Failure		400	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/requirements/{categorySlug} [put]
func (app *application) putRequirementHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	var values map[string]string
	if err := readJSON(w, r, &values); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	values, err := requirements.Normalize(values)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	slug := chi.URLParam(r, "categorySlug")
	if err := app.store.Sales.Requirements.Upsert(ctx, user.ID, slug, values); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// checkoutHandler godoc
//
//	@Summary		Checkout
//	@Description	Turns the caller's cart into an order. Topup products need stored requirements for their category.
//	@Tags			orders
//	@Produce		json
//	@Success		201	{object}	orders.Order
//	@Failure		400	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/orders [post]
func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user := getUserFromContext(r)

	var order *orders.Order
	err := app.store.WithSalesTx(ctx, func(s *storage.Sales) error {
		view, err := s.Carts.GetView(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(view.Products) == 0 {
			return orders.ErrEmptyCart
		}

		set, err := s.Requirements.ListByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if missing := orders.MissingRequirements(view.Products, set); len(missing) > 0 {
			return validation.Errorf("Please fill requirements for: %s", strings.Join(missing, ", "))
		}

		order, err = s.Orders.CreateFromCart(ctx, user.ID, set)
		if err != nil {
			return err
		}
		return s.Carts.Clear(ctx, user.ID)
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("order created", "user_id", user.ID, "order_id", order.ID, "order_number", order.OrderNumber)
	app.sendOrderConfirmation(user, order)

	if err := app.jsonResponse(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ordersPage struct {
	Orders     []orders.Order    `json:"orders"`
	Pagination params.Pagination `json:"pagination"`
}

// listMyOrdersHandler godoc
//
//	@Summary		Order history
//	@Tags			orders
//	@Produce		json
//	@Param			page	query		int	false	"Page, from 1"
//	@Param			limit	query		int	false	"Page size, at most 30"
//	@Success		200		{object}	ordersPage
//	@Security		ApiKeyAuth
//	@Router			/orders/me [get]
func (app *application) listMyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	user := getUserFromContext(r)
	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Sales.Orders.ListByUser(ctx, user.ID, p.Limit, p.Offset)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	p.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, ordersPage{Orders: list, Pagination: p}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMyOrderHandler godoc
//
//	@Summary		Order detail
//	@Tags			orders
//	@Produce		json
//	@Param			orderID	path		int	true	"Order ID"
//	@Success		200		{object}	orders.Detail
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/orders/{orderID} [get]
func (app *application) getMyOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		app.badRequestResponse(w, r, errors.New("invalid order id"))
		return
	}

	user := getUserFromContext(r)
	detail, err := app.store.Sales.Orders.GetDetailForUser(ctx, user.ID, orderID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, detail); err != nil {
		app.internalServerError(w, r, err)
	}
}
