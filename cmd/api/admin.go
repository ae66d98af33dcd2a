package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// dashboardHandler godoc
//
//	@Summary		Admin dashboard overview
//	@Description	Read-only counts for the dashboard. Fake admins may view it.
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	admindashboard.Overview
//	@Failure		403	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/dashboard [get]
func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	overview, err := app.store.Dashboard.GetOverview(ctx)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, overview); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateOrderStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=paid cancelled"`
}

// updateOrderStatusHandler godoc
//
//	@Summary		Mark an order paid or cancelled
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			orderID	path		int							true	"Order ID"
//	@Param			payload	body		UpdateOrderStatusPayload	true	"Target status"
//	@Success		200		{object}	orders.Order
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/orders/{orderID}/status [put]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), salesTimeout)
	defer cancel()

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		app.badRequestResponse(w, r, errors.New("invalid order id"))
		return
	}

	var payload UpdateOrderStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.store.Sales.Orders.UpdateStatus(ctx, orderID, payload.Status)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("order status changed", "order_id", order.ID, "status", order.Status, "by", getUserFromContext(r).ID)

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}
