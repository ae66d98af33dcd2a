package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"storefront/internal/domain/products"
)

const productTimeout = 10 * time.Second

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Filters by category slug, inclusive price bounds and discount, then by a case-insensitive title search
//	@Tags			products
//	@Produce		json
//	@Param			category	query		string	false	"Category slug"
//	@Param			from		query		number	false	"Minimum price (inclusive)"
//	@Param			to			query		number	false	"Maximum price (inclusive)"
//	@Param			discount	query		bool	false	"Only discounted products when true"
//	@Param			search		query		string	false	"Title substring"
//	@Param			include		query		string	false	"Comma separated relations: category, subCategory, user"
//	@Success		200			{object}	products.ListResult
//	@Failure		400			{object}	error
//	@Failure		500			{object}	error
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), productTimeout)
	defer cancel()

	filter, err := products.ParseFilter(r.URL.Query())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	result, err := app.products.List(ctx, filter)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

type createProductResponse struct {
	Product *products.Product `json:"product"`
}

type createProductsResponse struct {
	Products []*products.Product `json:"products"`
	Count    int                 `json:"count"`
}

// createProductsHandler godoc
//
//	@Summary		Create products
//	@Description	Accepts one product object or an array of them. Arrays are created all-or-nothing.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		products.Payload	true	"Product or array of products"
//	@Success		201		{object}	createProductResponse
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/products [post]
func (app *application) createProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), productTimeout)
	defer cancel()

	user := getUserFromContext(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		app.badRequestResponse(w, r, errors.New("request body is empty"))
		return
	}

	if body[0] == '[' {
		var payloads []products.Payload
		if err := json.Unmarshal(body, &payloads); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		created, err := app.products.CreateBatch(ctx, user.ID, payloads)
		if err != nil {
			app.errorResponse(w, r, err)
			return
		}

		app.logger.Infow("products created", "user_id", user.ID, "count", len(created))
		if err := writeJSON(w, http.StatusCreated, createProductsResponse{Products: created, Count: len(created)}); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	var payload products.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.products.Create(ctx, user.ID, payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("product created", "user_id", user.ID, "product_id", created.ID)
	if err := writeJSON(w, http.StatusCreated, createProductResponse{Product: created}); err != nil {
		app.internalServerError(w, r, err)
	}
}
