package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxLogoBytes = 2 << 20 // 2mb

type logoForm struct {
	Slug        string `validate:"required,max=120"`
	Size        int64  `validate:"gt=0,lte=2097152"`
	ContentType string `validate:"oneof=image/png image/jpeg image/webp image/svg+xml"`
}

// listCategoriesHandler godoc
//
//	@Summary		List categories
//	@Description	All categories with their ordered sub-categories
//	@Tags			categories
//	@Produce		json
//	@Success		200	{array}		products.Category
//	@Failure		500	{object}	error
//	@Router			/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Products.ListCategories(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCategoryHandler godoc
//
//	@Summary		Get category
//	@Tags			categories
//	@Produce		json
//	@Param			slug	path		string	true	"Category slug"
//	@Success		200		{object}	products.Category
//	@Failure		404		{object}	error
//	@Router			/categories/{slug} [get]
func (app *application) getCategoryHandler(w http.ResponseWriter, r *http.Request) {
	c, err := app.store.Products.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadLogo reads the "logo" form file, uploads it and returns the URL.
func (app *application) uploadLogo(w http.ResponseWriter, r *http.Request, folder string) (string, bool) {
	if app.images == nil {
		app.internalServerError(w, r, errors.New("image uploads are not configured"))
		return "", false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes+1024)
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to parse form, file size limit is 2MB"))
		return "", false
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to retrieve logo file"))
		return "", false
	}
	defer file.Close()

	form := logoForm{
		Slug:        chi.URLParam(r, "slug"),
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}
	if err := Validate.Struct(form); err != nil {
		app.badRequestResponse(w, r, err)
		return "", false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s_%s", form.Slug, uuid.NewString()[:8])
	url, err := app.images.Upload(ctx, file, folder, publicID)
	if err != nil {
		app.internalServerError(w, r, err)
		return "", false
	}
	return url, true
}

// uploadCategoryLogoHandler godoc
//
//	@Summary		Upload category logo
//	@Description	Stores the uploaded image as the category logoImg. Topup products created afterwards use it.
//	@Tags			categories
//	@Accept			mpfd
//	@Produce		json
//	@Param			slug	path		string	true	"Category slug"
//	@Param			logo	formData	file	true	"Logo, at most 2MB"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	error
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/categories/{slug}/logo [put]
func (app *application) uploadCategoryLogoHandler(w http.ResponseWriter, r *http.Request) {
	url, ok := app.uploadLogo(w, r, "categories")
	if !ok {
		return
	}

	if err := app.store.Products.SetCategoryLogo(r.Context(), chi.URLParam(r, "slug"), url); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"logoImg": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadSubCategoryLogoHandler godoc
//
//	@Summary		Upload sub-category logo
//	@Tags			categories
//	@Accept			mpfd
//	@Produce		json
//	@Param			slug	path		string	true	"Sub-category slug"
//	@Param			logo	formData	file	true	"Logo, at most 2MB"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	error
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/subcategories/{slug}/logo [put]
func (app *application) uploadSubCategoryLogoHandler(w http.ResponseWriter, r *http.Request) {
	url, ok := app.uploadLogo(w, r, "subcategories")
	if !ok {
		return
	}

	if err := app.store.Products.SetSubCategoryLogo(r.Context(), chi.URLParam(r, "slug"), url); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"logoImg": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}
