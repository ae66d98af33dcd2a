package main

import (
	"context"
	"net/http"
	"time"
)

// shellHandler godoc
//
//	@Summary		App shell state
//	@Description	Requirements, cart, theme and continue-to-pay flag for the first render. Failed parts fall back to empty values and are marked with status "fallback".
//	@Tags			pages
//	@Produce		json
//	@Param			route	query		string	false	"Current client route"
//	@Param			theme	query		string	false	"light, dark or device"
//	@Success		200		{object}	shell.State
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/shell [get]
func (app *application) shellHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)
	q := r.URL.Query()

	state := app.shell.Load(ctx, user.ID, q.Get("route"), q.Get("theme"))

	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}
