package main

import (
	"net/http"

	"storefront/internal/profile"
)

// profilePageHandler godoc
//
//	@Summary		Profile page
//	@Description	Redirects anonymous callers to /signin and order hand-offs to /order. Otherwise returns the profile view-model.
//	@Tags			pages
//	@Produce		json
//	@Param			order_id	query		string	false	"Order to forward to"
//	@Success		200			{object}	profile.View
//	@Success		302			{string}	string	"Redirect"
//	@Router			/profile [get]
func (app *application) profilePageHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	decision := profile.Resolve(user, r.URL.Query())
	if decision.Outcome == profile.Redirect {
		http.Redirect(w, r, decision.Location, http.StatusFound)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, profile.Build(user)); err != nil {
		app.internalServerError(w, r, err)
	}
}
