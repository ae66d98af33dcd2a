package main

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/users"
)

// getMeHandler godoc
//
//	@Summary		Current user
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getMeHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, getUserFromContext(r)); err != nil {
		app.internalServerError(w, r, err)
	}
}

const userTimeout = 5 * time.Second

type userResponse struct {
	User *users.User `json:"user"`
}

// toggleFakeAdminHandler godoc
//
//	@Summary		Toggle fake admin
//	@Description	USER becomes FAKE_ADMIN and FAKE_ADMIN becomes USER. ADMIN is rejected with 403.
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	userResponse
//	@Failure		401	{object}	error
//	@Failure		403	{object}	error
//	@Failure		409	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/fakeAdmin [put]
func (app *application) toggleFakeAdminHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), userTimeout)
	defer cancel()

	current := getUserFromContext(r)

	user, err := app.users.ToggleFakeAdmin(ctx, current.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("role toggled", "user_id", user.ID, "from", current.Role.String(), "to", user.Role.String())

	if err := writeJSON(w, http.StatusOK, userResponse{User: user}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateDisplayNamePayload struct {
	DisplayName string `json:"displayName" validate:"notblank"`
}

// updateDisplayNameHandler godoc
//
//	@Summary		Set display name
//	@Description	Trimmed, 1 to 50 characters. Overrides the account name for display only.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateDisplayNamePayload	true	"New display name"
//	@Success		200		{object}	userResponse
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/displayName [put]
func (app *application) updateDisplayNameHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), userTimeout)
	defer cancel()

	var payload UpdateDisplayNamePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	current := getUserFromContext(r)
	user, err := app.users.SetDisplayName(ctx, current.ID, payload.DisplayName)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, userResponse{User: user}); err != nil {
		app.internalServerError(w, r, err)
	}
}
