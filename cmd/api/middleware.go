package main

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/roles"
	"storefront/internal/domain/users"
)

type userKey string

const userCtx userKey = "user"

// tokenCookie carries the access token for page routes.
const tokenCookie = "token"

var errMissingToken = errors.New("authorization header is missing")

func getUserFromContext(r *http.Request) *users.User {
	user, _ := r.Context().Value(userCtx).(*users.User)
	return user
}

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			scheme, encoded, ok := strings.Cut(authHeader, " ")
			if !ok || scheme != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			user, pass, ok := strings.Cut(string(decoded), ":")
			if !ok ||
				subtle.ConstantTimeCompare([]byte(user), []byte(app.config.auth.basic.user)) != 1 ||
				subtle.ConstantTimeCompare([]byte(pass), []byte(app.config.auth.basic.pass)) != 1 {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken reads the access token from the Authorization header, falling
// back to the token cookie.
func bearerToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || scheme != "Bearer" || token == "" {
			return "", fmt.Errorf("authorization header is malformed")
		}
		return token, nil
	}
	if c, err := r.Cookie(tokenCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errMissingToken
}

func (app *application) authenticate(r *http.Request) (*users.User, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := app.authenticator.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), userTimeout)
	defer cancel()

	return app.store.Users.GetByID(ctx, userID)
}

func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := app.authenticate(r)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the user when the request carries a valid session and
// otherwise lets the request through anonymously.
func (app *application) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := app.authenticate(r)
		if err != nil {
			if !errors.Is(err, errMissingToken) {
				app.logger.Debugw("ignoring invalid session", "path", r.URL.Path, "error", err.Error())
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after AuthTokenMiddleware.
func (app *application) RequireRole(required roles.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getUserFromContext(r)
			if user == nil {
				app.unauthorizedErrorResponse(w, r, fmt.Errorf("no user in context"))
				return
			}
			if !user.Role.Satisfies(required) {
				app.forbiddenResponse(w, r, fmt.Errorf("%s role required", required))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled && app.rateLimiter != nil {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
